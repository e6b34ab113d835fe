package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"isp-billing/internal/domain/customer"
	"isp-billing/internal/infrastructure/monitoring"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const customerColumns = `id, name, email, phone, nid, address, package, monthly_fee, connection_date, status, notes, created_at, updated_at`

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
	newID  func() string
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
		newID:  uuid.NewString,
	}
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var cust customer.Customer
	var status string
	err := row.Scan(
		&cust.ID,
		&cust.Name,
		&cust.Email,
		&cust.Phone,
		&cust.NationalID,
		&cust.Address,
		&cust.Package,
		&cust.MonthlyFee,
		&cust.ConnectionDate,
		&status,
		&cust.Notes,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	cust.Status = customer.Status(status)
	return &cust, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) (customers []*customer.Customer, err error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("customers_find_all", err, time.Since(start)) }()

	r.logger.InfoContext(ctx, "Attempting to find all customers")

	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	customers = make([]*customer.Customer, 0)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("failed to scan customer row: %w", translateDBError(err, r.logger))
		}
		customers = append(customers, cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) Create(ctx context.Context, fields customer.Fields) (created *customer.Customer, err error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("customers_insert", err, time.Since(start)) }()

	customerID := r.newID()
	log := r.logger.With(slog.String("customerID", customerID))
	log.InfoContext(ctx, "Attempting to insert new customer", slog.String("name", fields.Name))

	query := `
        INSERT INTO customers (id, name, email, phone, nid, address, package, monthly_fee, connection_date, status, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
        RETURNING ` + customerColumns

	created, err = scanCustomer(r.db.QueryRow(ctx, query,
		customerID,
		fields.Name,
		fields.Email,
		fields.Phone,
		fields.NationalID,
		fields.Address,
		fields.Package,
		fields.MonthlyFee,
		fields.ConnectionDate,
		string(fields.Status),
		fields.Notes,
	))
	if err != nil {
		log.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return nil, translateDBError(err, r.logger)
	}

	log.InfoContext(ctx, "Customer inserted successfully")
	return created, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customerID string, fields customer.Fields) (updated *customer.Customer, err error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("customers_update", err, time.Since(start)) }()

	log := r.logger.With(slog.String("customerID", customerID))
	log.InfoContext(ctx, "Attempting to update customer")

	query := `
        UPDATE customers
        SET name = $1,
            email = $2,
            phone = $3,
            nid = $4,
            address = $5,
            package = $6,
            monthly_fee = $7,
            connection_date = $8,
            status = $9,
            notes = $10,
            updated_at = NOW()
        WHERE id = $11
        RETURNING ` + customerColumns

	updated, err = scanCustomer(r.db.QueryRow(ctx, query,
		fields.Name,
		fields.Email,
		fields.Phone,
		fields.NationalID,
		fields.Address,
		fields.Package,
		fields.MonthlyFee,
		fields.ConnectionDate,
		string(fields.Status),
		fields.Notes,
		customerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.WarnContext(ctx, "Update matched no rows, customer not found")
			return nil, customer.ErrNotFound
		}
		log.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return nil, translateDBError(err, r.logger)
	}

	log.InfoContext(ctx, "Customer updated successfully")
	return updated, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID string) (err error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("customers_delete", err, time.Since(start)) }()

	log := r.logger.With(slog.String("customerID", customerID))
	log.InfoContext(ctx, "Attempting to delete customer")

	query := `DELETE FROM customers WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, customerID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	if cmdTag.RowsAffected() == 0 {
		log.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	log.InfoContext(ctx, "Customer deleted successfully")
	return nil
}
