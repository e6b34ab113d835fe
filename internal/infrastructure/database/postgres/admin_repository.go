package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"isp-billing/internal/domain/auth"
	"isp-billing/internal/infrastructure/monitoring"

	"github.com/jackc/pgx/v5"
)

type AdminUserRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ auth.AccountStore = (*AdminUserRepository)(nil)

func NewAdminUserRepository(db DBPool, logger *slog.Logger) *AdminUserRepository {
	if db == nil {
		panic("DBPool cannot be nil for AdminUserRepository")
	}
	return &AdminUserRepository{db: db, logger: logger.With("component", "AdminUserRepository")}
}

func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (account *auth.Account, err error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("admin_users_find_by_email", err, time.Since(start)) }()

	query := `
        SELECT id, email, display_name, password_hash, disabled
        FROM admin_users
        WHERE lower(email) = lower($1)`

	var acc auth.Account
	err = r.db.QueryRow(ctx, query, email).Scan(
		&acc.ID,
		&acc.Email,
		&acc.Name,
		&acc.PasswordHash,
		&acc.Disabled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.DebugContext(ctx, "No administrator with that email")
			return nil, auth.ErrUserNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query administrator", slog.Any("error", err))
		return nil, translateDBError(err, r.logger)
	}

	return &acc, nil
}

// Upsert creates or replaces the administrator with acc.Email.
func (r *AdminUserRepository) Upsert(ctx context.Context, acc auth.Account) (err error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("admin_users_upsert", err, time.Since(start)) }()

	query := `
        INSERT INTO admin_users (id, email, display_name, password_hash, disabled)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (email) DO UPDATE
        SET display_name = EXCLUDED.display_name,
            password_hash = EXCLUDED.password_hash,
            disabled = EXCLUDED.disabled`

	if _, err = r.db.Exec(ctx, query, acc.ID, acc.Email, acc.Name, acc.PasswordHash, acc.Disabled); err != nil {
		r.logger.ErrorContext(ctx, "Failed to upsert administrator", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Administrator saved", slog.String("email", acc.Email))
	return nil
}
