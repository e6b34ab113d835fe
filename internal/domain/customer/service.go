package customer

import (
	"context"
	"errors"
	"fmt"
	"isp-billing/internal/event"
	"isp-billing/internal/infrastructure/monitoring"
	"log/slog"
	"os"
	"time"
)

var _ DataSource = (*customerService)(nil)

type customerService struct {
	repo   Repository
	pub    event.EventPublisher
	logger *slog.Logger
}

// NewCustomerService returns the DataSource used by list controllers. It
// persists through repo and announces every successful mutation on pub.
func NewCustomerService(repo Repository, pub event.EventPublisher, logger *slog.Logger) DataSource {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if pub == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will be dropped")
		pub = event.NoopPublisher{}
	}

	return &customerService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID:     cust.ID,
		Name:           cust.Name,
		Email:          cust.Email,
		Phone:          cust.Phone,
		Package:        cust.Package,
		MonthlyFee:     cust.MonthlyFee,
		Status:         string(cust.Status),
		ConnectionDate: cust.FormatConnectionDate(),
		CreatedAt:      cust.CreatedAt,
		UpdatedAt:      cust.UpdatedAt,
	}
}

func (s *customerService) FetchAll(ctx context.Context) ([]Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to fetch all customers")

	records, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error fetching customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}

	customers := make([]Customer, 0, len(records))
	for _, c := range records {
		if c != nil {
			customers = append(customers, *c)
		}
	}

	s.logger.InfoContext(ctx, "Successfully fetched customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) Create(ctx context.Context, fields Fields) (string, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer", slog.String("name", fields.Name))

	created, err := s.repo.Create(ctx, fields)
	monitoring.RecordCustomerMutation("create", err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to create customer", slog.Any("error", err))
		return "", fmt.Errorf("failed to save new customer: %w", err)
	}

	log := s.logger.With(slog.String("customerID", created.ID))
	createdEvent := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(created),
	}
	if pubErr := s.pub.PublishCustomerCreated(ctx, createdEvent); pubErr != nil {
		log.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	log.InfoContext(ctx, "Successfully created new customer")
	return created.ID, nil
}

func (s *customerService) Update(ctx context.Context, customerID string, fields Fields) error {
	log := s.logger.With(slog.String("customerID", customerID))
	log.InfoContext(ctx, "Attempting to update customer")

	updated, err := s.repo.Update(ctx, customerID, fields)
	monitoring.RecordCustomerMutation("update", err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WarnContext(ctx, "Customer not found by repository for update")
			return err
		}
		log.ErrorContext(ctx, "Repository failed to update customer", slog.Any("error", err))
		return fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}

	updatedEvent := event.CustomerUpdatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(updated),
	}
	if pubErr := s.pub.PublishCustomerUpdated(ctx, updatedEvent); pubErr != nil {
		log.ErrorContext(ctx, "Customer updated, but FAILED to publish update event", slog.Any("error", pubErr))
	}

	log.InfoContext(ctx, "Successfully updated customer")
	return nil
}

func (s *customerService) Delete(ctx context.Context, customerID string) error {
	log := s.logger.With(slog.String("customerID", customerID))
	log.InfoContext(ctx, "Attempting to delete customer")

	err := s.repo.Delete(ctx, customerID)
	monitoring.RecordCustomerMutation("delete", err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WarnContext(ctx, "Customer not found by repository for delete")
			return err
		}
		log.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}

	deletedEvent := event.CustomerDeletedEvent{
		Timestamp:  time.Now(),
		CustomerID: customerID,
	}
	if pubErr := s.pub.PublishCustomerDeleted(ctx, deletedEvent); pubErr != nil {
		log.ErrorContext(ctx, "Customer deleted, but FAILED to publish delete event", slog.Any("error", pubErr))
	}

	log.InfoContext(ctx, "Successfully deleted customer")
	return nil
}
