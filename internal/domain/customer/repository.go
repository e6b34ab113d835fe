package customer

import (
	"context"
	"errors"
	"fmt"
	"isp-billing/internal/pkg/apperrors"
)

var (
	ErrNotFound = fmt.Errorf("customer %w", apperrors.ErrNotFound)

	ErrDeleteNotConfirmed = errors.New("customer deletion was not confirmed")
)

// Repository is the durable store of customer records.
type Repository interface {
	FindAll(ctx context.Context) ([]*Customer, error)

	Create(ctx context.Context, fields Fields) (*Customer, error)

	Update(ctx context.Context, customerID string, fields Fields) (*Customer, error)

	Delete(ctx context.Context, customerID string) error
}

// DataSource is everything the list controller needs from the backend.
type DataSource interface {
	FetchAll(ctx context.Context) ([]Customer, error)
	Create(ctx context.Context, fields Fields) (string, error)
	Update(ctx context.Context, customerID string, fields Fields) error
	Delete(ctx context.Context, customerID string) error
}

// RenderSink receives the outcome of every render.
type RenderSink interface {
	RenderPage(records []Customer, page, pageCount int)
	RenderEmpty(page, pageCount int)
	RenderError(err error)
}
