package customer_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"isp-billing/internal/domain/customer"
	"isp-billing/internal/event"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupServiceTest() (*customer.MockCustomerRepository, *customer.MockEventPublisher, customer.DataSource) {
	mockRepo := new(customer.MockCustomerRepository)
	mockPub := new(customer.MockEventPublisher)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return mockRepo, mockPub, customer.NewCustomerService(mockRepo, mockPub, logger)
}

func testFields() customer.Fields {
	return customer.Fields{
		Name:           "Nusrat Jahan",
		Email:          "nusrat@example.com",
		Phone:          "01700000000",
		Package:        "Premium 50 Mbps",
		MonthlyFee:     2000,
		ConnectionDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:         customer.StatusActive,
	}
}

func TestCustomerService_FetchAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, _, service := setupServiceTest()
		mockRepo.On("FindAll", ctx).Return([]*customer.Customer{{ID: "a"}, nil, {ID: "b"}}, nil).Once()

		records, err := service.FetchAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids(records))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo, _, service := setupServiceTest()
		repoErr := errors.New("connection refused")
		mockRepo.On("FindAll", ctx).Return(nil, repoErr).Once()

		records, err := service.FetchAll(ctx)

		assert.Nil(t, records)
		assert.ErrorIs(t, err, repoErr)
		mockRepo.AssertExpectations(t)
	})
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	fields := testFields()

	t.Run("Success publishes event", func(t *testing.T) {
		mockRepo, mockPub, service := setupServiceTest()
		created := &customer.Customer{ID: "new-id", Name: fields.Name, MonthlyFee: fields.MonthlyFee}
		mockRepo.On("Create", ctx, fields).Return(created, nil).Once()
		mockPub.On("PublishCustomerCreated", ctx, mock.MatchedBy(func(e event.CustomerCreatedEvent) bool {
			return e.Payload.CustomerID == "new-id" && e.Payload.MonthlyFee == 2000
		})).Return(nil).Once()

		id, err := service.Create(ctx, fields)

		require.NoError(t, err)
		assert.Equal(t, "new-id", id)
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("Publish failure does not fail create", func(t *testing.T) {
		mockRepo, mockPub, service := setupServiceTest()
		mockRepo.On("Create", ctx, fields).Return(&customer.Customer{ID: "new-id"}, nil).Once()
		mockPub.On("PublishCustomerCreated", ctx, mock.Anything).Return(errors.New("broker down")).Once()

		id, err := service.Create(ctx, fields)

		require.NoError(t, err)
		assert.Equal(t, "new-id", id)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo, mockPub, service := setupServiceTest()
		repoErr := errors.New("insert failed")
		mockRepo.On("Create", ctx, fields).Return(nil, repoErr).Once()

		id, err := service.Create(ctx, fields)

		assert.Empty(t, id)
		assert.ErrorIs(t, err, repoErr)
		mockPub.AssertNotCalled(t, "PublishCustomerCreated", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	fields := testFields()

	t.Run("Success", func(t *testing.T) {
		mockRepo, mockPub, service := setupServiceTest()
		mockRepo.On("Update", ctx, "c-1", fields).Return(&customer.Customer{ID: "c-1"}, nil).Once()
		mockPub.On("PublishCustomerUpdated", ctx, mock.AnythingOfType("event.CustomerUpdatedEvent")).Return(nil).Once()

		err := service.Update(ctx, "c-1", fields)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("Not found is returned as is", func(t *testing.T) {
		mockRepo, _, service := setupServiceTest()
		mockRepo.On("Update", ctx, "missing", fields).Return(nil, customer.ErrNotFound).Once()

		err := service.Update(ctx, "missing", fields)

		assert.Equal(t, customer.ErrNotFound, err)
	})

	t.Run("Repository error is wrapped", func(t *testing.T) {
		mockRepo, _, service := setupServiceTest()
		repoErr := errors.New("timeout")
		mockRepo.On("Update", ctx, "c-1", fields).Return(nil, repoErr).Once()

		err := service.Update(ctx, "c-1", fields)

		assert.ErrorIs(t, err, repoErr)
		assert.Contains(t, err.Error(), "failed to update customer c-1")
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, mockPub, service := setupServiceTest()
		mockRepo.On("Delete", ctx, "c-1").Return(nil).Once()
		mockPub.On("PublishCustomerDeleted", ctx, mock.MatchedBy(func(e event.CustomerDeletedEvent) bool {
			return e.CustomerID == "c-1"
		})).Return(nil).Once()

		require.NoError(t, service.Delete(ctx, "c-1"))
		mockPub.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo, _, service := setupServiceTest()
		mockRepo.On("Delete", ctx, "missing").Return(fmt.Errorf("%w: missing", customer.ErrNotFound)).Once()

		err := service.Delete(ctx, "missing")

		assert.ErrorIs(t, err, customer.ErrNotFound)
	})
}

func TestNewCustomerService_PanicsWithoutRepository(t *testing.T) {
	assert.Panics(t, func() { customer.NewCustomerService(nil, nil, nil) })
}
