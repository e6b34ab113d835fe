package customer_test

import (
	"context"
	"errors"
	"isp-billing/internal/domain/customer"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSession_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads lazily on first use", func(t *testing.T) {
		source := new(customer.MockDataSource)
		source.On("FetchAll", ctx).Return(numbered(12), nil).Once()
		sessions := customer.NewSessions(source, customer.ListOptions{PageSize: 10}, nil)

		view, err := sessions.Get("admin-1").Do(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, customer.ViewPage, view.State)
		assert.Len(t, view.Records, 10)
		assert.Equal(t, 2, view.PageCount)

		view, err = sessions.Get("admin-1").Do(ctx, func(c *customer.ListController) error {
			c.NextPage()
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, view.Page)
		source.AssertNumberOfCalls(t, "FetchAll", 1)
	})

	t.Run("Retries the load until it succeeds", func(t *testing.T) {
		source := new(customer.MockDataSource)
		source.On("FetchAll", ctx).Return(nil, errors.New("unreachable")).Once()
		source.On("FetchAll", ctx).Return(numbered(1), nil).Once()
		sessions := customer.NewSessions(source, customer.ListOptions{}, nil)

		view, _ := sessions.Get("admin-1").Do(ctx, nil)
		assert.Equal(t, customer.ViewError, view.State)
		assert.EqualError(t, view.Err, "unreachable")

		view, _ = sessions.Get("admin-1").Do(ctx, nil)
		assert.Equal(t, customer.ViewPage, view.State)
		source.AssertExpectations(t)
	})

	t.Run("Returns the callback error", func(t *testing.T) {
		source := new(customer.MockDataSource)
		source.On("FetchAll", ctx).Return(numbered(1), nil).Once()
		sessions := customer.NewSessions(source, customer.ListOptions{}, nil)

		_, err := sessions.Get("admin-1").Do(ctx, func(c *customer.ListController) error {
			return c.Delete(ctx, "c01")
		})

		assert.ErrorIs(t, err, customer.ErrDeleteNotConfirmed)
	})

	t.Run("Serializes concurrent callers", func(t *testing.T) {
		source := new(customer.MockDataSource)
		source.On("FetchAll", ctx).Return(numbered(100), nil).Once()
		sessions := customer.NewSessions(source, customer.ListOptions{PageSize: 10}, nil)

		var wg sync.WaitGroup
		for range 9 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sessions.Get("admin-1").Do(ctx, func(c *customer.ListController) error {
					c.NextPage()
					return nil
				})
			}()
		}
		wg.Wait()

		view, _ := sessions.Get("admin-1").Do(ctx, nil)
		assert.Equal(t, 10, view.Page)
	})
}

func TestSessions_Isolation(t *testing.T) {
	ctx := context.Background()
	source := new(customer.MockDataSource)
	source.On("FetchAll", ctx).Return(func(context.Context) []customer.Customer { return numbered(30) }, nil)
	sessions := customer.NewSessions(source, customer.ListOptions{}, nil)

	sessions.Get("a").Do(ctx, func(c *customer.ListController) error {
		c.GoToPage(3)
		return nil
	})
	view, _ := sessions.Get("b").Do(ctx, nil)

	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 2, sessions.Len())

	sessions.Drop("a")
	sessions.Drop("missing")
	assert.Equal(t, 1, sessions.Len())
}

func TestSessions_Sweep(t *testing.T) {
	source := new(customer.MockDataSource)
	sessions := customer.NewSessions(source, customer.ListOptions{}, nil)

	sessions.Get("old")
	time.Sleep(20 * time.Millisecond)
	sessions.Get("fresh")

	closed := sessions.Sweep(10 * time.Millisecond)

	assert.Equal(t, 1, closed)
	assert.Equal(t, 1, sessions.Len())
	source.AssertNotCalled(t, "FetchAll", mock.Anything)
}
