package customer

import (
	"context"
	"isp-billing/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) FindAll(ctx context.Context) ([]*Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*Customer
	if rf, ok := ret.Get(0).(func(context.Context) []*Customer); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) Create(ctx context.Context, fields Fields) (*Customer, error) {
	ret := _m.Called(ctx, fields)

	var r0 *Customer
	if rf, ok := ret.Get(0).(func(context.Context, Fields) *Customer); ok {
		r0 = rf(ctx, fields)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, Fields) error); ok {
		r1 = rf(ctx, fields)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) Update(ctx context.Context, customerID string, fields Fields) (*Customer, error) {
	ret := _m.Called(ctx, customerID, fields)

	var r0 *Customer
	if rf, ok := ret.Get(0).(func(context.Context, string, Fields) *Customer); ok {
		r0 = rf(ctx, customerID, fields)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, Fields) error); ok {
		r1 = rf(ctx, customerID, fields)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) Delete(ctx context.Context, customerID string) error {
	ret := _m.Called(ctx, customerID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, customerID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

var _ Repository = (*MockCustomerRepository)(nil)

type MockDataSource struct {
	mock.Mock
}

func (_m *MockDataSource) FetchAll(ctx context.Context) ([]Customer, error) {
	ret := _m.Called(ctx)

	var r0 []Customer
	if rf, ok := ret.Get(0).(func(context.Context) []Customer); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockDataSource) Create(ctx context.Context, fields Fields) (string, error) {
	ret := _m.Called(ctx, fields)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, Fields) string); ok {
		r0 = rf(ctx, fields)
	} else {
		r0 = ret.String(0)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, Fields) error); ok {
		r1 = rf(ctx, fields)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockDataSource) Update(ctx context.Context, customerID string, fields Fields) error {
	ret := _m.Called(ctx, customerID, fields)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, Fields) error); ok {
		r0 = rf(ctx, customerID, fields)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockDataSource) Delete(ctx context.Context, customerID string) error {
	ret := _m.Called(ctx, customerID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, customerID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

var _ DataSource = (*MockDataSource)(nil)

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, evt event.CustomerCreatedEvent) error {
	return _m.Called(ctx, evt).Error(0)
}

func (_m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, evt event.CustomerUpdatedEvent) error {
	return _m.Called(ctx, evt).Error(0)
}

func (_m *MockEventPublisher) PublishCustomerDeleted(ctx context.Context, evt event.CustomerDeletedEvent) error {
	return _m.Called(ctx, evt).Error(0)
}

var _ event.EventPublisher = (*MockEventPublisher)(nil)
