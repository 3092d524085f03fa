// Package mocks provides test doubles for the provider interfaces.
package mocks

import (
	"context"

	geocompute "github.com/amakhet/soil-api/pkg/geocompute"
	mock "github.com/stretchr/testify/mock"
)

// MockAggregator is a mock type for the Aggregator interface.
type MockAggregator struct {
	mock.Mock
}

// MeanOver provides a mock function with given fields: ctx, req
func (_m *MockAggregator) MeanOver(ctx context.Context, req geocompute.ReduceRequest) (*float64, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for MeanOver")
	}

	var r0 *float64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, geocompute.ReduceRequest) (*float64, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, geocompute.ReduceRequest) *float64); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*float64)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, geocompute.ReduceRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockAggregator creates a new instance of MockAggregator.
func NewMockAggregator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAggregator {
	mock := &MockAggregator{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
