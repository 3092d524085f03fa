package mocks

import (
	"context"

	model "github.com/amakhet/soil-api/internal/model"
	provider "github.com/amakhet/soil-api/internal/provider"
	mock "github.com/stretchr/testify/mock"
)

// MockProvider is a mock type for the Provider interface.
type MockProvider struct {
	mock.Mock
}

// Measure provides a mock function with given fields: ctx, loc
func (_m *MockProvider) Measure(ctx context.Context, loc model.Location) (*model.Measurements, error) {
	ret := _m.Called(ctx, loc)

	if len(ret) == 0 {
		panic("no return value specified for Measure")
	}

	var r0 *model.Measurements
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.Location) (*model.Measurements, error)); ok {
		return rf(ctx, loc)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.Location) *model.Measurements); ok {
		r0 = rf(ctx, loc)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.Measurements)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.Location) error); ok {
		r1 = rf(ctx, loc)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Variant provides a mock function with given fields:
func (_m *MockProvider) Variant() provider.Variant {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Variant")
	}

	var r0 provider.Variant
	if rf, ok := ret.Get(0).(func() provider.Variant); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(provider.Variant)
	}

	return r0
}

// NewMockProvider creates a new instance of MockProvider.
func NewMockProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProvider {
	mock := &MockProvider{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
