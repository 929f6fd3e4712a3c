package mocks

import (
	"context"

	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockTentRepository is a mock type for the TentRepository type
type MockTentRepository struct {
	mock.Mock
}

// CreateTent provides a mock function with given fields: ctx, tent
func (_m *MockTentRepository) CreateTent(ctx context.Context, tent *models.Tent) (int, error) {
	ret := _m.Called(ctx, tent)

	var r0 int
	if rf, ok := ret.Get(0).(func(context.Context, *models.Tent) int); ok {
		r0 = rf(ctx, tent)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, *models.Tent) error); ok {
		r1 = rf(ctx, tent)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetTentByID provides a mock function with given fields: ctx, id
func (_m *MockTentRepository) GetTentByID(ctx context.Context, id int) (*models.Tent, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Tent
	if rf, ok := ret.Get(0).(func(context.Context, int) *models.Tent); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Tent)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetTentsByEventID provides a mock function with given fields: ctx, eventID
func (_m *MockTentRepository) GetTentsByEventID(ctx context.Context, eventID string) ([]models.Tent, error) {
	ret := _m.Called(ctx, eventID)

	var r0 []models.Tent
	if rf, ok := ret.Get(0).(func(context.Context, string) []models.Tent); ok {
		r0 = rf(ctx, eventID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.Tent)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, eventID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetAllTents provides a mock function with given fields: ctx
func (_m *MockTentRepository) GetAllTents(ctx context.Context) ([]models.Tent, error) {
	ret := _m.Called(ctx)

	var r0 []models.Tent
	if rf, ok := ret.Get(0).(func(context.Context) []models.Tent); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.Tent)
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
