package mocks

import (
	"context"

	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockParticipationRepository is a mock type for the ParticipationRepository type
type MockParticipationRepository struct {
	mock.Mock
}

// CreateParticipation provides a mock function with given fields: ctx, p
func (_m *MockParticipationRepository) CreateParticipation(ctx context.Context, p *models.UserTaskParticipation) (int, error) {
	ret := _m.Called(ctx, p)

	var r0 int
	if rf, ok := ret.Get(0).(func(context.Context, *models.UserTaskParticipation) int); ok {
		r0 = rf(ctx, p)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, *models.UserTaskParticipation) error); ok {
		r1 = rf(ctx, p)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetParticipationByUserAndEvent provides a mock function with given fields: ctx, userID, eventID
func (_m *MockParticipationRepository) GetParticipationByUserAndEvent(ctx context.Context, userID string, eventID string) (*models.UserTaskParticipation, error) {
	ret := _m.Called(ctx, userID, eventID)

	var r0 *models.UserTaskParticipation
	if rf, ok := ret.Get(0).(func(context.Context, string, string) *models.UserTaskParticipation); ok {
		r0 = rf(ctx, userID, eventID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.UserTaskParticipation)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, string) error); ok {
		r1 = rf(ctx, userID, eventID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetParticipationsByUserID provides a mock function with given fields: ctx, userID, page, limit
func (_m *MockParticipationRepository) GetParticipationsByUserID(ctx context.Context, userID string, page int, limit int) ([]models.UserTaskParticipation, int, error) {
	ret := _m.Called(ctx, userID, page, limit)

	var r0 []models.UserTaskParticipation
	if rf, ok := ret.Get(0).(func(context.Context, string, int, int) []models.UserTaskParticipation); ok {
		r0 = rf(ctx, userID, page, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.UserTaskParticipation)
		}
	}

	var r1 int
	if rf, ok := ret.Get(1).(func(context.Context, string, int, int) int); ok {
		r1 = rf(ctx, userID, page, limit)
	} else {
		r1 = ret.Get(1).(int)
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(context.Context, string, int, int) error); ok {
		r2 = rf(ctx, userID, page, limit)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// GetAllParticipationsByUserID provides a mock function with given fields: ctx, userID
func (_m *MockParticipationRepository) GetAllParticipationsByUserID(ctx context.Context, userID string) ([]models.UserTaskParticipation, error) {
	ret := _m.Called(ctx, userID)

	var r0 []models.UserTaskParticipation
	if rf, ok := ret.Get(0).(func(context.Context, string) []models.UserTaskParticipation); ok {
		r0 = rf(ctx, userID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.UserTaskParticipation)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, userID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateParticipation provides a mock function with given fields: ctx, p
func (_m *MockParticipationRepository) UpdateParticipation(ctx context.Context, p *models.UserTaskParticipation) error {
	ret := _m.Called(ctx, p)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.UserTaskParticipation) error); ok {
		r0 = rf(ctx, p)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
