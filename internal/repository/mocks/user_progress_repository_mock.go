package mocks

import (
	"context"
	"time"

	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockUserProgressRepository is a mock type for the UserProgressRepository type
type MockUserProgressRepository struct {
	mock.Mock
}

// CreateUserProgress provides a mock function with given fields: ctx, progress
func (_m *MockUserProgressRepository) CreateUserProgress(ctx context.Context, progress *models.UserProgress) (int, error) {
	ret := _m.Called(ctx, progress)

	var r0 int
	if rf, ok := ret.Get(0).(func(context.Context, *models.UserProgress) int); ok {
		r0 = rf(ctx, progress)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, *models.UserProgress) error); ok {
		r1 = rf(ctx, progress)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetUserProgressByUserID provides a mock function with given fields: ctx, userID
func (_m *MockUserProgressRepository) GetUserProgressByUserID(ctx context.Context, userID string) (*models.UserProgress, error) {
	ret := _m.Called(ctx, userID)

	var r0 *models.UserProgress
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.UserProgress); ok {
		r0 = rf(ctx, userID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.UserProgress)
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

// UpdateUserProgress provides a mock function with given fields: ctx, progress
func (_m *MockUserProgressRepository) UpdateUserProgress(ctx context.Context, progress *models.UserProgress) error {
	ret := _m.Called(ctx, progress)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.UserProgress) error); ok {
		r0 = rf(ctx, progress)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetStaleSafetyUsers provides a mock function with given fields: ctx, cutoff
func (_m *MockUserProgressRepository) GetStaleSafetyUsers(ctx context.Context, cutoff time.Time) ([]models.UserProgress, error) {
	ret := _m.Called(ctx, cutoff)

	var r0 []models.UserProgress
	if rf, ok := ret.Get(0).(func(context.Context, time.Time) []models.UserProgress); ok {
		r0 = rf(ctx, cutoff)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.UserProgress)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, time.Time) error); ok {
		r1 = rf(ctx, cutoff)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// BulkTouchSafetyCheck provides a mock function with given fields: ctx, userIDs, checkedAt
func (_m *MockUserProgressRepository) BulkTouchSafetyCheck(ctx context.Context, userIDs []string, checkedAt time.Time) error {
	ret := _m.Called(ctx, userIDs, checkedAt)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []string, time.Time) error); ok {
		r0 = rf(ctx, userIDs, checkedAt)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
