package mocks

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockLevelRewardRepository is a mock type for the LevelRewardRepository type
type MockLevelRewardRepository struct {
	mock.Mock
}

// GetLevelRewardByLevel provides a mock function with given fields: ctx, level
func (_m *MockLevelRewardRepository) GetLevelRewardByLevel(ctx context.Context, level int) (*models.LevelReward, error) {
	ret := _m.Called(ctx, level)

	var r0 *models.LevelReward
	if rf, ok := ret.Get(0).(func(context.Context, int) *models.LevelReward); ok {
		r0 = rf(ctx, level)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.LevelReward)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, level)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetAllLevelRewards provides a mock function with given fields: ctx
func (_m *MockLevelRewardRepository) GetAllLevelRewards(ctx context.Context) ([]models.LevelReward, error) {
	ret := _m.Called(ctx)

	var r0 []models.LevelReward
	if rf, ok := ret.Get(0).(func(context.Context) []models.LevelReward); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.LevelReward)
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

// UpsertLevelRewardTx provides a mock function with given fields: ctx, tx, reward
func (_m *MockLevelRewardRepository) UpsertLevelRewardTx(ctx context.Context, tx pgx.Tx, reward *models.LevelReward) (bool, error) {
	ret := _m.Called(ctx, tx, reward)

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, pgx.Tx, *models.LevelReward) bool); ok {
		r0 = rf(ctx, tx, reward)
	} else {
		r0 = ret.Get(0).(bool)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, pgx.Tx, *models.LevelReward) error); ok {
		r1 = rf(ctx, tx, reward)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
