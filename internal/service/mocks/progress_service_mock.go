package mocks

import (
	"context"

	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) ProcessQuestCompletion(ctx context.Context, input *models.QuestCompletionInput) (*models.XPAwardResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.XPAwardResult), args.Error(1)
}

func (m *MockProgressService) UpdateUserActivity(ctx context.Context, input *models.UserActivityInput) (*models.UserProgress, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockProgressService) CheckMeterVisibility(ctx context.Context, userID string) (*models.MeterVisibilityResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MeterVisibilityResult), args.Error(1)
}

func (m *MockProgressService) GetUserProgress(ctx context.Context, userID string) (*models.UserProgressView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgressView), args.Error(1)
}

func (m *MockProgressService) RunSafetyMeterCheck(ctx context.Context) (*models.SafetyCheckResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SafetyCheckResult), args.Error(1)
}

func (m *MockProgressService) InitializeLevelRewards(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
