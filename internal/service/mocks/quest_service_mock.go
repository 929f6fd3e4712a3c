package mocks

import (
	"context"

	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockQuestService struct {
	mock.Mock
}

func (m *MockQuestService) GetTentStatuses(ctx context.Context, eventID, userID string) ([]models.TentStatus, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TentStatus), args.Error(1)
}

func (m *MockQuestService) GetQuestStatuses(ctx context.Context, eventID, userID string) ([]models.QuestStatus, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuestStatus), args.Error(1)
}

func (m *MockQuestService) GetUserParticipations(ctx context.Context, userID string, page, limit int) ([]models.UserTaskParticipation, int, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.UserTaskParticipation), args.Int(1), args.Error(2)
}

func (m *MockQuestService) GetCompletedQuestCount(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestService) StoreParticipation(ctx context.Context, eventID string, input *models.StoreParticipationInput) (*models.UserTaskParticipation, error) {
	args := m.Called(ctx, eventID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserTaskParticipation), args.Error(1)
}

func (m *MockQuestService) SyncParticipations(ctx context.Context, eventID string, input *models.SyncParticipationInput) (*models.SyncResult, error) {
	args := m.Called(ctx, eventID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SyncResult), args.Error(1)
}
