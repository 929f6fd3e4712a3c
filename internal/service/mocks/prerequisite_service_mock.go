package mocks

import (
	"context"
	"time"

	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockPrerequisiteService struct {
	mock.Mock
}

func (m *MockPrerequisiteService) RebuildEventPrerequisites(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockPrerequisiteService) SetCustomPrerequisites(ctx context.Context, input *models.SetCustomPrerequisitesInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockPrerequisiteService) GetQuestPrerequisites(ctx context.Context, questID int) (*models.QuestPrerequisites, error) {
	args := m.Called(ctx, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuestPrerequisites), args.Error(1)
}

func (m *MockPrerequisiteService) ApplyCrossCampaignRules(ctx context.Context, input *models.CrossCampaignRulesInput) (int, error) {
	args := m.Called(ctx, input)
	return args.Int(0), args.Error(1)
}

func (m *MockPrerequisiteService) IsQuestLocked(quest *models.Quest, completed map[int]bool, now time.Time) bool {
	args := m.Called(quest, completed, now)
	return args.Bool(0)
}
