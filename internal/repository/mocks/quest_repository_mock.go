package mocks

import (
	"context"

	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockQuestRepository is a mock type for the QuestRepository type
type MockQuestRepository struct {
	mock.Mock
}

// CreateQuest provides a mock function with given fields: ctx, quest
func (_m *MockQuestRepository) CreateQuest(ctx context.Context, quest *models.Quest) (int, error) {
	ret := _m.Called(ctx, quest)

	var r0 int
	if rf, ok := ret.Get(0).(func(context.Context, *models.Quest) int); ok {
		r0 = rf(ctx, quest)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, *models.Quest) error); ok {
		r1 = rf(ctx, quest)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetQuestByID provides a mock function with given fields: ctx, id
func (_m *MockQuestRepository) GetQuestByID(ctx context.Context, id int) (*models.Quest, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Quest
	if rf, ok := ret.Get(0).(func(context.Context, int) *models.Quest); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Quest)
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

// GetQuestsByEventID provides a mock function with given fields: ctx, eventID
func (_m *MockQuestRepository) GetQuestsByEventID(ctx context.Context, eventID string) ([]models.Quest, error) {
	ret := _m.Called(ctx, eventID)

	var r0 []models.Quest
	if rf, ok := ret.Get(0).(func(context.Context, string) []models.Quest); ok {
		r0 = rf(ctx, eventID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.Quest)
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

// GetQuestsByEventIDs provides a mock function with given fields: ctx, eventIDs
func (_m *MockQuestRepository) GetQuestsByEventIDs(ctx context.Context, eventIDs []string) ([]models.Quest, error) {
	ret := _m.Called(ctx, eventIDs)

	var r0 []models.Quest
	if rf, ok := ret.Get(0).(func(context.Context, []string) []models.Quest); ok {
		r0 = rf(ctx, eventIDs)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.Quest)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, []string) error); ok {
		r1 = rf(ctx, eventIDs)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetQuestsByTentID provides a mock function with given fields: ctx, tentID
func (_m *MockQuestRepository) GetQuestsByTentID(ctx context.Context, tentID int) ([]models.Quest, error) {
	ret := _m.Called(ctx, tentID)

	var r0 []models.Quest
	if rf, ok := ret.Get(0).(func(context.Context, int) []models.Quest); ok {
		r0 = rf(ctx, tentID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.Quest)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, tentID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateQuestPrerequisites provides a mock function with given fields: ctx, questID, dynamic, condition
func (_m *MockQuestRepository) UpdateQuestPrerequisites(ctx context.Context, questID int, dynamic []int, condition models.PrerequisiteCondition) error {
	ret := _m.Called(ctx, questID, dynamic, condition)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int, []int, models.PrerequisiteCondition) error); ok {
		r0 = rf(ctx, questID, dynamic, condition)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// UpdateCustomPrerequisites provides a mock function with given fields: ctx, questID, custom
func (_m *MockQuestRepository) UpdateCustomPrerequisites(ctx context.Context, questID int, custom []int) error {
	ret := _m.Called(ctx, questID, custom)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int, []int) error); ok {
		r0 = rf(ctx, questID, custom)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// IncrementParticipantCount provides a mock function with given fields: ctx, questID
func (_m *MockQuestRepository) IncrementParticipantCount(ctx context.Context, questID int) error {
	ret := _m.Called(ctx, questID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int) error); ok {
		r0 = rf(ctx, questID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
