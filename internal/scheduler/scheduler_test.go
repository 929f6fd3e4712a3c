package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/questcamp/quest-platform-be/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSchedulerStartStop(t *testing.T) {
	s := NewSafetyCheckScheduler(new(mocks.MockProgressService))

	assert.False(t, s.Status().Running)

	s.Start()
	status := s.Status()
	assert.True(t, status.Running)
	assert.NotNil(t, status.NextRun)
	assert.True(t, status.NextRun.After(time.Now().UTC()))

	// Second Start must not spawn a second loop or reset state.
	s.Start()
	assert.True(t, s.Status().Running)

	s.Stop()
	status = s.Status()
	assert.False(t, status.Running)
	assert.Nil(t, status.NextRun)

	// Stop is safe to call again.
	s.Stop()
	assert.False(t, s.Status().Running)
}

func TestSchedulerRunNow(t *testing.T) {
	expected := &models.SafetyCheckResult{UsersChecked: 4, UsersDegraded: 1}

	mockService := new(mocks.MockProgressService)
	mockService.On("RunSafetyMeterCheck", mock.Anything).Return(expected, nil)

	s := NewSafetyCheckScheduler(mockService)
	result, err := s.RunNow(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	status := s.Status()
	assert.NotNil(t, status.LastRun)
	assert.Equal(t, expected, status.LastResult)
	assert.Empty(t, status.LastError)
}

func TestSchedulerRunNow_Error(t *testing.T) {
	mockService := new(mocks.MockProgressService)
	mockService.On("RunSafetyMeterCheck", mock.Anything).Return(nil, errors.New("database unavailable"))

	s := NewSafetyCheckScheduler(mockService)
	result, err := s.RunNow(context.Background())

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "database unavailable", s.Status().LastError)
}

func TestSchedulerRunNow_ClearsPreviousError(t *testing.T) {
	mockService := new(mocks.MockProgressService)
	mockService.On("RunSafetyMeterCheck", mock.Anything).Return(nil, errors.New("first failure")).Once()
	mockService.On("RunSafetyMeterCheck", mock.Anything).Return(&models.SafetyCheckResult{}, nil).Once()

	s := NewSafetyCheckScheduler(mockService)

	_, err := s.RunNow(context.Background())
	assert.Error(t, err)
	assert.NotEmpty(t, s.Status().LastError)

	_, err = s.RunNow(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, s.Status().LastError)
}

func TestNextMidnightUTC(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "Midday rolls to the next day",
			now:      time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC),
			expected: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Exactly midnight schedules the following midnight",
			now:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Month boundary",
			now:      time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC),
			expected: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, nextMidnightUTC(tc.now))
		})
	}
}
