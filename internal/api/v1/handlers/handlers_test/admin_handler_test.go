package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/questcamp/quest-platform-be/internal/api/v1/handlers"
	"github.com/questcamp/quest-platform-be/internal/middleware"
	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/questcamp/quest-platform-be/internal/scheduler"
	serviceMocks "github.com/questcamp/quest-platform-be/internal/service/mocks"
	"github.com/questcamp/quest-platform-be/internal/utils/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAdminHandler_RunSafetyCheck(t *testing.T) {
	app := fiber.New()
	mockProgressService := new(serviceMocks.MockProgressService)
	mockProgressService.On("RunSafetyMeterCheck", mock.Anything).Return(&models.SafetyCheckResult{
		UsersChecked: 10, UsersDegraded: 3,
	}, nil)

	adminHandler := &handlers.AdminHandler{
		ProgressService: mockProgressService,
		Scheduler:       scheduler.NewSafetyCheckScheduler(mockProgressService),
		Validate:        validator.New(),
	}
	app.Use(test_utils.MockJWTMiddleware("admin-1", "Admin"))
	app.Post("/api/v1/admin/safety-check/run", adminHandler.RunSafetyCheck)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/safety-check/run", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(10), data["users_checked"])
	assert.Equal(t, float64(3), data["users_degraded"])
}

func TestAdminHandler_GetSchedulerStatus(t *testing.T) {
	app := fiber.New()
	safetyScheduler := scheduler.NewSafetyCheckScheduler(new(serviceMocks.MockProgressService))
	safetyScheduler.Start()
	defer safetyScheduler.Stop()

	adminHandler := &handlers.AdminHandler{
		Scheduler: safetyScheduler,
		Validate:  validator.New(),
	}
	app.Use(test_utils.MockJWTMiddleware("admin-1", "Admin"))
	app.Get("/api/v1/admin/scheduler/status", adminHandler.GetSchedulerStatus)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/scheduler/status", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["running"])
}

func TestAdminHandler_InitializeLevelRewards(t *testing.T) {
	app := fiber.New()
	mockProgressService := new(serviceMocks.MockProgressService)
	mockProgressService.On("InitializeLevelRewards", mock.Anything).Return(5, nil)

	adminHandler := &handlers.AdminHandler{
		ProgressService: mockProgressService,
		Validate:        validator.New(),
	}
	app.Use(test_utils.MockJWTMiddleware("admin-1", "Admin"))
	app.Post("/api/v1/admin/level-rewards/initialize", adminHandler.InitializeLevelRewards)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/level-rewards/initialize", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["created"])
}

func TestAdminHandler_StoreParticipation(t *testing.T) {
	tests := []struct {
		name           string
		input          models.StoreParticipationInput
		setupMock      func(m *serviceMocks.MockQuestService)
		expectedStatus int
	}{
		{
			name: "Success",
			input: models.StoreParticipationInput{
				UserID:  "user-1",
				Entries: []models.ParticipationEntry{{TaskID: "task-a", Status: models.ParticipationValid, XP: 20}},
			},
			setupMock: func(m *serviceMocks.MockQuestService) {
				m.On("StoreParticipation", mock.Anything, "ev1", mock.AnythingOfType("*models.StoreParticipationInput")).
					Return(&models.UserTaskParticipation{ID: 1, UserID: "user-1", EventID: "ev1", CompletedTasksCount: 1}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Empty entries fail validation",
			input:          models.StoreParticipationInput{UserID: "user-1"},
			setupMock:      func(m *serviceMocks.MockQuestService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			mockQuestService := new(serviceMocks.MockQuestService)
			tc.setupMock(mockQuestService)

			adminHandler := &handlers.AdminHandler{
				QuestService: mockQuestService,
				Validate:     validator.New(),
			}
			app.Use(test_utils.MockJWTMiddleware("admin-1", "Admin"))
			app.Post("/api/v1/admin/participation/:eventId", adminHandler.StoreParticipation)

			bodyBytes, _ := json.Marshal(tc.input)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/participation/ev1", bytes.NewReader(bodyBytes))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, -1)
			assert.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAdminHandler_SyncParticipations(t *testing.T) {
	app := fiber.New()
	mockQuestService := new(serviceMocks.MockQuestService)
	mockQuestService.On("SyncParticipations", mock.Anything, "ev1", mock.AnythingOfType("*models.SyncParticipationInput")).
		Return(&models.SyncResult{Created: 2, Updated: 1, Errors: []string{"user user-bad: insert failed"}}, nil)

	adminHandler := &handlers.AdminHandler{
		QuestService: mockQuestService,
		Validate:     validator.New(),
	}
	app.Use(test_utils.MockJWTMiddleware("admin-1", "Admin"))
	app.Post("/api/v1/admin/participation/:eventId/sync", adminHandler.SyncParticipations)

	input := models.SyncParticipationInput{Records: []models.StoreParticipationInput{
		{UserID: "user-1", Entries: []models.ParticipationEntry{{TaskID: "task-a", Status: models.ParticipationValid}}},
	}}
	bodyBytes, _ := json.Marshal(input)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/participation/ev1/sync", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["created"])
	assert.Equal(t, float64(1), data["updated"])
	assert.Len(t, data["errors"].([]interface{}), 1)
}

func TestAdminHandler_RebuildEventPrerequisites(t *testing.T) {
	app := fiber.New()
	mockPrereqService := new(serviceMocks.MockPrerequisiteService)
	mockPrereqService.On("RebuildEventPrerequisites", mock.Anything, "ev1").Return(nil)

	adminHandler := &handlers.AdminHandler{
		PrereqService: mockPrereqService,
		Validate:      validator.New(),
	}
	app.Use(test_utils.MockJWTMiddleware("admin-1", "Admin"))
	app.Post("/api/v1/admin/quests/:eventId/rebuild-prerequisites", adminHandler.RebuildEventPrerequisites)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/quests/ev1/rebuild-prerequisites", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockPrereqService.AssertExpectations(t)
}

func TestAdminRoutes_RejectNonAdmin(t *testing.T) {
	app := fiber.New()
	mockProgressService := new(serviceMocks.MockProgressService)

	adminHandler := &handlers.AdminHandler{
		ProgressService: mockProgressService,
		Validate:        validator.New(),
	}
	app.Use(test_utils.MockJWTMiddleware("user-1", "Participant"))
	app.Post("/api/v1/admin/level-rewards/initialize", middleware.Authorize("Admin"), adminHandler.InitializeLevelRewards)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/level-rewards/initialize", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	mockProgressService.AssertNotCalled(t, "InitializeLevelRewards", mock.Anything)
}
