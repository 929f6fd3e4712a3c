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
	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/questcamp/quest-platform-be/internal/repository/mocks"
	"github.com/questcamp/quest-platform-be/internal/service"
	serviceMocks "github.com/questcamp/quest-platform-be/internal/service/mocks"
	"github.com/questcamp/quest-platform-be/internal/utils/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func decodeResponse(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	err := json.NewDecoder(resp.Body).Decode(&body)
	assert.NoError(t, err)
	return body
}

func TestQuestHandler_GetTents(t *testing.T) {
	t.Run("Plain list without event filter", func(t *testing.T) {
		app := fiber.New()
		mockTentRepo := new(mocks.MockTentRepository)
		mockQuestService := new(serviceMocks.MockQuestService)
		mockTentRepo.On("GetAllTents", mock.Anything).Return([]models.Tent{
			{ID: 1, EventID: "ev1", TentType: models.TentTypeSocial, Name: "Social"},
		}, nil)

		questHandler := &handlers.QuestHandler{
			TentRepo:     mockTentRepo,
			QuestService: mockQuestService,
			Validate:     validator.New(),
		}
		app.Use(test_utils.MockJWTMiddleware("user-1", "Participant"))
		app.Get("/api/v1/tents", questHandler.GetTents)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tents", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeResponse(t, resp)
		assert.Equal(t, true, body["success"])
		mockQuestService.AssertNotCalled(t, "GetTentStatuses", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Statuses for one event use the caller identity", func(t *testing.T) {
		app := fiber.New()
		mockTentRepo := new(mocks.MockTentRepository)
		mockQuestService := new(serviceMocks.MockQuestService)
		mockQuestService.On("GetTentStatuses", mock.Anything, "ev1", "user-1").Return([]models.TentStatus{
			{Tent: models.Tent{ID: 1, TentType: models.TentTypeSocial}, IsLocked: false},
			{Tent: models.Tent{ID: 2, TentType: models.TentTypeEducational}, IsLocked: true},
		}, nil)

		questHandler := &handlers.QuestHandler{
			TentRepo:     mockTentRepo,
			QuestService: mockQuestService,
			Validate:     validator.New(),
		}
		app.Use(test_utils.MockJWTMiddleware("user-1", "Participant"))
		app.Get("/api/v1/tents", questHandler.GetTents)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tents?event_id=ev1", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockQuestService.AssertExpectations(t)
	})

	t.Run("Unknown event returns 404", func(t *testing.T) {
		app := fiber.New()
		mockQuestService := new(serviceMocks.MockQuestService)
		mockQuestService.On("GetTentStatuses", mock.Anything, "ghost", "user-1").Return(nil, service.ErrEventNotFound)

		questHandler := &handlers.QuestHandler{
			TentRepo:     new(mocks.MockTentRepository),
			QuestService: mockQuestService,
			Validate:     validator.New(),
		}
		app.Use(test_utils.MockJWTMiddleware("user-1", "Participant"))
		app.Get("/api/v1/tents", questHandler.GetTents)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tents?event_id=ghost", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestQuestHandler_GetEventQuests(t *testing.T) {
	app := fiber.New()
	mockQuestService := new(serviceMocks.MockQuestService)
	mockQuestService.On("GetQuestStatuses", mock.Anything, "ev1", "user-1").Return([]models.QuestStatus{
		{Quest: models.Quest{ID: 1, Name: "First", Order: 1}, IsCompleted: true, IsLocked: false},
		{Quest: models.Quest{ID: 2, Name: "Second", Order: 2}, IsCompleted: false, IsLocked: true},
	}, nil)

	questHandler := &handlers.QuestHandler{
		TentRepo:     new(mocks.MockTentRepository),
		QuestService: mockQuestService,
		Validate:     validator.New(),
	}
	app.Use(test_utils.MockJWTMiddleware("user-1", "Participant"))
	app.Get("/api/v1/quests/:eventId", questHandler.GetEventQuests)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quests/ev1", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	data := body["data"].([]interface{})
	assert.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, true, first["is_completed"])
	assert.Equal(t, false, first["is_locked"])
	mockQuestService.AssertExpectations(t)
}

func TestQuestHandler_GetQuestPrerequisites(t *testing.T) {
	tests := []struct {
		name           string
		questID        string
		setupMock      func(m *serviceMocks.MockPrerequisiteService)
		expectedStatus int
	}{
		{
			name:    "Success",
			questID: "7",
			setupMock: func(m *serviceMocks.MockPrerequisiteService) {
				m.On("GetQuestPrerequisites", mock.Anything, 7).Return(&models.QuestPrerequisites{
					QuestID: 7, Dynamic: []int{1, 2}, Custom: []int{}, Condition: models.ConditionAnd,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid quest ID",
			questID:        "abc",
			setupMock:      func(m *serviceMocks.MockPrerequisiteService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "Quest not found",
			questID: "99",
			setupMock: func(m *serviceMocks.MockPrerequisiteService) {
				m.On("GetQuestPrerequisites", mock.Anything, 99).Return(nil, service.ErrQuestNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			mockPrereqService := new(serviceMocks.MockPrerequisiteService)
			tc.setupMock(mockPrereqService)

			questHandler := &handlers.QuestHandler{
				TentRepo:      new(mocks.MockTentRepository),
				PrereqService: mockPrereqService,
				Validate:      validator.New(),
			}
			app.Use(test_utils.MockJWTMiddleware("user-1", "Participant"))
			app.Get("/api/v1/quests/:questId/prerequisites", questHandler.GetQuestPrerequisites)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/quests/"+tc.questID+"/prerequisites", nil)
			resp, err := app.Test(req, -1)
			assert.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestQuestHandler_SetCustomPrerequisites(t *testing.T) {
	tests := []struct {
		name           string
		input          models.SetCustomPrerequisitesInput
		setupMock      func(m *serviceMocks.MockPrerequisiteService, input *models.SetCustomPrerequisitesInput)
		expectedStatus int
	}{
		{
			name:  "Success",
			input: models.SetCustomPrerequisitesInput{QuestID: 1, PrerequisiteIDs: []int{2, 3}},
			setupMock: func(m *serviceMocks.MockPrerequisiteService, input *models.SetCustomPrerequisitesInput) {
				m.On("SetCustomPrerequisites", mock.Anything, mock.AnythingOfType("*models.SetCustomPrerequisitesInput")).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Validation failure on missing quest ID",
			input:          models.SetCustomPrerequisitesInput{PrerequisiteIDs: []int{2}},
			setupMock:      func(m *serviceMocks.MockPrerequisiteService, input *models.SetCustomPrerequisitesInput) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Cycle rejected with conflict",
			input: models.SetCustomPrerequisitesInput{QuestID: 1, PrerequisiteIDs: []int{2}},
			setupMock: func(m *serviceMocks.MockPrerequisiteService, input *models.SetCustomPrerequisitesInput) {
				m.On("SetCustomPrerequisites", mock.Anything, mock.AnythingOfType("*models.SetCustomPrerequisitesInput")).Return(service.ErrPrerequisiteCycle)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:  "Self reference rejected",
			input: models.SetCustomPrerequisitesInput{QuestID: 1, PrerequisiteIDs: []int{1}},
			setupMock: func(m *serviceMocks.MockPrerequisiteService, input *models.SetCustomPrerequisitesInput) {
				m.On("SetCustomPrerequisites", mock.Anything, mock.AnythingOfType("*models.SetCustomPrerequisitesInput")).Return(service.ErrSelfPrerequisite)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			mockPrereqService := new(serviceMocks.MockPrerequisiteService)
			tc.setupMock(mockPrereqService, &tc.input)

			questHandler := &handlers.QuestHandler{
				TentRepo:      new(mocks.MockTentRepository),
				PrereqService: mockPrereqService,
				Validate:      validator.New(),
			}
			app.Use(test_utils.MockJWTMiddleware("admin-1", "Admin"))
			app.Post("/api/v1/quests/custom-prerequisites", questHandler.SetCustomPrerequisites)

			bodyBytes, _ := json.Marshal(tc.input)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/quests/custom-prerequisites", bytes.NewReader(bodyBytes))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, -1)
			assert.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestQuestHandler_SetCrossCampaignRules(t *testing.T) {
	app := fiber.New()
	mockPrereqService := new(serviceMocks.MockPrerequisiteService)
	mockPrereqService.On("ApplyCrossCampaignRules", mock.Anything, mock.AnythingOfType("*models.CrossCampaignRulesInput")).Return(3, nil)

	questHandler := &handlers.QuestHandler{
		TentRepo:      new(mocks.MockTentRepository),
		PrereqService: mockPrereqService,
		Validate:      validator.New(),
	}
	app.Use(test_utils.MockJWTMiddleware("admin-1", "Admin"))
	app.Post("/api/v1/quests/set-cross-campaign-rules", questHandler.SetCrossCampaignRules)

	bodyBytes, _ := json.Marshal(models.CrossCampaignRulesInput{EventIDs: []string{"social-ev", "edu-ev"}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quests/set-cross-campaign-rules", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["quests_updated"])
}

func TestQuestHandler_GetUserParticipations(t *testing.T) {
	app := fiber.New()
	mockQuestService := new(serviceMocks.MockQuestService)
	mockQuestService.On("GetUserParticipations", mock.Anything, "user-1", 1, 10).Return([]models.UserTaskParticipation{
		{ID: 1, UserID: "user-1", EventID: "ev1", CompletedTasksCount: 2},
	}, 1, nil)

	questHandler := &handlers.QuestHandler{
		TentRepo:     new(mocks.MockTentRepository),
		QuestService: mockQuestService,
		Validate:     validator.New(),
	}
	app.Use(test_utils.MockJWTMiddleware("user-1", "Participant"))
	app.Get("/api/v1/user-participations/:userId", questHandler.GetUserParticipations)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user-participations/user-1", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(1), meta["total_items"])
	mockQuestService.AssertExpectations(t)
}

func TestQuestHandler_GetCompletedQuestCount(t *testing.T) {
	app := fiber.New()
	mockQuestService := new(serviceMocks.MockQuestService)
	mockQuestService.On("GetCompletedQuestCount", mock.Anything, "user-1").Return(5, nil)

	questHandler := &handlers.QuestHandler{
		TentRepo:     new(mocks.MockTentRepository),
		QuestService: mockQuestService,
		Validate:     validator.New(),
	}
	app.Use(test_utils.MockJWTMiddleware("user-1", "Participant"))
	app.Get("/api/v1/completed-quests-count/:userId", questHandler.GetCompletedQuestCount)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/completed-quests-count/user-1", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "user-1", data["user_id"])
	assert.Equal(t, float64(5), data["completed_count"])
}
