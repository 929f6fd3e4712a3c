// internal/api/v1/handlers/quest_handler.go
package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/questcamp/quest-platform-be/internal/repository"
	"github.com/questcamp/quest-platform-be/internal/service"
	"github.com/questcamp/quest-platform-be/internal/utils"
	"github.com/rs/zerolog/log"
)

// QuestHandler serves the quest, tent and participation read/config
// endpoints.
type QuestHandler struct {
	TentRepo      repository.TentRepository
	QuestService  service.QuestService
	PrereqService service.PrerequisiteService
	Validate      *validator.Validate
}

func NewQuestHandler(
	tentRepo repository.TentRepository,
	questService service.QuestService,
	prereqService service.PrerequisiteService,
) *QuestHandler {
	return &QuestHandler{
		TentRepo:      tentRepo,
		QuestService:  questService,
		PrereqService: prereqService,
		Validate:      validator.New(),
	}
}

// GetTents lists tents. With an event_id query parameter it returns the
// per-caller tent statuses for that event, otherwise the plain tent list.
func (h *QuestHandler) GetTents(c *fiber.Ctx) error {
	eventID := c.Query("event_id")
	if eventID == "" {
		tents, err := h.TentRepo.GetAllTents(c.Context())
		if err != nil {
			return handleServiceError(c, err, "GetTents")
		}
		return c.JSON(models.Response{Success: true, Message: "Tents retrieved successfully", Data: tents})
	}

	userID, err := utils.ExtractUserIDFromJWT(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized"})
	}

	statuses, err := h.QuestService.GetTentStatuses(c.Context(), eventID, userID)
	if err != nil {
		return handleServiceError(c, err, "GetTents")
	}
	return c.JSON(models.Response{Success: true, Message: "Tent statuses retrieved successfully", Data: statuses})
}

// GetEventQuests returns the caller's quest listing for one event with
// completion and lock flags.
func (h *QuestHandler) GetEventQuests(c *fiber.Ctx) error {
	eventID := c.Params("eventId")
	if eventID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Missing event ID"})
	}

	userID, err := utils.ExtractUserIDFromJWT(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized"})
	}

	statuses, err := h.QuestService.GetQuestStatuses(c.Context(), eventID, userID)
	if err != nil {
		return handleServiceError(c, err, "GetEventQuests")
	}
	return c.JSON(models.Response{Success: true, Message: "Quests retrieved successfully", Data: statuses})
}

// GetQuestPrerequisites returns the stored prerequisite lists of one quest.
func (h *QuestHandler) GetQuestPrerequisites(c *fiber.Ctx) error {
	questID, err := strconv.Atoi(c.Params("questId"))
	if err != nil || questID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Invalid quest ID"})
	}

	prereqs, err := h.PrereqService.GetQuestPrerequisites(c.Context(), questID)
	if err != nil {
		return handleServiceError(c, err, "GetQuestPrerequisites")
	}
	return c.JSON(models.Response{Success: true, Message: "Prerequisites retrieved successfully", Data: prereqs})
}

// SetCustomPrerequisites stores a manual prerequisite list for a quest.
func (h *QuestHandler) SetCustomPrerequisites(c *fiber.Ctx) error {
	input := new(models.SetCustomPrerequisitesInput)
	if err := c.BodyParser(input); err != nil {
		log.Warn().Err(err).Msg("SetCustomPrerequisites: Invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Invalid request body"})
	}
	if err := h.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false, Message: "Validation failed", Data: utils.FormatValidationErrors(err),
		})
	}

	if err := h.PrereqService.SetCustomPrerequisites(c.Context(), input); err != nil {
		return handleServiceError(c, err, "SetCustomPrerequisites")
	}
	return c.JSON(models.Response{Success: true, Message: "Custom prerequisites set successfully"})
}

// SetCrossCampaignRules applies the cross-campaign dependency template to
// the given events.
func (h *QuestHandler) SetCrossCampaignRules(c *fiber.Ctx) error {
	input := new(models.CrossCampaignRulesInput)
	if err := c.BodyParser(input); err != nil {
		log.Warn().Err(err).Msg("SetCrossCampaignRules: Invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Invalid request body"})
	}
	if err := h.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false, Message: "Validation failed", Data: utils.FormatValidationErrors(err),
		})
	}

	updated, err := h.PrereqService.ApplyCrossCampaignRules(c.Context(), input)
	if err != nil {
		return handleServiceError(c, err, "SetCrossCampaignRules")
	}
	return c.JSON(models.Response{
		Success: true,
		Message: "Cross-campaign rules applied successfully",
		Data:    fiber.Map{"quests_updated": updated},
	})
}

// GetUserParticipations returns the paginated participation documents of a
// user.
func (h *QuestHandler) GetUserParticipations(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Missing user ID"})
	}

	pagination := utils.ParsePaginationParams(c)
	participations, total, err := h.QuestService.GetUserParticipations(c.Context(), userID, pagination.Page, pagination.Limit)
	if err != nil {
		return handleServiceError(c, err, "GetUserParticipations")
	}

	meta := utils.BuildPaginationMeta(total, pagination.Limit, pagination.Page)
	return c.JSON(utils.NewPaginatedResponse("Participations retrieved successfully", participations, meta))
}

// GetCompletedQuestCount returns a user's total valid completions across
// all events.
func (h *QuestHandler) GetCompletedQuestCount(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Missing user ID"})
	}

	count, err := h.QuestService.GetCompletedQuestCount(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "GetCompletedQuestCount")
	}
	return c.JSON(models.Response{
		Success: true,
		Message: "Completed quest count retrieved successfully",
		Data:    fiber.Map{"user_id": userID, "completed_count": count},
	})
}
