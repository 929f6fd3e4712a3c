// internal/api/v1/handlers/progress_handler.go
package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/questcamp/quest-platform-be/internal/repository"
	"github.com/questcamp/quest-platform-be/internal/service"
	"github.com/questcamp/quest-platform-be/internal/utils"
	"github.com/rs/zerolog/log"
)

// ProgressHandler serves the XP, activity and meter endpoints.
type ProgressHandler struct {
	ProgressService service.ProgressService
	QuestRepo       repository.QuestRepository
	Validate        *validator.Validate
}

func NewProgressHandler(
	progressService service.ProgressService,
	questRepo repository.QuestRepository,
) *ProgressHandler {
	return &ProgressHandler{
		ProgressService: progressService,
		QuestRepo:       questRepo,
		Validate:        validator.New(),
	}
}

// ProcessQuestCompletion awards XP for a completed quest. When the request
// names a quest instead of an explicit amount, the quest's configured
// reward is used.
func (h *ProgressHandler) ProcessQuestCompletion(c *fiber.Ctx) error {
	input := new(models.QuestCompletionInput)
	if err := c.BodyParser(input); err != nil {
		log.Warn().Err(err).Msg("ProcessQuestCompletion: Invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Invalid request body"})
	}
	if err := h.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false, Message: "Validation failed", Data: utils.FormatValidationErrors(err),
		})
	}

	if input.QuestID > 0 && input.XPAmount == 0 {
		quest, err := h.QuestRepo.GetQuestByID(c.Context(), input.QuestID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.Status(fiber.StatusNotFound).JSON(models.Response{Success: false, Message: "Quest not found"})
			}
			return handleServiceError(c, err, "ProcessQuestCompletion")
		}
		input.XPAmount = quest.XPReward
	}

	result, err := h.ProgressService.ProcessQuestCompletion(c.Context(), input)
	if err != nil {
		return handleServiceError(c, err, "ProcessQuestCompletion")
	}
	return c.JSON(models.Response{Success: true, Message: "Quest completion processed successfully", Data: result})
}

// UpdateUserActivity stamps the activity timestamps used by the safety
// decay check.
func (h *ProgressHandler) UpdateUserActivity(c *fiber.Ctx) error {
	input := new(models.UserActivityInput)
	if err := c.BodyParser(input); err != nil {
		log.Warn().Err(err).Msg("UpdateUserActivity: Invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Invalid request body"})
	}
	if err := h.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false, Message: "Validation failed", Data: utils.FormatValidationErrors(err),
		})
	}

	progress, err := h.ProgressService.UpdateUserActivity(c.Context(), input)
	if err != nil {
		return handleServiceError(c, err, "UpdateUserActivity")
	}
	return c.JSON(models.Response{Success: true, Message: "User activity recorded successfully", Data: progress})
}

// CheckMeterVisibility recomputes the one-way meter flags for a user.
func (h *ProgressHandler) CheckMeterVisibility(c *fiber.Ctx) error {
	input := new(models.CheckMeterVisibilityInput)
	if err := c.BodyParser(input); err != nil {
		log.Warn().Err(err).Msg("CheckMeterVisibility: Invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Invalid request body"})
	}
	if err := h.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false, Message: "Validation failed", Data: utils.FormatValidationErrors(err),
		})
	}

	result, err := h.ProgressService.CheckMeterVisibility(c.Context(), input.UserID)
	if err != nil {
		return handleServiceError(c, err, "CheckMeterVisibility")
	}
	return c.JSON(models.Response{Success: true, Message: "Meter visibility checked successfully", Data: result})
}

// GetUserProgress returns the user-facing progress snapshot.
func (h *ProgressHandler) GetUserProgress(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Missing user ID"})
	}

	view, err := h.ProgressService.GetUserProgress(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "GetUserProgress")
	}
	return c.JSON(models.Response{Success: true, Message: "User progress retrieved successfully", Data: view})
}
