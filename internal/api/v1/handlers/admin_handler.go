// internal/api/v1/handlers/admin_handler.go
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/questcamp/quest-platform-be/internal/scheduler"
	"github.com/questcamp/quest-platform-be/internal/service"
	"github.com/questcamp/quest-platform-be/internal/utils"
	"github.com/rs/zerolog/log"
)

// AdminHandler serves the operational endpoints: manual decay runs,
// scheduler introspection, reward seeding and participation imports.
type AdminHandler struct {
	QuestService    service.QuestService
	ProgressService service.ProgressService
	PrereqService   service.PrerequisiteService
	Scheduler       *scheduler.SafetyCheckScheduler
	Validate        *validator.Validate
}

func NewAdminHandler(
	questService service.QuestService,
	progressService service.ProgressService,
	prereqService service.PrerequisiteService,
	safetyScheduler *scheduler.SafetyCheckScheduler,
) *AdminHandler {
	return &AdminHandler{
		QuestService:    questService,
		ProgressService: progressService,
		PrereqService:   prereqService,
		Scheduler:       safetyScheduler,
		Validate:        validator.New(),
	}
}

// RunSafetyCheck triggers one decay sweep outside the daily cadence.
func (h *AdminHandler) RunSafetyCheck(c *fiber.Ctx) error {
	result, err := h.Scheduler.RunNow(c.Context())
	if err != nil {
		return handleServiceError(c, err, "RunSafetyCheck")
	}
	return c.JSON(models.Response{Success: true, Message: "Safety check completed", Data: result})
}

// GetSchedulerStatus reports the scheduler state.
func (h *AdminHandler) GetSchedulerStatus(c *fiber.Ctx) error {
	return c.JSON(models.Response{
		Success: true,
		Message: "Scheduler status retrieved successfully",
		Data:    h.Scheduler.Status(),
	})
}

// InitializeLevelRewards seeds the level reward table. Safe to call
// repeatedly.
func (h *AdminHandler) InitializeLevelRewards(c *fiber.Ctx) error {
	created, err := h.ProgressService.InitializeLevelRewards(c.Context())
	if err != nil {
		return handleServiceError(c, err, "InitializeLevelRewards")
	}
	return c.JSON(models.Response{
		Success: true,
		Message: "Level rewards initialized successfully",
		Data:    fiber.Map{"created": created},
	})
}

// StoreParticipation upserts one user's participation entries for an event.
func (h *AdminHandler) StoreParticipation(c *fiber.Ctx) error {
	eventID := c.Params("eventId")
	if eventID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Missing event ID"})
	}

	input := new(models.StoreParticipationInput)
	if err := c.BodyParser(input); err != nil {
		log.Warn().Err(err).Msg("StoreParticipation: Invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Invalid request body"})
	}
	if err := h.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false, Message: "Validation failed", Data: utils.FormatValidationErrors(err),
		})
	}

	participation, err := h.QuestService.StoreParticipation(c.Context(), eventID, input)
	if err != nil {
		return handleServiceError(c, err, "StoreParticipation")
	}
	return c.JSON(models.Response{Success: true, Message: "Participation stored successfully", Data: participation})
}

// SyncParticipations bulk-imports participation records for an event.
// Failing records are reported in the result without aborting the batch.
func (h *AdminHandler) SyncParticipations(c *fiber.Ctx) error {
	eventID := c.Params("eventId")
	if eventID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Missing event ID"})
	}

	input := new(models.SyncParticipationInput)
	if err := c.BodyParser(input); err != nil {
		log.Warn().Err(err).Msg("SyncParticipations: Invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Invalid request body"})
	}
	if err := h.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false, Message: "Validation failed", Data: utils.FormatValidationErrors(err),
		})
	}

	result, err := h.QuestService.SyncParticipations(c.Context(), eventID, input)
	if err != nil {
		return handleServiceError(c, err, "SyncParticipations")
	}
	return c.JSON(models.Response{Success: true, Message: "Participation sync completed", Data: result})
}

// RebuildEventPrerequisites re-derives the dynamic prerequisite lists of
// an event from the guard configurations.
func (h *AdminHandler) RebuildEventPrerequisites(c *fiber.Ctx) error {
	eventID := c.Params("eventId")
	if eventID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Missing event ID"})
	}

	if err := h.PrereqService.RebuildEventPrerequisites(c.Context(), eventID); err != nil {
		return handleServiceError(c, err, "RebuildEventPrerequisites")
	}
	return c.JSON(models.Response{Success: true, Message: "Event prerequisites rebuilt successfully"})
}
