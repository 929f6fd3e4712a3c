// internal/api/v1/handlers/error_handler.go
package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/questcamp/quest-platform-be/internal/service"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global Fiber error handler. Most handlers respond
// directly; this catches what slips through (router errors, panics turned
// into errors, unhandled returns).
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		code = fiber.StatusBadRequest
		message = "Validation Failed"
	}

	log.Error().Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status_sent", code).
		Msg("Error occurred during request processing")

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Status(code).JSON(models.Response{
		Success: false,
		Message: message,
	})
}

// handleServiceError maps service and repository errors onto HTTP
// responses. Shared by all handlers in this package.
func handleServiceError(c *fiber.Ctx, err error, operation string) error {
	log := log.With().Str("operation", operation).Logger()

	switch {
	case errors.Is(err, service.ErrQuestNotFound):
		log.Warn().Err(err).Msg("Quest not found")
		return c.Status(fiber.StatusNotFound).JSON(models.Response{Success: false, Message: err.Error()})
	case errors.Is(err, service.ErrEventNotFound):
		log.Warn().Err(err).Msg("Event not found")
		return c.Status(fiber.StatusNotFound).JSON(models.Response{Success: false, Message: err.Error()})
	case errors.Is(err, service.ErrSelfPrerequisite),
		errors.Is(err, service.ErrPrerequisiteNotFound):
		log.Warn().Err(err).Msg("Invalid prerequisite configuration")
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: err.Error()})
	case errors.Is(err, service.ErrPrerequisiteCycle):
		log.Warn().Err(err).Msg("Prerequisite cycle rejected")
		return c.Status(fiber.StatusConflict).JSON(models.Response{Success: false, Message: err.Error()})
	case errors.Is(err, pgx.ErrNoRows):
		log.Warn().Msg("Resource not found")
		return c.Status(fiber.StatusNotFound).JSON(models.Response{Success: false, Message: "Resource not found"})
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{Success: false, Message: "Internal server error"})
	}
}
