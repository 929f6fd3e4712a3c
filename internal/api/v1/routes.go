// internal/api/v1/routes.go
package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/questcamp/quest-platform-be/internal/api/v1/handlers"
	"github.com/questcamp/quest-platform-be/internal/middleware"
)

// SetupRoutes registers every /api/v1 endpoint on the Fiber app.
func SetupRoutes(
	app *fiber.App,
	questHandler *handlers.QuestHandler,
	progressHandler *handlers.ProgressHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api/v1")

	// =========================================================================
	// Quest & Tent routes (authenticated users)
	// =========================================================================
	api.Get("/tents", middleware.Protected(), questHandler.GetTents)
	api.Get("/quests/:eventId", middleware.Protected(), questHandler.GetEventQuests)
	api.Get("/quests/:questId/prerequisites", middleware.Protected(), questHandler.GetQuestPrerequisites)
	api.Post("/quests/custom-prerequisites", middleware.Protected(), middleware.Authorize("Admin", "Organizer"), questHandler.SetCustomPrerequisites)
	api.Post("/quests/set-cross-campaign-rules", middleware.Protected(), middleware.Authorize("Admin", "Organizer"), questHandler.SetCrossCampaignRules)

	api.Get("/user-participations/:userId", middleware.Protected(), questHandler.GetUserParticipations)
	api.Get("/completed-quests-count/:userId", middleware.Protected(), questHandler.GetCompletedQuestCount)

	// =========================================================================
	// Progress routes (authenticated users)
	// =========================================================================
	progress := api.Group("/progress", middleware.Protected())
	{
		progress.Post("/quest-completion", progressHandler.ProcessQuestCompletion)
		progress.Post("/user-activity", progressHandler.UpdateUserActivity)
		progress.Post("/check-meter-visibility", progressHandler.CheckMeterVisibility)
		progress.Get("/:userId", progressHandler.GetUserProgress)
	}

	// =========================================================================
	// Admin routes
	// =========================================================================
	admin := api.Group("/admin", middleware.Protected(), middleware.Authorize("Admin"))
	{
		admin.Post("/safety-check/run", adminHandler.RunSafetyCheck)
		admin.Get("/scheduler/status", adminHandler.GetSchedulerStatus)
		admin.Post("/level-rewards/initialize", adminHandler.InitializeLevelRewards)
		admin.Post("/participation/:eventId", adminHandler.StoreParticipation)
		admin.Post("/participation/:eventId/sync", adminHandler.SyncParticipations)
		admin.Post("/quests/:eventId/rebuild-prerequisites", adminHandler.RebuildEventPrerequisites)
	}
}
