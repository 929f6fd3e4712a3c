// internal/service/service.go
package service

import (
	"context"
	"time"

	"github.com/questcamp/quest-platform-be/internal/models"
)

// Service Layer Interfaces define the business logic operations.
// Handlers will depend on these interfaces, not directly on repositories.

// PrerequisiteService owns the quest gating rules: deriving prerequisite
// links from guard configuration, manual overrides, and the point-in-time
// lock evaluation.
type PrerequisiteService interface {
	// RebuildEventPrerequisites re-derives the dynamic prerequisite lists
	// for every quest in the event from their guard configurations.
	RebuildEventPrerequisites(ctx context.Context, eventID string) error

	// SetCustomPrerequisites validates and stores a manual prerequisite
	// list for one quest. Rejects self references and dependency cycles.
	SetCustomPrerequisites(ctx context.Context, input *models.SetCustomPrerequisitesInput) error

	// GetQuestPrerequisites returns the stored prerequisite picture for one quest.
	GetQuestPrerequisites(ctx context.Context, questID int) (*models.QuestPrerequisites, error)

	// ApplyCrossCampaignRules wires the fixed cross-campaign dependency
	// template between the Social and Educational quests of the given
	// events. Returns the number of quests updated.
	ApplyCrossCampaignRules(ctx context.Context, input *models.CrossCampaignRulesInput) (int, error)

	// IsQuestLocked evaluates the lock state of a quest against a set of
	// completed quest IDs at a given instant. Pure function, no I/O.
	IsQuestLocked(quest *models.Quest, completed map[int]bool, now time.Time) bool
}

// QuestService aggregates quests, tents and participations into the
// caller-specific progression view.
type QuestService interface {
	// GetTentStatuses returns the tents of an event with their quests,
	// completion flags and the tent-level unlock state for one user.
	GetTentStatuses(ctx context.Context, eventID, userID string) ([]models.TentStatus, error)

	// GetQuestStatuses returns the top-level quests of an event with
	// completion and lock flags for one user, ordered by display order.
	GetQuestStatuses(ctx context.Context, eventID, userID string) ([]models.QuestStatus, error)

	// GetUserParticipations returns a user's participation documents
	// across events, paginated.
	GetUserParticipations(ctx context.Context, userID string, page, limit int) ([]models.UserTaskParticipation, int, error)

	// GetCompletedQuestCount returns the total number of valid task
	// completions across all of a user's participations.
	GetCompletedQuestCount(ctx context.Context, userID string) (int, error)

	// StoreParticipation upserts task entries into the user's
	// participation document for an event and recomputes the totals.
	StoreParticipation(ctx context.Context, eventID string, input *models.StoreParticipationInput) (*models.UserTaskParticipation, error)

	// SyncParticipations bulk-imports participation records for an event,
	// accumulating per-record errors instead of aborting.
	SyncParticipations(ctx context.Context, eventID string, input *models.SyncParticipationInput) (*models.SyncResult, error)
}

// ProgressService owns XP accounting, level-ups, meter visibility and the
// safety stage lifecycle.
type ProgressService interface {
	// ProcessQuestCompletion awards XP for a completed quest, applies
	// level-ups and advances the safety stage when the meter is visible.
	ProcessQuestCompletion(ctx context.Context, input *models.QuestCompletionInput) (*models.XPAwardResult, error)

	// UpdateUserActivity stamps the activity timestamps used by the
	// safety decay check.
	UpdateUserActivity(ctx context.Context, input *models.UserActivityInput) (*models.UserProgress, error)

	// CheckMeterVisibility recomputes the one-way meter visibility flags
	// from the user's total completions.
	CheckMeterVisibility(ctx context.Context, userID string) (*models.MeterVisibilityResult, error)

	// GetUserProgress returns the user-facing progress snapshot including
	// the stage-adjusted XP and the reward for the current level.
	GetUserProgress(ctx context.Context, userID string) (*models.UserProgressView, error)

	// RunSafetyMeterCheck performs one decay sweep over all users with a
	// visible safety meter whose last check is older than 24 hours.
	RunSafetyMeterCheck(ctx context.Context) (*models.SafetyCheckResult, error)

	// InitializeLevelRewards seeds the level reward table idempotently.
	// Returns the number of rewards newly created.
	InitializeLevelRewards(ctx context.Context) (int, error)
}
