// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/questcamp/quest-platform-be/internal/models"
)

// Data access contracts. Services and handlers depend on these interfaces,
// never on the concrete pgx implementations, so the data layer can be mocked
// in tests.

// ====================================================================================
// Tent Repository
// ====================================================================================

type TentRepository interface {
	// CreateTent inserts a new tent and returns its ID.
	CreateTent(ctx context.Context, tent *models.Tent) (int, error)

	// GetTentByID returns a single tent. Returns pgx.ErrNoRows when missing.
	GetTentByID(ctx context.Context, id int) (*models.Tent, error)

	// GetTentsByEventID returns every tent of one event.
	GetTentsByEventID(ctx context.Context, eventID string) ([]models.Tent, error)

	// GetAllTents returns every tent across all events.
	GetAllTents(ctx context.Context) ([]models.Tent, error)
}

// ====================================================================================
// Quest Repository
// ====================================================================================

type QuestRepository interface {
	// CreateQuest inserts a new quest and returns its ID.
	CreateQuest(ctx context.Context, quest *models.Quest) (int, error)

	// GetQuestByID returns a single quest. Returns pgx.ErrNoRows when missing.
	GetQuestByID(ctx context.Context, id int) (*models.Quest, error)

	// GetQuestsByEventID returns all quests of one event, including quiz
	// sub-questions, ordered by the display order.
	GetQuestsByEventID(ctx context.Context, eventID string) ([]models.Quest, error)

	// GetQuestsByEventIDs returns all quests across the given events,
	// ordered by event then display order.
	GetQuestsByEventIDs(ctx context.Context, eventIDs []string) ([]models.Quest, error)

	// GetQuestsByTentID returns all quests attached to one tent, ordered by
	// the display order.
	GetQuestsByTentID(ctx context.Context, tentID int) ([]models.Quest, error)

	// UpdateQuestPrerequisites replaces the derived prerequisite list and
	// its combining condition for one quest.
	UpdateQuestPrerequisites(ctx context.Context, questID int, dynamic []int, condition models.PrerequisiteCondition) error

	// UpdateCustomPrerequisites replaces the manually configured
	// prerequisite list for one quest.
	UpdateCustomPrerequisites(ctx context.Context, questID int, custom []int) error

	// IncrementParticipantCount bumps the participant counter used by
	// MAX_PARTICIPANTS guard rules.
	IncrementParticipantCount(ctx context.Context, questID int) error
}

// ====================================================================================
// Participation Repository
// ====================================================================================

type ParticipationRepository interface {
	// CreateParticipation inserts a new per-user per-event participation
	// document and returns its ID.
	CreateParticipation(ctx context.Context, p *models.UserTaskParticipation) (int, error)

	// GetParticipationByUserAndEvent returns the participation document for
	// one user in one event. Returns pgx.ErrNoRows when missing.
	GetParticipationByUserAndEvent(ctx context.Context, userID, eventID string) (*models.UserTaskParticipation, error)

	// GetParticipationsByUserID returns a user's participation documents
	// across all events, paginated, together with the total count.
	GetParticipationsByUserID(ctx context.Context, userID string, page, limit int) ([]models.UserTaskParticipation, int, error)

	// GetAllParticipationsByUserID returns every participation document of
	// one user without pagination.
	GetAllParticipationsByUserID(ctx context.Context, userID string) ([]models.UserTaskParticipation, error)

	// UpdateParticipation rewrites the entries and derived totals of an
	// existing participation document.
	UpdateParticipation(ctx context.Context, p *models.UserTaskParticipation) error
}

// ====================================================================================
// User Progress Repository
// ====================================================================================

type UserProgressRepository interface {
	// CreateUserProgress inserts a fresh progress row and returns its ID.
	CreateUserProgress(ctx context.Context, progress *models.UserProgress) (int, error)

	// GetUserProgressByUserID returns the progress row for one user.
	// Returns pgx.ErrNoRows when the user has no progress yet.
	GetUserProgressByUserID(ctx context.Context, userID string) (*models.UserProgress, error)

	// UpdateUserProgress persists the mutable progress fields.
	UpdateUserProgress(ctx context.Context, progress *models.UserProgress) error

	// GetStaleSafetyUsers returns users whose safety meter is visible and
	// whose last safety check is older than the cutoff.
	GetStaleSafetyUsers(ctx context.Context, cutoff time.Time) ([]models.UserProgress, error)

	// BulkTouchSafetyCheck stamps last_safety_check for all given users.
	BulkTouchSafetyCheck(ctx context.Context, userIDs []string, checkedAt time.Time) error
}

// ====================================================================================
// Level Reward Repository
// ====================================================================================

type LevelRewardRepository interface {
	// GetLevelRewardByLevel returns the reward configured for one level.
	// Returns pgx.ErrNoRows when the level has none.
	GetLevelRewardByLevel(ctx context.Context, level int) (*models.LevelReward, error)

	// GetAllLevelRewards returns every configured level reward ordered by level.
	GetAllLevelRewards(ctx context.Context) ([]models.LevelReward, error)

	// UpsertLevelRewardTx inserts or updates one level reward inside an
	// existing transaction. Returns true when a new row was created.
	UpsertLevelRewardTx(ctx context.Context, tx pgx.Tx, reward *models.LevelReward) (bool, error)
}
