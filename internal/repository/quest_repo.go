package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/questcamp/quest-platform-be/internal/models"
	zlog "github.com/rs/zerolog/log"
)

type questRepo struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new QuestRepository backed by Postgres.
func NewQuestRepository(db *pgxpool.Pool) QuestRepository {
	return &questRepo{db: db}
}

const questColumns = `id, event_id, tent_id, task_id, name, display_order, points, xp_reward,
              parent_id, guard_config, dynamic_prerequisites, custom_prerequisites,
              prerequisite_condition, participant_count, created_at, updated_at`

func (r *questRepo) CreateQuest(ctx context.Context, quest *models.Quest) (int, error) {
	query := `INSERT INTO quests (event_id, tent_id, task_id, name, display_order, points, xp_reward,
                  parent_id, guard_config, dynamic_prerequisites, custom_prerequisites, prerequisite_condition)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	var questID int
	err := r.db.QueryRow(ctx, query,
		quest.EventID,
		quest.TentID,
		quest.TaskID,
		quest.Name,
		quest.Order,
		quest.Points,
		quest.XPReward,
		quest.ParentID,
		quest.GuardConfig,
		quest.DynamicPrereqs,
		quest.CustomPrereqs,
		quest.PrereqCondition,
	).Scan(&questID)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			zlog.Warn().Err(err).Int("tent_id", quest.TentID).Msg("Foreign key violation on quest creation (tent not found?)")
			return 0, fmt.Errorf("tent with ID %d does not exist", quest.TentID)
		}
		zlog.Error().Err(err).Str("name", quest.Name).Str("event_id", quest.EventID).Msg("Error creating quest")
		return 0, fmt.Errorf("error creating quest: %w", err)
	}

	zlog.Info().Int("quest_id", questID).Str("name", quest.Name).Str("event_id", quest.EventID).Msg("Quest created successfully")
	return questID, nil
}

func (r *questRepo) GetQuestByID(ctx context.Context, id int) (*models.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE id = $1`
	quest := &models.Quest{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&quest.ID,
		&quest.EventID,
		&quest.TentID,
		&quest.TaskID,
		&quest.Name,
		&quest.Order,
		&quest.Points,
		&quest.XPReward,
		&quest.ParentID,
		&quest.GuardConfig,
		&quest.DynamicPrereqs,
		&quest.CustomPrereqs,
		&quest.PrereqCondition,
		&quest.ParticipantCount,
		&quest.CreatedAt,
		&quest.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			zlog.Warn().Int("quest_id", id).Msg("Quest not found")
			return nil, pgx.ErrNoRows
		}
		zlog.Error().Err(err).Int("quest_id", id).Msg("Error getting quest by ID")
		return nil, fmt.Errorf("error getting quest %d: %w", id, err)
	}

	return quest, nil
}

func (r *questRepo) GetQuestsByEventID(ctx context.Context, eventID string) ([]models.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE event_id = $1 ORDER BY display_order, id`
	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		zlog.Error().Err(err).Str("event_id", eventID).Msg("Error querying quests by event ID")
		return nil, fmt.Errorf("error getting quests for event %s: %w", eventID, err)
	}
	defer rows.Close()

	return scanQuests(rows)
}

func (r *questRepo) GetQuestsByEventIDs(ctx context.Context, eventIDs []string) ([]models.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE event_id = ANY($1) ORDER BY event_id, display_order, id`
	rows, err := r.db.Query(ctx, query, eventIDs)
	if err != nil {
		zlog.Error().Err(err).Strs("event_ids", eventIDs).Msg("Error querying quests by event IDs")
		return nil, fmt.Errorf("error getting quests for events: %w", err)
	}
	defer rows.Close()

	return scanQuests(rows)
}

func (r *questRepo) GetQuestsByTentID(ctx context.Context, tentID int) ([]models.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE tent_id = $1 ORDER BY display_order, id`
	rows, err := r.db.Query(ctx, query, tentID)
	if err != nil {
		zlog.Error().Err(err).Int("tent_id", tentID).Msg("Error querying quests by tent ID")
		return nil, fmt.Errorf("error getting quests for tent %d: %w", tentID, err)
	}
	defer rows.Close()

	return scanQuests(rows)
}

func (r *questRepo) UpdateQuestPrerequisites(ctx context.Context, questID int, dynamic []int, condition models.PrerequisiteCondition) error {
	query := `UPDATE quests SET dynamic_prerequisites = $1, prerequisite_condition = $2, updated_at = NOW()
              WHERE id = $3`
	tag, err := r.db.Exec(ctx, query, dynamic, condition, questID)
	if err != nil {
		zlog.Error().Err(err).Int("quest_id", questID).Msg("Error updating quest prerequisites")
		return fmt.Errorf("error updating prerequisites for quest %d: %w", questID, err)
	}
	if tag.RowsAffected() == 0 {
		zlog.Warn().Int("quest_id", questID).Msg("Quest not found when updating prerequisites")
		return pgx.ErrNoRows
	}

	zlog.Debug().Int("quest_id", questID).Ints("dynamic", dynamic).Str("condition", string(condition)).Msg("Quest prerequisites updated")
	return nil
}

func (r *questRepo) UpdateCustomPrerequisites(ctx context.Context, questID int, custom []int) error {
	query := `UPDATE quests SET custom_prerequisites = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, custom, questID)
	if err != nil {
		zlog.Error().Err(err).Int("quest_id", questID).Msg("Error updating custom prerequisites")
		return fmt.Errorf("error updating custom prerequisites for quest %d: %w", questID, err)
	}
	if tag.RowsAffected() == 0 {
		zlog.Warn().Int("quest_id", questID).Msg("Quest not found when updating custom prerequisites")
		return pgx.ErrNoRows
	}

	zlog.Info().Int("quest_id", questID).Ints("custom", custom).Msg("Custom prerequisites updated")
	return nil
}

func (r *questRepo) IncrementParticipantCount(ctx context.Context, questID int) error {
	query := `UPDATE quests SET participant_count = participant_count + 1, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, questID)
	if err != nil {
		zlog.Error().Err(err).Int("quest_id", questID).Msg("Error incrementing participant count")
		return fmt.Errorf("error incrementing participant count for quest %d: %w", questID, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanQuests(rows pgx.Rows) ([]models.Quest, error) {
	quests := []models.Quest{}
	for rows.Next() {
		var quest models.Quest
		if err := rows.Scan(
			&quest.ID,
			&quest.EventID,
			&quest.TentID,
			&quest.TaskID,
			&quest.Name,
			&quest.Order,
			&quest.Points,
			&quest.XPReward,
			&quest.ParentID,
			&quest.GuardConfig,
			&quest.DynamicPrereqs,
			&quest.CustomPrereqs,
			&quest.PrereqCondition,
			&quest.ParticipantCount,
			&quest.CreatedAt,
			&quest.UpdatedAt,
		); err != nil {
			zlog.Error().Err(err).Msg("Error scanning quest row")
			return nil, fmt.Errorf("error scanning quest row: %w", err)
		}
		quests = append(quests, quest)
	}
	if err := rows.Err(); err != nil {
		zlog.Error().Err(err).Msg("Error iterating quest rows")
		return nil, fmt.Errorf("error iterating quest rows: %w", err)
	}
	return quests, nil
}
