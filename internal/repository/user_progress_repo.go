package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/questcamp/quest-platform-be/internal/models"
	zlog "github.com/rs/zerolog/log"
)

type userProgressRepo struct {
	db *pgxpool.Pool
}

// NewUserProgressRepository creates a new UserProgressRepository backed by Postgres.
func NewUserProgressRepository(db *pgxpool.Pool) UserProgressRepository {
	return &userProgressRepo{db: db}
}

const userProgressColumns = `id, user_id, level, current_xp, total_lifetime_xp, safety_stage,
              xp_meter_visible, safety_meter_visible, last_login_date, last_social_task_date,
              last_educational_task_date, last_quest_completion_date, last_safety_check, created_at, updated_at`

func (r *userProgressRepo) CreateUserProgress(ctx context.Context, progress *models.UserProgress) (int, error) {
	query := `INSERT INTO user_progress (user_id, level, current_xp, total_lifetime_xp, safety_stage,
                  xp_meter_visible, safety_meter_visible)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		progress.UserID,
		progress.Level,
		progress.CurrentXP,
		progress.TotalLifetimeXP,
		progress.SafetyStage,
		progress.XPMeterVisible,
		progress.SafetyMeterVisible,
	).Scan(&id)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			zlog.Warn().Str("user_id", progress.UserID).Msg("Progress row already exists for user")
			return 0, fmt.Errorf("progress for user %s already exists", progress.UserID)
		}
		zlog.Error().Err(err).Str("user_id", progress.UserID).Msg("Error creating user progress")
		return 0, fmt.Errorf("error creating user progress: %w", err)
	}

	zlog.Info().Int("progress_id", id).Str("user_id", progress.UserID).Msg("User progress created successfully")
	return id, nil
}

func (r *userProgressRepo) GetUserProgressByUserID(ctx context.Context, userID string) (*models.UserProgress, error) {
	query := `SELECT ` + userProgressColumns + ` FROM user_progress WHERE user_id = $1`
	progress := &models.UserProgress{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.Level,
		&progress.CurrentXP,
		&progress.TotalLifetimeXP,
		&progress.SafetyStage,
		&progress.XPMeterVisible,
		&progress.SafetyMeterVisible,
		&progress.LastLoginDate,
		&progress.LastSocialTaskDate,
		&progress.LastEducationalTaskDate,
		&progress.LastQuestCompletionDate,
		&progress.LastSafetyCheck,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		zlog.Error().Err(err).Str("user_id", userID).Msg("Error getting user progress")
		return nil, fmt.Errorf("error getting progress for user %s: %w", userID, err)
	}

	return progress, nil
}

func (r *userProgressRepo) UpdateUserProgress(ctx context.Context, progress *models.UserProgress) error {
	query := `UPDATE user_progress
              SET level = $1, current_xp = $2, total_lifetime_xp = $3, safety_stage = $4,
                  xp_meter_visible = $5, safety_meter_visible = $6, last_login_date = $7,
                  last_social_task_date = $8, last_educational_task_date = $9,
                  last_quest_completion_date = $10, last_safety_check = $11, updated_at = NOW()
              WHERE user_id = $12`
	tag, err := r.db.Exec(ctx, query,
		progress.Level,
		progress.CurrentXP,
		progress.TotalLifetimeXP,
		progress.SafetyStage,
		progress.XPMeterVisible,
		progress.SafetyMeterVisible,
		progress.LastLoginDate,
		progress.LastSocialTaskDate,
		progress.LastEducationalTaskDate,
		progress.LastQuestCompletionDate,
		progress.LastSafetyCheck,
		progress.UserID,
	)
	if err != nil {
		zlog.Error().Err(err).Str("user_id", progress.UserID).Msg("Error updating user progress")
		return fmt.Errorf("error updating progress for user %s: %w", progress.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		zlog.Warn().Str("user_id", progress.UserID).Msg("Progress row not found when updating")
		return pgx.ErrNoRows
	}

	zlog.Debug().Str("user_id", progress.UserID).Int("level", progress.Level).Int("total_xp", progress.TotalLifetimeXP).Msg("User progress updated")
	return nil
}

func (r *userProgressRepo) GetStaleSafetyUsers(ctx context.Context, cutoff time.Time) ([]models.UserProgress, error) {
	query := `SELECT ` + userProgressColumns + ` FROM user_progress
              WHERE safety_meter_visible = TRUE
                AND (last_safety_check IS NULL OR last_safety_check < $1)
              ORDER BY user_id`
	rows, err := r.db.Query(ctx, query, cutoff)
	if err != nil {
		zlog.Error().Err(err).Time("cutoff", cutoff).Msg("Error querying stale safety users")
		return nil, fmt.Errorf("error getting stale safety users: %w", err)
	}
	defer rows.Close()

	users := []models.UserProgress{}
	for rows.Next() {
		var progress models.UserProgress
		if err := rows.Scan(
			&progress.ID,
			&progress.UserID,
			&progress.Level,
			&progress.CurrentXP,
			&progress.TotalLifetimeXP,
			&progress.SafetyStage,
			&progress.XPMeterVisible,
			&progress.SafetyMeterVisible,
			&progress.LastLoginDate,
			&progress.LastSocialTaskDate,
			&progress.LastEducationalTaskDate,
			&progress.LastQuestCompletionDate,
			&progress.LastSafetyCheck,
			&progress.CreatedAt,
			&progress.UpdatedAt,
		); err != nil {
			zlog.Error().Err(err).Msg("Error scanning user progress row")
			return nil, fmt.Errorf("error scanning user progress row: %w", err)
		}
		users = append(users, progress)
	}
	if err := rows.Err(); err != nil {
		zlog.Error().Err(err).Msg("Error iterating user progress rows")
		return nil, fmt.Errorf("error iterating user progress rows: %w", err)
	}
	return users, nil
}

func (r *userProgressRepo) BulkTouchSafetyCheck(ctx context.Context, userIDs []string, checkedAt time.Time) error {
	if len(userIDs) == 0 {
		return nil
	}
	query := `UPDATE user_progress SET last_safety_check = $1, updated_at = NOW() WHERE user_id = ANY($2)`
	tag, err := r.db.Exec(ctx, query, checkedAt, userIDs)
	if err != nil {
		zlog.Error().Err(err).Int("user_count", len(userIDs)).Msg("Error stamping safety checks")
		return fmt.Errorf("error stamping safety checks: %w", err)
	}

	zlog.Info().Int64("rows_affected", tag.RowsAffected()).Time("checked_at", checkedAt).Msg("Safety check timestamps updated")
	return nil
}
