package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/questcamp/quest-platform-be/internal/models"
	zlog "github.com/rs/zerolog/log"
)

type participationRepo struct {
	db *pgxpool.Pool
}

// NewParticipationRepository creates a new ParticipationRepository backed by Postgres.
func NewParticipationRepository(db *pgxpool.Pool) ParticipationRepository {
	return &participationRepo{db: db}
}

const participationColumns = `id, user_id, event_id, entries, total_points, total_xp,
              completed_tasks_count, created_at, updated_at`

func (r *participationRepo) CreateParticipation(ctx context.Context, p *models.UserTaskParticipation) (int, error) {
	query := `INSERT INTO user_task_participations (user_id, event_id, entries, total_points, total_xp, completed_tasks_count)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		p.UserID,
		p.EventID,
		p.Entries,
		p.TotalPoints,
		p.TotalXP,
		p.CompletedTasksCount,
	).Scan(&id)

	if err != nil {
		zlog.Error().Err(err).Str("user_id", p.UserID).Str("event_id", p.EventID).Msg("Error creating participation")
		return 0, fmt.Errorf("error creating participation: %w", err)
	}

	zlog.Info().Int("participation_id", id).Str("user_id", p.UserID).Str("event_id", p.EventID).Msg("Participation created successfully")
	return id, nil
}

func (r *participationRepo) GetParticipationByUserAndEvent(ctx context.Context, userID, eventID string) (*models.UserTaskParticipation, error) {
	query := `SELECT ` + participationColumns + ` FROM user_task_participations
              WHERE user_id = $1 AND event_id = $2`
	p := &models.UserTaskParticipation{}
	err := r.db.QueryRow(ctx, query, userID, eventID).Scan(
		&p.ID,
		&p.UserID,
		&p.EventID,
		&p.Entries,
		&p.TotalPoints,
		&p.TotalXP,
		&p.CompletedTasksCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		zlog.Error().Err(err).Str("user_id", userID).Str("event_id", eventID).Msg("Error getting participation")
		return nil, fmt.Errorf("error getting participation for user %s in event %s: %w", userID, eventID, err)
	}

	return p, nil
}

func (r *participationRepo) GetParticipationsByUserID(ctx context.Context, userID string, page, limit int) ([]models.UserTaskParticipation, int, error) {
	countQuery := `SELECT COUNT(*) FROM user_task_participations WHERE user_id = $1`
	var totalCount int
	if err := r.db.QueryRow(ctx, countQuery, userID).Scan(&totalCount); err != nil {
		zlog.Error().Err(err).Str("user_id", userID).Msg("Error counting participations")
		return nil, 0, fmt.Errorf("error counting participations for user %s: %w", userID, err)
	}

	if totalCount == 0 {
		return []models.UserTaskParticipation{}, 0, nil
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + participationColumns + ` FROM user_task_participations
              WHERE user_id = $1
              ORDER BY updated_at DESC
              LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		zlog.Error().Err(err).Str("user_id", userID).Msg("Error querying paginated participations")
		return nil, totalCount, fmt.Errorf("error getting participations for user %s: %w", userID, err)
	}
	defer rows.Close()

	participations, err := scanParticipations(rows)
	if err != nil {
		return nil, totalCount, err
	}
	return participations, totalCount, nil
}

func (r *participationRepo) GetAllParticipationsByUserID(ctx context.Context, userID string) ([]models.UserTaskParticipation, error) {
	query := `SELECT ` + participationColumns + ` FROM user_task_participations
              WHERE user_id = $1 ORDER BY event_id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zlog.Error().Err(err).Str("user_id", userID).Msg("Error querying all participations for user")
		return nil, fmt.Errorf("error getting participations for user %s: %w", userID, err)
	}
	defer rows.Close()

	return scanParticipations(rows)
}

func (r *participationRepo) UpdateParticipation(ctx context.Context, p *models.UserTaskParticipation) error {
	query := `UPDATE user_task_participations
              SET entries = $1, total_points = $2, total_xp = $3, completed_tasks_count = $4, updated_at = NOW()
              WHERE id = $5`
	tag, err := r.db.Exec(ctx, query,
		p.Entries,
		p.TotalPoints,
		p.TotalXP,
		p.CompletedTasksCount,
		p.ID,
	)
	if err != nil {
		zlog.Error().Err(err).Int("participation_id", p.ID).Str("user_id", p.UserID).Msg("Error updating participation")
		return fmt.Errorf("error updating participation %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		zlog.Warn().Int("participation_id", p.ID).Msg("Participation not found when updating")
		return pgx.ErrNoRows
	}

	zlog.Debug().Int("participation_id", p.ID).Str("user_id", p.UserID).Int("entries", len(p.Entries)).Msg("Participation updated")
	return nil
}

func scanParticipations(rows pgx.Rows) ([]models.UserTaskParticipation, error) {
	participations := []models.UserTaskParticipation{}
	for rows.Next() {
		var p models.UserTaskParticipation
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.EventID,
			&p.Entries,
			&p.TotalPoints,
			&p.TotalXP,
			&p.CompletedTasksCount,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			zlog.Error().Err(err).Msg("Error scanning participation row")
			return nil, fmt.Errorf("error scanning participation row: %w", err)
		}
		participations = append(participations, p)
	}
	if err := rows.Err(); err != nil {
		zlog.Error().Err(err).Msg("Error iterating participation rows")
		return nil, fmt.Errorf("error iterating participation rows: %w", err)
	}
	return participations, nil
}
