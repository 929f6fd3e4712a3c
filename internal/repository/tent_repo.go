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

type tentRepo struct {
	db *pgxpool.Pool
}

// NewTentRepository creates a new TentRepository backed by Postgres.
func NewTentRepository(db *pgxpool.Pool) TentRepository {
	return &tentRepo{db: db}
}

func (r *tentRepo) CreateTent(ctx context.Context, tent *models.Tent) (int, error) {
	query := `INSERT INTO tents (event_id, tent_type, name, state, valid_task_ids)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var tentID int
	err := r.db.QueryRow(ctx, query,
		tent.EventID,
		tent.TentType,
		tent.Name,
		tent.State,
		tent.ValidTaskIDs,
	).Scan(&tentID)

	if err != nil {
		zlog.Error().Err(err).Str("event_id", tent.EventID).Str("name", tent.Name).Msg("Error creating tent")
		return 0, fmt.Errorf("error creating tent: %w", err)
	}

	zlog.Info().Int("tent_id", tentID).Str("event_id", tent.EventID).Str("tent_type", string(tent.TentType)).Msg("Tent created successfully")
	return tentID, nil
}

func (r *tentRepo) GetTentByID(ctx context.Context, id int) (*models.Tent, error) {
	query := `SELECT id, event_id, tent_type, name, state, valid_task_ids, created_at, updated_at
              FROM tents WHERE id = $1`
	tent := &models.Tent{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tent.ID,
		&tent.EventID,
		&tent.TentType,
		&tent.Name,
		&tent.State,
		&tent.ValidTaskIDs,
		&tent.CreatedAt,
		&tent.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			zlog.Warn().Int("tent_id", id).Msg("Tent not found")
			return nil, pgx.ErrNoRows
		}
		zlog.Error().Err(err).Int("tent_id", id).Msg("Error getting tent by ID")
		return nil, fmt.Errorf("error getting tent %d: %w", id, err)
	}

	return tent, nil
}

func (r *tentRepo) GetTentsByEventID(ctx context.Context, eventID string) ([]models.Tent, error) {
	query := `SELECT id, event_id, tent_type, name, state, valid_task_ids, created_at, updated_at
              FROM tents WHERE event_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		zlog.Error().Err(err).Str("event_id", eventID).Msg("Error querying tents by event ID")
		return nil, fmt.Errorf("error getting tents for event %s: %w", eventID, err)
	}
	defer rows.Close()

	return scanTents(rows, eventID)
}

func (r *tentRepo) GetAllTents(ctx context.Context) ([]models.Tent, error) {
	query := `SELECT id, event_id, tent_type, name, state, valid_task_ids, created_at, updated_at
              FROM tents ORDER BY event_id, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zlog.Error().Err(err).Msg("Error querying all tents")
		return nil, fmt.Errorf("error getting all tents: %w", err)
	}
	defer rows.Close()

	return scanTents(rows, "")
}

func scanTents(rows pgx.Rows, eventID string) ([]models.Tent, error) {
	tents := []models.Tent{}
	for rows.Next() {
		var tent models.Tent
		if err := rows.Scan(
			&tent.ID,
			&tent.EventID,
			&tent.TentType,
			&tent.Name,
			&tent.State,
			&tent.ValidTaskIDs,
			&tent.CreatedAt,
			&tent.UpdatedAt,
		); err != nil {
			zlog.Error().Err(err).Str("event_id", eventID).Msg("Error scanning tent row")
			return nil, fmt.Errorf("error scanning tent row: %w", err)
		}
		tents = append(tents, tent)
	}
	if err := rows.Err(); err != nil {
		zlog.Error().Err(err).Str("event_id", eventID).Msg("Error iterating tent rows")
		return nil, fmt.Errorf("error iterating tent rows: %w", err)
	}
	return tents, nil
}
