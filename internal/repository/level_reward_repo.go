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

type levelRewardRepo struct {
	db *pgxpool.Pool
}

// NewLevelRewardRepository creates a new LevelRewardRepository backed by Postgres.
func NewLevelRewardRepository(db *pgxpool.Pool) LevelRewardRepository {
	return &levelRewardRepo{db: db}
}

func (r *levelRewardRepo) GetLevelRewardByLevel(ctx context.Context, level int) (*models.LevelReward, error) {
	query := `SELECT id, level, reward_type, mystery_box_count, xp_multiplier, created_at, updated_at
              FROM level_rewards WHERE level = $1`
	reward := &models.LevelReward{}
	err := r.db.QueryRow(ctx, query, level).Scan(
		&reward.ID,
		&reward.Level,
		&reward.RewardType,
		&reward.MysteryBoxCount,
		&reward.XPMultiplier,
		&reward.CreatedAt,
		&reward.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		zlog.Error().Err(err).Int("level", level).Msg("Error getting level reward")
		return nil, fmt.Errorf("error getting reward for level %d: %w", level, err)
	}

	return reward, nil
}

func (r *levelRewardRepo) GetAllLevelRewards(ctx context.Context) ([]models.LevelReward, error) {
	query := `SELECT id, level, reward_type, mystery_box_count, xp_multiplier, created_at, updated_at
              FROM level_rewards ORDER BY level`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zlog.Error().Err(err).Msg("Error querying all level rewards")
		return nil, fmt.Errorf("error getting level rewards: %w", err)
	}
	defer rows.Close()

	rewards := []models.LevelReward{}
	for rows.Next() {
		var reward models.LevelReward
		if err := rows.Scan(
			&reward.ID,
			&reward.Level,
			&reward.RewardType,
			&reward.MysteryBoxCount,
			&reward.XPMultiplier,
			&reward.CreatedAt,
			&reward.UpdatedAt,
		); err != nil {
			zlog.Error().Err(err).Msg("Error scanning level reward row")
			return nil, fmt.Errorf("error scanning level reward row: %w", err)
		}
		rewards = append(rewards, reward)
	}
	if err := rows.Err(); err != nil {
		zlog.Error().Err(err).Msg("Error iterating level reward rows")
		return nil, fmt.Errorf("error iterating level reward rows: %w", err)
	}
	return rewards, nil
}

func (r *levelRewardRepo) UpsertLevelRewardTx(ctx context.Context, tx pgx.Tx, reward *models.LevelReward) (bool, error) {
	query := `INSERT INTO level_rewards (level, reward_type, mystery_box_count, xp_multiplier)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (level) DO UPDATE
              SET reward_type = EXCLUDED.reward_type,
                  mystery_box_count = EXCLUDED.mystery_box_count,
                  xp_multiplier = EXCLUDED.xp_multiplier,
                  updated_at = NOW()
              RETURNING (xmax = 0)`
	var created bool
	err := tx.QueryRow(ctx, query,
		reward.Level,
		reward.RewardType,
		reward.MysteryBoxCount,
		reward.XPMultiplier,
	).Scan(&created)

	if err != nil {
		zlog.Error().Err(err).Int("level", reward.Level).Msg("Error upserting level reward")
		return false, fmt.Errorf("error upserting reward for level %d: %w", reward.Level, err)
	}

	zlog.Debug().Int("level", reward.Level).Bool("created", created).Msg("Level reward upserted")
	return created, nil
}
