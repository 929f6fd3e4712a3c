// internal/service/progress_service_impl.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/questcamp/quest-platform-be/internal/repository"
	zlog "github.com/rs/zerolog/log"
)

var ErrProgressUpdateFailed = errors.New("failed to update user progress")

// xpPerLevel: one level per 100 XP, overflow carries into the next level.
const xpPerLevel = 100

// inactivityWindow is how long a user may go without activity before the
// safety stage decays.
const inactivityWindow = 24 * time.Hour

// defaultLevelRewards is the idempotent seed applied by
// InitializeLevelRewards.
var defaultLevelRewards = []models.LevelReward{
	{Level: 1, RewardType: models.RewardTypeMysteryBox, MysteryBoxCount: 1},
	{Level: 2, RewardType: models.RewardTypeMultiplier, XPMultiplier: 1.1},
	{Level: 3, RewardType: models.RewardTypeBoth, MysteryBoxCount: 1, XPMultiplier: 1.15},
	{Level: 5, RewardType: models.RewardTypeBoth, MysteryBoxCount: 2, XPMultiplier: 1.2},
	{Level: 10, RewardType: models.RewardTypeBoth, MysteryBoxCount: 3, XPMultiplier: 1.5},
}

// progressServiceImpl implements the ProgressService interface.
type progressServiceImpl struct {
	pool              *pgxpool.Pool
	progressRepo      repository.UserProgressRepository
	participationRepo repository.ParticipationRepository
	levelRewardRepo   repository.LevelRewardRepository
}

// NewProgressService creates a new instance of ProgressService.
func NewProgressService(
	pool *pgxpool.Pool,
	progressRepo repository.UserProgressRepository,
	participationRepo repository.ParticipationRepository,
	levelRewardRepo repository.LevelRewardRepository,
) ProgressService {
	return &progressServiceImpl{
		pool:              pool,
		progressRepo:      progressRepo,
		participationRepo: participationRepo,
		levelRewardRepo:   levelRewardRepo,
	}
}

// getOrCreateProgress returns the user's progress row, creating the
// defaults on first contact: level 1, zero XP, neutral safety stage,
// both meters hidden.
func (s *progressServiceImpl) getOrCreateProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	progress, err := s.progressRepo.GetUserProgressByUserID(ctx, userID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("loading progress for user %s: %w", userID, err)
	}

	progress = &models.UserProgress{
		UserID:      userID,
		Level:       1,
		SafetyStage: models.SafetyStageDefault,
	}
	id, err := s.progressRepo.CreateUserProgress(ctx, progress)
	if err != nil {
		return nil, fmt.Errorf("creating progress for user %s: %w", userID, err)
	}
	progress.ID = id

	zlog.Info().Str("user_id", userID).Msg("Service: Created initial progress row")
	return progress, nil
}

// ProcessQuestCompletion awards the quest XP adjusted by the current
// safety-stage bonus, stamps the activity dates and, when the safety
// meter is already visible, advances the stage by one. Level and current
// XP are recomputed from the new lifetime total: every full hundred in it
// is granted as a level on this award, and the remainder becomes the
// current XP.
func (s *progressServiceImpl) ProcessQuestCompletion(ctx context.Context, input *models.QuestCompletionInput) (*models.XPAwardResult, error) {
	progress, err := s.getOrCreateProgress(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// The bonus comes from the stage as it stood before this completion
	// bumps it. Hidden meter means no bonus either way.
	stageBonus := 0
	if progress.SafetyMeterVisible {
		stageBonus = progress.SafetyStage.Bonus()
	}
	awardedXP := input.XPAmount + stageBonus
	if awardedXP < 0 {
		awardedXP = 0
	}

	progress.TotalLifetimeXP += awardedXP
	newTotal := progress.TotalLifetimeXP
	levelsGained := newTotal / xpPerLevel

	progress.CurrentXP = newTotal % xpPerLevel
	progress.Level += levelsGained

	if progress.SafetyMeterVisible && progress.SafetyStage < models.SafetyStageMax {
		progress.SafetyStage++
	}

	now := time.Now().UTC()
	progress.LastQuestCompletionDate = &now
	switch input.TentType {
	case models.TentTypeSocial:
		progress.LastSocialTaskDate = &now
	case models.TentTypeEducational:
		progress.LastEducationalTaskDate = &now
	}

	if err := s.progressRepo.UpdateUserProgress(ctx, progress); err != nil {
		zlog.Error().Err(err).Str("user_id", input.UserID).Msg("Service: Failed to persist quest completion")
		return nil, ErrProgressUpdateFailed
	}

	result := &models.XPAwardResult{
		UserID:          progress.UserID,
		XPAwarded:       awardedXP,
		Level:           progress.Level,
		CurrentXP:       progress.CurrentXP,
		TotalLifetimeXP: progress.TotalLifetimeXP,
		LevelsGained:    levelsGained,
		LeveledUp:       levelsGained > 0,
		StageBonus:      stageBonus,
		SafetyStage:     progress.SafetyStage,
	}

	zlog.Info().Str("user_id", input.UserID).Int("xp", awardedXP).
		Int("level", progress.Level).Bool("leveled_up", result.LeveledUp).
		Msg("Service: Quest completion processed")
	return result, nil
}

func (s *progressServiceImpl) UpdateUserActivity(ctx context.Context, input *models.UserActivityInput) (*models.UserProgress, error) {
	progress, err := s.getOrCreateProgress(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch input.ActivityType {
	case models.ActivityLogin:
		progress.LastLoginDate = &now
	case models.ActivityQuestCompleted:
		progress.LastQuestCompletionDate = &now
		switch input.TentType {
		case models.TentTypeSocial:
			progress.LastSocialTaskDate = &now
		case models.TentTypeEducational:
			progress.LastEducationalTaskDate = &now
		}
	case models.ActivitySocialTask:
		progress.LastSocialTaskDate = &now
	case models.ActivityEducationalTask:
		progress.LastEducationalTaskDate = &now
	}

	if err := s.progressRepo.UpdateUserProgress(ctx, progress); err != nil {
		zlog.Error().Err(err).Str("user_id", input.UserID).Str("activity", string(input.ActivityType)).Msg("Service: Failed to record activity")
		return nil, ErrProgressUpdateFailed
	}

	zlog.Debug().Str("user_id", input.UserID).Str("activity", string(input.ActivityType)).Msg("Service: User activity recorded")
	return progress, nil
}

// CheckMeterVisibility recomputes the meter flags from the user's total
// valid completions. One completion reveals the XP meter, two reveal the
// safety meter. Flags never flip back off.
func (s *progressServiceImpl) CheckMeterVisibility(ctx context.Context, userID string) (*models.MeterVisibilityResult, error) {
	progress, err := s.getOrCreateProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	participations, err := s.participationRepo.GetAllParticipationsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading participations for user %s: %w", userID, err)
	}
	completedCount := 0
	for _, p := range participations {
		completedCount += p.CompletedTasksCount
	}

	changed := false
	if completedCount >= 1 && !progress.XPMeterVisible {
		progress.XPMeterVisible = true
		changed = true
	}
	if completedCount >= 2 && !progress.SafetyMeterVisible {
		progress.SafetyMeterVisible = true
		changed = true
	}

	if changed {
		if err := s.progressRepo.UpdateUserProgress(ctx, progress); err != nil {
			zlog.Error().Err(err).Str("user_id", userID).Msg("Service: Failed to persist meter visibility")
			return nil, ErrProgressUpdateFailed
		}
		zlog.Info().Str("user_id", userID).Int("completed", completedCount).
			Bool("xp_meter", progress.XPMeterVisible).Bool("safety_meter", progress.SafetyMeterVisible).
			Msg("Service: Meter visibility updated")
	}

	return &models.MeterVisibilityResult{
		UserID:             userID,
		CompletedCount:     completedCount,
		XPMeterVisible:     progress.XPMeterVisible,
		SafetyMeterVisible: progress.SafetyMeterVisible,
	}, nil
}

// GetUserProgress returns the snapshot shown to the user. While the safety
// meter is hidden the stage bonus is not applied.
func (s *progressServiceImpl) GetUserProgress(ctx context.Context, userID string) (*models.UserProgressView, error) {
	progress, err := s.getOrCreateProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	adjustedXP := progress.TotalLifetimeXP
	if progress.SafetyMeterVisible {
		adjustedXP += progress.SafetyStage.Bonus()
		if adjustedXP < 0 {
			adjustedXP = 0
		}
	}

	view := &models.UserProgressView{
		Progress:        *progress,
		StageAdjustedXP: adjustedXP,
	}

	reward, err := s.levelRewardRepo.GetLevelRewardByLevel(ctx, progress.Level)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("loading reward for level %d: %w", progress.Level, err)
		}
		// No reward configured for this level.
	} else {
		view.CurrentLevelReward = reward
	}

	return view, nil
}

// RunSafetyMeterCheck selects every user with a visible safety meter whose
// last check is stale, decays the stage of the inactive ones, and stamps
// the check time for the whole batch, degraded or not.
func (s *progressServiceImpl) RunSafetyMeterCheck(ctx context.Context) (*models.SafetyCheckResult, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-inactivityWindow)

	candidates, err := s.progressRepo.GetStaleSafetyUsers(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("selecting users for safety check: %w", err)
	}

	result := &models.SafetyCheckResult{UsersChecked: len(candidates)}
	checkedIDs := make([]string, 0, len(candidates))

	for i := range candidates {
		progress := &candidates[i]
		checkedIDs = append(checkedIDs, progress.UserID)

		if !shouldDegrade(progress, now) {
			continue
		}
		if progress.SafetyStage <= models.SafetyStageMin {
			continue
		}

		progress.SafetyStage--
		if err := s.progressRepo.UpdateUserProgress(ctx, progress); err != nil {
			zlog.Error().Err(err).Str("user_id", progress.UserID).Msg("Service: Failed to degrade safety stage")
			result.Errors = append(result.Errors, fmt.Sprintf("user %s: %v", progress.UserID, err))
			continue
		}
		result.UsersDegraded++
		zlog.Info().Str("user_id", progress.UserID).Int("stage", int(progress.SafetyStage)).Msg("Service: Safety stage degraded")
	}

	if err := s.progressRepo.BulkTouchSafetyCheck(ctx, checkedIDs, now); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("stamping check time: %v", err))
	}

	zlog.Info().Int("checked", result.UsersChecked).Int("degraded", result.UsersDegraded).
		Int("errors", len(result.Errors)).Msg("Service: Safety meter check finished")
	return result, nil
}

// shouldDegrade: the user has not logged in within the window AND has
// skipped at least one of the two task tracks. A missing timestamp counts
// as no activity.
func shouldDegrade(progress *models.UserProgress, now time.Time) bool {
	inWindow := func(t *time.Time) bool {
		return t != nil && now.Sub(*t) < inactivityWindow
	}

	if inWindow(progress.LastLoginDate) {
		return false
	}
	return !inWindow(progress.LastSocialTaskDate) || !inWindow(progress.LastEducationalTaskDate)
}

// InitializeLevelRewards seeds the reward table inside one transaction so
// a partial seed never becomes visible.
func (s *progressServiceImpl) InitializeLevelRewards(ctx context.Context) (created int, err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		zlog.Error().Err(err).Msg("Service: Failed to begin transaction for level reward seed")
		return 0, fmt.Errorf("internal server error: could not start operation")
	}

	defer func() {
		if p := recover(); p != nil {
			zlog.Error().Msgf("Service: Panic recovered during level reward seed: %v", p)
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			zlog.Warn().Err(err).Msg("Service: Rolling back level reward seed")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				zlog.Error().Err(rbErr).Msg("Service: Failed to rollback transaction")
			}
		} else {
			err = tx.Commit(ctx)
			if err != nil {
				zlog.Error().Err(err).Msg("Service: Failed to commit level reward seed")
				err = fmt.Errorf("internal server error: could not finalize operation")
			}
		}
	}()

	for i := range defaultLevelRewards {
		reward := defaultLevelRewards[i]
		var isNew bool
		isNew, err = s.levelRewardRepo.UpsertLevelRewardTx(ctx, tx, &reward)
		if err != nil {
			return created, err
		}
		if isNew {
			created++
		}
	}

	zlog.Info().Int("created", created).Int("total", len(defaultLevelRewards)).Msg("Service: Level rewards initialized")
	return created, nil
}
