// internal/service/quest_service_impl.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/questcamp/quest-platform-be/internal/repository"
	zlog "github.com/rs/zerolog/log"
)

var ErrEventNotFound = errors.New("event has no tents configured")

// socialQuestUnlockThreshold: the Educational tent opens after this many of
// the Social tent's leading quests are completed.
const socialQuestUnlockThreshold = 2

// questServiceImpl implements the QuestService interface.
type questServiceImpl struct {
	tentRepo          repository.TentRepository
	questRepo         repository.QuestRepository
	participationRepo repository.ParticipationRepository
	prereqService     PrerequisiteService
}

// NewQuestService creates a new instance of QuestService.
func NewQuestService(
	tentRepo repository.TentRepository,
	questRepo repository.QuestRepository,
	participationRepo repository.ParticipationRepository,
	prereqService PrerequisiteService,
) QuestService {
	return &questServiceImpl{
		tentRepo:          tentRepo,
		questRepo:         questRepo,
		participationRepo: participationRepo,
		prereqService:     prereqService,
	}
}

// completedQuestIDs resolves which quests the user has completed. A quest
// counts as completed when its task ID has a VALID entry in any of the
// user's stored participations, no matter which event or tent the entry
// was earned in. Prerequisite references into other events are resolved
// through the quest store so their completions count too.
func (s *questServiceImpl) completedQuestIDs(ctx context.Context, userID string, quests []models.Quest) (map[int]bool, error) {
	participations, err := s.participationRepo.GetAllParticipationsByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("loading participations for user %s: %w", userID, err)
		}
		// No participations yet, nothing completed.
	}

	completedTasks := make(map[string]bool)
	for _, participation := range participations {
		for _, entry := range participation.Entries {
			if entry.Status == models.ParticipationValid {
				completedTasks[entry.TaskID] = true
			}
		}
	}

	local := make(map[int]bool, len(quests))
	completed := make(map[int]bool, len(quests))
	for _, quest := range quests {
		local[quest.ID] = true
		if completedTasks[quest.TaskID] {
			completed[quest.ID] = true
		}
	}

	for _, quest := range quests {
		for _, prereqID := range quest.DynamicPrereqs {
			s.resolveForeignPrereq(ctx, prereqID, local, completedTasks, completed)
		}
		for _, prereqID := range quest.CustomPrereqs {
			s.resolveForeignPrereq(ctx, prereqID, local, completedTasks, completed)
		}
	}

	return completed, nil
}

// resolveForeignPrereq marks a prerequisite quest from another event as
// completed when its task has a VALID entry. Lookup failures leave the
// prerequisite unsatisfied rather than failing the listing.
func (s *questServiceImpl) resolveForeignPrereq(ctx context.Context, prereqID int, local map[int]bool, completedTasks map[string]bool, completed map[int]bool) {
	if local[prereqID] || completed[prereqID] {
		return
	}
	local[prereqID] = true

	prereq, err := s.questRepo.GetQuestByID(ctx, prereqID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			zlog.Warn().Err(err).Int("quest_id", prereqID).Msg("Service: Failed to resolve prerequisite quest from another event")
		}
		return
	}
	if completedTasks[prereq.TaskID] {
		completed[prereqID] = true
	}
}

func (s *questServiceImpl) GetQuestStatuses(ctx context.Context, eventID, userID string) ([]models.QuestStatus, error) {
	tents, err := s.tentRepo.GetTentsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("loading tents for event %s: %w", eventID, err)
	}
	if len(tents) == 0 {
		return nil, ErrEventNotFound
	}
	quests, err := s.questRepo.GetQuestsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("loading quests for event %s: %w", eventID, err)
	}

	completed, err := s.completedQuestIDs(ctx, userID, quests)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	statuses := []models.QuestStatus{}
	for _, quest := range quests {
		// Quiz sub-questions are internal to their parent quest.
		if quest.ParentID != nil {
			continue
		}
		statuses = append(statuses, models.QuestStatus{
			Quest:       quest,
			IsCompleted: completed[quest.ID],
			IsLocked:    s.prereqService.IsQuestLocked(&quest, completed, now),
		})
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].Order < statuses[j].Order
	})

	return statuses, nil
}

// GetTentStatuses applies the tent unlock policy: Social tents are always
// open, the Educational tent opens once the user has completed the first
// two quests of the Social tent. Tents with an unrecognized type stay
// locked.
func (s *questServiceImpl) GetTentStatuses(ctx context.Context, eventID, userID string) ([]models.TentStatus, error) {
	tents, err := s.tentRepo.GetTentsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("loading tents for event %s: %w", eventID, err)
	}
	if len(tents) == 0 {
		return nil, ErrEventNotFound
	}
	quests, err := s.questRepo.GetQuestsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("loading quests for event %s: %w", eventID, err)
	}

	completed, err := s.completedQuestIDs(ctx, userID, quests)
	if err != nil {
		return nil, err
	}

	questsByTent := make(map[int][]models.Quest)
	for _, quest := range quests {
		if quest.ParentID != nil {
			continue
		}
		questsByTent[quest.TentID] = append(questsByTent[quest.TentID], quest)
	}
	for tentID := range questsByTent {
		list := questsByTent[tentID]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Order < list[j].Order })
		questsByTent[tentID] = list
	}

	educationalUnlocked := s.educationalTentUnlocked(tents, questsByTent, completed)

	now := time.Now().UTC()
	statuses := make([]models.TentStatus, 0, len(tents))
	for _, tent := range tents {
		var locked bool
		switch tent.TentType {
		case models.TentTypeSocial:
			locked = false
		case models.TentTypeEducational:
			locked = !educationalUnlocked
		default:
			locked = true
		}

		questStatuses := []models.QuestStatus{}
		completedCount := 0
		for _, quest := range questsByTent[tent.ID] {
			done := completed[quest.ID]
			if done {
				completedCount++
			}
			questStatuses = append(questStatuses, models.QuestStatus{
				Quest:       quest,
				IsCompleted: done,
				IsLocked:    s.prereqService.IsQuestLocked(&quest, completed, now),
			})
		}

		statuses = append(statuses, models.TentStatus{
			Tent:                tent,
			IsLocked:            locked,
			IsCompleted:         len(questStatuses) > 0 && completedCount == len(questStatuses),
			QuestCount:          len(questStatuses),
			CompletedQuestCount: completedCount,
			Quests:              questStatuses,
		})
	}

	return statuses, nil
}

// educationalTentUnlocked checks the leading quests of the Social tent.
// With no Social tent there is nothing to complete, so Educational stays
// locked.
func (s *questServiceImpl) educationalTentUnlocked(tents []models.Tent, questsByTent map[int][]models.Quest, completed map[int]bool) bool {
	var socialTent *models.Tent
	for i := range tents {
		if tents[i].TentType == models.TentTypeSocial {
			socialTent = &tents[i]
			break
		}
	}
	if socialTent == nil {
		return false
	}

	socialQuests := questsByTent[socialTent.ID]
	if len(socialQuests) < socialQuestUnlockThreshold {
		return false
	}
	for _, quest := range socialQuests[:socialQuestUnlockThreshold] {
		if !completed[quest.ID] {
			return false
		}
	}
	return true
}

func (s *questServiceImpl) GetUserParticipations(ctx context.Context, userID string, page, limit int) ([]models.UserTaskParticipation, int, error) {
	participations, total, err := s.participationRepo.GetParticipationsByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("loading participations for user %s: %w", userID, err)
	}
	return participations, total, nil
}

func (s *questServiceImpl) GetCompletedQuestCount(ctx context.Context, userID string) (int, error) {
	participations, err := s.participationRepo.GetAllParticipationsByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("loading participations for user %s: %w", userID, err)
	}

	total := 0
	for _, p := range participations {
		total += p.CompletedTasksCount
	}
	return total, nil
}

// StoreParticipation merges the incoming entries into the user's document
// for the event. Existing entries for the same task are replaced in place,
// new tasks are appended, and the totals are recomputed from scratch.
func (s *questServiceImpl) StoreParticipation(ctx context.Context, eventID string, input *models.StoreParticipationInput) (*models.UserTaskParticipation, error) {
	existing, err := s.participationRepo.GetParticipationByUserAndEvent(ctx, input.UserID, eventID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("loading participation for user %s: %w", input.UserID, err)
	}

	var participation *models.UserTaskParticipation
	newlyValid := make(map[string]bool)

	if existing == nil {
		participation = &models.UserTaskParticipation{
			UserID:  input.UserID,
			EventID: eventID,
			Entries: input.Entries,
		}
		for _, entry := range input.Entries {
			if entry.Status == models.ParticipationValid {
				newlyValid[entry.TaskID] = true
			}
		}
		recomputeTotals(participation)
		id, err := s.participationRepo.CreateParticipation(ctx, participation)
		if err != nil {
			return nil, err
		}
		participation.ID = id
	} else {
		validBefore := make(map[string]bool)
		for _, entry := range existing.Entries {
			if entry.Status == models.ParticipationValid {
				validBefore[entry.TaskID] = true
			}
		}

		participation = existing
		for _, incoming := range input.Entries {
			replaced := false
			for i := range participation.Entries {
				if participation.Entries[i].TaskID == incoming.TaskID {
					participation.Entries[i] = incoming
					replaced = true
					break
				}
			}
			if !replaced {
				participation.Entries = append(participation.Entries, incoming)
			}
			if incoming.Status == models.ParticipationValid && !validBefore[incoming.TaskID] {
				newlyValid[incoming.TaskID] = true
			}
		}
		recomputeTotals(participation)
		if err := s.participationRepo.UpdateParticipation(ctx, participation); err != nil {
			return nil, err
		}
	}

	s.bumpParticipantCounts(ctx, eventID, newlyValid)

	zlog.Info().Str("user_id", input.UserID).Str("event_id", eventID).
		Int("entries", len(participation.Entries)).Int("completed", participation.CompletedTasksCount).
		Msg("Service: Participation stored")
	return participation, nil
}

// bumpParticipantCounts increments the participant counter of quests whose
// task just got its first valid completion from this user. Counter updates
// are best effort and never fail the participation write.
func (s *questServiceImpl) bumpParticipantCounts(ctx context.Context, eventID string, newlyValid map[string]bool) {
	if len(newlyValid) == 0 {
		return
	}
	quests, err := s.questRepo.GetQuestsByEventID(ctx, eventID)
	if err != nil {
		zlog.Warn().Err(err).Str("event_id", eventID).Msg("Service: Could not load quests for participant counting")
		return
	}
	for _, quest := range quests {
		if !newlyValid[quest.TaskID] {
			continue
		}
		if err := s.questRepo.IncrementParticipantCount(ctx, quest.ID); err != nil {
			zlog.Warn().Err(err).Int("quest_id", quest.ID).Msg("Service: Could not increment participant count")
		}
	}
}

func recomputeTotals(p *models.UserTaskParticipation) {
	totalPoints, totalXP, completedCount := 0, 0, 0
	for _, entry := range p.Entries {
		totalPoints += entry.Points
		totalXP += entry.XP
		if entry.Status == models.ParticipationValid {
			completedCount++
		}
	}
	p.TotalPoints = totalPoints
	p.TotalXP = totalXP
	p.CompletedTasksCount = completedCount
}

// SyncParticipations imports records one by one. A failing record is
// reported in the result and does not stop the rest of the batch.
func (s *questServiceImpl) SyncParticipations(ctx context.Context, eventID string, input *models.SyncParticipationInput) (*models.SyncResult, error) {
	result := &models.SyncResult{}

	for i := range input.Records {
		record := &input.Records[i]
		existing, err := s.participationRepo.GetParticipationByUserAndEvent(ctx, record.UserID, eventID)
		existed := err == nil && existing != nil

		if _, err := s.StoreParticipation(ctx, eventID, record); err != nil {
			zlog.Warn().Err(err).Str("user_id", record.UserID).Str("event_id", eventID).Msg("Service: Sync record failed")
			result.Errors = append(result.Errors, fmt.Sprintf("user %s: %v", record.UserID, err))
			continue
		}

		if existed {
			result.Updated++
		} else {
			result.Created++
		}
	}

	zlog.Info().Str("event_id", eventID).Int("created", result.Created).Int("updated", result.Updated).
		Int("errors", len(result.Errors)).Msg("Service: Participation sync finished")
	return result, nil
}
