// internal/service/prerequisite_service_impl.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/questcamp/quest-platform-be/internal/repository"
	zlog "github.com/rs/zerolog/log"
)

var ErrQuestNotFound = errors.New("quest not found")
var ErrPrerequisiteNotFound = errors.New("one or more prerequisite quests do not exist")
var ErrSelfPrerequisite = errors.New("a quest cannot be a prerequisite of itself")
var ErrPrerequisiteCycle = errors.New("prerequisite configuration would create a dependency cycle")

// crossCampaignTemplate is the fixed dependency wiring between the Social
// and Educational quest lines. Keys and values are positional labels of
// the form <TentType>_Quest_<order>; edges whose endpoints are missing
// from the loaded events are skipped.
var crossCampaignTemplate = map[string][]string{
	"Educational_Quest_1": {"Social_Quest_1", "Social_Quest_2"},
	"Social_Quest_3":      {"Educational_Quest_1"},
	"Educational_Quest_2": {"Social_Quest_3"},
}

// prerequisiteServiceImpl implements the PrerequisiteService interface.
type prerequisiteServiceImpl struct {
	questRepo repository.QuestRepository
	tentRepo  repository.TentRepository
}

// NewPrerequisiteService creates a new instance of PrerequisiteService.
func NewPrerequisiteService(questRepo repository.QuestRepository, tentRepo repository.TentRepository) PrerequisiteService {
	return &prerequisiteServiceImpl{questRepo: questRepo, tentRepo: tentRepo}
}

// RebuildEventPrerequisites re-derives every quest's dynamic prerequisite
// list from its TASK_ID guard rules and persists the result.
func (s *prerequisiteServiceImpl) RebuildEventPrerequisites(ctx context.Context, eventID string) error {
	quests, err := s.questRepo.GetQuestsByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("loading quests for event %s: %w", eventID, err)
	}

	// Quests reference each other through external task IDs, so resolve
	// task ID -> quest ID over the whole event first.
	taskToQuest := make(map[string]int, len(quests))
	for _, q := range quests {
		taskToQuest[q.TaskID] = q.ID
	}

	updated := 0
	for i := range quests {
		quest := &quests[i]
		dynamic, condition := deriveDynamicPrerequisites(quest, taskToQuest)
		if err := s.questRepo.UpdateQuestPrerequisites(ctx, quest.ID, dynamic, condition); err != nil {
			zlog.Error().Err(err).Int("quest_id", quest.ID).Str("event_id", eventID).Msg("Service: Failed to persist derived prerequisites")
			return fmt.Errorf("updating prerequisites for quest %d: %w", quest.ID, err)
		}
		updated++
	}

	zlog.Info().Str("event_id", eventID).Int("quests_updated", updated).Msg("Service: Event prerequisites rebuilt")
	return nil
}

// deriveDynamicPrerequisites extracts prerequisite quest IDs from the
// quest's TASK_ID/EQ guard rules. Rules whose task ID does not resolve to a
// quest in the event are dropped. The combining condition comes from the
// guard config, defaulting to AND.
func deriveDynamicPrerequisites(quest *models.Quest, taskToQuest map[string]int) ([]int, models.PrerequisiteCondition) {
	condition := models.ConditionAnd
	dynamic := []int{}
	if quest.GuardConfig == nil {
		return dynamic, condition
	}
	if quest.GuardConfig.Condition == models.ConditionOr {
		condition = models.ConditionOr
	}

	for _, rule := range quest.GuardConfig.Rules {
		if rule.RuleType != models.RuleTypeTaskID || rule.Operator != models.OperatorEQ {
			continue
		}
		prereqID, ok := taskToQuest[rule.StringValue]
		if !ok {
			zlog.Debug().Int("quest_id", quest.ID).Str("task_id", rule.StringValue).Msg("Unresolved task reference in guard rule, skipping")
			continue
		}
		if prereqID == quest.ID {
			continue
		}
		dynamic = append(dynamic, prereqID)
	}

	return dynamic, condition
}

// SetCustomPrerequisites stores a manual prerequisite list after checking
// that every referenced quest exists and that the new edges do not close a
// dependency cycle.
func (s *prerequisiteServiceImpl) SetCustomPrerequisites(ctx context.Context, input *models.SetCustomPrerequisitesInput) error {
	quest, err := s.questRepo.GetQuestByID(ctx, input.QuestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuestNotFound
		}
		return fmt.Errorf("loading quest %d: %w", input.QuestID, err)
	}

	for _, prereqID := range input.PrerequisiteIDs {
		if prereqID == quest.ID {
			zlog.Warn().Int("quest_id", quest.ID).Msg("Service: Rejected self-referencing prerequisite")
			return ErrSelfPrerequisite
		}
	}

	if err := s.checkForCycle(ctx, quest.ID, input.PrerequisiteIDs); err != nil {
		return err
	}

	if err := s.questRepo.UpdateCustomPrerequisites(ctx, quest.ID, input.PrerequisiteIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuestNotFound
		}
		return fmt.Errorf("storing custom prerequisites for quest %d: %w", quest.ID, err)
	}

	zlog.Info().Int("quest_id", quest.ID).Ints("prerequisites", input.PrerequisiteIDs).Msg("Service: Custom prerequisites set")
	return nil
}

// checkForCycle walks the combined dynamic and custom prerequisite graph
// from each proposed prerequisite. Reaching the target quest again means
// the proposed edges would close a cycle. Quests may depend on quests in
// other events, so nodes are fetched lazily and memoized.
func (s *prerequisiteServiceImpl) checkForCycle(ctx context.Context, targetID int, prereqIDs []int) error {
	visited := make(map[int]bool)
	cache := make(map[int]*models.Quest)

	var visit func(id int) error
	visit = func(id int) error {
		if id == targetID {
			zlog.Warn().Int("quest_id", targetID).Int("via", id).Msg("Service: Prerequisite cycle detected")
			return ErrPrerequisiteCycle
		}
		if visited[id] {
			return nil
		}
		visited[id] = true

		quest, ok := cache[id]
		if !ok {
			var err error
			quest, err = s.questRepo.GetQuestByID(ctx, id)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrPrerequisiteNotFound
				}
				return fmt.Errorf("loading quest %d during cycle check: %w", id, err)
			}
			cache[id] = quest
		}

		for _, next := range quest.DynamicPrereqs {
			if err := visit(next); err != nil {
				return err
			}
		}
		for _, next := range quest.CustomPrereqs {
			if err := visit(next); err != nil {
				return err
			}
		}
		return nil
	}

	for _, prereqID := range prereqIDs {
		if err := visit(prereqID); err != nil {
			return err
		}
	}
	return nil
}

func (s *prerequisiteServiceImpl) GetQuestPrerequisites(ctx context.Context, questID int) (*models.QuestPrerequisites, error) {
	quest, err := s.questRepo.GetQuestByID(ctx, questID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("loading quest %d: %w", questID, err)
	}

	condition := quest.PrereqCondition
	if condition == "" {
		condition = models.ConditionAnd
	}

	return &models.QuestPrerequisites{
		QuestID:   quest.ID,
		Dynamic:   quest.DynamicPrereqs,
		Custom:    quest.CustomPrereqs,
		Condition: condition,
	}, nil
}

// ApplyCrossCampaignRules loads the quests of the given events and applies
// the cross-campaign dependency template. Quests are matched to template
// entries by the type of their tent and their display order, not by name,
// so renamed quests keep their wiring.
func (s *prerequisiteServiceImpl) ApplyCrossCampaignRules(ctx context.Context, input *models.CrossCampaignRulesInput) (int, error) {
	quests, err := s.questRepo.GetQuestsByEventIDs(ctx, input.EventIDs)
	if err != nil {
		return 0, fmt.Errorf("loading quests for cross-campaign rules: %w", err)
	}

	tentTypes := make(map[int]models.TentType)
	for _, eventID := range input.EventIDs {
		tents, err := s.tentRepo.GetTentsByEventID(ctx, eventID)
		if err != nil {
			return 0, fmt.Errorf("loading tents for event %s: %w", eventID, err)
		}
		for _, tent := range tents {
			tentTypes[tent.ID] = tent.TentType
		}
	}

	byLabel := make(map[string]*models.Quest, len(quests))
	for i := range quests {
		if quests[i].ParentID != nil {
			continue
		}
		tentType, ok := tentTypes[quests[i].TentID]
		if !ok {
			continue
		}
		label := fmt.Sprintf("%s_Quest_%d", tentType, quests[i].Order)
		byLabel[label] = &quests[i]
	}

	updated := 0
	for questLabel, prereqLabels := range crossCampaignTemplate {
		quest, ok := byLabel[questLabel]
		if !ok {
			zlog.Debug().Str("quest_label", questLabel).Msg("Cross-campaign target not present in loaded events, skipping")
			continue
		}

		prereqIDs := []int{}
		for _, prereqLabel := range prereqLabels {
			prereq, ok := byLabel[prereqLabel]
			if !ok {
				zlog.Debug().Str("quest_label", questLabel).Str("prerequisite_label", prereqLabel).Msg("Cross-campaign prerequisite missing, skipping edge")
				continue
			}
			prereqIDs = append(prereqIDs, prereq.ID)
		}
		if len(prereqIDs) == 0 {
			continue
		}

		if err := s.questRepo.UpdateCustomPrerequisites(ctx, quest.ID, prereqIDs); err != nil {
			zlog.Error().Err(err).Int("quest_id", quest.ID).Msg("Service: Failed to apply cross-campaign rule")
			return updated, fmt.Errorf("applying cross-campaign rule to quest %d: %w", quest.ID, err)
		}
		updated++
	}

	zlog.Info().Strs("event_ids", input.EventIDs).Int("quests_updated", updated).Msg("Service: Cross-campaign rules applied")
	return updated, nil
}

// IsQuestLocked evaluates the full gate for one quest: the derived
// prerequisites combined under the quest's condition, the custom
// prerequisites always combined with AND, and the remaining guard rules.
func (s *prerequisiteServiceImpl) IsQuestLocked(quest *models.Quest, completed map[int]bool, now time.Time) bool {
	dynamicMet := evaluatePrereqList(quest.DynamicPrereqs, quest.PrereqCondition, completed)
	customMet := evaluatePrereqList(quest.CustomPrereqs, models.ConditionAnd, completed)
	rulesMet := evaluateGuardRules(quest, now)

	return !dynamicMet || !customMet || !rulesMet
}

// evaluatePrereqList is vacuously satisfied for an empty list.
func evaluatePrereqList(prereqs []int, condition models.PrerequisiteCondition, completed map[int]bool) bool {
	if len(prereqs) == 0 {
		return true
	}
	if condition == models.ConditionOr {
		for _, id := range prereqs {
			if completed[id] {
				return true
			}
		}
		return false
	}
	for _, id := range prereqs {
		if !completed[id] {
			return false
		}
	}
	return true
}

// evaluateGuardRules checks the non-TASK_ID rules. TASK_ID rules are
// already folded into the dynamic prerequisite list; unknown rule types
// are treated as satisfied.
func evaluateGuardRules(quest *models.Quest, now time.Time) bool {
	if quest.GuardConfig == nil {
		return true
	}
	for _, rule := range quest.GuardConfig.Rules {
		switch rule.RuleType {
		case models.RuleTypeTaskID:
			continue
		case models.RuleTypeDate:
			if !evaluateDateRule(rule, now) {
				return false
			}
		case models.RuleTypeMaxParticipants:
			if !evaluateParticipantRule(rule, quest.ParticipantCount) {
				return false
			}
		default:
			continue
		}
	}
	return true
}

func evaluateDateRule(rule models.GuardRule, now time.Time) bool {
	if rule.DateValue == nil {
		return true
	}
	switch rule.Operator {
	case models.OperatorGT:
		return now.After(*rule.DateValue)
	case models.OperatorLT:
		return now.Before(*rule.DateValue)
	default:
		return true
	}
}

func evaluateParticipantRule(rule models.GuardRule, participantCount int) bool {
	if rule.IntValue == nil {
		return true
	}
	limit := *rule.IntValue
	switch rule.Operator {
	case models.OperatorLTE:
		return participantCount <= limit
	case models.OperatorLT:
		return participantCount < limit
	case models.OperatorGTE:
		return participantCount >= limit
	case models.OperatorGT:
		return participantCount > limit
	case models.OperatorEQ:
		return participantCount == limit
	default:
		return true
	}
}
