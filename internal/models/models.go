package models

import (
	"time"
)

// TentType distinguishes the two campaign tracks a tent can belong to.
type TentType string

const (
	TentTypeSocial      TentType = "Social"
	TentTypeEducational TentType = "Educational"
)

// TentState tracks the campaign lifecycle, maintained by the external sync
// process.
type TentState string

const (
	TentStateDraft     TentState = "DRAFT"
	TentStateOngoing   TentState = "ONGOING"
	TentStateCompleted TentState = "COMPLETED"
	TentStateCancelled TentState = "CANCELLED"
)

// PrerequisiteCondition controls how a quest's prerequisite list is combined.
type PrerequisiteCondition string

const (
	ConditionAnd PrerequisiteCondition = "AND"
	ConditionOr  PrerequisiteCondition = "OR"
)

// Guard rule types understood by the rule engine. Unknown types are kept
// as-is and treated as satisfied during evaluation.
const (
	RuleTypeTaskID          = "TASK_ID"
	RuleTypeDate            = "DATE"
	RuleTypeMaxParticipants = "MAX_PARTICIPANTS"
)

// Guard rule operators.
const (
	OperatorEQ  = "EQ"
	OperatorGT  = "GT"
	OperatorLT  = "LT"
	OperatorGTE = "GTE"
	OperatorLTE = "LTE"
)

// GuardRule is a single gating condition attached to a quest. Which value
// field is meaningful depends on RuleType: TASK_ID uses StringValue,
// DATE uses DateValue, MAX_PARTICIPANTS uses IntValue.
type GuardRule struct {
	RuleType    string     `json:"rule_type" validate:"required"`
	Operator    string     `json:"operator" validate:"required,oneof=EQ GT LT GTE LTE"`
	StringValue string     `json:"string_value,omitempty"`
	IntValue    *int       `json:"int_value,omitempty"`
	DateValue   *time.Time `json:"date_value,omitempty"`
}

// GuardConfig is the raw gating configuration stored with a quest.
// Condition applies to the TASK_ID rules only; all other rules are
// always combined with AND.
type GuardConfig struct {
	Condition PrerequisiteCondition `json:"condition,omitempty" validate:"omitempty,oneof=AND OR"`
	Rules     []GuardRule           `json:"rules" validate:"dive"`
}

type Tent struct {
	ID           int       `json:"id"`
	EventID      string    `json:"event_id" validate:"required"`
	TentType     TentType  `json:"tent_type" validate:"required,oneof=Social Educational"`
	Name         string    `json:"name" validate:"required,min=1,max=255"`
	State        TentState `json:"state" validate:"omitempty,oneof=DRAFT ONGOING COMPLETED CANCELLED"`
	ValidTaskIDs []string  `json:"valid_task_ids"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

type Quest struct {
	ID               int                   `json:"id"`
	EventID          string                `json:"event_id" validate:"required"`
	TentID           int                   `json:"tent_id" validate:"required,gt=0"`
	TaskID           string                `json:"task_id" validate:"required"`
	Name             string                `json:"name" validate:"required,min=1,max=255"`
	Order            int                   `json:"order"`
	Points           int                   `json:"points" validate:"gte=0"`
	XPReward         int                   `json:"xp_reward" validate:"gte=0"`
	ParentID         *int                  `json:"parent_id,omitempty"` // set on quiz sub-questions
	GuardConfig      *GuardConfig          `json:"guard_config,omitempty"`
	DynamicPrereqs   []int                 `json:"dynamic_prerequisites"`
	CustomPrereqs    []int                 `json:"custom_prerequisites"`
	PrereqCondition  PrerequisiteCondition `json:"prerequisite_condition,omitempty"`
	ParticipantCount int                   `json:"participant_count"`
	CreatedAt        time.Time             `json:"created_at,omitzero"`
	UpdatedAt        time.Time             `json:"updated_at,omitzero"`
}

// QuestStatus is a quest decorated with the caller-specific lock and
// completion flags computed by the aggregator.
type QuestStatus struct {
	Quest
	IsCompleted bool `json:"is_completed"`
	IsLocked    bool `json:"is_locked"`
}

// TentStatus is a tent with its quests and the tent-level unlock flag.
type TentStatus struct {
	Tent
	IsLocked            bool          `json:"is_locked"`
	IsCompleted         bool          `json:"is_completed"`
	QuestCount          int           `json:"quest_count"`
	CompletedQuestCount int           `json:"completed_quest_count"`
	Quests              []QuestStatus `json:"quests"`
}

type ParticipationStatus string

const (
	ParticipationValid    ParticipationStatus = "VALID"
	ParticipationInvalid  ParticipationStatus = "INVALID"
	ParticipationPending  ParticipationStatus = "PENDING"
	ParticipationRejected ParticipationStatus = "REJECTED"
)

// ParticipationEntry records one task attempt inside a participation document.
type ParticipationEntry struct {
	TaskID      string              `json:"task_id" validate:"required"`
	Status      ParticipationStatus `json:"status" validate:"required,oneof=VALID INVALID PENDING REJECTED"`
	Points      int                 `json:"points"`
	XP          int                 `json:"xp"`
	CompletedAt time.Time           `json:"completed_at,omitzero"`
}

// UserTaskParticipation holds a user's task history for one event.
// Totals are derived from Entries and recomputed on every write.
type UserTaskParticipation struct {
	ID                  int                  `json:"id"`
	UserID              string               `json:"user_id" validate:"required"`
	EventID             string               `json:"event_id" validate:"required"`
	Entries             []ParticipationEntry `json:"entries"`
	TotalPoints         int                  `json:"total_points"`
	TotalXP             int                  `json:"total_xp"`
	CompletedTasksCount int                  `json:"completed_tasks_count"`
	CreatedAt           time.Time            `json:"created_at,omitzero"`
	UpdatedAt           time.Time            `json:"updated_at,omitzero"`
}

// SafetyStage is the 1..5 safety meter stage. Stage 3 is neutral.
type SafetyStage int

const (
	SafetyStageMin     SafetyStage = 1
	SafetyStageDefault SafetyStage = 3
	SafetyStageMax     SafetyStage = 5
)

// Bonus returns the XP adjustment for the stage: -10, -5, 0, +5, +10.
// Out-of-range stages adjust nothing.
func (s SafetyStage) Bonus() int {
	switch s {
	case 1:
		return -10
	case 2:
		return -5
	case 4:
		return 5
	case 5:
		return 10
	default:
		return 0
	}
}

type UserProgress struct {
	ID                      int         `json:"id"`
	UserID                  string      `json:"user_id" validate:"required"`
	Level                   int         `json:"level"`
	CurrentXP               int         `json:"current_xp"`
	TotalLifetimeXP         int         `json:"total_lifetime_xp"`
	SafetyStage             SafetyStage `json:"safety_stage"`
	XPMeterVisible          bool        `json:"xp_meter_visible"`
	SafetyMeterVisible      bool        `json:"safety_meter_visible"`
	LastLoginDate           *time.Time  `json:"last_login_date,omitzero"`
	LastSocialTaskDate      *time.Time  `json:"last_social_task_date,omitzero"`
	LastEducationalTaskDate *time.Time  `json:"last_educational_task_date,omitzero"`
	LastQuestCompletionDate *time.Time  `json:"last_quest_completion_date,omitzero"`
	LastSafetyCheck         *time.Time  `json:"last_safety_check,omitzero"`
	CreatedAt               time.Time   `json:"created_at,omitzero"`
	UpdatedAt               time.Time   `json:"updated_at,omitzero"`
}

type RewardType string

const (
	RewardTypeMysteryBox RewardType = "MYSTERY_BOX"
	RewardTypeMultiplier RewardType = "MULTIPLIER"
	RewardTypeBoth       RewardType = "BOTH"
)

type LevelReward struct {
	ID              int        `json:"id"`
	Level           int        `json:"level" validate:"required,gt=0"`
	RewardType      RewardType `json:"reward_type" validate:"required,oneof=MYSTERY_BOX MULTIPLIER BOTH"`
	MysteryBoxCount int        `json:"mystery_box_count,omitempty"`
	XPMultiplier    float64    `json:"xp_multiplier,omitempty"`
	CreatedAt       time.Time  `json:"created_at,omitzero"`
	UpdatedAt       time.Time  `json:"updated_at,omitzero"`
}

type ActivityType string

const (
	ActivityLogin           ActivityType = "LOGIN"
	ActivityQuestCompleted  ActivityType = "QUEST_COMPLETED"
	ActivitySocialTask      ActivityType = "SOCIAL_TASK"
	ActivityEducationalTask ActivityType = "EDUCATIONAL_TASK"
)

// --- Input structs ---

type SetCustomPrerequisitesInput struct {
	QuestID         int   `json:"quest_id" validate:"required,gt=0"`
	PrerequisiteIDs []int `json:"prerequisite_ids" validate:"required,dive,gt=0"`
}

type CrossCampaignRulesInput struct {
	EventIDs []string `json:"event_ids" validate:"required,min=1,dive,required"`
}

// QuestCompletionInput awards XP either explicitly via XPAmount or by
// referencing the completed quest, in which case its configured reward is
// used.
type QuestCompletionInput struct {
	UserID   string   `json:"user_id" validate:"required"`
	QuestID  int      `json:"quest_id,omitempty" validate:"omitempty,gt=0"`
	XPAmount int      `json:"xp_amount" validate:"gte=0"`
	TentType TentType `json:"tent_type,omitempty" validate:"omitempty,oneof=Social Educational"`
}

type UserActivityInput struct {
	UserID       string       `json:"user_id" validate:"required"`
	ActivityType ActivityType `json:"activity_type" validate:"required,oneof=LOGIN QUEST_COMPLETED SOCIAL_TASK EDUCATIONAL_TASK"`
	TentType     TentType     `json:"tent_type,omitempty" validate:"omitempty,oneof=Social Educational"`
}

type CheckMeterVisibilityInput struct {
	UserID string `json:"user_id" validate:"required"`
}

type StoreParticipationInput struct {
	UserID  string               `json:"user_id" validate:"required"`
	Entries []ParticipationEntry `json:"entries" validate:"required,min=1,dive"`
}

type SyncParticipationInput struct {
	Records []StoreParticipationInput `json:"records" validate:"required,min=1,dive"`
}

// --- Result structs ---

// XPAwardResult summarizes a single XP grant.
type XPAwardResult struct {
	UserID          string      `json:"user_id"`
	XPAwarded       int         `json:"xp_awarded"`
	Level           int         `json:"level"`
	CurrentXP       int         `json:"current_xp"`
	TotalLifetimeXP int         `json:"total_lifetime_xp"`
	LevelsGained    int         `json:"levels_gained"`
	LeveledUp       bool        `json:"leveled_up"`
	StageBonus      int         `json:"stage_bonus"`
	SafetyStage     SafetyStage `json:"safety_stage"`
}

type MeterVisibilityResult struct {
	UserID             string `json:"user_id"`
	CompletedCount     int    `json:"completed_count"`
	XPMeterVisible     bool   `json:"xp_meter_visible"`
	SafetyMeterVisible bool   `json:"safety_meter_visible"`
}

// SafetyCheckResult is the outcome of one decay sweep.
type SafetyCheckResult struct {
	UsersChecked  int      `json:"users_checked"`
	UsersDegraded int      `json:"users_degraded"`
	Errors        []string `json:"errors,omitempty"`
}

// QuestPrerequisites is the resolved prerequisite picture for one quest.
type QuestPrerequisites struct {
	QuestID   int                   `json:"quest_id"`
	Dynamic   []int                 `json:"dynamic_prerequisites"`
	Custom    []int                 `json:"custom_prerequisites"`
	Condition PrerequisiteCondition `json:"condition"`
}

type SyncResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

// UserProgressView is the user-facing progress snapshot. StageAdjustedXP
// applies the safety stage bonus once the safety meter is visible.
type UserProgressView struct {
	Progress           UserProgress `json:"progress"`
	StageAdjustedXP    int          `json:"stage_adjusted_xp"`
	CurrentLevelReward *LevelReward `json:"current_level_reward,omitempty"`
}

// Response is the standard API envelope.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
