package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConditionType identifies which character aggregate an achievement
// condition is evaluated against. Using a dedicated type lets the
// evaluator switch exhaustively instead of comparing raw strings.
type ConditionType string

const (
	ConditionQuestsCompleted ConditionType = "quests_completed"
	ConditionLevel           ConditionType = "level"
	ConditionGold            ConditionType = "gold"
	ConditionZeroDebt        ConditionType = "zero_debt"
	ConditionEmergencyFund   ConditionType = "emergency_fund"
	ConditionInvestments     ConditionType = "investments"
	ConditionCreditScore     ConditionType = "credit_score"
)

// KnownConditionTypes lists every condition the evaluator handles.
var KnownConditionTypes = []ConditionType{
	ConditionQuestsCompleted,
	ConditionLevel,
	ConditionGold,
	ConditionZeroDebt,
	ConditionEmergencyFund,
	ConditionInvestments,
	ConditionCreditScore,
}

// Achievement is a static one-time unlockable milestone definition.
type Achievement struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Rarity         string          `json:"rarity"`
	ConditionType  ConditionType   `json:"condition_type"`
	ConditionValue decimal.Decimal `json:"condition_value"`
	XPBonus        int             `json:"xp_bonus"`
	GoldBonus      decimal.Decimal `json:"gold_bonus"`
}

// AchievementUnlock is the one-time fact that a character earned an
// achievement. The unlock set is monotonically non-decreasing.
type AchievementUnlock struct {
	CharacterID   string    `json:"character_id"`
	AchievementID int       `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// AchievementStatus pairs a definition with a character's unlock state.
type AchievementStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}
