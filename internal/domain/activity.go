package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Activity action types
const (
	ActivityCharacterCreated    = "character_created"
	ActivityQuestAccepted       = "quest_accepted"
	ActivityQuestCompleted      = "quest_completed"
	ActivityQuestFailed         = "quest_failed"
	ActivityAchievementUnlocked = "achievement_unlocked"
	ActivityMiniGamePlayed      = "minigame_played"
)

// ActivityLogEntry is one row of the append-only progression audit trail.
// It exists for display only and is never read back as authoritative state.
type ActivityLogEntry struct {
	ID          int             `json:"id"`
	CharacterID string          `json:"character_id"`
	ActionType  string          `json:"action_type"`
	Description string          `json:"description"`
	XPGained    int             `json:"xp_gained"`
	GoldGained  decimal.Decimal `json:"gold_gained"`
	CreatedAt   time.Time       `json:"created_at"`
}
