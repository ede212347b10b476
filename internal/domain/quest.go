package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quest difficulty tiers
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyExpert       = "expert"
)

// Quest progress statuses
const (
	QuestStatusAccepted   = "accepted"
	QuestStatusInProgress = "in_progress"
	QuestStatusCompleted  = "completed"
	QuestStatusFailed     = "failed"
)

// Quest is a themed multi-question quiz. Definitions are static content,
// immutable after authoring.
type Quest struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Difficulty  string          `json:"difficulty"`
	MinLevel    int             `json:"min_level"`
	XPReward    int             `json:"xp_reward"`
	GoldReward  decimal.Decimal `json:"gold_reward"`
	StatRewards StatRewards     `json:"stat_rewards"`
	Questions   []Question      `json:"questions,omitempty"`
	OrderIndex  int             `json:"order_index"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Question is a single multiple-choice prompt within a quest.
type Question struct {
	Prompt      string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation,omitempty"`
}

// QuestProgress tracks one character's attempt state for a quest.
// At most one row exists per (character, quest) pair; re-acceptance after
// completion or failure resets the score and increments Attempts.
type QuestProgress struct {
	ID          int        `json:"id"`
	CharacterID string     `json:"character_id"`
	QuestID     int        `json:"quest_id"`
	Status      string     `json:"status"`
	Score       int        `json:"score"` // last percentage scored
	Attempts    int        `json:"attempts"`
	Answers     []int      `json:"answers"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// QuestListing is the list view of a quest for a specific character.
// Questions are withheld until the quest is opened.
type QuestListing struct {
	Quest
	Progress *QuestProgress `json:"progress,omitempty"`
	IsLocked bool           `json:"is_locked"`
}

// AnswerFeedback explains one graded question back to the player.
type AnswerFeedback struct {
	Question      string `json:"question"`
	YourAnswer    int    `json:"your_answer"`
	CorrectAnswer int    `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation,omitempty"`
}
