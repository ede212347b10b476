package domain

import "github.com/shopspring/decimal"

// ScoreResult is the outcome of grading a quest submission.
type ScoreResult struct {
	Correct    int  `json:"correct"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
	Passed     bool `json:"passed"`
}

// Rewards is what a graded quest pays out before it is applied to a
// character. Stat rewards are zero unless the quest was passed.
type Rewards struct {
	XP           int             `json:"xp"`
	Gold         decimal.Decimal `json:"gold"`
	StatRewards  StatRewards     `json:"stat_rewards"`
	PerfectBonus bool            `json:"perfect_bonus"`
}

// MiniGameReward is the payout for one mini-game play.
type MiniGameReward struct {
	XP   int             `json:"xp"`
	Gold decimal.Decimal `json:"gold"`
}

// LevelUp records a single level crossing during one progression pass.
type LevelUp struct {
	NewLevel int    `json:"new_level"`
	NewClass string `json:"new_class"`
	XPToNext int    `json:"xp_to_next"`
}

// LevelUpResult is the final character progression state after banked XP
// has been rolled through the leveling curve.
type LevelUpResult struct {
	NewLevel      int       `json:"new_level"`
	RemainingXP   int       `json:"remaining_xp"`
	XPToNextLevel int       `json:"xp_to_next_level"` // 0 at the level cap
	LevelUps      []LevelUp `json:"level_ups"`
	NewClass      string    `json:"new_class"`
}

// LeveledUp reports whether at least one level was crossed.
func (r LevelUpResult) LeveledUp() bool {
	return len(r.LevelUps) > 0
}
