package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Character represents a player's hero. One character exists per user,
// created at character creation and never deleted (archived with the user).
type Character struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Name          string          `json:"name"`
	Level         int             `json:"level"`
	XP            int             `json:"xp"`               // banked XP toward the next level
	XPToNextLevel int             `json:"xp_to_next_level"` // cached requirement for the current level, 0 at the cap
	Gold          decimal.Decimal `json:"gold"`
	Class         string          `json:"class"` // persisted cache of the class tier for Level

	// Skill stats
	Wisdom        int `json:"wisdom"`
	Discipline    int `json:"discipline"`
	RiskTolerance int `json:"risk_tolerance"`
	Negotiation   int `json:"negotiation"`

	FinancialSnapshot

	// Lifetime aggregates used by achievement conditions and the leaderboard
	TotalQuestsCompleted int             `json:"total_quests_completed"`
	TotalGoldEarned      decimal.Decimal `json:"total_gold_earned"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FinancialSnapshot holds the character's simulated personal finances.
// The financial health score is derived from these fields on demand.
type FinancialSnapshot struct {
	Income          decimal.Decimal `json:"income"`
	NetWorth        decimal.Decimal `json:"net_worth"`
	Debt            decimal.Decimal `json:"debt"`
	EmergencyFund   decimal.Decimal `json:"emergency_fund"`
	Investments     decimal.Decimal `json:"investments"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	SavingsRate     decimal.Decimal `json:"savings_rate"` // percent
	CreditScore     int             `json:"credit_score"` // 300-850
}

// StatRewards holds per-skill deltas granted by a passed quest.
type StatRewards struct {
	Wisdom        int `json:"wisdom,omitempty"`
	Discipline    int `json:"discipline,omitempty"`
	RiskTolerance int `json:"risk_tolerance,omitempty"`
	Negotiation   int `json:"negotiation,omitempty"`
}

// IsZero reports whether no stat deltas are present.
func (s StatRewards) IsZero() bool {
	return s.Wisdom == 0 && s.Discipline == 0 && s.RiskTolerance == 0 && s.Negotiation == 0
}

// CharacterProfile is the character sheet view: the persisted row plus
// fields derived at read time.
type CharacterProfile struct {
	*Character
	FinancialHealth  int                `json:"financial_health"`
	AchievementCount int                `json:"achievement_count"`
	RecentActivity   []ActivityLogEntry `json:"recent_activity"`
}

// CharacterStats is the detailed stats view returned by the character service.
type CharacterStats struct {
	Character              *Character        `json:"character"`
	FinancialHealth        int               `json:"financial_health"`
	QuestStats             QuestStats        `json:"quest_stats"`
	MiniGameStats          []MiniGameSummary `json:"mini_game_stats"`
	AchievementsByCategory map[string]int    `json:"achievements_by_category"`
}

// QuestStats aggregates a character's quest progress rows.
type QuestStats struct {
	Completed  int     `json:"completed"`
	InProgress int     `json:"in_progress"`
	Failed     int     `json:"failed"`
	AvgScore   float64 `json:"avg_score"`
}
