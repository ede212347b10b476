package domain

import "time"

// Mini-game types
const (
	GameBudgetBalance    = "budget_balance"
	GameCompoundInterest = "compound_interest"
	GameDebtPayoff       = "debt_payoff"
	GameInvestmentSim    = "investment_sim"
)

// KnownGameTypes lists every game type the API accepts.
var KnownGameTypes = []string{
	GameBudgetBalance,
	GameCompoundInterest,
	GameDebtPayoff,
	GameInvestmentSim,
}

// IsKnownGameType reports whether gameType is an accepted mini-game.
func IsKnownGameType(gameType string) bool {
	for _, g := range KnownGameTypes {
		if g == gameType {
			return true
		}
	}
	return false
}

// MiniGameScore is one play of a mini-game. Scores are an append-only log;
// best scores are derived by max-aggregation.
type MiniGameScore struct {
	ID          int            `json:"id"`
	CharacterID string         `json:"character_id"`
	GameType    string         `json:"game_type"`
	Score       int            `json:"score"` // 0-100
	Data        map[string]any `json:"data,omitempty"`
	PlayedAt    time.Time      `json:"played_at"`
}

// MiniGameSummary aggregates a character's plays for one game type.
type MiniGameSummary struct {
	GameType    string  `json:"game_type"`
	TimesPlayed int     `json:"times_played"`
	BestScore   int     `json:"best_score"`
	AvgScore    float64 `json:"avg_score"`
}
