package domain

import "github.com/shopspring/decimal"

// LeaderboardMetric selects the ordering of a leaderboard view.
type LeaderboardMetric string

const (
	LeaderboardByLevel    LeaderboardMetric = "level"
	LeaderboardByNetWorth LeaderboardMetric = "net_worth"
	LeaderboardByGold     LeaderboardMetric = "gold"
	LeaderboardByQuests   LeaderboardMetric = "quests"
)

// KnownLeaderboardMetrics lists every supported leaderboard ordering.
var KnownLeaderboardMetrics = []LeaderboardMetric{
	LeaderboardByLevel,
	LeaderboardByNetWorth,
	LeaderboardByGold,
	LeaderboardByQuests,
}

// IsKnownLeaderboardMetric reports whether metric is a supported ordering.
func IsKnownLeaderboardMetric(metric LeaderboardMetric) bool {
	for _, m := range KnownLeaderboardMetrics {
		if m == metric {
			return true
		}
	}
	return false
}

// LeaderboardEntry is one ranked row of a leaderboard view.
type LeaderboardEntry struct {
	Rank            int             `json:"rank"`
	CharacterID     string          `json:"character_id"`
	Name            string          `json:"name"`
	Level           int             `json:"level"`
	Class           string          `json:"class"`
	Value           decimal.Decimal `json:"value"`
	QuestsCompleted int             `json:"quests_completed"`
}

// Leaderboard is a ranked view plus the requesting character's own rank.
type Leaderboard struct {
	Metric  LeaderboardMetric  `json:"metric"`
	Entries []LeaderboardEntry `json:"entries"`
	MyRank  int                `json:"my_rank,omitempty"`
}
