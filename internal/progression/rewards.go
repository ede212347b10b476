package progression

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/finquest/finquest/internal/domain"
)

// CalculateRewards converts a graded quest score into XP, gold, and stat
// deltas. Two multiplicative factors apply: the score multiplier
// (percentage/100) and the difficulty multiplier. XP is floored, gold is
// rounded to two decimal places. Stat rewards are granted in full only when
// the quest was passed.
//
// The perfect-bonus flag is informational; it carries no extra payout.
func CalculateRewards(quest *domain.Quest, score domain.ScoreResult) domain.Rewards {
	multiplier := float64(score.Percentage) / 100
	bonus, ok := difficultyMultipliers[quest.Difficulty]
	if !ok {
		bonus = DefaultDifficultyMultiplier
	}

	rewards := domain.Rewards{
		XP: int(math.Floor(float64(quest.XPReward) * multiplier * bonus)),
		Gold: quest.GoldReward.
			Mul(decimal.NewFromInt(int64(score.Percentage))).
			Div(decimal.NewFromInt(100)).
			Mul(decimal.NewFromFloat(bonus)).
			Round(2),
		PerfectBonus: score.Percentage == PerfectScore,
	}
	if score.Passed {
		rewards.StatRewards = quest.StatRewards
	}
	return rewards
}

// CalculateMiniGameReward computes the payout for one mini-game play from
// the per-game base table. The score multiplier is min(2, score/50), so a
// score of 50 is the baseline and rewards double at 100. Unknown game types
// fall back to a modest default payout.
func CalculateMiniGameReward(gameType string, score int) domain.MiniGameReward {
	baseXP, baseGold := FallbackGameXP, FallbackGameGold
	if base, ok := miniGameBaseRewards[gameType]; ok {
		baseXP, baseGold = base.xp, base.gold
	}

	multiplier := math.Min(MiniGameMaxMultiplier, float64(score)/MiniGameBaselineScore)

	return domain.MiniGameReward{
		XP: int(math.Floor(float64(baseXP) * multiplier)),
		Gold: decimal.NewFromInt(int64(baseGold)).
			Mul(decimal.NewFromFloat(multiplier)).
			Round(2),
	}
}
