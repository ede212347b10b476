package progression

// XP curve constants
const (
	// BaseXP is the XP required to advance from level 1
	BaseXP = 100.0

	// GrowthRate is the per-level multiplier of the XP curve:
	// XPRequired(level) = floor(BaseXP * GrowthRate^(level-1))
	GrowthRate = 1.15

	// MaxLevel is the terminal level. No further XP is required at the cap;
	// excess XP is retained unspent.
	MaxLevel = 50
)

// Quest grading constants
const (
	// PassThreshold is the fraction of questions that must be answered
	// correctly, rounded up to a whole question.
	PassThreshold = 0.6

	// PerfectScore is the percentage that sets the perfect-bonus flag.
	PerfectScore = 100
)

// Difficulty multipliers applied to quest rewards.
var difficultyMultipliers = map[string]float64{
	"beginner":     1.0,
	"intermediate": 1.25,
	"advanced":     1.5,
	"expert":       2.0,
}

// DefaultDifficultyMultiplier is used for unrecognized difficulty tiers.
const DefaultDifficultyMultiplier = 1.0

// Mini-game reward constants
const (
	// MiniGameBaselineScore is the score that yields a 1.0 multiplier.
	MiniGameBaselineScore = 50.0

	// MiniGameMaxMultiplier caps the mini-game score multiplier.
	MiniGameMaxMultiplier = 2.0

	// Fallback base rewards for unknown game types.
	FallbackGameXP   = 25
	FallbackGameGold = 12
)

// miniGameBaseRewards maps game types to their fixed base payouts.
// Mini-games have no difficulty tiering; only the score multiplier applies.
var miniGameBaseRewards = map[string]struct {
	xp   int
	gold int
}{
	"budget_balance":    {xp: 30, gold: 15},
	"compound_interest": {xp: 40, gold: 20},
	"debt_payoff":       {xp: 35, gold: 18},
	"investment_sim":    {xp: 50, gold: 25},
}

// Financial health sub-score constants. Each component contributes at most
// SubScoreCap points to the 0-100 composite.
const (
	SubScoreCap = 25.0

	// FullCoverageMonths is the emergency-fund coverage earning full marks.
	FullCoverageMonths = 6.0

	// DebtRatioPenalty scales the debt-to-income ratio; a ratio of 0.5
	// zeroes the sub-score.
	DebtRatioPenalty = 50.0

	// Credit scores are linearly mapped from the 300-850 range.
	CreditScoreFloor = 300.0
	CreditScoreRange = 550.0

	// FullMarksSavingsRate is the savings-rate percent earning full marks.
	FullMarksSavingsRate = 20.0
)
