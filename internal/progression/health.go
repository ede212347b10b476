package progression

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/finquest/finquest/internal/domain"
)

// FinancialHealth computes the 0-100 composite health score from a
// character's financial snapshot. Four independently capped 25-point
// sub-scores are summed:
//
//   - emergency-fund coverage, full marks at six months of expenses
//   - debt-to-income ratio, full marks at zero debt, zero at a ratio of 0.5
//   - credit score, linear over the 300-850 range
//   - savings rate, full marks at 20 percent
//
// The result is rounded to the nearest integer and clamped to [0,100]. The
// score is recomputed on demand and never persisted.
func FinancialHealth(snapshot domain.FinancialSnapshot) int {
	score := 0.0

	monthsCovered := ratio(snapshot.EmergencyFund, snapshot.MonthlyExpenses)
	score += math.Min(SubScoreCap, monthsCovered*(SubScoreCap/FullCoverageMonths))

	dti := ratio(snapshot.Debt, snapshot.Income)
	score += math.Max(0, SubScoreCap-dti*DebtRatioPenalty)

	score += (float64(snapshot.CreditScore) - CreditScoreFloor) / CreditScoreRange * SubScoreCap

	savingsRate, _ := snapshot.SavingsRate.Float64()
	score += math.Min(SubScoreCap, savingsRate*(SubScoreCap/FullMarksSavingsRate))

	return int(math.Round(math.Min(100, math.Max(0, score))))
}

// ratio divides two decimal amounts as floats, treating a non-positive
// denominator as 1 to avoid division by zero.
func ratio(numerator, denominator decimal.Decimal) float64 {
	n, _ := numerator.Float64()
	d, _ := denominator.Float64()
	if d <= 0 {
		d = 1
	}
	return n / d
}
