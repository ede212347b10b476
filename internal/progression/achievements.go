package progression

import (
	"fmt"

	"github.com/finquest/finquest/internal/domain"
)

// EvaluateAchievements scans unearned achievement definitions against the
// character's current state and returns every definition whose condition now
// holds. All qualifying achievements in one pass are returned together;
// evaluation order is unspecified. The caller is responsible for the
// idempotent unlock insert and for applying the bonus rewards.
//
// An unknown condition type is an error rather than a silent "not earned":
// it indicates a misauthored definition.
func EvaluateAchievements(character *domain.Character, unearned []domain.Achievement) ([]domain.Achievement, error) {
	var earned []domain.Achievement
	for _, achievement := range unearned {
		met, err := conditionMet(character, achievement)
		if err != nil {
			return nil, err
		}
		if met {
			earned = append(earned, achievement)
		}
	}
	return earned, nil
}

// conditionMet evaluates one achievement condition against character state.
// Cumulative, level, and amount conditions compare >= the threshold;
// zero_debt requires the debt to be exactly zero.
func conditionMet(c *domain.Character, a domain.Achievement) (bool, error) {
	switch a.ConditionType {
	case domain.ConditionQuestsCompleted:
		return int64(c.TotalQuestsCompleted) >= a.ConditionValue.IntPart(), nil
	case domain.ConditionLevel:
		return int64(c.Level) >= a.ConditionValue.IntPart(), nil
	case domain.ConditionGold:
		return c.TotalGoldEarned.GreaterThanOrEqual(a.ConditionValue), nil
	case domain.ConditionZeroDebt:
		return c.Debt.IsZero(), nil
	case domain.ConditionEmergencyFund:
		return c.EmergencyFund.GreaterThanOrEqual(a.ConditionValue), nil
	case domain.ConditionInvestments:
		return c.Investments.GreaterThanOrEqual(a.ConditionValue), nil
	case domain.ConditionCreditScore:
		return int64(c.CreditScore) >= a.ConditionValue.IntPart(), nil
	default:
		return false, fmt.Errorf("achievement %d: unknown condition type %q", a.ID, a.ConditionType)
	}
}
