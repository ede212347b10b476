package progression

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finquest/finquest/internal/domain"
)

func testCharacter() *domain.Character {
	return &domain.Character{
		Level:                12,
		TotalQuestsCompleted: 10,
		TotalGoldEarned:      decimal.NewFromInt(500),
		FinancialSnapshot: domain.FinancialSnapshot{
			Debt:          decimal.Zero,
			EmergencyFund: decimal.NewFromInt(1000),
			Investments:   decimal.NewFromInt(250),
			CreditScore:   700,
		},
	}
}

func achievement(id int, condType domain.ConditionType, value int64) domain.Achievement {
	return domain.Achievement{
		ID:             id,
		Name:           "test",
		ConditionType:  condType,
		ConditionValue: decimal.NewFromInt(value),
	}
}

func TestEvaluateAchievements(t *testing.T) {
	character := testCharacter()

	tests := []struct {
		name       string
		definition domain.Achievement
		earned     bool
	}{
		{"quests completed met", achievement(1, domain.ConditionQuestsCompleted, 10), true},
		{"quests completed unmet", achievement(2, domain.ConditionQuestsCompleted, 11), false},
		{"level met", achievement(3, domain.ConditionLevel, 10), true},
		{"level unmet", achievement(4, domain.ConditionLevel, 20), false},
		{"gold met", achievement(5, domain.ConditionGold, 500), true},
		{"gold unmet", achievement(6, domain.ConditionGold, 501), false},
		{"zero debt", achievement(7, domain.ConditionZeroDebt, 0), true},
		{"emergency fund met", achievement(8, domain.ConditionEmergencyFund, 1000), true},
		{"investments unmet", achievement(9, domain.ConditionInvestments, 1000), false},
		{"credit score met", achievement(10, domain.ConditionCreditScore, 700), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			earned, err := EvaluateAchievements(character, []domain.Achievement{tt.definition})
			require.NoError(t, err)
			if tt.earned {
				assert.Len(t, earned, 1)
			} else {
				assert.Empty(t, earned)
			}
		})
	}
}

func TestEvaluateAchievementsZeroDebtIsStrict(t *testing.T) {
	character := testCharacter()
	character.Debt = decimal.RequireFromString("0.01")

	earned, err := EvaluateAchievements(character, []domain.Achievement{
		achievement(1, domain.ConditionZeroDebt, 0),
	})
	require.NoError(t, err)
	assert.Empty(t, earned)
}

func TestEvaluateAchievementsReturnsAllQualifying(t *testing.T) {
	character := testCharacter()

	earned, err := EvaluateAchievements(character, []domain.Achievement{
		achievement(1, domain.ConditionLevel, 5),
		achievement(2, domain.ConditionLevel, 40),
		achievement(3, domain.ConditionGold, 100),
		achievement(4, domain.ConditionZeroDebt, 0),
	})
	require.NoError(t, err)
	require.Len(t, earned, 3)

	ids := []int{earned[0].ID, earned[1].ID, earned[2].ID}
	assert.ElementsMatch(t, []int{1, 3, 4}, ids)
}

func TestEvaluateAchievementsUnknownCondition(t *testing.T) {
	character := testCharacter()

	_, err := EvaluateAchievements(character, []domain.Achievement{
		{ID: 99, ConditionType: "owns_a_yacht", ConditionValue: decimal.NewFromInt(1)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown condition type")
}

func TestEvaluateAchievementsEmptyInput(t *testing.T) {
	earned, err := EvaluateAchievements(testCharacter(), nil)
	require.NoError(t, err)
	assert.Empty(t, earned)
}
