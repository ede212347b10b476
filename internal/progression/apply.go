package progression

import (
	"github.com/shopspring/decimal"

	"github.com/finquest/finquest/internal/domain"
)

// ApplyXP banks XP on the character and rolls it through the leveling curve,
// updating Level, XP, XPToNextLevel and the cached Class in place.
func ApplyXP(character *domain.Character, xp int) domain.LevelUpResult {
	result := ProcessLevelUp(character.XP+xp, character.Level)
	character.Level = result.NewLevel
	character.XP = result.RemainingXP
	character.XPToNextLevel = result.XPToNextLevel
	character.Class = result.NewClass
	return result
}

// ApplyGold credits gold to the character's balance and lifetime total.
// Negative amounts are ignored; nothing in progression ever debits gold.
func ApplyGold(character *domain.Character, gold decimal.Decimal) {
	if gold.Sign() <= 0 {
		return
	}
	character.Gold = character.Gold.Add(gold)
	character.TotalGoldEarned = character.TotalGoldEarned.Add(gold)
}

// ApplyStatRewards adds per-skill deltas to the character's stats.
func ApplyStatRewards(character *domain.Character, stats domain.StatRewards) {
	character.Wisdom += stats.Wisdom
	character.Discipline += stats.Discipline
	character.RiskTolerance += stats.RiskTolerance
	character.Negotiation += stats.Negotiation
}
