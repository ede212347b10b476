package progression

// classTiers maps level thresholds to class labels, highest first.
// The resolved tier is the highest threshold at or below the level.
var classTiers = []struct {
	minLevel int
	name     string
}{
	{45, "Financial Grandmaster"},
	{40, "Wealth Sovereign"},
	{35, "Investment Sage"},
	{30, "Portfolio Architect"},
	{25, "Market Strategist"},
	{20, "Budget Warrior"},
	{15, "Savings Knight"},
	{10, "Finance Adept"},
	{5, "Money Squire"},
	{1, "Financial Apprentice"},
}

// StartingClass is the tier every new character begins in.
const StartingClass = "Financial Apprentice"

// ClassForLevel resolves the class tier label for a level. The tier is a
// pure function of level and is recomputed fresh each time; the persisted
// character.Class column is only a cache kept in sync by the applier.
func ClassForLevel(level int) string {
	for _, tier := range classTiers {
		if level >= tier.minLevel {
			return tier.name
		}
	}
	return StartingClass
}
