package character

// Starting values for a freshly created character. Everyone begins with the
// same modest finances; progress comes from quests, not the starting roll.
const (
	StartingLevel         = 1
	StartingGold          = 500
	StartingIncome        = 2000
	StartingDebt          = 500
	StartingExpenses      = 1500
	StartingSavingsRate   = 5
	StartingCreditScore   = 650
	StartingSkill         = 5
	RecentActivityEntries = 10

	MinNameLength = 2
	MaxNameLength = 50
)
