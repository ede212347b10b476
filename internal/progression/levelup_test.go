package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessLevelUpNoChange(t *testing.T) {
	result := ProcessLevelUp(50, 1)

	assert.Equal(t, 1, result.NewLevel)
	assert.Equal(t, 50, result.RemainingXP)
	assert.Equal(t, 100, result.XPToNextLevel)
	assert.Empty(t, result.LevelUps)
	assert.False(t, result.LeveledUp())
	assert.Equal(t, "Financial Apprentice", result.NewClass)
}

func TestProcessLevelUpSingleLevel(t *testing.T) {
	result := ProcessLevelUp(130, 1)

	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, 30, result.RemainingXP)
	assert.Equal(t, XPRequired(2), result.XPToNextLevel)
	require.Len(t, result.LevelUps, 1)
	assert.Equal(t, 2, result.LevelUps[0].NewLevel)
}

func TestProcessLevelUpMultiLevelOrdering(t *testing.T) {
	// Enough XP to cross levels 2, 3, and 4 from level 1:
	// 100 + 114 + 132 = 346, plus 10 left over.
	result := ProcessLevelUp(356, 1)

	require.Len(t, result.LevelUps, 3)
	assert.Equal(t, 4, result.NewLevel)
	assert.Equal(t, 10, result.RemainingXP)

	for i, up := range result.LevelUps {
		assert.Equal(t, i+2, up.NewLevel, "level-up events must ascend")
		assert.Equal(t, ClassForLevel(up.NewLevel), up.NewClass)
		assert.Equal(t, XPRequired(up.NewLevel), up.XPToNext)
	}
}

func TestProcessLevelUpClassBoundary(t *testing.T) {
	// Crossing from 4 to 5 changes the class tier.
	result := ProcessLevelUp(XPRequired(4), 4)

	require.Len(t, result.LevelUps, 1)
	assert.Equal(t, "Money Squire", result.LevelUps[0].NewClass)
	assert.Equal(t, "Money Squire", result.NewClass)
}

func TestProcessLevelUpCapAtFifty(t *testing.T) {
	result := ProcessLevelUp(100_000_000, 49)

	assert.Equal(t, MaxLevel, result.NewLevel)
	assert.Equal(t, 0, result.XPToNextLevel)
	require.Len(t, result.LevelUps, 1)

	// Excess XP is retained unspent at the cap
	assert.Equal(t, 100_000_000-XPRequired(49), result.RemainingXP)
}

func TestProcessLevelUpTerminalLevelIsInert(t *testing.T) {
	result := ProcessLevelUp(500_000, MaxLevel)

	assert.Equal(t, MaxLevel, result.NewLevel)
	assert.Equal(t, 500_000, result.RemainingXP)
	assert.Equal(t, 0, result.XPToNextLevel)
	assert.Empty(t, result.LevelUps)
}

func TestProcessLevelUpInvariant(t *testing.T) {
	// Post-rollover XP must be below the next requirement whenever the
	// character is not at the cap, for any starting point.
	for startLevel := 1; startLevel < MaxLevel; startLevel += 7 {
		for _, xp := range []int{0, 99, 100, 1234, 98765, 10_000_000} {
			result := ProcessLevelUp(xp, startLevel)
			assert.LessOrEqual(t, result.NewLevel, MaxLevel)
			if result.NewLevel < MaxLevel {
				assert.Less(t, result.RemainingXP, XPRequired(result.NewLevel),
					"start=%d xp=%d", startLevel, xp)
			}
		}
	}
}
