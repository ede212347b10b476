package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPRequired(t *testing.T) {
	assert.Equal(t, 100, XPRequired(1))
	assert.Equal(t, 114, XPRequired(2)) // floor(100 * 1.15)
	assert.Equal(t, 132, XPRequired(3)) // floor(100 * 1.3225)

	// Levels below 1 are clamped to the level-1 requirement
	assert.Equal(t, 100, XPRequired(0))
	assert.Equal(t, 100, XPRequired(-3))
}

func TestXPRequiredStrictlyIncreasing(t *testing.T) {
	prev := XPRequired(1)
	for level := 2; level <= MaxLevel; level++ {
		current := XPRequired(level)
		assert.Greater(t, current, prev, "requirement must grow at level %d", level)
		prev = current
	}
}

func TestLevelFromTotalXP(t *testing.T) {
	tests := []struct {
		name    string
		totalXP int
		want    int
	}{
		{"zero XP", 0, 1},
		{"just below level 2", 99, 1},
		{"exactly level 2", 100, 2},
		{"just below level 3", 213, 2}, // 100 + 114 - 1
		{"exactly level 3", 214, 3},
		{"huge XP hits the cap", 100_000_000, MaxLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelFromTotalXP(tt.totalXP))
		})
	}
}

func TestLevelFromTotalXPMatchesRollover(t *testing.T) {
	// Accumulating from level 1 must agree with the incremental applier.
	for _, totalXP := range []int{0, 50, 100, 500, 12345, 1_000_000} {
		result := ProcessLevelUp(totalXP, 1)
		assert.Equal(t, LevelFromTotalXP(totalXP), result.NewLevel, "totalXP=%d", totalXP)
	}
}
