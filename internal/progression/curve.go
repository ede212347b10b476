package progression

import "math"

// XPRequired returns the XP needed to advance from the given level to the
// next one. The curve is strictly increasing and total for level >= 1.
// The level cap is enforced by ProcessLevelUp, not here: the requirement to
// leave the terminal level is never consulted.
func XPRequired(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(BaseXP * math.Pow(GrowthRate, float64(level-1))))
}

// LevelFromTotalXP computes the level reached by accumulating the per-level
// requirements from level 1. It is used for initialization and consistency
// checks; the hot path rolls XP incrementally via ProcessLevelUp.
func LevelFromTotalXP(totalXP int) int {
	level := 1
	remaining := totalXP
	for level < MaxLevel {
		required := XPRequired(level)
		if remaining < required {
			break
		}
		remaining -= required
		level++
	}
	return level
}
