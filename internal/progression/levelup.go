package progression

import "github.com/finquest/finquest/internal/domain"

// ProcessLevelUp rolls banked XP through the leveling curve. Starting from
// the current level, it repeatedly subtracts the per-level requirement and
// increments the level until the remaining XP no longer covers it or the cap
// is reached. One LevelUp entry is recorded per level crossed, in ascending
// order, so a single submission can surface multi-level notifications.
//
// The iteration is bounded by the level cap: at level 50 any excess XP is
// retained unspent and XPToNextLevel reports 0.
func ProcessLevelUp(currentXP, currentLevel int) domain.LevelUpResult {
	level := currentLevel
	xp := currentXP
	var levelUps []domain.LevelUp

	for level < MaxLevel {
		required := XPRequired(level)
		if xp < required {
			break
		}
		xp -= required
		level++
		levelUps = append(levelUps, domain.LevelUp{
			NewLevel: level,
			NewClass: ClassForLevel(level),
			XPToNext: XPRequired(level),
		})
	}

	xpToNext := 0
	if level < MaxLevel {
		xpToNext = XPRequired(level)
	}

	return domain.LevelUpResult{
		NewLevel:      level,
		RemainingXP:   xp,
		XPToNextLevel: xpToNext,
		LevelUps:      levelUps,
		NewClass:      ClassForLevel(level),
	}
}
