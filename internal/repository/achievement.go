package repository

import (
	"context"

	"github.com/finquest/finquest/internal/domain"
)

// Achievement defines the interface for achievement persistence
type Achievement interface {
	GetAchievementByID(ctx context.Context, achievementID int) (*domain.Achievement, error)
	ListAchievements(ctx context.Context) ([]domain.Achievement, error)
	ListUnearned(ctx context.Context, characterID string) ([]domain.Achievement, error)
	ListUnlocks(ctx context.Context, characterID string) ([]domain.AchievementUnlock, error)

	// InsertUnlock is idempotent; it reports whether a new row was written.
	InsertUnlock(ctx context.Context, characterID string, achievementID int) (bool, error)
	CountUnlocks(ctx context.Context, characterID string) (int, error)
}
