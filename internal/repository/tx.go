package repository

import (
	"context"

	"github.com/finquest/finquest/internal/domain"
)

// Tx defines the interface for transactional operations. A progression apply
// (quest submit, mini-game score, snapshot update) touches the character row,
// the progress row, unlock inserts and the activity log inside one Tx.
type Tx interface {
	GetCharacterForUpdate(ctx context.Context, characterID string) (*domain.Character, error)
	UpdateCharacter(ctx context.Context, character domain.Character) error
	UpsertQuestProgress(ctx context.Context, progress domain.QuestProgress) error
	InsertAchievementUnlock(ctx context.Context, characterID string, achievementID int) (bool, error)
	InsertMiniGameScore(ctx context.Context, score domain.MiniGameScore) error
	InsertActivity(ctx context.Context, entry domain.ActivityLogEntry) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
