package repository

import (
	"context"

	"github.com/finquest/finquest/internal/domain"
)

// Quest defines the interface for quest and quest-progress persistence
type Quest interface {
	GetQuestByID(ctx context.Context, questID int) (*domain.Quest, error)
	ListQuests(ctx context.Context) ([]domain.Quest, error)
	ListQuestsByDifficulty(ctx context.Context, difficulty string) ([]domain.Quest, error)

	GetProgress(ctx context.Context, characterID string, questID int) (*domain.QuestProgress, error)
	ListProgressByCharacter(ctx context.Context, characterID string) ([]domain.QuestProgress, error)
	UpsertProgress(ctx context.Context, progress domain.QuestProgress) error
}
