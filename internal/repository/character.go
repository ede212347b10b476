package repository

import (
	"context"

	"github.com/finquest/finquest/internal/domain"
)

// Character defines the interface for character persistence
type Character interface {
	CreateCharacter(ctx context.Context, character *domain.Character) error
	GetCharacterByID(ctx context.Context, characterID string) (*domain.Character, error)
	GetCharacterByUserID(ctx context.Context, userID string) (*domain.Character, error)
	UpdateCharacter(ctx context.Context, character domain.Character) error
	DeleteCharacter(ctx context.Context, characterID string) error

	GetLeaderboard(ctx context.Context, metric domain.LeaderboardMetric, limit int) ([]domain.LeaderboardEntry, error)
	GetRank(ctx context.Context, metric domain.LeaderboardMetric, characterID string) (int, error)

	BeginTx(ctx context.Context) (Tx, error)
}
