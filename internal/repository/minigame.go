package repository

import (
	"context"

	"github.com/finquest/finquest/internal/domain"
)

// MiniGame defines the interface for mini-game score persistence
type MiniGame interface {
	InsertScore(ctx context.Context, score *domain.MiniGameScore) error
	ListScores(ctx context.Context, characterID string, limit int) ([]domain.MiniGameScore, error)
	GetBestScores(ctx context.Context, characterID string) ([]domain.MiniGameSummary, error)
}
