package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/finquest/finquest/internal/domain"
	"github.com/finquest/finquest/internal/logger"
	"github.com/finquest/finquest/internal/repository"
)

const (
	// DefaultBoardSize is how many entries a board serves.
	DefaultBoardSize = 25

	// CacheTTL bounds how stale a served board may be.
	CacheTTL = 30 * time.Second

	// cacheSize covers one entry per metric with room to spare.
	cacheSize = 8
)

// Service serves ranked leaderboards
type Service interface {
	GetBoard(ctx context.Context, userID string, metric domain.LeaderboardMetric) (*domain.Leaderboard, error)
}

type service struct {
	charRepo repository.Character
	cache    *boardCache
}

// NewService creates a new leaderboard service
func NewService(charRepo repository.Character) Service {
	return &service{
		charRepo: charRepo,
		cache:    newBoardCache(cacheSize, CacheTTL),
	}
}

// GetBoard returns the ranked board for a metric plus the caller's own rank.
// Board entries are cached per metric; the caller's rank is always computed
// fresh so a player sees their own movement immediately.
func (s *service) GetBoard(ctx context.Context, userID string, metric domain.LeaderboardMetric) (*domain.Leaderboard, error) {
	if !domain.IsKnownLeaderboardMetric(metric) {
		return nil, fmt.Errorf("%w: unknown leaderboard metric %q", domain.ErrInvalidInput, metric)
	}

	entries, cached := s.cache.Get(metric)
	if !cached {
		var err error
		entries, err = s.charRepo.GetLeaderboard(ctx, metric, DefaultBoardSize)
		if err != nil {
			return nil, err
		}
		s.cache.Set(metric, entries)
	} else {
		logger.FromContext(ctx).Debug("leaderboard cache hit", "metric", string(metric))
	}

	board := &domain.Leaderboard{
		Metric:  metric,
		Entries: entries,
	}

	character, err := s.charRepo.GetCharacterByUserID(ctx, userID)
	if err == nil {
		rank, rankErr := s.charRepo.GetRank(ctx, metric, character.ID)
		if rankErr != nil {
			return nil, rankErr
		}
		board.MyRank = rank
	}

	return board, nil
}
