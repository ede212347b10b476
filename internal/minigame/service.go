package minigame

import (
	"context"
	"fmt"
	"time"

	"github.com/finquest/finquest/internal/achievement"
	"github.com/finquest/finquest/internal/domain"
	"github.com/finquest/finquest/internal/event"
	"github.com/finquest/finquest/internal/logger"
	"github.com/finquest/finquest/internal/progression"
	"github.com/finquest/finquest/internal/repository"
)

// Publisher publishes events without blocking on downstream failures
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// PlayResult is what one recorded mini-game play produced.
type PlayResult struct {
	GameType string                `json:"game_type"`
	Score    int                   `json:"score"`
	Reward   domain.MiniGameReward `json:"reward"`
	LevelUp  *domain.LevelUpResult `json:"level_up,omitempty"`
	Unlocked []domain.Achievement  `json:"unlocked_achievements,omitempty"`
}

// Service records mini-game plays and serves play history
type Service interface {
	RecordPlay(ctx context.Context, userID, gameType string, score int, data map[string]any) (*PlayResult, error)
	History(ctx context.Context, userID string, limit int) ([]domain.MiniGameScore, error)
	BestScores(ctx context.Context, userID string) ([]domain.MiniGameSummary, error)
}

type service struct {
	repo         repository.MiniGame
	charRepo     repository.Character
	achievements achievement.Service
	publisher    Publisher
}

// NewService creates a new mini-game service
func NewService(
	repo repository.MiniGame,
	charRepo repository.Character,
	achievements achievement.Service,
	publisher Publisher,
) Service {
	return &service{
		repo:         repo,
		charRepo:     charRepo,
		achievements: achievements,
		publisher:    publisher,
	}
}

// RecordPlay validates and applies one mini-game play: the score row, the
// reward, the activity entry and the achievement pass all land in a single
// transaction. The raw score is recorded as played; rewards scale with it.
func (s *service) RecordPlay(ctx context.Context, userID, gameType string, score int, data map[string]any) (*PlayResult, error) {
	if !domain.IsKnownGameType(gameType) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidGameType, gameType)
	}
	if score < MinScore || score > MaxScore {
		return nil, fmt.Errorf("%w: %d", domain.ErrScoreOutOfRange, score)
	}

	character, err := s.charRepo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reward := progression.CalculateMiniGameReward(gameType, score)

	tx, err := s.charRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	locked, err := tx.GetCharacterForUpdate(ctx, character.ID)
	if err != nil {
		return nil, err
	}
	oldLevel := locked.Level

	if err := tx.InsertMiniGameScore(ctx, domain.MiniGameScore{
		CharacterID: locked.ID,
		GameType:    gameType,
		Score:       score,
		Data:        data,
		PlayedAt:    time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	progression.ApplyXP(locked, reward.XP)
	progression.ApplyGold(locked, reward.Gold)

	entry := domain.ActivityLogEntry{
		CharacterID: locked.ID,
		ActionType:  domain.ActivityMiniGamePlayed,
		Description: fmt.Sprintf("Played %s (Score: %d)", gameType, score),
		XPGained:    reward.XP,
		GoldGained:  reward.Gold,
	}
	if err := tx.InsertActivity(ctx, entry); err != nil {
		return nil, err
	}

	unlocked, err := s.achievements.EvaluateInTx(ctx, tx, locked)
	if err != nil {
		return nil, err
	}

	if err := tx.UpdateCharacter(ctx, *locked); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit mini-game play: %w", err)
	}

	logger.FromContext(ctx).Info("minigame_played",
		"character_id", locked.ID,
		"game_type", gameType,
		"score", score,
		"xp", reward.XP)

	result := &PlayResult{
		GameType: gameType,
		Score:    score,
		Reward:   reward,
		Unlocked: unlocked,
	}
	if locked.Level > oldLevel {
		result.LevelUp = summarizeLevelUps(locked, oldLevel)
	}

	s.publishResults(ctx, locked, gameType, score, reward, oldLevel, unlocked)
	return result, nil
}

// History returns the character's most recent plays, newest first.
func (s *service) History(ctx context.Context, userID string, limit int) ([]domain.MiniGameScore, error) {
	character, err := s.charRepo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > MaxHistoryEntries {
		limit = DefaultHistoryEntries
	}
	return s.repo.ListScores(ctx, character.ID, limit)
}

// BestScores returns per-game aggregates for the character.
func (s *service) BestScores(ctx context.Context, userID string) ([]domain.MiniGameSummary, error) {
	character, err := s.charRepo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetBestScores(ctx, character.ID)
}

func summarizeLevelUps(character *domain.Character, oldLevel int) *domain.LevelUpResult {
	result := &domain.LevelUpResult{
		NewLevel:      character.Level,
		RemainingXP:   character.XP,
		XPToNextLevel: character.XPToNextLevel,
		NewClass:      character.Class,
	}
	for level := oldLevel + 1; level <= character.Level; level++ {
		result.LevelUps = append(result.LevelUps, domain.LevelUp{
			NewLevel: level,
			NewClass: progression.ClassForLevel(level),
			XPToNext: progression.XPRequired(level),
		})
	}
	return result
}

func (s *service) publishResults(
	ctx context.Context,
	character *domain.Character,
	gameType string,
	score int,
	reward domain.MiniGameReward,
	oldLevel int,
	unlocked []domain.Achievement,
) {
	s.publisher.PublishWithRetry(ctx, event.NewMiniGamePlayedEvent(event.MiniGamePayloadV1{
		CharacterID: character.ID,
		GameType:    gameType,
		Score:       score,
		XPGained:    reward.XP,
		GoldGained:  reward.Gold,
	}))

	for level := oldLevel + 1; level <= character.Level; level++ {
		s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(character.ID, level-1, level, progression.ClassForLevel(level)))
	}

	for _, a := range unlocked {
		s.publisher.PublishWithRetry(ctx, event.NewAchievementUnlockedEvent(event.AchievementUnlockedPayloadV1{
			CharacterID:   character.ID,
			AchievementID: a.ID,
			Name:          a.Name,
			XPBonus:       a.XPBonus,
			GoldBonus:     a.GoldBonus,
		}))
	}
}
