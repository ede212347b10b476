package achievement

import (
	"context"
	"fmt"

	"github.com/finquest/finquest/internal/domain"
	"github.com/finquest/finquest/internal/logger"
	"github.com/finquest/finquest/internal/progression"
	"github.com/finquest/finquest/internal/repository"
)

// Service exposes achievement definitions and runs the evaluation pass on
// behalf of the quest, mini-game and character services.
type Service interface {
	ListWithStatus(ctx context.Context, characterID string) ([]domain.AchievementStatus, error)
	ListUnlocked(ctx context.Context, characterID string) ([]domain.AchievementStatus, error)
	EvaluateInTx(ctx context.Context, tx repository.Tx, character *domain.Character) ([]domain.Achievement, error)
}

type service struct {
	repo repository.Achievement
}

// NewService creates a new achievement service
func NewService(repo repository.Achievement) Service {
	return &service{repo: repo}
}

// ListWithStatus returns every definition flagged with this character's
// unlock state
func (s *service) ListWithStatus(ctx context.Context, characterID string) ([]domain.AchievementStatus, error) {
	achievements, err := s.repo.ListAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	unlocks, err := s.repo.ListUnlocks(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocks: %w", err)
	}

	unlockedAt := make(map[int]domain.AchievementUnlock, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementID] = u
	}

	statuses := make([]domain.AchievementStatus, len(achievements))
	for i, a := range achievements {
		status := domain.AchievementStatus{Achievement: a}
		if u, ok := unlockedAt[a.ID]; ok {
			status.Unlocked = true
			t := u.UnlockedAt
			status.UnlockedAt = &t
		}
		statuses[i] = status
	}
	return statuses, nil
}

// ListUnlocked returns only the achievements this character has earned,
// most recent first
func (s *service) ListUnlocked(ctx context.Context, characterID string) ([]domain.AchievementStatus, error) {
	statuses, err := s.ListWithStatus(ctx, characterID)
	if err != nil {
		return nil, err
	}

	unlocked := make([]domain.AchievementStatus, 0, len(statuses))
	for _, s := range statuses {
		if s.Unlocked {
			unlocked = append(unlocked, s)
		}
	}
	return unlocked, nil
}

// EvaluateInTx runs one evaluation pass against the character's current
// aggregates. Newly met achievements are unlocked inside tx, their XP and
// gold bonuses rolled through the leveling curve on the character, and an
// activity entry written per unlock. The caller persists the character and
// commits.
//
// The unlock insert is idempotent, so a concurrent evaluation of the same
// character cannot double-grant a bonus: only the transaction whose insert
// wins the race applies it.
func (s *service) EvaluateInTx(ctx context.Context, tx repository.Tx, character *domain.Character) ([]domain.Achievement, error) {
	unearned, err := s.repo.ListUnearned(ctx, character.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unearned achievements: %w", err)
	}

	met, err := progression.EvaluateAchievements(character, unearned)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate achievements: %w", err)
	}

	log := logger.FromContext(ctx)
	var unlocked []domain.Achievement
	for _, a := range met {
		inserted, err := tx.InsertAchievementUnlock(ctx, character.ID, a.ID)
		if err != nil {
			return nil, err
		}
		if !inserted {
			continue
		}

		progression.ApplyXP(character, a.XPBonus)
		progression.ApplyGold(character, a.GoldBonus)

		entry := domain.ActivityLogEntry{
			CharacterID: character.ID,
			ActionType:  domain.ActivityAchievementUnlocked,
			Description: fmt.Sprintf("Unlocked achievement: %s", a.Name),
			XPGained:    a.XPBonus,
			GoldGained:  a.GoldBonus,
		}
		if err := tx.InsertActivity(ctx, entry); err != nil {
			return nil, err
		}

		log.Info("achievement_unlocked",
			"character_id", character.ID,
			"achievement_id", a.ID,
			"name", a.Name)
		unlocked = append(unlocked, a)
	}
	return unlocked, nil
}
