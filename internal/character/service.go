package character

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

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

// Service manages the one-per-user character aggregate
type Service interface {
	Create(ctx context.Context, userID, name string) (*domain.Character, error)
	Get(ctx context.Context, userID string) (*domain.Character, error)
	GetProfile(ctx context.Context, userID string) (*domain.CharacterProfile, error)
	Rename(ctx context.Context, userID, name string) (*domain.Character, error)
	UpdateSnapshot(ctx context.Context, userID string, snapshot domain.FinancialSnapshot) (*domain.Character, []domain.Achievement, error)
	GetStats(ctx context.Context, userID string) (*domain.CharacterStats, error)
}

type service struct {
	repo         repository.Character
	questRepo    repository.Quest
	miniGameRepo repository.MiniGame
	activityRepo repository.Activity
	achievements achievement.Service
	publisher    Publisher
}

// NewService creates a new character service
func NewService(
	repo repository.Character,
	questRepo repository.Quest,
	miniGameRepo repository.MiniGame,
	activityRepo repository.Activity,
	achievements achievement.Service,
	publisher Publisher,
) Service {
	return &service{
		repo:         repo,
		questRepo:    questRepo,
		miniGameRepo: miniGameRepo,
		activityRepo: activityRepo,
		achievements: achievements,
		publisher:    publisher,
	}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < MinNameLength || len(name) > MaxNameLength {
		return "", fmt.Errorf("%w: character name must be %d-%d characters", domain.ErrInvalidInput, MinNameLength, MaxNameLength)
	}
	return name, nil
}

// Create rolls a new character with the fixed starting finances. A second
// create for the same user fails with domain.ErrCharacterExists.
func (s *service) Create(ctx context.Context, userID, name string) (*domain.Character, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	character := &domain.Character{
		UserID:        userID,
		Name:          name,
		Level:         StartingLevel,
		XP:            0,
		XPToNextLevel: progression.XPRequired(StartingLevel),
		Gold:          decimal.NewFromInt(StartingGold),
		Class:         progression.StartingClass,
		Wisdom:        StartingSkill,
		Discipline:    StartingSkill,
		RiskTolerance: StartingSkill,
		Negotiation:   StartingSkill,
		FinancialSnapshot: domain.FinancialSnapshot{
			Income:          decimal.NewFromInt(StartingIncome),
			Debt:            decimal.NewFromInt(StartingDebt),
			MonthlyExpenses: decimal.NewFromInt(StartingExpenses),
			SavingsRate:     decimal.NewFromInt(StartingSavingsRate),
			CreditScore:     StartingCreditScore,
		},
	}

	if err := s.repo.CreateCharacter(ctx, character); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	entry := &domain.ActivityLogEntry{
		CharacterID: character.ID,
		ActionType:  domain.ActivityCharacterCreated,
		Description: fmt.Sprintf("Created character %q", character.Name),
	}
	if err := s.activityRepo.InsertActivity(ctx, entry); err != nil {
		logger.FromContext(ctx).Warn("failed_to_log_character_creation", "character_id", character.ID, "error", err)
	}

	s.publisher.PublishWithRetry(ctx, event.Event{
		Version: event.SchemaVersion,
		Type:    event.CharacterCreated,
		Payload: map[string]any{"character_id": character.ID, "name": character.Name},
	})

	logger.FromContext(ctx).Info("character_created", "character_id", character.ID, "user_id", userID)
	return character, nil
}

// Get returns the bare persisted character row for a user.
func (s *service) Get(ctx context.Context, userID string) (*domain.Character, error) {
	return s.repo.GetCharacterByUserID(ctx, userID)
}

// GetProfile returns the character sheet with read-time derived fields
func (s *service) GetProfile(ctx context.Context, userID string) (*domain.CharacterProfile, error) {
	character, err := s.repo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.achievements.ListUnlocked(ctx, character.ID)
	if err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.ListActivity(ctx, character.ID, RecentActivityEntries)
	if err != nil {
		return nil, err
	}

	return &domain.CharacterProfile{
		Character:        character,
		FinancialHealth:  progression.FinancialHealth(character.FinancialSnapshot),
		AchievementCount: len(unlocked),
		RecentActivity:   activity,
	}, nil
}

// Rename changes the character's display name
func (s *service) Rename(ctx context.Context, userID, name string) (*domain.Character, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	character, err := s.repo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	character.Name = name
	if err := s.repo.UpdateCharacter(ctx, *character); err != nil {
		return nil, fmt.Errorf("failed to rename character: %w", err)
	}
	return character, nil
}

// validateSnapshot rejects impossible finances. Net worth may be negative
// (debts can exceed assets); everything else cannot.
func validateSnapshot(snapshot domain.FinancialSnapshot) error {
	for _, field := range []decimal.Decimal{
		snapshot.Income, snapshot.Debt, snapshot.EmergencyFund,
		snapshot.Investments, snapshot.MonthlyExpenses, snapshot.SavingsRate,
	} {
		if field.IsNegative() {
			return fmt.Errorf("%w: financial figures must not be negative", domain.ErrInvalidInput)
		}
	}
	if snapshot.CreditScore < 300 || snapshot.CreditScore > 850 {
		return fmt.Errorf("%w: credit score must be 300-850", domain.ErrInvalidInput)
	}
	return nil
}

// UpdateSnapshot replaces the character's simulated finances and re-runs the
// achievement evaluator, since zero_debt, emergency_fund, investments and
// credit_score conditions can newly hold. The whole apply is one transaction.
func (s *service) UpdateSnapshot(ctx context.Context, userID string, snapshot domain.FinancialSnapshot) (*domain.Character, []domain.Achievement, error) {
	if err := validateSnapshot(snapshot); err != nil {
		return nil, nil, err
	}

	existing, err := s.repo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	character, err := tx.GetCharacterForUpdate(ctx, existing.ID)
	if err != nil {
		return nil, nil, err
	}

	oldLevel := character.Level
	character.FinancialSnapshot = snapshot

	unlocked, err := s.achievements.EvaluateInTx(ctx, tx, character)
	if err != nil {
		return nil, nil, err
	}

	levelUps := collectLevelUps(character, oldLevel)

	if err := tx.UpdateCharacter(ctx, *character); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit snapshot update: %w", err)
	}

	s.publishUnlocks(ctx, character, unlocked)
	for _, lu := range levelUps {
		s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(character.ID, lu.NewLevel-1, lu.NewLevel, lu.NewClass))
	}

	return character, unlocked, nil
}

// collectLevelUps reconstructs level-up notifications from a level delta
// produced by achievement bonuses.
func collectLevelUps(character *domain.Character, oldLevel int) []domain.LevelUp {
	var ups []domain.LevelUp
	for level := oldLevel + 1; level <= character.Level; level++ {
		ups = append(ups, domain.LevelUp{
			NewLevel: level,
			NewClass: progression.ClassForLevel(level),
			XPToNext: progression.XPRequired(level),
		})
	}
	return ups
}

func (s *service) publishUnlocks(ctx context.Context, character *domain.Character, unlocked []domain.Achievement) {
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

// GetStats assembles the detailed stats view
func (s *service) GetStats(ctx context.Context, userID string) (*domain.CharacterStats, error) {
	character, err := s.repo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress, err := s.questRepo.ListProgressByCharacter(ctx, character.ID)
	if err != nil {
		return nil, err
	}

	var questStats domain.QuestStats
	var scoreSum int
	for _, p := range progress {
		switch p.Status {
		case domain.QuestStatusCompleted:
			questStats.Completed++
			scoreSum += p.Score
		case domain.QuestStatusFailed:
			questStats.Failed++
		default:
			questStats.InProgress++
		}
	}
	if questStats.Completed > 0 {
		questStats.AvgScore = float64(scoreSum) / float64(questStats.Completed)
	}

	miniGames, err := s.miniGameRepo.GetBestScores(ctx, character.ID)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.achievements.ListUnlocked(ctx, character.ID)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string]int)
	for _, a := range unlocked {
		byCategory[a.Category]++
	}

	return &domain.CharacterStats{
		Character:              character,
		FinancialHealth:        progression.FinancialHealth(character.FinancialSnapshot),
		QuestStats:             questStats,
		MiniGameStats:          miniGames,
		AchievementsByCategory: byCategory,
	}, nil
}
