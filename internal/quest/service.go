package quest

import (
	"context"
	"errors"
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

// SubmitResult is everything a submission produces: the grade, the rewards
// actually granted, level and achievement effects, and per-question feedback.
type SubmitResult struct {
	Score       domain.ScoreResult      `json:"score"`
	Rewards     *domain.Rewards         `json:"rewards,omitempty"`
	LevelUp     *domain.LevelUpResult   `json:"level_up,omitempty"`
	QuestStatus string                  `json:"quest_status"`
	Feedback    []domain.AnswerFeedback `json:"feedback"`
	Unlocked    []domain.Achievement    `json:"unlocked_achievements,omitempty"`
}

// Service manages the quest catalog and the submission pipeline
type Service interface {
	List(ctx context.Context, userID, difficulty string) ([]domain.QuestListing, error)
	Get(ctx context.Context, userID string, questID int) (*domain.QuestListing, error)
	Accept(ctx context.Context, userID string, questID int) (*domain.Quest, error)
	Submit(ctx context.Context, userID string, questID int, answers []int) (*SubmitResult, error)
}

type service struct {
	repo         repository.Quest
	charRepo     repository.Character
	activityRepo repository.Activity
	achievements achievement.Service
	publisher    Publisher
}

// NewService creates a new quest service
func NewService(
	repo repository.Quest,
	charRepo repository.Character,
	activityRepo repository.Activity,
	achievements achievement.Service,
	publisher Publisher,
) Service {
	return &service{
		repo:         repo,
		charRepo:     charRepo,
		activityRepo: activityRepo,
		achievements: achievements,
		publisher:    publisher,
	}
}

// List returns the quest catalog for a character: questions withheld,
// per-quest progress attached, and level locks computed.
func (s *service) List(ctx context.Context, userID, difficulty string) ([]domain.QuestListing, error) {
	character, err := s.charRepo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var quests []domain.Quest
	if difficulty != "" {
		quests, err = s.repo.ListQuestsByDifficulty(ctx, difficulty)
	} else {
		quests, err = s.repo.ListQuests(ctx)
	}
	if err != nil {
		return nil, err
	}

	progress, err := s.repo.ListProgressByCharacter(ctx, character.ID)
	if err != nil {
		return nil, err
	}
	progressByQuest := make(map[int]domain.QuestProgress, len(progress))
	for _, p := range progress {
		progressByQuest[p.QuestID] = p
	}

	listings := make([]domain.QuestListing, len(quests))
	for i, q := range quests {
		q.Questions = nil
		listing := domain.QuestListing{
			Quest:    q,
			IsLocked: q.MinLevel > character.Level,
		}
		if p, ok := progressByQuest[q.ID]; ok {
			listing.Progress = &p
		}
		listings[i] = listing
	}
	return listings, nil
}

// Get returns one quest with its questions prepared for play: the correct
// answer indexes and explanations are withheld until submission.
func (s *service) Get(ctx context.Context, userID string, questID int) (*domain.QuestListing, error) {
	character, err := s.charRepo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	quest, err := s.repo.GetQuestByID(ctx, questID)
	if err != nil {
		return nil, err
	}
	quest.Questions = sanitizeQuestions(quest.Questions)

	listing := &domain.QuestListing{
		Quest:    *quest,
		IsLocked: quest.MinLevel > character.Level,
	}
	if progress, err := s.repo.GetProgress(ctx, character.ID, questID); err == nil {
		listing.Progress = progress
	}
	return listing, nil
}

// sanitizeQuestions strips grading data from the play view.
func sanitizeQuestions(questions []domain.Question) []domain.Question {
	sanitized := make([]domain.Question, len(questions))
	for i, q := range questions {
		q.Correct = -1
		q.Explanation = ""
		sanitized[i] = q
	}
	return sanitized
}

// Accept opens (or reopens) a quest for a character. Quests below the
// character's level gate are refused; a completed or failed quest reopens
// with its score reset and the attempt counter bumped; an already-active
// acceptance conflicts.
func (s *service) Accept(ctx context.Context, userID string, questID int) (*domain.Quest, error) {
	character, err := s.charRepo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	quest, err := s.repo.GetQuestByID(ctx, questID)
	if err != nil {
		return nil, err
	}

	if character.Level < quest.MinLevel {
		return nil, fmt.Errorf("%w: quest requires level %d", domain.ErrLevelRequirement, quest.MinLevel)
	}

	progress := domain.QuestProgress{
		CharacterID: character.ID,
		QuestID:     quest.ID,
		Status:      domain.QuestStatusAccepted,
		StartedAt:   time.Now().UTC(),
	}

	existing, err := s.repo.GetProgress(ctx, character.ID, questID)
	switch {
	case err == nil:
		if existing.Status == domain.QuestStatusAccepted || existing.Status == domain.QuestStatusInProgress {
			return nil, domain.ErrQuestAlreadyAccepted
		}
		// Re-attempt: score resets, the attempt history survives.
		progress.Attempts = existing.Attempts + 1
	case !errors.Is(err, domain.ErrQuestNotAccepted):
		return nil, err
	}

	if err := s.repo.UpsertProgress(ctx, progress); err != nil {
		return nil, err
	}

	entry := &domain.ActivityLogEntry{
		CharacterID: character.ID,
		ActionType:  domain.ActivityQuestAccepted,
		Description: fmt.Sprintf("Accepted quest: %s", quest.Title),
	}
	if err := s.activityRepo.InsertActivity(ctx, entry); err != nil {
		logger.FromContext(ctx).Warn("failed to log quest acceptance", "error", err)
	}

	logger.FromContext(ctx).Info("quest_accepted",
		"character_id", character.ID,
		"quest_id", quest.ID,
		"attempt", progress.Attempts+1)

	quest.Questions = sanitizeQuestions(quest.Questions)
	return quest, nil
}

// Submit grades a quest attempt and applies its consequences atomically.
// A pass applies XP, gold and stat rewards through the level rollover,
// bumps the lifetime quest counter and re-runs the achievement evaluator;
// a fail mutates only the progress row and the activity log. Either way the
// whole apply is one transaction, and events go out only after commit.
func (s *service) Submit(ctx context.Context, userID string, questID int, answers []int) (*SubmitResult, error) {
	character, err := s.charRepo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	quest, err := s.repo.GetQuestByID(ctx, questID)
	if err != nil {
		return nil, err
	}

	progress, err := s.repo.GetProgress(ctx, character.ID, questID)
	if err != nil {
		return nil, err
	}
	if progress.Status == domain.QuestStatusCompleted || progress.Status == domain.QuestStatusFailed {
		return nil, domain.ErrQuestNotAccepted
	}

	score := progression.ScoreQuest(answers, quest.Questions)
	rewards := progression.CalculateRewards(quest, score)
	feedback := progression.Feedback(answers, quest.Questions)

	status := domain.QuestStatusFailed
	if score.Passed {
		status = domain.QuestStatusCompleted
	}

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

	now := time.Now().UTC()
	progress.Status = status
	progress.Score = score.Percentage
	progress.Answers = answers
	progress.CompletedAt = &now
	if err := tx.UpsertQuestProgress(ctx, *progress); err != nil {
		return nil, err
	}

	result := &SubmitResult{
		Score:       score,
		QuestStatus: status,
		Feedback:    feedback,
	}

	var unlocked []domain.Achievement
	if score.Passed {
		progression.ApplyXP(locked, rewards.XP)
		progression.ApplyGold(locked, rewards.Gold)
		progression.ApplyStatRewards(locked, rewards.StatRewards)
		locked.TotalQuestsCompleted++

		entry := domain.ActivityLogEntry{
			CharacterID: locked.ID,
			ActionType:  domain.ActivityQuestCompleted,
			Description: fmt.Sprintf("Completed quest: %s (Score: %d%%)", quest.Title, score.Percentage),
			XPGained:    rewards.XP,
			GoldGained:  rewards.Gold,
		}
		if err := tx.InsertActivity(ctx, entry); err != nil {
			return nil, err
		}

		unlocked, err = s.achievements.EvaluateInTx(ctx, tx, locked)
		if err != nil {
			return nil, err
		}

		if err := tx.UpdateCharacter(ctx, *locked); err != nil {
			return nil, err
		}

		result.Rewards = &rewards
		result.Unlocked = unlocked
		if locked.Level > oldLevel {
			result.LevelUp = summarizeLevelUps(locked, oldLevel)
		}
	} else {
		entry := domain.ActivityLogEntry{
			CharacterID: locked.ID,
			ActionType:  domain.ActivityQuestFailed,
			Description: fmt.Sprintf("Failed quest: %s (Score: %d%%)", quest.Title, score.Percentage),
		}
		if err := tx.InsertActivity(ctx, entry); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit quest submission: %w", err)
	}

	s.publishResults(ctx, locked, quest, score, rewards, oldLevel, unlocked)
	return result, nil
}

// summarizeLevelUps rebuilds the full rollover view across quest rewards and
// achievement bonuses in one response.
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
	quest *domain.Quest,
	score domain.ScoreResult,
	rewards domain.Rewards,
	oldLevel int,
	unlocked []domain.Achievement,
) {
	payload := event.QuestResultPayloadV1{
		CharacterID: character.ID,
		QuestID:     quest.ID,
		Title:       quest.Title,
		Percentage:  score.Percentage,
		Passed:      score.Passed,
	}
	if score.Passed {
		payload.XPGained = rewards.XP
		payload.GoldGained = rewards.Gold
	}
	s.publisher.PublishWithRetry(ctx, event.NewQuestResultEvent(payload))

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
