package minigame

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finquest/finquest/internal/domain"
	"github.com/finquest/finquest/internal/event"
	"github.com/finquest/finquest/internal/repository"
)

// MockMiniGameRepository implements repository.MiniGame for testing
type MockMiniGameRepository struct {
	mock.Mock
}

func (m *MockMiniGameRepository) InsertScore(ctx context.Context, score *domain.MiniGameScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *MockMiniGameRepository) ListScores(ctx context.Context, characterID string, limit int) ([]domain.MiniGameScore, error) {
	args := m.Called(ctx, characterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MiniGameScore), args.Error(1)
}

func (m *MockMiniGameRepository) GetBestScores(ctx context.Context, characterID string) ([]domain.MiniGameSummary, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MiniGameSummary), args.Error(1)
}

// MockCharacterRepository implements repository.Character for testing
type MockCharacterRepository struct {
	mock.Mock
}

func (m *MockCharacterRepository) CreateCharacter(ctx context.Context, character *domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) GetCharacterByID(ctx context.Context, characterID string) (*domain.Character, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterRepository) GetCharacterByUserID(ctx context.Context, userID string) (*domain.Character, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterRepository) UpdateCharacter(ctx context.Context, character domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) DeleteCharacter(ctx context.Context, characterID string) error {
	args := m.Called(ctx, characterID)
	return args.Error(0)
}

func (m *MockCharacterRepository) GetLeaderboard(ctx context.Context, metric domain.LeaderboardMetric, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, metric, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockCharacterRepository) GetRank(ctx context.Context, metric domain.LeaderboardMetric, characterID string) (int, error) {
	args := m.Called(ctx, metric, characterID)
	return args.Int(0), args.Error(1)
}

func (m *MockCharacterRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Tx), args.Error(1)
}

// MockTx implements repository.Tx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetCharacterForUpdate(ctx context.Context, characterID string) (*domain.Character, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockTx) UpdateCharacter(ctx context.Context, character domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockTx) UpsertQuestProgress(ctx context.Context, progress domain.QuestProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockTx) InsertAchievementUnlock(ctx context.Context, characterID string, achievementID int) (bool, error) {
	args := m.Called(ctx, characterID, achievementID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTx) InsertMiniGameScore(ctx context.Context, score domain.MiniGameScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *MockTx) InsertActivity(ctx context.Context, entry domain.ActivityLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// mockAchievementService implements achievement.Service for testing
type mockAchievementService struct {
	mock.Mock
}

func (m *mockAchievementService) ListWithStatus(ctx context.Context, characterID string) ([]domain.AchievementStatus, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AchievementStatus), args.Error(1)
}

func (m *mockAchievementService) ListUnlocked(ctx context.Context, characterID string) ([]domain.AchievementStatus, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AchievementStatus), args.Error(1)
}

func (m *mockAchievementService) EvaluateInTx(ctx context.Context, tx repository.Tx, character *domain.Character) ([]domain.Achievement, error) {
	args := m.Called(ctx, tx, character)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

// capturingPublisher records published events
type capturingPublisher struct {
	events []event.Event
}

func (p *capturingPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.events = append(p.events, evt)
}

type testDeps struct {
	repo   *MockMiniGameRepository
	chars  *MockCharacterRepository
	achSvc *mockAchievementService
	pub    *capturingPublisher
}

func newTestService() (Service, *testDeps) {
	d := &testDeps{
		repo:   new(MockMiniGameRepository),
		chars:  new(MockCharacterRepository),
		achSvc: new(mockAchievementService),
		pub:    &capturingPublisher{},
	}
	svc := NewService(d.repo, d.chars, d.achSvc, d.pub)
	return svc, d
}

func testCharacter() *domain.Character {
	return &domain.Character{
		ID:            "char-1",
		UserID:        "user-1",
		Level:         2,
		XP:            10,
		XPToNextLevel: 115,
		Gold:          decimal.NewFromInt(300),
	}
}

func TestRecordPlay_UnknownGame(t *testing.T) {
	svc, d := newTestService()

	_, err := svc.RecordPlay(context.Background(), "user-1", "poker", 80, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidGameType)
	d.chars.AssertNotCalled(t, "GetCharacterByUserID", mock.Anything, mock.Anything)
}

func TestRecordPlay_ScoreOutOfRange(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.RecordPlay(context.Background(), "user-1", domain.GameBudgetBalance, 101, nil)
	assert.ErrorIs(t, err, domain.ErrScoreOutOfRange)

	_, err = svc.RecordPlay(context.Background(), "user-1", domain.GameBudgetBalance, -1, nil)
	assert.ErrorIs(t, err, domain.ErrScoreOutOfRange)
}

func TestRecordPlay_AppliesRewards(t *testing.T) {
	svc, d := newTestService()
	character := testCharacter()
	d.chars.On("GetCharacterByUserID", mock.Anything, "user-1").Return(character, nil)

	tx := new(MockTx)
	d.chars.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetCharacterForUpdate", mock.Anything, "char-1").Return(character, nil)
	tx.On("InsertMiniGameScore", mock.Anything, mock.MatchedBy(func(s domain.MiniGameScore) bool {
		return s.GameType == domain.GameBudgetBalance && s.Score == 50
	})).Return(nil)
	tx.On("InsertActivity", mock.Anything, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.ActionType == domain.ActivityMiniGamePlayed
	})).Return(nil)
	d.achSvc.On("EvaluateInTx", mock.Anything, tx, character).Return([]domain.Achievement{}, nil)
	tx.On("UpdateCharacter", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	result, err := svc.RecordPlay(context.Background(), "user-1", domain.GameBudgetBalance, 50, map[string]any{"rounds": 3})

	require.NoError(t, err)
	assert.Equal(t, 50, result.Score)
	// score 50 is the baseline multiplier of 1.0
	assert.Positive(t, result.Reward.XP)
	assert.Equal(t, 10+result.Reward.XP, character.XP)
	assert.Nil(t, result.LevelUp)

	require.Len(t, d.pub.events, 1)
	assert.Equal(t, event.MiniGamePlayed, d.pub.events[0].Type)
	tx.AssertExpectations(t)
}

func TestRecordPlay_LevelUpAndUnlocks(t *testing.T) {
	svc, d := newTestService()
	character := testCharacter()
	character.XP = 110 // 5 short of the level 2 requirement
	d.chars.On("GetCharacterByUserID", mock.Anything, "user-1").Return(character, nil)

	tx := new(MockTx)
	d.chars.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetCharacterForUpdate", mock.Anything, "char-1").Return(character, nil)
	tx.On("InsertMiniGameScore", mock.Anything, mock.Anything).Return(nil)
	tx.On("InsertActivity", mock.Anything, mock.Anything).Return(nil)
	d.achSvc.On("EvaluateInTx", mock.Anything, tx, character).Return([]domain.Achievement{
		{ID: 3, Name: "Level 3", XPBonus: 0},
	}, nil)
	tx.On("UpdateCharacter", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	result, err := svc.RecordPlay(context.Background(), "user-1", domain.GameCompoundInterest, 100, nil)

	require.NoError(t, err)
	require.NotNil(t, result.LevelUp)
	assert.Equal(t, 3, result.LevelUp.NewLevel)
	require.Len(t, result.Unlocked, 1)

	types := make([]event.Type, 0, len(d.pub.events))
	for _, evt := range d.pub.events {
		types = append(types, evt.Type)
	}
	assert.Contains(t, types, event.MiniGamePlayed)
	assert.Contains(t, types, event.CharacterLevelUp)
	assert.Contains(t, types, event.AchievementUnlocked)
}

func TestHistory_ClampsLimit(t *testing.T) {
	svc, d := newTestService()
	d.chars.On("GetCharacterByUserID", mock.Anything, "user-1").Return(testCharacter(), nil)
	d.repo.On("ListScores", mock.Anything, "char-1", DefaultHistoryEntries).
		Return([]domain.MiniGameScore{{ID: 1}}, nil)

	scores, err := svc.History(context.Background(), "user-1", 0)

	require.NoError(t, err)
	assert.Len(t, scores, 1)
	d.repo.AssertExpectations(t)
}

func TestBestScores(t *testing.T) {
	svc, d := newTestService()
	d.chars.On("GetCharacterByUserID", mock.Anything, "user-1").Return(testCharacter(), nil)
	d.repo.On("GetBestScores", mock.Anything, "char-1").Return([]domain.MiniGameSummary{
		{GameType: domain.GameDebtPayoff, TimesPlayed: 4, BestScore: 92, AvgScore: 71.5},
	}, nil)

	summaries, err := svc.BestScores(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 92, summaries[0].BestScore)
}
