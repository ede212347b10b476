package achievement

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finquest/finquest/internal/domain"
)

// MockAchievementRepository implements repository.Achievement for testing
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) GetAchievementByID(ctx context.Context, achievementID int) (*domain.Achievement, error) {
	args := m.Called(ctx, achievementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) ListUnearned(ctx context.Context, characterID string) ([]domain.Achievement, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) ListUnlocks(ctx context.Context, characterID string) ([]domain.AchievementUnlock, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AchievementUnlock), args.Error(1)
}

func (m *MockAchievementRepository) InsertUnlock(ctx context.Context, characterID string, achievementID int) (bool, error) {
	args := m.Called(ctx, characterID, achievementID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAchievementRepository) CountUnlocks(ctx context.Context, characterID string) (int, error) {
	args := m.Called(ctx, characterID)
	return args.Int(0), args.Error(1)
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

func TestListWithStatus_FlagsUnlocks(t *testing.T) {
	repo := new(MockAchievementRepository)
	repo.On("ListAchievements", mock.Anything).Return([]domain.Achievement{
		{ID: 1, Name: "First Steps"},
		{ID: 2, Name: "Level 5"},
	}, nil)
	unlockedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repo.On("ListUnlocks", mock.Anything, "char-1").Return([]domain.AchievementUnlock{
		{CharacterID: "char-1", AchievementID: 1, UnlockedAt: unlockedAt},
	}, nil)

	svc := NewService(repo)
	statuses, err := svc.ListWithStatus(context.Background(), "char-1")

	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.True(t, statuses[0].Unlocked)
	require.NotNil(t, statuses[0].UnlockedAt)
	assert.Equal(t, unlockedAt, *statuses[0].UnlockedAt)
	assert.False(t, statuses[1].Unlocked)
	assert.Nil(t, statuses[1].UnlockedAt)
}

func TestListUnlocked_FiltersLocked(t *testing.T) {
	repo := new(MockAchievementRepository)
	repo.On("ListAchievements", mock.Anything).Return([]domain.Achievement{
		{ID: 1, Name: "First Steps"},
		{ID: 2, Name: "Level 5"},
	}, nil)
	repo.On("ListUnlocks", mock.Anything, "char-1").Return([]domain.AchievementUnlock{
		{CharacterID: "char-1", AchievementID: 2, UnlockedAt: time.Now()},
	}, nil)

	svc := NewService(repo)
	unlocked, err := svc.ListUnlocked(context.Background(), "char-1")

	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "Level 5", unlocked[0].Name)
}

func TestEvaluateInTx_AppliesBonusesThroughRollover(t *testing.T) {
	character := &domain.Character{
		ID:                   "char-1",
		Level:                1,
		XP:                   90,
		XPToNextLevel:        100,
		Gold:                 decimal.NewFromInt(100),
		TotalQuestsCompleted: 1,
	}

	repo := new(MockAchievementRepository)
	repo.On("ListUnearned", mock.Anything, "char-1").Return([]domain.Achievement{
		{ID: 1, Name: "First Steps", ConditionType: domain.ConditionQuestsCompleted,
			ConditionValue: decimal.NewFromInt(1), XPBonus: 25, GoldBonus: decimal.NewFromInt(10)},
	}, nil)

	tx := new(MockTx)
	tx.On("InsertAchievementUnlock", mock.Anything, "char-1", 1).Return(true, nil)
	tx.On("InsertActivity", mock.Anything, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.ActionType == domain.ActivityAchievementUnlocked && e.XPGained == 25
	})).Return(nil)

	svc := NewService(repo)
	unlocked, err := svc.EvaluateInTx(context.Background(), tx, character)

	require.NoError(t, err)
	require.Len(t, unlocked, 1)

	// 90 + 25 = 115 banked, level 1 requires 100: level up with 15 left over
	assert.Equal(t, 2, character.Level)
	assert.Equal(t, 15, character.XP)
	assert.True(t, character.Gold.Equal(decimal.NewFromInt(110)))
	tx.AssertExpectations(t)
}

func TestEvaluateInTx_LostRaceGrantsNothing(t *testing.T) {
	character := &domain.Character{
		ID:                   "char-1",
		Level:                1,
		XP:                   0,
		XPToNextLevel:        100,
		TotalQuestsCompleted: 1,
	}

	repo := new(MockAchievementRepository)
	repo.On("ListUnearned", mock.Anything, "char-1").Return([]domain.Achievement{
		{ID: 1, Name: "First Steps", ConditionType: domain.ConditionQuestsCompleted,
			ConditionValue: decimal.NewFromInt(1), XPBonus: 25},
	}, nil)

	tx := new(MockTx)
	tx.On("InsertAchievementUnlock", mock.Anything, "char-1", 1).Return(false, nil)

	svc := NewService(repo)
	unlocked, err := svc.EvaluateInTx(context.Background(), tx, character)

	require.NoError(t, err)
	assert.Empty(t, unlocked)
	assert.Equal(t, 0, character.XP, "a lost unlock race must not grant the bonus")
	tx.AssertNotCalled(t, "InsertActivity", mock.Anything, mock.Anything)
}

func TestEvaluateInTx_NothingMet(t *testing.T) {
	character := &domain.Character{ID: "char-1", Level: 1}

	repo := new(MockAchievementRepository)
	repo.On("ListUnearned", mock.Anything, "char-1").Return([]domain.Achievement{
		{ID: 2, Name: "Level 5", ConditionType: domain.ConditionLevel, ConditionValue: decimal.NewFromInt(5)},
	}, nil)

	tx := new(MockTx)

	svc := NewService(repo)
	unlocked, err := svc.EvaluateInTx(context.Background(), tx, character)

	require.NoError(t, err)
	assert.Empty(t, unlocked)
	tx.AssertNotCalled(t, "InsertAchievementUnlock", mock.Anything, mock.Anything, mock.Anything)
}
