package social

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finquest/finquest/internal/domain"
	"github.com/finquest/finquest/internal/repository"
)

// MockSocialRepository implements repository.Social for testing
type MockSocialRepository struct {
	mock.Mock
}

func (m *MockSocialRepository) CreateFriendRequest(ctx context.Context, friendship *domain.Friendship) error {
	args := m.Called(ctx, friendship)
	return args.Error(0)
}

func (m *MockSocialRepository) GetFriendship(ctx context.Context, userID, friendID string) (*domain.Friendship, error) {
	args := m.Called(ctx, userID, friendID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Friendship), args.Error(1)
}

func (m *MockSocialRepository) GetFriendshipByID(ctx context.Context, friendshipID int) (*domain.Friendship, error) {
	args := m.Called(ctx, friendshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Friendship), args.Error(1)
}

func (m *MockSocialRepository) UpdateFriendshipStatus(ctx context.Context, friendshipID int, status domain.FriendshipStatus) error {
	args := m.Called(ctx, friendshipID, status)
	return args.Error(0)
}

func (m *MockSocialRepository) DeleteFriendship(ctx context.Context, friendshipID int) error {
	args := m.Called(ctx, friendshipID)
	return args.Error(0)
}

func (m *MockSocialRepository) ListFriends(ctx context.Context, userID string) ([]domain.FriendEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FriendEntry), args.Error(1)
}

func (m *MockSocialRepository) ListPendingRequests(ctx context.Context, userID string) ([]domain.FriendEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FriendEntry), args.Error(1)
}

// MockUserRepository implements repository.User for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SearchUsers(ctx context.Context, query string, limit int) ([]domain.User, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
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

type testDeps struct {
	repo  *MockSocialRepository
	users *MockUserRepository
	chars *MockCharacterRepository
}

func newTestService() (Service, *testDeps) {
	d := &testDeps{
		repo:  new(MockSocialRepository),
		users: new(MockUserRepository),
		chars: new(MockCharacterRepository),
	}
	return NewService(d.repo, d.users, d.chars), d
}

func TestSendRequest_Succeeds(t *testing.T) {
	svc, d := newTestService()
	d.users.On("GetUserByUsername", mock.Anything, "croesus").
		Return(&domain.User{ID: "user-2", Username: "croesus"}, nil)
	d.repo.On("GetFriendship", mock.Anything, "user-1", "user-2").
		Return(nil, domain.ErrFriendshipNotFound)
	d.repo.On("CreateFriendRequest", mock.Anything, mock.MatchedBy(func(f *domain.Friendship) bool {
		return f.UserID == "user-1" && f.FriendID == "user-2" && f.Status == domain.FriendshipPending
	})).Return(nil)

	friendship, err := svc.SendRequest(context.Background(), "user-1", "croesus")

	require.NoError(t, err)
	assert.Equal(t, domain.FriendshipPending, friendship.Status)
	d.repo.AssertExpectations(t)
}

func TestSendRequest_Self(t *testing.T) {
	svc, d := newTestService()
	d.users.On("GetUserByUsername", mock.Anything, "penny").
		Return(&domain.User{ID: "user-1", Username: "penny"}, nil)

	_, err := svc.SendRequest(context.Background(), "user-1", "penny")

	assert.ErrorIs(t, err, domain.ErrSelfFriendship)
}

func TestSendRequest_DuplicateEitherDirection(t *testing.T) {
	svc, d := newTestService()
	d.users.On("GetUserByUsername", mock.Anything, "croesus").
		Return(&domain.User{ID: "user-2"}, nil)
	d.repo.On("GetFriendship", mock.Anything, "user-1", "user-2").
		Return(&domain.Friendship{ID: 4, UserID: "user-2", FriendID: "user-1"}, nil)

	_, err := svc.SendRequest(context.Background(), "user-1", "croesus")

	assert.ErrorIs(t, err, domain.ErrFriendshipExists)
	d.repo.AssertNotCalled(t, "CreateFriendRequest", mock.Anything, mock.Anything)
}

func TestSendRequest_UnknownUser(t *testing.T) {
	svc, d := newTestService()
	d.users.On("GetUserByUsername", mock.Anything, "ghost").
		Return(nil, domain.ErrUserNotFound)

	_, err := svc.SendRequest(context.Background(), "user-1", "ghost")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAcceptRequest_OnlyRecipient(t *testing.T) {
	svc, d := newTestService()
	d.repo.On("GetFriendshipByID", mock.Anything, 4).
		Return(&domain.Friendship{ID: 4, UserID: "user-1", FriendID: "user-2", Status: domain.FriendshipPending}, nil)

	// the sender cannot accept their own request
	err := svc.AcceptRequest(context.Background(), "user-1", 4)
	assert.ErrorIs(t, err, domain.ErrFriendshipNotFound)

	d.repo.On("UpdateFriendshipStatus", mock.Anything, 4, domain.FriendshipAccepted).Return(nil)
	err = svc.AcceptRequest(context.Background(), "user-2", 4)
	require.NoError(t, err)
	d.repo.AssertExpectations(t)
}

func TestAcceptRequest_AlreadyAccepted(t *testing.T) {
	svc, d := newTestService()
	d.repo.On("GetFriendshipByID", mock.Anything, 4).
		Return(&domain.Friendship{ID: 4, UserID: "user-1", FriendID: "user-2", Status: domain.FriendshipAccepted}, nil)

	err := svc.AcceptRequest(context.Background(), "user-2", 4)

	assert.ErrorIs(t, err, domain.ErrFriendshipNotFound)
}

func TestRemoveFriend_ParticipantsOnly(t *testing.T) {
	svc, d := newTestService()
	d.repo.On("GetFriendshipByID", mock.Anything, 4).
		Return(&domain.Friendship{ID: 4, UserID: "user-1", FriendID: "user-2"}, nil)

	err := svc.RemoveFriend(context.Background(), "user-3", 4)
	assert.ErrorIs(t, err, domain.ErrFriendshipNotFound)

	d.repo.On("DeleteFriendship", mock.Anything, 4).Return(nil)
	err = svc.RemoveFriend(context.Background(), "user-2", 4)
	require.NoError(t, err)
}

func TestSearchUsers_TooShort(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.SearchUsers(context.Background(), "user-1", " a ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchUsers_ExcludesSelfAndAttachesCharacters(t *testing.T) {
	svc, d := newTestService()
	d.users.On("SearchUsers", mock.Anything, "pen", MaxSearchResults).Return([]domain.User{
		{ID: "user-1", Username: "penny"},
		{ID: "user-2", Username: "penfold"},
	}, nil)
	d.chars.On("GetCharacterByUserID", mock.Anything, "user-2").
		Return(&domain.Character{Name: "Croesus", Level: 7, Class: "Budget Squire"}, nil)

	results, err := svc.SearchUsers(context.Background(), "user-1", "pen")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "penfold", results[0].Username)
	assert.Equal(t, "Croesus", results[0].CharacterName)
	assert.Equal(t, 7, results[0].Level)
}

func TestCompare_BuildsStatSheet(t *testing.T) {
	svc, d := newTestService()
	d.chars.On("GetCharacterByUserID", mock.Anything, "user-1").Return(&domain.Character{
		Name: "Penny", Level: 5, Wisdom: 8, Discipline: 6,
		TotalQuestsCompleted: 3,
		TotalGoldEarned:      decimal.NewFromInt(900),
		FinancialSnapshot: domain.FinancialSnapshot{
			NetWorth:    decimal.NewFromInt(1200),
			CreditScore: 700,
		},
	}, nil)
	d.chars.On("GetCharacterByUserID", mock.Anything, "user-2").Return(&domain.Character{
		Name: "Croesus", Level: 9, Wisdom: 12, Discipline: 10,
		TotalQuestsCompleted: 8,
		TotalGoldEarned:      decimal.NewFromInt(4000),
		FinancialSnapshot: domain.FinancialSnapshot{
			NetWorth:    decimal.NewFromInt(9000),
			CreditScore: 780,
		},
	}, nil)

	comparison, err := svc.Compare(context.Background(), "user-1", "user-2")

	require.NoError(t, err)
	assert.Equal(t, "Penny", comparison.MyCharacter)
	assert.Equal(t, "Croesus", comparison.FriendCharacter)
	level := comparison.Stats["level"]
	assert.True(t, level.Me.Equal(decimal.NewFromInt(5)))
	assert.True(t, level.Friend.Equal(decimal.NewFromInt(9)))
	netWorth := comparison.Stats["net_worth"]
	assert.True(t, netWorth.Friend.Equal(decimal.NewFromInt(9000)))
}

func TestCompare_MissingCharacter(t *testing.T) {
	svc, d := newTestService()
	d.chars.On("GetCharacterByUserID", mock.Anything, "user-1").
		Return(&domain.Character{Name: "Penny"}, nil)
	d.chars.On("GetCharacterByUserID", mock.Anything, "user-2").
		Return(nil, domain.ErrCharacterNotFound)

	_, err := svc.Compare(context.Background(), "user-1", "user-2")

	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}
