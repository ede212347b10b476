package social

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finquest/finquest/internal/domain"
	"github.com/finquest/finquest/internal/logger"
	"github.com/finquest/finquest/internal/repository"
)

const (
	// MinSearchQueryLength guards against scanning the whole user table.
	MinSearchQueryLength = 2

	// MaxSearchResults caps one search response.
	MaxSearchResults = 20
)

// SearchResult is one user search hit with their character summary, when
// a character exists.
type SearchResult struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	CharacterName string `json:"character_name,omitempty"`
	Level         int    `json:"level,omitempty"`
	Class         string `json:"class,omitempty"`
}

// StatPair is one compared metric between two characters.
type StatPair struct {
	Me     decimal.Decimal `json:"me"`
	Friend decimal.Decimal `json:"friend"`
}

// Comparison is a head-to-head stat comparison between two characters.
type Comparison struct {
	MyCharacter     string              `json:"my_character"`
	FriendCharacter string              `json:"friend_character"`
	Stats           map[string]StatPair `json:"stats"`
}

// Service manages the friend graph and social views
type Service interface {
	SendRequest(ctx context.Context, userID, friendUsername string) (*domain.Friendship, error)
	AcceptRequest(ctx context.Context, userID string, friendshipID int) error
	RemoveFriend(ctx context.Context, userID string, friendshipID int) error
	ListFriends(ctx context.Context, userID string) ([]domain.FriendEntry, error)
	ListPendingRequests(ctx context.Context, userID string) ([]domain.FriendEntry, error)
	SearchUsers(ctx context.Context, userID, query string) ([]SearchResult, error)
	Compare(ctx context.Context, userID, friendUserID string) (*Comparison, error)
}

type service struct {
	repo     repository.Social
	userRepo repository.User
	charRepo repository.Character
}

// NewService creates a new social service
func NewService(repo repository.Social, userRepo repository.User, charRepo repository.Character) Service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		charRepo: charRepo,
	}
}

// SendRequest opens a pending friendship toward the named user. Requests to
// yourself and duplicate edges in either direction are refused.
func (s *service) SendRequest(ctx context.Context, userID, friendUsername string) (*domain.Friendship, error) {
	friend, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(friendUsername))
	if err != nil {
		return nil, err
	}

	if friend.ID == userID {
		return nil, domain.ErrSelfFriendship
	}

	_, err = s.repo.GetFriendship(ctx, userID, friend.ID)
	switch {
	case err == nil:
		return nil, domain.ErrFriendshipExists
	case !errors.Is(err, domain.ErrFriendshipNotFound):
		return nil, err
	}

	friendship := &domain.Friendship{
		UserID:   userID,
		FriendID: friend.ID,
		Status:   domain.FriendshipPending,
	}
	if err := s.repo.CreateFriendRequest(ctx, friendship); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("friend_request_sent",
		"user_id", userID,
		"friend_id", friend.ID)
	return friendship, nil
}

// AcceptRequest activates a pending friendship. Only the recipient of the
// request may accept it; anyone else sees not-found rather than a hint that
// the request exists.
func (s *service) AcceptRequest(ctx context.Context, userID string, friendshipID int) error {
	friendship, err := s.repo.GetFriendshipByID(ctx, friendshipID)
	if err != nil {
		return err
	}

	if friendship.FriendID != userID || friendship.Status != domain.FriendshipPending {
		return domain.ErrFriendshipNotFound
	}

	if err := s.repo.UpdateFriendshipStatus(ctx, friendshipID, domain.FriendshipAccepted); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("friend_request_accepted",
		"friendship_id", friendshipID,
		"user_id", userID)
	return nil
}

// RemoveFriend deletes a friendship edge. Either participant may remove it;
// pending requests can be declined by the recipient or withdrawn by the
// sender the same way.
func (s *service) RemoveFriend(ctx context.Context, userID string, friendshipID int) error {
	friendship, err := s.repo.GetFriendshipByID(ctx, friendshipID)
	if err != nil {
		return err
	}

	if friendship.UserID != userID && friendship.FriendID != userID {
		return domain.ErrFriendshipNotFound
	}

	return s.repo.DeleteFriendship(ctx, friendshipID)
}

// ListFriends returns accepted friendships with character summaries,
// highest level first.
func (s *service) ListFriends(ctx context.Context, userID string) ([]domain.FriendEntry, error) {
	return s.repo.ListFriends(ctx, userID)
}

// ListPendingRequests returns requests awaiting this user's decision.
func (s *service) ListPendingRequests(ctx context.Context, userID string) ([]domain.FriendEntry, error) {
	return s.repo.ListPendingRequests(ctx, userID)
}

// SearchUsers finds users by username substring, excluding the searcher.
// Character summaries are attached where one exists.
func (s *service) SearchUsers(ctx context.Context, userID, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < MinSearchQueryLength {
		return nil, fmt.Errorf("%w: search query must be at least %d characters", domain.ErrInvalidInput, MinSearchQueryLength)
	}

	users, err := s.userRepo.SearchUsers(ctx, query, MaxSearchResults)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(users))
	for _, u := range users {
		if u.ID == userID {
			continue
		}
		result := SearchResult{
			UserID:    u.ID,
			Username:  u.Username,
			AvatarURL: u.AvatarURL,
		}
		if character, err := s.charRepo.GetCharacterByUserID(ctx, u.ID); err == nil {
			result.CharacterName = character.Name
			result.Level = character.Level
			result.Class = character.Class
		}
		results = append(results, result)
	}
	return results, nil
}

// Compare builds a head-to-head stat sheet between the caller's character
// and another user's. Both sides must have a character.
func (s *service) Compare(ctx context.Context, userID, friendUserID string) (*Comparison, error) {
	mine, err := s.charRepo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := s.charRepo.GetCharacterByUserID(ctx, friendUserID)
	if err != nil {
		return nil, err
	}

	intPair := func(me, friend int) StatPair {
		return StatPair{Me: decimal.NewFromInt(int64(me)), Friend: decimal.NewFromInt(int64(friend))}
	}

	return &Comparison{
		MyCharacter:     mine.Name,
		FriendCharacter: theirs.Name,
		Stats: map[string]StatPair{
			"level":            intPair(mine.Level, theirs.Level),
			"net_worth":        {Me: mine.NetWorth, Friend: theirs.NetWorth},
			"credit_score":     intPair(mine.CreditScore, theirs.CreditScore),
			"quests_completed": intPair(mine.TotalQuestsCompleted, theirs.TotalQuestsCompleted),
			"gold_earned":      {Me: mine.TotalGoldEarned, Friend: theirs.TotalGoldEarned},
			"wisdom":           intPair(mine.Wisdom, theirs.Wisdom),
			"discipline":       intPair(mine.Discipline, theirs.Discipline),
		},
	}, nil
}
