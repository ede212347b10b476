package repository

import (
	"context"

	"github.com/finquest/finquest/internal/domain"
)

// Social defines the interface for friendship persistence
type Social interface {
	CreateFriendRequest(ctx context.Context, friendship *domain.Friendship) error
	GetFriendship(ctx context.Context, userID, friendID string) (*domain.Friendship, error)
	GetFriendshipByID(ctx context.Context, friendshipID int) (*domain.Friendship, error)
	UpdateFriendshipStatus(ctx context.Context, friendshipID int, status domain.FriendshipStatus) error
	DeleteFriendship(ctx context.Context, friendshipID int) error
	ListFriends(ctx context.Context, userID string) ([]domain.FriendEntry, error)
	ListPendingRequests(ctx context.Context, userID string) ([]domain.FriendEntry, error)
}
