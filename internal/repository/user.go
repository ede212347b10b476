package repository

import (
	"context"

	"github.com/finquest/finquest/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]domain.User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
	DeleteUser(ctx context.Context, userID string) error
}
