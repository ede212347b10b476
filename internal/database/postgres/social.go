package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finquest/finquest/internal/domain"
)

// SocialRepository implements the friendship repository for PostgreSQL
type SocialRepository struct {
	db *pgxpool.Pool
}

// NewSocialRepository creates a new SocialRepository
func NewSocialRepository(db *pgxpool.Pool) *SocialRepository {
	return &SocialRepository{db: db}
}

// CreateFriendRequest inserts a pending friendship edge. The unique
// constraint on (user_id, friend_id) surfaces as domain.ErrFriendshipExists.
func (r *SocialRepository) CreateFriendRequest(ctx context.Context, friendship *domain.Friendship) error {
	userID, err := parseUUID(friendship.UserID)
	if err != nil {
		return err
	}
	friendID, err := parseUUID(friendship.FriendID)
	if err != nil {
		return err
	}

	friendship.Status = domain.FriendshipPending
	friendship.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO friendships (user_id, friend_id, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING friendship_id`
	err = r.db.QueryRow(ctx, query, userID, friendID, friendship.Status, friendship.CreatedAt).Scan(&friendship.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrFriendshipExists
		}
		return fmt.Errorf("failed to insert friend request: %w", err)
	}
	return nil
}

func scanFriendship(row pgx.Row) (*domain.Friendship, error) {
	var f domain.Friendship
	err := row.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("failed to scan friendship: %w", err)
	}
	return &f, nil
}

// GetFriendship fetches the edge between two users in either direction
func (r *SocialRepository) GetFriendship(ctx context.Context, userID, friendID string) (*domain.Friendship, error) {
	uID, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	fID, err := parseUUID(friendID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT friendship_id, user_id, friend_id, status, created_at
		FROM friendships
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`
	return scanFriendship(r.db.QueryRow(ctx, query, uID, fID))
}

// GetFriendshipByID fetches one friendship row
func (r *SocialRepository) GetFriendshipByID(ctx context.Context, friendshipID int) (*domain.Friendship, error) {
	query := `
		SELECT friendship_id, user_id, friend_id, status, created_at
		FROM friendships
		WHERE friendship_id = $1`
	return scanFriendship(r.db.QueryRow(ctx, query, friendshipID))
}

// UpdateFriendshipStatus moves a friendship through its lifecycle
func (r *SocialRepository) UpdateFriendshipStatus(ctx context.Context, friendshipID int, status domain.FriendshipStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE friendships SET status = $2 WHERE friendship_id = $1`, friendshipID, status)
	if err != nil {
		return fmt.Errorf("failed to update friendship status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFriendshipNotFound
	}
	return nil
}

// DeleteFriendship removes an edge (decline or unfriend)
func (r *SocialRepository) DeleteFriendship(ctx context.Context, friendshipID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM friendships WHERE friendship_id = $1`, friendshipID)
	if err != nil {
		return fmt.Errorf("failed to delete friendship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFriendshipNotFound
	}
	return nil
}

// ListFriends returns accepted friendships joined with the friend's account
// and character summary, regardless of who sent the request
func (r *SocialRepository) ListFriends(ctx context.Context, userID string) ([]domain.FriendEntry, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT f.friendship_id, u.user_id, u.username, COALESCE(u.avatar_url, ''),
			COALESCE(c.name, ''), COALESCE(c.level, 0), COALESCE(c.class, ''), f.created_at
		FROM friendships f
		JOIN users u ON u.user_id = CASE WHEN f.user_id = $1 THEN f.friend_id ELSE f.user_id END
		LEFT JOIN characters c ON c.user_id = u.user_id
		WHERE (f.user_id = $1 OR f.friend_id = $1) AND f.status = $2
		ORDER BY u.username`
	return r.listEntries(ctx, query, id, domain.FriendshipAccepted)
}

// ListPendingRequests returns requests awaiting this user's decision,
// joined with the sender's account and character summary
func (r *SocialRepository) ListPendingRequests(ctx context.Context, userID string) ([]domain.FriendEntry, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT f.friendship_id, u.user_id, u.username, COALESCE(u.avatar_url, ''),
			COALESCE(c.name, ''), COALESCE(c.level, 0), COALESCE(c.class, ''), f.created_at
		FROM friendships f
		JOIN users u ON u.user_id = f.user_id
		LEFT JOIN characters c ON c.user_id = u.user_id
		WHERE f.friend_id = $1 AND f.status = $2
		ORDER BY f.created_at DESC`
	return r.listEntries(ctx, query, id, domain.FriendshipPending)
}

func (r *SocialRepository) listEntries(ctx context.Context, query string, args ...any) ([]domain.FriendEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query friendships: %w", err)
	}
	defer rows.Close()

	var entries []domain.FriendEntry
	for rows.Next() {
		var e domain.FriendEntry
		if err := rows.Scan(&e.FriendshipID, &e.UserID, &e.Username, &e.AvatarURL,
			&e.CharacterName, &e.Level, &e.Class, &e.Since); err != nil {
			return nil, fmt.Errorf("failed to scan friend entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
