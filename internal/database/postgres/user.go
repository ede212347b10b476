package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finquest/finquest/internal/domain"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	user_id, username, email, password_hash, avatar_url, is_active, last_login, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var avatar *string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &avatar, &u.IsActive, &u.LastLogin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	if avatar != nil {
		u.AvatarURL = *avatar
	}
	return &u, nil
}

// CreateUser inserts a new user. Username and email unique constraints
// surface as domain.ErrUserExists.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	user.IsActive = true

	query := `
		INSERT INTO users (user_id, username, email, password_hash, avatar_url, is_active, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.AvatarURL, user.IsActive, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID fetches a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND is_active`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetUserByUsername fetches a user by username, case-insensitively
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1) AND is_active`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

// GetUserByEmail fetches a user by email, case-insensitively
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1) AND is_active`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// SearchUsers returns active users whose username matches the query
func (r *UserRepository) SearchUsers(ctx context.Context, search string, limit int) ([]domain.User, error) {
	if limit <= 0 || limit > MaxSearchResults {
		limit = MaxSearchResults
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_active AND username ILIKE '%' || $1 || '%'
		ORDER BY username
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, search, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateLastLogin stamps the user's last successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	id, err := parseUUID(userID)
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// DeleteUser soft-deletes a user by deactivating the account
func (r *UserRepository) DeleteUser(ctx context.Context, userID string) error {
	id, err := parseUUID(userID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `UPDATE users SET is_active = false WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
