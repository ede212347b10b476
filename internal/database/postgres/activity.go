package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finquest/finquest/internal/domain"
)

// ActivityRepository implements the activity log repository for PostgreSQL
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// InsertActivity appends one entry to a character's activity log
func (r *ActivityRepository) InsertActivity(ctx context.Context, entry *domain.ActivityLogEntry) error {
	return insertActivity(ctx, r.db, *entry)
}

// ListActivity returns a character's most recent activity entries
func (r *ActivityRepository) ListActivity(ctx context.Context, characterID string, limit int) ([]domain.ActivityLogEntry, error) {
	id, err := parseUUID(characterID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	query := `
		SELECT entry_id, character_id, action_type, description, xp_gained, gold_gained, created_at
		FROM activity_log
		WHERE character_id = $1
		ORDER BY created_at DESC, entry_id DESC
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity log: %w", err)
	}
	defer rows.Close()

	var entries []domain.ActivityLogEntry
	for rows.Next() {
		var e domain.ActivityLogEntry
		if err := rows.Scan(&e.ID, &e.CharacterID, &e.ActionType, &e.Description, &e.XPGained, &e.GoldGained, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// insertActivity is shared between the pool repository and the transaction.
func insertActivity(ctx context.Context, q querier, entry domain.ActivityLogEntry) error {
	id, err := parseUUID(entry.CharacterID)
	if err != nil {
		return err
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO activity_log (character_id, action_type, description, xp_gained, gold_gained, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := q.Exec(ctx, query, id, entry.ActionType, entry.Description, entry.XPGained, entry.GoldGained, createdAt); err != nil {
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}
	return nil
}
