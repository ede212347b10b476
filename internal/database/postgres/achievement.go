package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finquest/finquest/internal/domain"
)

// AchievementRepository implements the achievement repository for PostgreSQL
type AchievementRepository struct {
	db *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

const achievementColumns = `
	achievement_id, name, description, category, rarity,
	condition_type, condition_value, xp_bonus, gold_bonus`

func scanAchievement(row pgx.Row) (*domain.Achievement, error) {
	var a domain.Achievement
	err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.Category, &a.Rarity,
		&a.ConditionType, &a.ConditionValue, &a.XPBonus, &a.GoldBonus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAchievementNotFound
		}
		return nil, fmt.Errorf("failed to scan achievement: %w", err)
	}
	return &a, nil
}

// GetAchievementByID fetches a single achievement definition
func (r *AchievementRepository) GetAchievementByID(ctx context.Context, achievementID int) (*domain.Achievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM achievements WHERE achievement_id = $1`
	return scanAchievement(r.db.QueryRow(ctx, query, achievementID))
}

// ListAchievements returns every achievement definition
func (r *AchievementRepository) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM achievements ORDER BY achievement_id`
	return r.listAchievements(ctx, query)
}

// ListUnearned returns the achievements a character has not unlocked yet
func (r *AchievementRepository) ListUnearned(ctx context.Context, characterID string) ([]domain.Achievement, error) {
	id, err := parseUUID(characterID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + achievementColumns + `
		FROM achievements a
		LEFT JOIN achievement_unlocks u
			ON u.achievement_id = a.achievement_id AND u.character_id = $1
		WHERE u.achievement_id IS NULL
		ORDER BY a.achievement_id`
	return r.listAchievements(ctx, query, id)
}

func (r *AchievementRepository) listAchievements(ctx context.Context, query string, args ...any) ([]domain.Achievement, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var achievements []domain.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, *a)
	}
	return achievements, rows.Err()
}

// ListUnlocks returns a character's unlock records
func (r *AchievementRepository) ListUnlocks(ctx context.Context, characterID string) ([]domain.AchievementUnlock, error) {
	id, err := parseUUID(characterID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT character_id, achievement_id, unlocked_at
		FROM achievement_unlocks
		WHERE character_id = $1
		ORDER BY unlocked_at DESC`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievement unlocks: %w", err)
	}
	defer rows.Close()

	var unlocks []domain.AchievementUnlock
	for rows.Next() {
		var u domain.AchievementUnlock
		if err := rows.Scan(&u.CharacterID, &u.AchievementID, &u.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement unlock: %w", err)
		}
		unlocks = append(unlocks, u)
	}
	return unlocks, rows.Err()
}

// InsertUnlock records an unlock outside a progression transaction
func (r *AchievementRepository) InsertUnlock(ctx context.Context, characterID string, achievementID int) (bool, error) {
	return insertAchievementUnlock(ctx, r.db, characterID, achievementID)
}

// CountUnlocks returns how many achievements a character has unlocked
func (r *AchievementRepository) CountUnlocks(ctx context.Context, characterID string) (int, error) {
	id, err := parseUUID(characterID)
	if err != nil {
		return 0, err
	}

	var count int
	query := `SELECT COUNT(*) FROM achievement_unlocks WHERE character_id = $1`
	if err := r.db.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count achievement unlocks: %w", err)
	}
	return count, nil
}

// insertAchievementUnlock is shared between the pool repository and the
// transaction. ON CONFLICT DO NOTHING keeps concurrent unlocks idempotent.
func insertAchievementUnlock(ctx context.Context, q querier, characterID string, achievementID int) (bool, error) {
	id, err := parseUUID(characterID)
	if err != nil {
		return false, err
	}

	query := `
		INSERT INTO achievement_unlocks (character_id, achievement_id, unlocked_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (character_id, achievement_id) DO NOTHING`
	tag, err := q.Exec(ctx, query, id, achievementID)
	if err != nil {
		return false, fmt.Errorf("failed to insert achievement unlock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
