package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finquest/finquest/internal/domain"
)

// MiniGameRepository implements the mini-game score repository for PostgreSQL
type MiniGameRepository struct {
	db *pgxpool.Pool
}

// NewMiniGameRepository creates a new MiniGameRepository
func NewMiniGameRepository(db *pgxpool.Pool) *MiniGameRepository {
	return &MiniGameRepository{db: db}
}

// InsertScore appends one play to the score log
func (r *MiniGameRepository) InsertScore(ctx context.Context, score *domain.MiniGameScore) error {
	id, err := parseUUID(score.CharacterID)
	if err != nil {
		return err
	}

	var data []byte
	if score.Data != nil {
		data, err = json.Marshal(score.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal game data: %w", err)
		}
	}

	if score.PlayedAt.IsZero() {
		score.PlayedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO mini_game_scores (character_id, game_type, score, data, played_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING score_id`
	err = r.db.QueryRow(ctx, query, id, score.GameType, score.Score, data, score.PlayedAt).Scan(&score.ID)
	if err != nil {
		return fmt.Errorf("failed to insert mini-game score: %w", err)
	}
	return nil
}

// ListScores returns a character's most recent plays
func (r *MiniGameRepository) ListScores(ctx context.Context, characterID string, limit int) ([]domain.MiniGameScore, error) {
	id, err := parseUUID(characterID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	query := `
		SELECT score_id, character_id, game_type, score, data, played_at
		FROM mini_game_scores
		WHERE character_id = $1
		ORDER BY played_at DESC
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mini-game scores: %w", err)
	}
	defer rows.Close()

	var scores []domain.MiniGameScore
	for rows.Next() {
		var s domain.MiniGameScore
		var data []byte
		if err := rows.Scan(&s.ID, &s.CharacterID, &s.GameType, &s.Score, &data, &s.PlayedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mini-game score: %w", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &s.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal game data: %w", err)
			}
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

// GetBestScores aggregates a character's plays per game type
func (r *MiniGameRepository) GetBestScores(ctx context.Context, characterID string) ([]domain.MiniGameSummary, error) {
	id, err := parseUUID(characterID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT game_type, COUNT(*), MAX(score), AVG(score)::float8
		FROM mini_game_scores
		WHERE character_id = $1
		GROUP BY game_type
		ORDER BY game_type`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query best scores: %w", err)
	}
	defer rows.Close()

	var summaries []domain.MiniGameSummary
	for rows.Next() {
		var s domain.MiniGameSummary
		if err := rows.Scan(&s.GameType, &s.TimesPlayed, &s.BestScore, &s.AvgScore); err != nil {
			return nil, fmt.Errorf("failed to scan best score: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
