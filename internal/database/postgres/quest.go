package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finquest/finquest/internal/domain"
)

// QuestRepository implements the quest repository for PostgreSQL
type QuestRepository struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

const questColumns = `
	quest_id, title, description, category, difficulty, min_level,
	xp_reward, gold_reward, stat_rewards, questions, order_index, active, created_at`

func scanQuest(row pgx.Row) (*domain.Quest, error) {
	var q domain.Quest
	var statRewards, questions []byte
	err := row.Scan(
		&q.ID, &q.Title, &q.Description, &q.Category, &q.Difficulty, &q.MinLevel,
		&q.XPReward, &q.GoldReward, &statRewards, &questions, &q.OrderIndex, &q.Active, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to scan quest: %w", err)
	}

	if len(statRewards) > 0 {
		if err := json.Unmarshal(statRewards, &q.StatRewards); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stat rewards: %w", err)
		}
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &q.Questions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
		}
	}
	return &q, nil
}

// GetQuestByID fetches a single quest including its questions
func (r *QuestRepository) GetQuestByID(ctx context.Context, questID int) (*domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE quest_id = $1 AND active`
	return scanQuest(r.db.QueryRow(ctx, query, questID))
}

// ListQuests returns all active quests in display order
func (r *QuestRepository) ListQuests(ctx context.Context) ([]domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE active ORDER BY order_index, quest_id`
	return r.listQuests(ctx, query)
}

// ListQuestsByDifficulty returns active quests of one difficulty tier
func (r *QuestRepository) ListQuestsByDifficulty(ctx context.Context, difficulty string) ([]domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE active AND difficulty = $1 ORDER BY order_index, quest_id`
	return r.listQuests(ctx, query, difficulty)
}

func (r *QuestRepository) listQuests(ctx context.Context, query string, args ...any) ([]domain.Quest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quests: %w", err)
	}
	defer rows.Close()

	var quests []domain.Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		quests = append(quests, *q)
	}
	return quests, rows.Err()
}

const progressColumns = `
	progress_id, character_id, quest_id, status, score, attempts, answers, started_at, completed_at`

func scanProgress(row pgx.Row) (*domain.QuestProgress, error) {
	var p domain.QuestProgress
	var answers []byte
	err := row.Scan(
		&p.ID, &p.CharacterID, &p.QuestID, &p.Status, &p.Score, &p.Attempts,
		&answers, &p.StartedAt, &p.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestNotAccepted
		}
		return nil, fmt.Errorf("failed to scan quest progress: %w", err)
	}

	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &p.Answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
		}
	}
	return &p, nil
}

// GetProgress fetches a character's progress row for one quest.
// Returns domain.ErrQuestNotAccepted when no row exists.
func (r *QuestRepository) GetProgress(ctx context.Context, characterID string, questID int) (*domain.QuestProgress, error) {
	id, err := parseUUID(characterID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + progressColumns + ` FROM quest_progress WHERE character_id = $1 AND quest_id = $2`
	return scanProgress(r.db.QueryRow(ctx, query, id, questID))
}

// ListProgressByCharacter returns every progress row for a character
func (r *QuestRepository) ListProgressByCharacter(ctx context.Context, characterID string) ([]domain.QuestProgress, error) {
	id, err := parseUUID(characterID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + progressColumns + ` FROM quest_progress WHERE character_id = $1 ORDER BY started_at DESC`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query quest progress: %w", err)
	}
	defer rows.Close()

	var progress []domain.QuestProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		progress = append(progress, *p)
	}
	return progress, rows.Err()
}

// UpsertProgress writes a progress row, one per (character, quest)
func (r *QuestRepository) UpsertProgress(ctx context.Context, progress domain.QuestProgress) error {
	return upsertQuestProgress(ctx, r.db, progress)
}

// upsertQuestProgress is shared between the pool repository and the transaction.
func upsertQuestProgress(ctx context.Context, q querier, progress domain.QuestProgress) error {
	id, err := parseUUID(progress.CharacterID)
	if err != nil {
		return err
	}

	var answers []byte
	if progress.Answers != nil {
		answers, err = json.Marshal(progress.Answers)
		if err != nil {
			return fmt.Errorf("failed to marshal answers: %w", err)
		}
	}

	query := `
		INSERT INTO quest_progress (character_id, quest_id, status, score, attempts, answers, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (character_id, quest_id) DO UPDATE SET
			status = EXCLUDED.status,
			score = EXCLUDED.score,
			attempts = EXCLUDED.attempts,
			answers = EXCLUDED.answers,
			started_at = EXCLUDED.started_at,
			completed_at = EXCLUDED.completed_at`
	_, err = q.Exec(ctx, query,
		id, progress.QuestID, progress.Status, progress.Score, progress.Attempts,
		answers, progress.StartedAt, progress.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert quest progress: %w", err)
	}
	return nil
}
