package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finquest/finquest/internal/domain"
	"github.com/finquest/finquest/internal/repository"
)

// querier covers the query surface shared by *pgxpool.Pool and pgx.Tx so the
// same scan helpers serve both paths.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CharacterRepository implements the character repository for PostgreSQL
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

const characterColumns = `
	character_id, user_id, name, level, xp, xp_to_next_level, gold, class,
	wisdom, discipline, risk_tolerance, negotiation,
	income, net_worth, debt, emergency_fund, investments, monthly_expenses,
	savings_rate, credit_score,
	total_quests_completed, total_gold_earned, created_at, updated_at`

func scanCharacter(row pgx.Row) (*domain.Character, error) {
	var c domain.Character
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Level, &c.XP, &c.XPToNextLevel, &c.Gold, &c.Class,
		&c.Wisdom, &c.Discipline, &c.RiskTolerance, &c.Negotiation,
		&c.Income, &c.NetWorth, &c.Debt, &c.EmergencyFund, &c.Investments, &c.MonthlyExpenses,
		&c.SavingsRate, &c.CreditScore,
		&c.TotalQuestsCompleted, &c.TotalGoldEarned, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to scan character: %w", err)
	}
	return &c, nil
}

// CreateCharacter inserts a new character row. The one-character-per-user
// unique constraint surfaces as domain.ErrCharacterExists.
func (r *CharacterRepository) CreateCharacter(ctx context.Context, character *domain.Character) error {
	if character.ID == "" {
		character.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	character.CreatedAt = now
	character.UpdatedAt = now

	query := `
		INSERT INTO characters (
			character_id, user_id, name, level, xp, xp_to_next_level, gold, class,
			wisdom, discipline, risk_tolerance, negotiation,
			income, net_worth, debt, emergency_fund, investments, monthly_expenses,
			savings_rate, credit_score,
			total_quests_completed, total_gold_earned, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18,
			$19, $20,
			$21, $22, $23, $24
		)`
	_, err := r.db.Exec(ctx, query,
		character.ID, character.UserID, character.Name, character.Level,
		character.XP, character.XPToNextLevel, character.Gold, character.Class,
		character.Wisdom, character.Discipline, character.RiskTolerance, character.Negotiation,
		character.Income, character.NetWorth, character.Debt, character.EmergencyFund,
		character.Investments, character.MonthlyExpenses,
		character.SavingsRate, character.CreditScore,
		character.TotalQuestsCompleted, character.TotalGoldEarned,
		character.CreatedAt, character.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCharacterExists
		}
		return fmt.Errorf("failed to insert character: %w", err)
	}
	return nil
}

// GetCharacterByID fetches a character by its ID
func (r *CharacterRepository) GetCharacterByID(ctx context.Context, characterID string) (*domain.Character, error) {
	id, err := parseUUID(characterID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + characterColumns + ` FROM characters WHERE character_id = $1`
	return scanCharacter(r.db.QueryRow(ctx, query, id))
}

// GetCharacterByUserID fetches the character owned by a user
func (r *CharacterRepository) GetCharacterByUserID(ctx context.Context, userID string) (*domain.Character, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + characterColumns + ` FROM characters WHERE user_id = $1`
	return scanCharacter(r.db.QueryRow(ctx, query, id))
}

// UpdateCharacter persists the full mutable state of a character
func (r *CharacterRepository) UpdateCharacter(ctx context.Context, character domain.Character) error {
	return updateCharacter(ctx, r.db, character)
}

// DeleteCharacter removes a character row
func (r *CharacterRepository) DeleteCharacter(ctx context.Context, characterID string) error {
	id, err := parseUUID(characterID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE character_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

// updateCharacter is shared between the pool repository and the transaction.
func updateCharacter(ctx context.Context, q querier, character domain.Character) error {
	query := `
		UPDATE characters SET
			name = $2, level = $3, xp = $4, xp_to_next_level = $5, gold = $6, class = $7,
			wisdom = $8, discipline = $9, risk_tolerance = $10, negotiation = $11,
			income = $12, net_worth = $13, debt = $14, emergency_fund = $15,
			investments = $16, monthly_expenses = $17, savings_rate = $18, credit_score = $19,
			total_quests_completed = $20, total_gold_earned = $21, updated_at = NOW()
		WHERE character_id = $1`
	tag, err := q.Exec(ctx, query,
		character.ID,
		character.Name, character.Level, character.XP, character.XPToNextLevel,
		character.Gold, character.Class,
		character.Wisdom, character.Discipline, character.RiskTolerance, character.Negotiation,
		character.Income, character.NetWorth, character.Debt, character.EmergencyFund,
		character.Investments, character.MonthlyExpenses, character.SavingsRate, character.CreditScore,
		character.TotalQuestsCompleted, character.TotalGoldEarned,
	)
	if err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

type leaderboardOrdering struct {
	valueExpr string
	orderExpr string
}

// leaderboardOrderings maps each metric to its displayed value and ordering.
// Level ties break on banked XP; all ties break on account age.
var leaderboardOrderings = map[domain.LeaderboardMetric]leaderboardOrdering{
	domain.LeaderboardByLevel:    {valueExpr: `level`, orderExpr: `(level * 1000000 + xp)`},
	domain.LeaderboardByNetWorth: {valueExpr: `net_worth`, orderExpr: `net_worth`},
	domain.LeaderboardByGold:     {valueExpr: `total_gold_earned`, orderExpr: `total_gold_earned`},
	domain.LeaderboardByQuests:   {valueExpr: `total_quests_completed`, orderExpr: `total_quests_completed`},
}

// GetLeaderboard returns the top characters ordered by the given metric
func (r *CharacterRepository) GetLeaderboard(ctx context.Context, metric domain.LeaderboardMetric, limit int) ([]domain.LeaderboardEntry, error) {
	ordering, ok := leaderboardOrderings[metric]
	if !ok {
		return nil, fmt.Errorf("%w: leaderboard metric %q", domain.ErrInvalidInput, metric)
	}
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	query := fmt.Sprintf(`
		SELECT character_id, name, level, class, %s::numeric AS value, total_quests_completed,
			RANK() OVER (ORDER BY %s DESC, created_at ASC) AS rank
		FROM characters
		ORDER BY rank ASC
		LIMIT $1`, ordering.valueExpr, ordering.orderExpr)

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.CharacterID, &e.Name, &e.Level, &e.Class, &e.Value, &e.QuestsCompleted, &e.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetRank returns a character's 1-based rank under the given metric
func (r *CharacterRepository) GetRank(ctx context.Context, metric domain.LeaderboardMetric, characterID string) (int, error) {
	ordering, ok := leaderboardOrderings[metric]
	if !ok {
		return 0, fmt.Errorf("%w: leaderboard metric %q", domain.ErrInvalidInput, metric)
	}

	id, err := parseUUID(characterID)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		SELECT rank FROM (
			SELECT character_id, RANK() OVER (ORDER BY %s DESC, created_at ASC) AS rank
			FROM characters
		) ranked
		WHERE character_id = $1`, ordering.orderExpr)

	var rank int
	if err := r.db.QueryRow(ctx, query, id).Scan(&rank); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrCharacterNotFound
		}
		return 0, fmt.Errorf("failed to query rank: %w", err)
	}
	return rank, nil
}

// BeginTx starts a progression transaction
func (r *CharacterRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &progressionTx{tx: tx}, nil
}
