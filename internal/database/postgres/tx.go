package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/finquest/finquest/internal/domain"
)

// progressionTx implements repository.Tx over a single pgx transaction.
// Every mutation of a progression apply goes through one of these so a
// mid-apply failure leaves no partial effect.
type progressionTx struct {
	tx pgx.Tx
}

func (t *progressionTx) GetCharacterForUpdate(ctx context.Context, characterID string) (*domain.Character, error) {
	id, err := parseUUID(characterID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + characterColumns + ` FROM characters WHERE character_id = $1 FOR UPDATE`
	return scanCharacter(t.tx.QueryRow(ctx, query, id))
}

func (t *progressionTx) UpdateCharacter(ctx context.Context, character domain.Character) error {
	return updateCharacter(ctx, t.tx, character)
}

func (t *progressionTx) UpsertQuestProgress(ctx context.Context, progress domain.QuestProgress) error {
	return upsertQuestProgress(ctx, t.tx, progress)
}

// InsertAchievementUnlock records an unlock. ON CONFLICT DO NOTHING makes the
// insert idempotent under concurrent evaluations; the return value reports
// whether this call won the race.
func (t *progressionTx) InsertAchievementUnlock(ctx context.Context, characterID string, achievementID int) (bool, error) {
	return insertAchievementUnlock(ctx, t.tx, characterID, achievementID)
}

func (t *progressionTx) InsertMiniGameScore(ctx context.Context, score domain.MiniGameScore) error {
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

	playedAt := score.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO mini_game_scores (character_id, game_type, score, data, played_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := t.tx.Exec(ctx, query, id, score.GameType, score.Score, data, playedAt); err != nil {
		return fmt.Errorf("failed to insert mini-game score: %w", err)
	}
	return nil
}

func (t *progressionTx) InsertActivity(ctx context.Context, entry domain.ActivityLogEntry) error {
	return insertActivity(ctx, t.tx, entry)
}

func (t *progressionTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *progressionTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
