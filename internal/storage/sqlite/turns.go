// ABOUTME: Turn storage operations for SQLite
// ABOUTME: Append-only log of response cycles, read back newest first
package sqlite

import (
	"context"
	"errors"

	"github.com/harper/chatter/internal/models"
)

// TurnStore handles turn persistence
type TurnStore struct {
	db *DB
}

// NewTurnStore creates a new TurnStore
func NewTurnStore(db *DB) *TurnStore {
	return &TurnStore{db: db}
}

// Save saves a turn
func (s *TurnStore) Save(ctx context.Context, turn *models.Turn) error {
	if turn == nil || turn.TurnID == "" {
		return errors.New("turn ID cannot be empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO turns (id, speaker, input_text, reply_text, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			speaker = excluded.speaker,
			input_text = excluded.input_text,
			reply_text = excluded.reply_text
	`, turn.TurnID, turn.Speaker, turn.Input, turn.Reply, turn.Timestamp.UTC())

	return err
}

// Recent returns up to limit turns, newest first. limit <= 0 returns all turns.
func (s *TurnStore) Recent(ctx context.Context, limit int) ([]models.Turn, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, speaker, input_text, reply_text, created_at
		FROM turns
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var turns []models.Turn
	for rows.Next() {
		var turn models.Turn
		if err := rows.Scan(&turn.TurnID, &turn.Speaker, &turn.Input, &turn.Reply, &turn.Timestamp); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}

	return turns, rows.Err()
}

// Delete deletes a turn
func (s *TurnStore) Delete(ctx context.Context, turnID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM turns WHERE id = ?", turnID)
	return err
}
