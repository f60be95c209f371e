// ABOUTME: Statement storage operations for SQLite
// ABOUTME: Statements live in one table, their in_response_to edges in another
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harper/chatter/internal/models"
)

// StatementStore handles statement persistence
type StatementStore struct {
	db *DB
}

// NewStatementStore creates a new StatementStore
func NewStatementStore(db *DB) *StatementStore {
	return &StatementStore{db: db}
}

const selectStatements = `
	SELECT s.text, s.occurrence, s.name, r.previous_text, r.weight
	FROM statements s
	LEFT JOIN responses r ON r.statement_text = s.text
`

// Find retrieves a statement by text, returning nil when absent
func (s *StatementStore) Find(ctx context.Context, text string) (*models.Statement, error) {
	stmts, err := s.query(ctx, selectStatements+`WHERE s.text = ?`, text)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, nil
	}
	return stmts[0], nil
}

// Update upserts the statement and replaces its response edges in one transaction
func (s *StatementStore) Update(ctx context.Context, stmt *models.Statement) error {
	if stmt == nil || stmt.Text == "" {
		return errors.New("statement text cannot be empty")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO statements (text, occurrence, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(text) DO UPDATE SET
			occurrence = excluded.occurrence,
			name = excluded.name,
			updated_at = excluded.updated_at
	`, stmt.Text, stmt.Occurrence, stmt.Name, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert statement: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM responses WHERE statement_text = ?`, stmt.Text); err != nil {
		return fmt.Errorf("failed to clear responses: %w", err)
	}

	for previous, weight := range stmt.InResponseTo {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO responses (statement_text, previous_text, weight)
			VALUES (?, ?, ?)
		`, stmt.Text, previous, weight)
		if err != nil {
			return fmt.Errorf("failed to save response edge: %w", err)
		}
	}

	return tx.Commit()
}

// GetRandom returns a uniformly random statement, or nil when the table is empty
func (s *StatementStore) GetRandom(ctx context.Context) (*models.Statement, error) {
	var text string
	err := s.db.QueryRowContext(ctx, `SELECT text FROM statements ORDER BY RANDOM() LIMIT 1`).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Find(ctx, text)
}

// ListStatements returns every statement text in lexical order
func (s *StatementStore) ListStatements(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT text FROM statements ORDER BY text`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	texts := []string{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, rows.Err()
}

// ResponsesTo returns every statement recorded as following text
func (s *StatementStore) ResponsesTo(ctx context.Context, text string) ([]*models.Statement, error) {
	return s.query(ctx, selectStatements+`
		WHERE s.text IN (SELECT statement_text FROM responses WHERE previous_text = ?)
	`, text)
}

// Count returns the number of known statements
func (s *StatementStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM statements`).Scan(&n)
	return n, err
}

// Delete removes a statement and its response edges
func (s *StatementStore) Delete(ctx context.Context, text string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM statements WHERE text = ?`, text)
	return err
}

// query folds the joined statement/response rows into statements, ordered by text
func (s *StatementStore) query(ctx context.Context, query string, args ...any) ([]*models.Statement, error) {
	rows, err := s.db.QueryContext(ctx, query+` ORDER BY s.text`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var stmts []*models.Statement
	var current *models.Statement
	for rows.Next() {
		var (
			text, name string
			occurrence int
			previous   sql.NullString
			weight     sql.NullInt64
		)
		if err := rows.Scan(&text, &occurrence, &name, &previous, &weight); err != nil {
			return nil, err
		}

		if current == nil || current.Text != text {
			current = &models.Statement{
				Text:         text,
				Occurrence:   occurrence,
				Name:         name,
				InResponseTo: map[string]int{},
			}
			stmts = append(stmts, current)
		}
		if previous.Valid {
			current.InResponseTo[previous.String] = int(weight.Int64)
		}
	}

	return stmts, rows.Err()
}
