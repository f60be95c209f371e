// ABOUTME: Unified Storage layer that wraps the SQLite statement and turn stores
// ABOUTME: Satisfies the engine's store contract plus the turn log capabilities
package sqlite

import (
	"context"
	"fmt"

	"github.com/harper/chatter/internal/models"
)

// Storage manages all persistent chatter data using SQLite
type Storage struct {
	db         *DB
	statements *StatementStore
	turns      *TurnStore
}

// NewStorage initializes storage at the default database path
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db), nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		db:         db,
		statements: NewStatementStore(db),
		turns:      NewTurnStore(db),
	}
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// Find returns the statement with this text, or nil
func (s *Storage) Find(ctx context.Context, text string) (*models.Statement, error) {
	stmt, err := s.statements.Find(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to find statement: %w", err)
	}
	return stmt, nil
}

// Update upserts a statement
func (s *Storage) Update(ctx context.Context, stmt *models.Statement) error {
	if err := s.statements.Update(ctx, stmt); err != nil {
		return fmt.Errorf("failed to update statement: %w", err)
	}
	return nil
}

// GetRandom returns a random statement, or nil when empty
func (s *Storage) GetRandom(ctx context.Context) (*models.Statement, error) {
	stmt, err := s.statements.GetRandom(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to pick random statement: %w", err)
	}
	return stmt, nil
}

// ListStatements returns all statement texts
func (s *Storage) ListStatements(ctx context.Context) ([]string, error) {
	texts, err := s.statements.ListStatements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	return texts, nil
}

// ResponsesTo returns the statements recorded in response to text
func (s *Storage) ResponsesTo(ctx context.Context, text string) ([]*models.Statement, error) {
	stmts, err := s.statements.ResponsesTo(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}
	return stmts, nil
}

// Count returns the number of known statements
func (s *Storage) Count(ctx context.Context) (int, error) {
	return s.statements.Count(ctx)
}

// RecordTurn appends a turn to the log
func (s *Storage) RecordTurn(ctx context.Context, turn *models.Turn) error {
	if err := s.turns.Save(ctx, turn); err != nil {
		return fmt.Errorf("failed to save turn: %w", err)
	}
	return nil
}

// RecentTurns returns up to limit turns, newest first
func (s *Storage) RecentTurns(ctx context.Context, limit int) ([]models.Turn, error) {
	turns, err := s.turns.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %w", err)
	}
	return turns, nil
}
