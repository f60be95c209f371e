// ABOUTME: Process-local statement store backed by maps
// ABOUTME: Used for ephemeral sessions and as the reference store in tests
package memory

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/harper/chatter/internal/models"
)

// Store keeps statements and turns in memory
type Store struct {
	mu         sync.RWMutex
	statements map[string]*models.Statement
	turns      []models.Turn
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{statements: make(map[string]*models.Statement)}
}

// Find returns a copy of the statement with this text, or nil
func (s *Store) Find(_ context.Context, text string) (*models.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statements[text].Clone(), nil
}

// Update upserts a copy of stmt
func (s *Store) Update(_ context.Context, stmt *models.Statement) error {
	if stmt == nil || stmt.Text == "" {
		return errors.New("statement text cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statements[stmt.Text] = stmt.Clone()
	return nil
}

// GetRandom returns a uniformly random statement, or nil when empty
func (s *Store) GetRandom(_ context.Context) (*models.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.statements) == 0 {
		return nil, nil
	}
	texts := s.sortedTexts()
	return s.statements[texts[rand.IntN(len(texts))]].Clone(), nil
}

// ListStatements returns all statement texts in lexical order
func (s *Store) ListStatements(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedTexts(), nil
}

// ResponsesTo returns every statement recorded as following text
func (s *Store) ResponsesTo(_ context.Context, text string) ([]*models.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Statement
	for _, t := range s.sortedTexts() {
		stmt := s.statements[t]
		if stmt.ResponseWeight(text) > 0 {
			out = append(out, stmt.Clone())
		}
	}
	return out, nil
}

// RecordTurn appends a turn to the in-memory log
func (s *Store) RecordTurn(_ context.Context, turn *models.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, *turn)
	return nil
}

// RecentTurns returns up to limit turns, newest first
func (s *Store) RecentTurns(_ context.Context, limit int) ([]models.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.turns)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count returns the number of known statements
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.statements)
}

// Close is a no-op
func (s *Store) Close() error {
	return nil
}

func (s *Store) sortedTexts() []string {
	texts := make([]string, 0, len(s.statements))
	for t := range s.statements {
		texts = append(texts, t)
	}
	slices.Sort(texts)
	return texts
}
