// ABOUTME: Statement store persisted in Charm KV for cloud-synced bots
// ABOUTME: Statements and turns are JSON values under prefixed keys
package charmkv

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/harper/chatter/internal/charm"
	"github.com/harper/chatter/internal/models"
)

// KV is the subset of the charm client the store needs.
// Get returns nil, nil for a missing key.
type KV interface {
	Set(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	ListKeys(prefix string) ([]string, error)
}

// Store implements the statement store over a KV
type Store struct {
	kv KV
	mu sync.RWMutex
}

// New creates a store over kv
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Find returns the statement with this text, or nil
func (s *Store) Find(_ context.Context, text string) (*models.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(charm.StatementKey(text))
}

// Update upserts stmt
func (s *Store) Update(_ context.Context, stmt *models.Statement) error {
	if stmt == nil || stmt.Text == "" {
		return fmt.Errorf("statement text cannot be empty")
	}
	data, err := json.Marshal(stmt)
	if err != nil {
		return fmt.Errorf("failed to marshal statement: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Set(charm.StatementKey(stmt.Text), data)
}

// GetRandom returns a uniformly random statement, or nil when empty
func (s *Store) GetRandom(_ context.Context) (*models.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys, err := s.kv.ListKeys(charm.StatementPrefix)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}
	return s.load(keys[rand.IntN(len(keys))])
}

// ListStatements returns all statement texts in lexical order
func (s *Store) ListStatements(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.texts()
}

// ResponsesTo scans every statement for an in_response_to edge from text
func (s *Store) ResponsesTo(ctx context.Context, text string) ([]*models.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	texts, err := s.texts()
	if err != nil {
		return nil, err
	}

	var out []*models.Statement
	for _, candidate := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stmt, err := s.load(charm.StatementKey(candidate))
		if err != nil {
			return nil, err
		}
		if stmt != nil && stmt.ResponseWeight(text) > 0 {
			out = append(out, stmt)
		}
	}
	return out, nil
}

// RecordTurn appends a turn to the log
func (s *Store) RecordTurn(_ context.Context, turn *models.Turn) error {
	if turn == nil || turn.TurnID == "" {
		return fmt.Errorf("turn ID cannot be empty")
	}
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Set(charm.TurnKey(turn.Timestamp, turn.TurnID), data)
}

// RecentTurns returns up to limit turns, newest first. limit <= 0 returns all.
func (s *Store) RecentTurns(_ context.Context, limit int) ([]models.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys, err := s.kv.ListKeys(charm.TurnPrefix)
	if err != nil {
		return nil, err
	}
	slices.Sort(keys)
	slices.Reverse(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}

	turns := make([]models.Turn, 0, len(keys))
	for _, key := range keys {
		data, err := s.kv.Get(key)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		var turn models.Turn
		if err := json.Unmarshal(data, &turn); err != nil {
			return nil, fmt.Errorf("failed to decode turn %s: %w", key, err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Delete removes a statement
func (s *Store) Delete(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(charm.StatementKey(text))
}

func (s *Store) texts() ([]string, error) {
	keys, err := s.kv.ListKeys(charm.StatementPrefix)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(keys))
	for _, key := range keys {
		if text, ok := charm.StatementText(key); ok {
			texts = append(texts, text)
		}
	}
	slices.Sort(texts)
	return texts, nil
}

func (s *Store) load(key string) (*models.Statement, error) {
	data, err := s.kv.Get(key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var stmt models.Statement
	if err := json.Unmarshal(data, &stmt); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	if stmt.InResponseTo == nil {
		stmt.InResponseTo = map[string]int{}
	}
	return &stmt, nil
}
