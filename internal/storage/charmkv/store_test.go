// ABOUTME: Tests for the Charm KV statement store over an in-process KV
// ABOUTME: Runs the shared store contract and KV-specific key layout checks
package charmkv

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/chatter/internal/charm"
	"github.com/harper/chatter/internal/models"
	"github.com/harper/chatter/internal/storage/storetest"
)

type mapKV struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMapKV() *mapKV {
	return &mapKV{data: make(map[string][]byte)}
}

func (m *mapKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *mapKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *mapKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *mapKV) ListKeys(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Store {
		return New(newMapKV())
	})
}

func TestStore_KeyLayout(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	s := New(kv)

	require.NoError(t, s.Update(ctx, &models.Statement{Text: "hello", Occurrence: 1}))
	ts := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, s.RecordTurn(ctx, &models.Turn{TurnID: "turn_1", Timestamp: ts, Input: "hello", Reply: "hi"}))

	assert.Contains(t, kv.data, charm.StatementKey("hello"))
	assert.Contains(t, kv.data, charm.TurnKey(ts, "turn_1"))
}

func TestStore_TurnsDoNotLeakIntoStatements(t *testing.T) {
	ctx := context.Background()
	s := New(newMapKV())

	require.NoError(t, s.RecordTurn(ctx, &models.Turn{TurnID: "turn_1", Timestamp: time.Now(), Input: "a", Reply: "b"}))

	texts, err := s.ListStatements(ctx)
	require.NoError(t, err)
	assert.Empty(t, texts)

	random, err := s.GetRandom(ctx)
	require.NoError(t, err)
	assert.Nil(t, random)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := New(newMapKV())

	require.NoError(t, s.Update(ctx, &models.Statement{Text: "gone", Occurrence: 1}))
	require.NoError(t, s.Delete(ctx, "gone"))

	got, err := s.Find(ctx, "gone")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	s := New(newMapKV())

	assert.Error(t, s.Update(ctx, &models.Statement{}))
	assert.Error(t, s.Update(ctx, nil))
	assert.Error(t, s.RecordTurn(ctx, &models.Turn{}))
}

func TestStore_PropagatesKVErrors(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	kv.err = errors.New("offline")
	s := New(kv)

	_, err := s.Find(ctx, "x")
	assert.ErrorContains(t, err, "offline")

	_, err = s.ListStatements(ctx)
	assert.ErrorContains(t, err, "offline")

	assert.ErrorContains(t, s.Update(ctx, &models.Statement{Text: "x"}), "offline")
}

func TestStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	kv.data[charm.StatementKey("bad")] = []byte("{not json")
	s := New(kv)

	_, err := s.Find(ctx, "bad")
	assert.Error(t, err)
}

func TestStore_RecentTurnsAll(t *testing.T) {
	ctx := context.Background()
	s := New(newMapKV())
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		turn := &models.Turn{TurnID: "t" + string(rune('a'+i)), Timestamp: base.Add(time.Duration(i) * time.Second), Input: "in", Reply: "out"}
		require.NoError(t, s.RecordTurn(ctx, turn))
	}

	turns, err := s.RecentTurns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "tc", turns[0].TurnID)
	assert.Equal(t, "ta", turns[2].TurnID)
}
