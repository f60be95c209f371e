// ABOUTME: Shared contract tests every statement store must pass
// ABOUTME: Called from each backend's _test.go with a constructor
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/chatter/internal/core"
	"github.com/harper/chatter/internal/models"
)

// Store is the full capability set a backend is tested against
type Store interface {
	core.StatementStore
	core.ResponseFinder
	core.TurnRecorder
	core.TurnHistory
}

// Run executes the store contract against fresh stores from newStore
func Run(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("find missing returns nil", func(t *testing.T) {
		s := newStore(t)
		got, err := s.Find(ctx, "nobody said this")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update then find round trips", func(t *testing.T) {
		s := newStore(t)
		stmt := &models.Statement{
			Text:         "hi there",
			Occurrence:   3,
			InResponseTo: map[string]int{"hello": 2, "hey": 1},
			Name:         "alice",
		}
		require.NoError(t, s.Update(ctx, stmt))

		got, err := s.Find(ctx, "hi there")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "hi there", got.Text)
		assert.Equal(t, 3, got.Occurrence)
		assert.Equal(t, map[string]int{"hello": 2, "hey": 1}, got.InResponseTo)
		assert.Equal(t, "alice", got.Name)
	})

	t.Run("update rejects statements without text", func(t *testing.T) {
		s := newStore(t)
		assert.Error(t, s.Update(ctx, nil))
		assert.Error(t, s.Update(ctx, &models.Statement{InResponseTo: map[string]int{}}))

		texts, err := s.ListStatements(ctx)
		require.NoError(t, err)
		assert.Empty(t, texts)
	})

	t.Run("update fully replaces adjacency", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update(ctx, &models.Statement{Text: "a", Occurrence: 1, InResponseTo: map[string]int{"x": 1, "y": 4}}))
		require.NoError(t, s.Update(ctx, &models.Statement{Text: "a", Occurrence: 2, InResponseTo: map[string]int{"x": 2}}))

		got, err := s.Find(ctx, "a")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 2, got.Occurrence)
		assert.Equal(t, map[string]int{"x": 2}, got.InResponseTo)
	})

	t.Run("statement without predecessors has empty adjacency", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update(ctx, &models.Statement{Text: "lonely", Occurrence: 1}))

		got, err := s.Find(ctx, "lonely")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.NotNil(t, got.InResponseTo)
		assert.Empty(t, got.InResponseTo)
	})

	t.Run("returned statements are not aliased", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update(ctx, &models.Statement{Text: "a", Occurrence: 1, InResponseTo: map[string]int{"x": 1}}))

		got, err := s.Find(ctx, "a")
		require.NoError(t, err)
		got.InResponseTo["x"] = 100

		again, err := s.Find(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 1, again.InResponseTo["x"])
	})

	t.Run("list statements", func(t *testing.T) {
		s := newStore(t)
		texts, err := s.ListStatements(ctx)
		require.NoError(t, err)
		assert.Empty(t, texts)

		for _, text := range []string{"b", "a", "c"} {
			require.NoError(t, s.Update(ctx, &models.Statement{Text: text, Occurrence: 1}))
		}
		texts, err = s.ListStatements(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, texts)
	})

	t.Run("random on empty store returns nil", func(t *testing.T) {
		s := newStore(t)
		got, err := s.GetRandom(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("random returns a known statement", func(t *testing.T) {
		s := newStore(t)
		known := map[string]bool{"a": true, "b": true, "c": true}
		for text := range known {
			require.NoError(t, s.Update(ctx, &models.Statement{Text: text, Occurrence: 1}))
		}
		for i := 0; i < 20; i++ {
			got, err := s.GetRandom(ctx)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, known[got.Text], "unexpected random statement %q", got.Text)
		}
	})

	t.Run("responses to", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update(ctx, &models.Statement{Text: "hello", Occurrence: 4}))
		require.NoError(t, s.Update(ctx, &models.Statement{Text: "hi", Occurrence: 3, InResponseTo: map[string]int{"hello": 3}}))
		require.NoError(t, s.Update(ctx, &models.Statement{Text: "yo", Occurrence: 1, InResponseTo: map[string]int{"hello": 1}}))
		require.NoError(t, s.Update(ctx, &models.Statement{Text: "bye", Occurrence: 1, InResponseTo: map[string]int{"yo": 1}}))

		got, err := s.ResponsesTo(ctx, "hello")
		require.NoError(t, err)
		texts := make([]string, 0, len(got))
		for _, stmt := range got {
			texts = append(texts, stmt.Text)
		}
		assert.ElementsMatch(t, []string{"hi", "yo"}, texts)

		none, err := s.ResponsesTo(ctx, "bye")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("turn log is newest first", func(t *testing.T) {
		s := newStore(t)
		base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		for i, pair := range [][2]string{{"hello", "hi"}, {"how are you", "fine"}, {"bye", "see you"}} {
			turn := &models.Turn{
				TurnID:    "turn_" + pair[0],
				Timestamp: base.Add(time.Duration(i) * time.Minute),
				Speaker:   "alice",
				Input:     pair[0],
				Reply:     pair[1],
			}
			require.NoError(t, s.RecordTurn(ctx, turn))
		}

		turns, err := s.RecentTurns(ctx, 2)
		require.NoError(t, err)
		require.Len(t, turns, 2)
		assert.Equal(t, "bye", turns[0].Input)
		assert.Equal(t, "see you", turns[0].Reply)
		assert.Equal(t, "how are you", turns[1].Input)
		assert.Equal(t, "alice", turns[1].Speaker)
	})
}
