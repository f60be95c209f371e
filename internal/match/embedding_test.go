// ABOUTME: Tests for the embedding matcher over a fake embedder
// ABOUTME: Verifies ranking, threshold, caching and error propagation
package match

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float64
	calls   [][]string
	err     error
}

func (f *fakeEmbedder) GenerateEmbeddings(_ context.Context, texts []string) ([][]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string(nil), texts...))
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, ok := f.vectors[t]
		if !ok {
			v = []float64{0, 0, 1}
		}
		out[i] = v
	}
	return out, nil
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float64{
		"greetings":         {1, 0, 0},
		"hello":             {0.9, 0.1, 0},
		"what is the time?": {0, 1, 0},
	}}
}

func TestNewEmbeddingMatcher_RequiresEmbedder(t *testing.T) {
	_, err := NewEmbeddingMatcher(nil, 0.5, nil)
	assert.Error(t, err)
}

func TestEmbeddingMatcher_PicksNearest(t *testing.T) {
	m, err := NewEmbeddingMatcher(newFakeEmbedder(), DefaultEmbeddingThreshold, nil)
	require.NoError(t, err)

	got, ok, err := m.Match(context.Background(), "greetings", []string{"what is the time?", "hello"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", got)
}

func TestEmbeddingMatcher_BelowThreshold(t *testing.T) {
	m, err := NewEmbeddingMatcher(newFakeEmbedder(), 0.9, nil)
	require.NoError(t, err)

	_, ok, err := m.Match(context.Background(), "greetings", []string{"what is the time?"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmbeddingMatcher_NoCandidatesSkipsEmbedder(t *testing.T) {
	f := newFakeEmbedder()
	m, err := NewEmbeddingMatcher(f, 0.5, nil)
	require.NoError(t, err)

	_, ok, err := m.Match(context.Background(), "greetings", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, f.calls)
}

func TestEmbeddingMatcher_CachesVectors(t *testing.T) {
	f := newFakeEmbedder()
	m, err := NewEmbeddingMatcher(f, 0.5, nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = m.Match(ctx, "greetings", []string{"hello", "what is the time?"})
	require.NoError(t, err)
	_, _, err = m.Match(ctx, "greetings", []string{"hello", "what is the time?"})
	require.NoError(t, err)

	require.Len(t, f.calls, 1)
	assert.ElementsMatch(t, []string{"greetings", "hello", "what is the time?"}, f.calls[0])
	assert.Equal(t, 3, m.Index().Len())
}

func TestEmbeddingMatcher_InputAlsoCandidateEmbeddedOnce(t *testing.T) {
	f := newFakeEmbedder()
	m, err := NewEmbeddingMatcher(f, 0.5, nil)
	require.NoError(t, err)

	got, ok, err := m.Match(context.Background(), "hello", []string{"hello"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", got)
	require.Len(t, f.calls, 1)
	assert.Equal(t, []string{"hello"}, f.calls[0])
}

func TestEmbeddingMatcher_EmbedderError(t *testing.T) {
	f := newFakeEmbedder()
	f.err = errors.New("rate limited")
	m, err := NewEmbeddingMatcher(f, 0.5, nil)
	require.NoError(t, err)

	_, ok, err := m.Match(context.Background(), "greetings", []string{"hello"})
	assert.ErrorContains(t, err, "rate limited")
	assert.False(t, ok)
}
