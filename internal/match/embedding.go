// ABOUTME: Embedding matcher ranks statements by cosine similarity of their embeddings
// ABOUTME: Candidate vectors are fetched in batches and cached in a VectorIndex
package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// DefaultEmbeddingThreshold is the minimum cosine similarity for a match
const DefaultEmbeddingThreshold = 0.5

// embedBatchSize bounds the inputs per embeddings request
const embedBatchSize = 256

// Embedder turns texts into vectors, one per input, in order
type Embedder interface {
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error)
}

// EmbeddingMatcher selects the candidate whose embedding is closest to the input's
type EmbeddingMatcher struct {
	embedder  Embedder
	index     *VectorIndex
	threshold float64
	logger    *slog.Logger
}

// NewEmbeddingMatcher creates a matcher over embedder. A nil logger discards output.
func NewEmbeddingMatcher(embedder Embedder, threshold float64, logger *slog.Logger) (*EmbeddingMatcher, error) {
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &EmbeddingMatcher{
		embedder:  embedder,
		index:     NewVectorIndex(),
		threshold: threshold,
		logger:    logger,
	}, nil
}

// Index exposes the vector cache
func (m *EmbeddingMatcher) Index() *VectorIndex {
	return m.index
}

// Match embeds any uncached candidates plus the input, then returns the most similar candidate
func (m *EmbeddingMatcher) Match(ctx context.Context, input string, candidates []string) (string, bool, error) {
	if len(candidates) == 0 {
		return "", false, nil
	}

	if err := m.warm(ctx, append([]string{input}, candidates...)); err != nil {
		return "", false, err
	}

	query, ok := m.index.Get(input)
	if !ok {
		return "", false, fmt.Errorf("no embedding for input")
	}

	hits := m.index.SearchSimilar(query, candidates, 1)
	if len(hits) == 0 || hits[0].Score < m.threshold {
		m.logger.Debug("no embedding match", "input", input, "candidates", len(candidates))
		return "", false, nil
	}

	m.logger.Debug("embedding match", "input", input, "match", hits[0].Text, "score", hits[0].Score)
	return hits[0].Text, true, nil
}

// warm embeds every text not yet in the index
func (m *EmbeddingMatcher) warm(ctx context.Context, texts []string) error {
	missing := dedupe(m.index.Missing(texts))
	for start := 0; start < len(missing); start += embedBatchSize {
		end := min(start+embedBatchSize, len(missing))
		batch := missing[start:end]

		vectors, err := m.embedder.GenerateEmbeddings(ctx, batch)
		if err != nil {
			return fmt.Errorf("failed to embed %d texts: %w", len(batch), err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(batch))
		}
		for i, text := range batch {
			if err := m.index.Save(text, vectors[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func dedupe(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
