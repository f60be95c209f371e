// ABOUTME: In-process vector index with cosine similarity search
// ABOUTME: Caches statement embeddings so each text is embedded once per process
package match

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Similarity is one search hit
type Similarity struct {
	Text  string
	Score float64
}

// VectorIndex stores one embedding per text. All vectors share a dimension.
type VectorIndex struct {
	mu        sync.RWMutex
	vectors   map[string][]float64
	dimension int
}

// NewVectorIndex creates an empty index
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{vectors: make(map[string][]float64)}
}

// Save stores the vector for text
func (vi *VectorIndex) Save(text string, vector []float64) error {
	if len(vector) == 0 {
		return fmt.Errorf("empty embedding for %q", text)
	}

	vi.mu.Lock()
	defer vi.mu.Unlock()

	if vi.dimension == 0 {
		vi.dimension = len(vector)
	}
	if len(vector) != vi.dimension {
		return fmt.Errorf("invalid embedding dimension: expected %d, got %d", vi.dimension, len(vector))
	}
	vi.vectors[text] = vector
	return nil
}

// Get returns the stored vector for text
func (vi *VectorIndex) Get(text string) ([]float64, bool) {
	vi.mu.RLock()
	defer vi.mu.RUnlock()
	v, ok := vi.vectors[text]
	return v, ok
}

// Missing returns the texts that have no stored vector, in input order
func (vi *VectorIndex) Missing(texts []string) []string {
	vi.mu.RLock()
	defer vi.mu.RUnlock()

	var out []string
	for _, t := range texts {
		if _, ok := vi.vectors[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of stored vectors
func (vi *VectorIndex) Len() int {
	vi.mu.RLock()
	defer vi.mu.RUnlock()
	return len(vi.vectors)
}

// SearchSimilar ranks the given texts by cosine similarity to query, best first.
// Texts without a stored vector are skipped. maxResults <= 0 returns all hits.
func (vi *VectorIndex) SearchSimilar(query []float64, texts []string, maxResults int) []Similarity {
	vi.mu.RLock()
	results := make([]Similarity, 0, len(texts))
	for _, t := range texts {
		v, ok := vi.vectors[t]
		if !ok {
			continue
		}
		results = append(results, Similarity{Text: t, Score: cosineSimilarity(query, v)})
	}
	vi.mu.RUnlock()

	// Stable so equal scores keep candidate order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
