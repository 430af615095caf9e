package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/neurodoc-ai/neurodoc/internal/model"
)

// Store is an immutable in-memory semantic index: (chunk, vector) pairs
// searched by brute-force cosine similarity. Build it once, then share it
// freely; Search never mutates.
type Store struct {
	chunks  []model.DocumentChunk
	vectors [][]float32
	dim     int
}

func Build(chunks []model.DocumentChunk, vectors [][]float32) (*Store, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("cannot build an empty index")
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("zero-dimension embedding")
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d dimension mismatch: %d vs %d", i, len(v), dim)
		}
	}
	return &Store{chunks: chunks, vectors: vectors, dim: dim}, nil
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.chunks)
}

// Search returns up to topK chunks ordered by descending cosine
// similarity to the query vector.
func (s *Store) Search(vector []float32, topK int) []model.ScoredChunk {
	if s == nil || topK <= 0 {
		return nil
	}
	scored := make([]model.ScoredChunk, len(s.chunks))
	for i := range s.chunks {
		scored[i] = model.ScoredChunk{
			Chunk: s.chunks[i],
			Score: cosineSimilarity(s.vectors[i], vector),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK]
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
