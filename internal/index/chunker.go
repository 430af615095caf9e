package index

import (
	"fmt"
	"strings"

	"github.com/neurodoc-ai/neurodoc/internal/model"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Chunker splits extracted page text into fixed-size overlapping windows.
// Window and overlap are measured in runes so the parameters keep their
// meaning for non-ASCII documents.
type Chunker struct {
	size    int
	overlap int
}

func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	if overlap >= size {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Split windows each page independently, mirroring per-page document
// loading: a chunk never spans a page boundary. The result is
// deterministic for a given input and configuration.
func (c *Chunker) Split(pages []string) []model.DocumentChunk {
	var chunks []model.DocumentChunk
	step := c.size - c.overlap
	for pageNo, page := range pages {
		runes := []rune(strings.TrimSpace(page))
		if len(runes) == 0 {
			continue
		}
		source := fmt.Sprintf("page %d", pageNo+1)
		for start := 0; start < len(runes); start += step {
			end := start + c.size
			if end > len(runes) {
				end = len(runes)
			}
			chunks = append(chunks, model.DocumentChunk{
				Text:   string(runes[start:end]),
				Source: source,
			})
			if end == len(runes) {
				break
			}
		}
	}
	return chunks
}
