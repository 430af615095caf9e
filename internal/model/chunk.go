package model

// DocumentChunk is the unit of indexing and retrieval: a bounded slice of
// the extracted document text plus opaque source metadata.
type DocumentChunk struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// ScoredChunk pairs a retrieved chunk with its similarity score.
type ScoredChunk struct {
	Chunk DocumentChunk `json:"chunk"`
	Score float32       `json:"score"`
}
