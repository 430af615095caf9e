package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/neurodoc-ai/neurodoc/internal/ai"
	"github.com/neurodoc-ai/neurodoc/internal/extract"
	"github.com/neurodoc-ai/neurodoc/internal/filestore"
	"github.com/neurodoc-ai/neurodoc/internal/index"
	"github.com/neurodoc-ai/neurodoc/internal/model"
	appErr "github.com/neurodoc-ai/neurodoc/internal/pkg/errors"
	"github.com/neurodoc-ai/neurodoc/internal/repo"
)

// uploadObjectKey is the fixed key of the working copy; every upload
// overwrites the previous document.
const uploadObjectKey = "current.pdf"

type IngestService struct {
	store    filestore.Store
	chunker  *index.Chunker
	embedder ai.IEmbedder
	session  *index.Session
	messages *repo.MessageRepo
}

func NewIngestService(store filestore.Store, chunker *index.Chunker, embedder ai.IEmbedder, session *index.Session, messages *repo.MessageRepo) *IngestService {
	return &IngestService{
		store:    store,
		chunker:  chunker,
		embedder: embedder,
		session:  session,
		messages: messages,
	}
}

// Ingest replaces the active index with one built from the uploaded PDF
// and returns the number of chunks indexed. The previous index stays
// live until the new one is fully built.
func (s *IngestService) Ingest(ctx context.Context, filename string, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty upload", appErr.ErrInvalid)
	}
	if err := s.store.Save(ctx, uploadObjectKey, &byteFile{bytes.NewReader(data)}, int64(len(data))); err != nil {
		return 0, fmt.Errorf("%w: save upload: %v", appErr.ErrIngestion, err)
	}
	pages, err := extract.Pages(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", appErr.ErrIngestion, err)
	}
	chunks := s.chunker.Split(pages)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w: no extractable text", appErr.ErrIngestion)
	}
	store, err := s.buildIndex(ctx, chunks)
	if err != nil {
		return 0, err
	}
	s.session.Swap(store)
	if _, err := s.messages.Append(ctx, model.RoleSystem, fmt.Sprintf("Resume uploaded: %s", filename)); err != nil {
		logutil.GetLogger(ctx).Warn("failed to record upload message", zap.Error(err))
	}
	logutil.GetLogger(ctx).Info("document indexed",
		zap.String("filename", filename),
		zap.Int("pages", len(pages)),
		zap.Int("chunks", len(chunks)),
	)
	return len(chunks), nil
}

func (s *IngestService) buildIndex(ctx context.Context, chunks []model.DocumentChunk) (*index.Store, error) {
	vectors := make([][]float32, 0, len(chunks))
	for i, chunk := range chunks {
		vec, err := s.embedder.Embed(ctx, chunk.Text, ai.TaskTypeDocument)
		if err != nil {
			return nil, fmt.Errorf("%w: embed chunk %d: %v", appErr.ErrIngestion, i, err)
		}
		vectors = append(vectors, vec)
	}
	store, err := index.Build(chunks, vectors)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrIngestion, err)
	}
	return store, nil
}

type byteFile struct {
	*bytes.Reader
}

func (b *byteFile) Close() error {
	return nil
}
