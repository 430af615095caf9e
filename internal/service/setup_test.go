package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurodoc-ai/neurodoc/internal/index"
	"github.com/neurodoc-ai/neurodoc/internal/model"
	"github.com/neurodoc-ai/neurodoc/internal/repo"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := repo.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, repo.ApplyMigrations(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testMessageRepo(t *testing.T) *repo.MessageRepo {
	t.Helper()
	return repo.NewMessageRepo(testDB(t))
}

func allMessages(t *testing.T, messages *repo.MessageRepo) []model.Message {
	t.Helper()
	items, err := messages.Recent(context.Background(), 100)
	require.NoError(t, err)
	return items
}

func sessionWithChunks(t *testing.T, texts []string, vectors [][]float32) *index.Session {
	t.Helper()
	chunks := make([]model.DocumentChunk, 0, len(texts))
	for _, text := range texts {
		chunks = append(chunks, model.DocumentChunk{Text: text, Source: "page 1"})
	}
	store, err := index.Build(chunks, vectors)
	require.NoError(t, err)
	session := index.NewSession()
	session.Swap(store)
	return session
}

type fakeEmbedder struct {
	vectors   map[string][]float32
	err       error
	taskTypes []string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	f.taskTypes = append(f.taskTypes, taskType)
	if f.err != nil {
		return nil, f.err
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0}, nil
}

func (f *fakeEmbedder) ModelName() string {
	return "fake-embed"
}

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeSearcher struct {
	result  string
	err     error
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}
