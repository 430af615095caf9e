package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/neurodoc-ai/neurodoc/internal/config"
	"github.com/neurodoc-ai/neurodoc/internal/filestore"
	"github.com/neurodoc-ai/neurodoc/internal/index"
	"github.com/neurodoc-ai/neurodoc/internal/model"
	"github.com/neurodoc-ai/neurodoc/internal/repo"
	"github.com/neurodoc-ai/neurodoc/internal/service"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type stubEmbedder struct{}

func (s *stubEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (s *stubEmbedder) ModelName() string {
	return "stub-model"
}

type routerFixture struct {
	router  *gin.Engine
	session *index.Session
}

func newTestRouter(t *testing.T, generator *stubGenerator) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repo.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, repo.ApplyMigrations(db))
	t.Cleanup(func() { _ = db.Close() })

	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)

	chunker, err := index.NewChunker(index.DefaultChunkSize, index.DefaultChunkOverlap)
	require.NoError(t, err)

	session := index.NewSession()
	messageRepo := repo.NewMessageRepo(db)
	embedder := &stubEmbedder{}

	router := NewRouter(
		RouterOptions{},
		NewUploadHandler(service.NewIngestService(store, chunker, embedder, session, messageRepo)),
		NewChatHandler(service.NewChatService(session, embedder, generator, messageRepo, nil)),
		NewMindMapHandler(service.NewMindMapService(session, embedder, generator)),
		NewInterviewHandler(service.NewInterviewService(session, embedder, generator, messageRepo)),
	)
	return &routerFixture{router: router, session: session}
}

func (f *routerFixture) indexDocument(t *testing.T, texts ...string) {
	t.Helper()
	chunks := make([]model.DocumentChunk, 0, len(texts))
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		chunks = append(chunks, model.DocumentChunk{Text: text, Source: "page 1"})
		vectors = append(vectors, []float32{1, 0})
	}
	store, err := index.Build(chunks, vectors)
	require.NoError(t, err)
	f.session.Swap(store)
}

func doForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func doJSON(router *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestHome(t *testing.T) {
	fixture := newTestRouter(t, &stubGenerator{response: "ok"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	fixture.router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "NeuroDoc System Active", decodeBody(t, recorder)["message"])
}

func TestUpload_MissingFile(t *testing.T) {
	fixture := newTestRouter(t, &stubGenerator{response: "ok"})

	recorder := doForm(fixture.router, "/upload", url.Values{})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "file is required", decodeBody(t, recorder)["detail"])
}

func TestChat_MissingQuery(t *testing.T) {
	fixture := newTestRouter(t, &stubGenerator{response: "ok"})

	recorder := doForm(fixture.router, "/chat", url.Values{})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "query is required", decodeBody(t, recorder)["detail"])
}

func TestChat_AnswersWithoutDocument(t *testing.T) {
	fixture := newTestRouter(t, &stubGenerator{response: "the answer"})

	recorder := doForm(fixture.router, "/chat", url.Values{"query": {"hello"}})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "the answer", decodeBody(t, recorder)["answer"])
}

func TestChat_GenerationFailureStillOK(t *testing.T) {
	fixture := newTestRouter(t, &stubGenerator{err: errors.New("model down")})

	recorder := doForm(fixture.router, "/chat", url.Values{"query": {"hello"}})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "Error: AI Service Unavailable. model down", decodeBody(t, recorder)["answer"])
}

func TestMindMap_NoDocument(t *testing.T) {
	fixture := newTestRouter(t, &stubGenerator{response: "{}"})

	recorder := doJSON(fixture.router, "/mindmap", `{"query": "main ideas"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "Please upload a PDF first.", decodeBody(t, recorder)["detail"])
}

func TestMindMap_ReturnsGraphJSON(t *testing.T) {
	fixture := newTestRouter(t, &stubGenerator{response: "map: {\"nodes\": [], \"edges\": []} done"})
	fixture.indexDocument(t, "document body")

	recorder := doJSON(fixture.router, "/mindmap", `{"query": "main ideas"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, `{"nodes": [], "edges": []}`, decodeBody(t, recorder)["graph"])
}

func TestMindMap_GenerationFailure(t *testing.T) {
	fixture := newTestRouter(t, &stubGenerator{err: errors.New("model down")})
	fixture.indexDocument(t, "document body")

	recorder := doJSON(fixture.router, "/mindmap", `{"query": "main ideas"}`)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestInterviewStart_NoDocument(t *testing.T) {
	fixture := newTestRouter(t, &stubGenerator{response: "first question"})

	recorder := doForm(fixture.router, "/interview/start", url.Values{})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "Please upload your Resume/PDF first!", decodeBody(t, recorder)["detail"])
}

func TestInterviewStart_ReturnsOpeningQuestion(t *testing.T) {
	fixture := newTestRouter(t, &stubGenerator{response: "first question"})
	fixture.indexDocument(t, "resume body")

	recorder := doForm(fixture.router, "/interview/start", url.Values{})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "first question", decodeBody(t, recorder)["message"])
}

func TestInterviewChat_MissingAnswer(t *testing.T) {
	fixture := newTestRouter(t, &stubGenerator{response: "follow-up"})

	recorder := doForm(fixture.router, "/interview/chat", url.Values{})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "answer is required", decodeBody(t, recorder)["detail"])
}

func TestInterviewChat_ReturnsFollowUp(t *testing.T) {
	fixture := newTestRouter(t, &stubGenerator{response: "follow-up"})

	recorder := doForm(fixture.router, "/interview/chat", url.Values{"answer": {"my answer"}})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "follow-up", decodeBody(t, recorder)["message"])
}
