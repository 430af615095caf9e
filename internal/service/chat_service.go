package service

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/neurodoc-ai/neurodoc/internal/ai"
	"github.com/neurodoc-ai/neurodoc/internal/index"
	"github.com/neurodoc-ai/neurodoc/internal/model"
	"github.com/neurodoc-ai/neurodoc/internal/repo"
)

// Searcher answers a free-text query with a short summary of live web
// results.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

type ChatService struct {
	session   *index.Session
	embedder  ai.IEmbedder
	generator ai.IGenerator
	messages  *repo.MessageRepo
	searcher  Searcher
	now       func() time.Time
}

// NewChatService builds the conversational pipeline. searcher may be nil,
// in which case web lookups are never attempted.
func NewChatService(session *index.Session, embedder ai.IEmbedder, generator ai.IGenerator, messages *repo.MessageRepo, searcher Searcher) *ChatService {
	return &ChatService{
		session:   session,
		embedder:  embedder,
		generator: generator,
		messages:  messages,
		searcher:  searcher,
		now:       time.Now,
	}
}

// Chat answers one user turn. Document retrieval and web search fail soft:
// a broken context source degrades to its placeholder instead of failing
// the request. Generation errors come back as the answer text so the
// conversation log keeps a record of the failure.
func (s *ChatService) Chat(ctx context.Context, query string) (string, error) {
	if _, err := s.messages.Append(ctx, model.RoleUser, query); err != nil {
		return "", err
	}
	history, err := s.messages.Recent(ctx, chatMemoryDepth)
	if err != nil {
		return "", err
	}
	memory := FormatMemory(history)
	pdfContext := s.documentContext(ctx, query)
	webResults := s.webContext(ctx, query)

	prompt := BuildChatPrompt(s.now(), memory, webResults, pdfContext, query)
	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logutil.GetLogger(ctx).Error("chat generation failed", zap.Error(err))
		answer = "Error: AI Service Unavailable. " + err.Error()
	}
	if _, err := s.messages.Append(ctx, model.RoleAssistant, answer); err != nil {
		logutil.GetLogger(ctx).Warn("failed to record assistant message", zap.Error(err))
	}
	return answer, nil
}

func (s *ChatService) documentContext(ctx context.Context, query string) string {
	store := s.session.Current()
	if store == nil {
		return NoDocumentPlaceholder
	}
	vec, err := s.embedder.Embed(ctx, query, ai.TaskTypeQuery)
	if err != nil {
		logutil.GetLogger(ctx).Warn("query embedding failed, answering without document context", zap.Error(err))
		return NoDocumentPlaceholder
	}
	return JoinChunks(store.Search(vec, chatTopK), "\n\n")
}

func (s *ChatService) webContext(ctx context.Context, query string) string {
	if s.searcher == nil || !NeedsWebSearch(query) {
		return NoSearchPlaceholder
	}
	results, err := s.searcher.Search(ctx, "current latest "+query)
	if err != nil {
		logutil.GetLogger(ctx).Warn("web search failed", zap.Error(err))
		return SearchFailedPlaceholder
	}
	return results
}
