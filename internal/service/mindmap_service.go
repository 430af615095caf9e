package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/neurodoc-ai/neurodoc/internal/ai"
	"github.com/neurodoc-ai/neurodoc/internal/index"
	appErr "github.com/neurodoc-ai/neurodoc/internal/pkg/errors"
)

// graphJSONPattern grabs everything from the first "{" to the last "}".
// Models wrap the JSON in prose or code fences; the greedy match strips
// both without parsing.
var graphJSONPattern = regexp.MustCompile(`(?s)\{.*\}`)

type MindMapService struct {
	session   *index.Session
	embedder  ai.IEmbedder
	generator ai.IGenerator
}

func NewMindMapService(session *index.Session, embedder ai.IEmbedder, generator ai.IGenerator) *MindMapService {
	return &MindMapService{session: session, embedder: embedder, generator: generator}
}

// Generate returns a mind-map graph as a raw JSON string extracted from the
// model output. The string is not validated as JSON; rendering is the
// caller's problem.
func (s *MindMapService) Generate(ctx context.Context, query string) (string, error) {
	store := s.session.Current()
	if store == nil {
		return "", appErr.ErrNoDocument
	}
	vec, err := s.embedder.Embed(ctx, query, ai.TaskTypeQuery)
	if err != nil {
		return "", fmt.Errorf("embed mindmap query: %w", err)
	}
	contextText := JoinChunks(store.Search(vec, mindmapTopK), "\n")
	raw, err := s.generator.Generate(ctx, BuildMindMapPrompt(contextText))
	if err != nil {
		return "", err
	}
	return extractGraphJSON(raw), nil
}

func extractGraphJSON(raw string) string {
	if match := graphJSONPattern.FindString(raw); match != "" {
		return match
	}
	return raw
}
