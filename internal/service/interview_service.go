package service

import (
	"context"
	"fmt"

	"github.com/neurodoc-ai/neurodoc/internal/ai"
	"github.com/neurodoc-ai/neurodoc/internal/index"
	"github.com/neurodoc-ai/neurodoc/internal/model"
	appErr "github.com/neurodoc-ai/neurodoc/internal/pkg/errors"
	"github.com/neurodoc-ai/neurodoc/internal/repo"
)

type InterviewService struct {
	session   *index.Session
	embedder  ai.IEmbedder
	generator ai.IGenerator
	messages  *repo.MessageRepo
}

func NewInterviewService(session *index.Session, embedder ai.IEmbedder, generator ai.IGenerator, messages *repo.MessageRepo) *InterviewService {
	return &InterviewService{session: session, embedder: embedder, generator: generator, messages: messages}
}

// Start opens a mock interview grounded in the indexed resume and returns
// the interviewer's opening question.
func (s *InterviewService) Start(ctx context.Context) (string, error) {
	store := s.session.Current()
	if store == nil {
		return "", appErr.ErrNoDocument
	}
	vec, err := s.embedder.Embed(ctx, interviewStartQuery, ai.TaskTypeQuery)
	if err != nil {
		return "", fmt.Errorf("embed interview query: %w", err)
	}
	resumeContext := JoinChunks(store.Search(vec, interviewTopK), "\n")
	question, err := s.generator.Generate(ctx, BuildInterviewStartPrompt(resumeContext))
	if err != nil {
		return "", err
	}
	if _, err := s.messages.Append(ctx, model.RoleInterviewer, question); err != nil {
		return "", err
	}
	return question, nil
}

// Answer evaluates the candidate's reply and returns the follow-up. The
// reply itself is not written to the log; only interviewer turns persist,
// so the history the next turn sees is the interviewer's own thread.
func (s *InterviewService) Answer(ctx context.Context, answer string) (string, error) {
	history, err := s.messages.Recent(ctx, interviewMemoryDepth)
	if err != nil {
		return "", err
	}
	followUp, err := s.generator.Generate(ctx, BuildInterviewChatPrompt(FormatMemory(history), answer))
	if err != nil {
		return "", err
	}
	if _, err := s.messages.Append(ctx, model.RoleInterviewer, followUp); err != nil {
		return "", err
	}
	return followUp, nil
}
