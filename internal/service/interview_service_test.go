package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurodoc-ai/neurodoc/internal/index"
	"github.com/neurodoc-ai/neurodoc/internal/model"
	appErr "github.com/neurodoc-ai/neurodoc/internal/pkg/errors"
)

func TestInterviewStart_RequiresDocument(t *testing.T) {
	generator := &fakeGenerator{}
	svc := NewInterviewService(index.NewSession(), &fakeEmbedder{}, generator, testMessageRepo(t))

	_, err := svc.Start(context.Background())
	require.True(t, appErr.IsNoDocument(err))
	require.Empty(t, generator.prompts)
}

func TestInterviewStart_PersistsOpeningQuestion(t *testing.T) {
	session := sessionWithChunks(t, []string{"built a payment service in Go"}, [][]float32{{1}})
	generator := &fakeGenerator{response: "Tell me about the payment service."}
	embedder := &fakeEmbedder{}
	svc := NewInterviewService(session, embedder, generator, testMessageRepo(t))

	question, err := svc.Start(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Tell me about the payment service.", question)

	require.Len(t, generator.prompts, 1)
	require.Contains(t, generator.prompts[0], "built a payment service in Go")
	require.Equal(t, []string{"RETRIEVAL_QUERY"}, embedder.taskTypes)

	history := allMessages(t, svc.messages)
	require.Len(t, history, 1)
	require.Equal(t, model.RoleInterviewer, history[0].Role)
	require.Equal(t, question, history[0].Content)
}

func TestInterviewAnswer_DoesNotPersistCandidateAnswer(t *testing.T) {
	generator := &fakeGenerator{response: "Good. Now explain GC tuning."}
	svc := NewInterviewService(index.NewSession(), &fakeEmbedder{}, generator, testMessageRepo(t))

	ctx := context.Background()
	_, err := svc.messages.Append(ctx, model.RoleInterviewer, "Tell me about Go.")
	require.NoError(t, err)

	followUp, err := svc.Answer(ctx, "I used goroutines heavily")
	require.NoError(t, err)
	require.Equal(t, "Good. Now explain GC tuning.", followUp)

	require.Contains(t, generator.prompts[0], "INTERVIEWER: Tell me about Go.")
	require.Contains(t, generator.prompts[0], `"I used goroutines heavily"`)

	history := allMessages(t, svc.messages)
	require.Len(t, history, 2)
	require.Equal(t, model.RoleInterviewer, history[0].Role)
	require.Equal(t, model.RoleInterviewer, history[1].Role)
	require.Equal(t, followUp, history[1].Content)
}

func TestInterviewAnswer_GenerationFailureIsFatal(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("model down")}
	svc := NewInterviewService(index.NewSession(), &fakeEmbedder{}, generator, testMessageRepo(t))

	_, err := svc.Answer(context.Background(), "my answer")
	require.Error(t, err)

	require.Empty(t, allMessages(t, svc.messages))
}
