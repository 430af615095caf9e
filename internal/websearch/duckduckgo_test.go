package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearch_SummarizesInstantAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "current latest go release", r.URL.Query().Get("q"))
		require.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Answer": "Go 1.25 is out",
			"AbstractText": "Go is a programming language.",
			"RelatedTopics": [{"Text": "Go releases"}, {"Text": ""}]
		}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	result, err := client.Search(context.Background(), "current latest go release")
	require.NoError(t, err)
	require.Equal(t, "Go 1.25 is out\nGo is a programming language.\nGo releases", result)
}

func TestSearch_EmptyAnswerIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Answer": "", "AbstractText": "", "RelatedTopics": []}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.Search(context.Background(), "anything")
	require.Error(t, err)
}

func TestSearch_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.Search(context.Background(), "anything")
	require.Error(t, err)
	require.Contains(t, err.Error(), "duckduckgo request failed")
}

func TestSearch_MaxTopicsCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Answer": "primary",
			"RelatedTopics": [{"Text": "t1"}, {"Text": "t2"}, {"Text": "t3"}]
		}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, MaxTopics: 1})
	result, err := client.Search(context.Background(), "anything")
	require.NoError(t, err)
	require.Equal(t, "primary\nt1", result)
}
