package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.duckduckgo.com"

// Client queries the DuckDuckGo instant-answer API and condenses the
// response into a short text summary. It is a best-effort collaborator:
// callers downgrade failures to a placeholder instead of aborting.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxTopics  int
}

type Config struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	MaxTopics      int    `json:"max_topics"`
}

type instantAnswer struct {
	AbstractText  string         `json:"AbstractText"`
	Answer        string         `json:"Answer"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

type relatedTopic struct {
	Text string `json:"Text"`
}

func New(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxTopics := cfg.MaxTopics
	if maxTopics <= 0 {
		maxTopics = 3
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxTopics:  maxTopics,
	}
}

func (c *Client) Search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")
	endpoint := c.baseURL + "/?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("duckduckgo request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	var out instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return c.summarize(out)
}

func (c *Client) summarize(answer instantAnswer) (string, error) {
	var parts []string
	if text := strings.TrimSpace(answer.Answer); text != "" {
		parts = append(parts, text)
	}
	if text := strings.TrimSpace(answer.AbstractText); text != "" {
		parts = append(parts, text)
	}
	for _, topic := range answer.RelatedTopics {
		if len(parts) >= c.maxTopics+1 {
			break
		}
		if text := strings.TrimSpace(topic.Text); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no search results")
	}
	return strings.Join(parts, "\n"), nil
}
