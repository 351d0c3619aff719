// Package analysis calls the external language-model service and interprets
// its free-form responses into structured results. Analysis is strictly
// advisory: any failure here falls back to rule-based assembly.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/grokify/mogo/net/http/retryhttp"

	"github.com/grokify/changelogconductor/internal/config"
	"github.com/grokify/changelogconductor/pkg/model"
)

// Analyzer requests an AI analysis of a commit list and returns the raw
// response text.
type Analyzer interface {
	Analyze(ctx context.Context, commits []model.Commit) (string, error)
}

// Client is a chat-completion client for the analysis service.
type Client struct {
	apiKey     string
	cfg        config.APIConfig
	prompts    config.PromptsConfig
	httpClient *http.Client
}

// NewClient creates an analysis client. Requests retry transparently on
// rate-limit responses and time out per the configured request timeout.
func NewClient(cfg *config.Config, apiKey string) *Client {
	retryOpts := []retryhttp.Option{}
	if cfg.API.MaxRetries > 0 {
		retryOpts = append(retryOpts, retryhttp.WithMaxRetries(cfg.API.MaxRetries))
	}
	rt := retryhttp.NewWithOptions(retryOpts...)

	return &Client{
		cfg:     cfg.API,
		prompts: cfg.Prompts,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Transport: rt,
			Timeout:   cfg.API.Timeout(),
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze sends the commit digest to the analysis service and returns the
// response text.
func (c *Client) Analyze(ctx context.Context, commits []model.Commit) (string, error) {
	if len(commits) == 0 {
		return "", fmt.Errorf("no commits to analyze")
	}

	userPrompt := strings.ReplaceAll(c.prompts.UserTemplate, "{commits}", CommitDigest(commits))

	payload := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.prompts.System},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build analysis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode analysis response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error.Message != "" {
			return "", fmt.Errorf("analysis service returned %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("analysis service returned %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("analysis response contained no content")
	}

	return parsed.Choices[0].Message.Content, nil
}

// CommitDigest renders commits as newline-delimited id|subject lines, the
// form the analysis prompt expects.
func CommitDigest(commits []model.Commit) string {
	var sb strings.Builder
	for _, c := range commits {
		sb.WriteString(c.ID)
		sb.WriteString("|")
		sb.WriteString(c.Subject)
		sb.WriteString("\n")
	}
	return sb.String()
}
