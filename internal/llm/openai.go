package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/subtrail/subtrail/internal/common"
	"github.com/subtrail/subtrail/internal/model"
)

// openAIClient implements the Client interface for OpenAI-compatible APIs.
type openAIClient struct {
	httpClient  *http.Client
	limiter     *rateLimiter
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

// newOpenAIClient creates a new OpenAI-compatible API client.
func newOpenAIClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM API key is required")
	}

	llmModel := cfg.Model
	if llmModel == "" {
		llmModel = "gpt-4o-mini"
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}

	return &openAIClient{
		apiKey:      cfg.APIKey,
		model:       llmModel,
		baseURL:     baseURL,
		temperature: temperature,
		maxTokens:   maxTokens,
		limiter:     newRateLimiter(cfg.RequestsPerMinute),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// ProposeCandidates sends the sender evidence to the model and parses the
// returned candidate array.
func (c *openAIClient) ProposeCandidates(ctx context.Context, senders []model.SenderSummary) ([]model.SubscriptionCandidate, error) {
	if len(senders) == 0 {
		return nil, nil
	}

	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}

	var content string
	err := common.WithRetry(ctx, func() error {
		var completeErr error
		content, completeErr = c.complete(ctx, BuildAnalysisPrompt(senders))
		return completeErr
	}, common.RetryOptions{MaxAttempts: 3, InitialDelay: 2 * time.Second})
	if err != nil {
		return nil, err
	}

	raw, err := ExtractJSONArray(content)
	if err != nil {
		return nil, fmt.Errorf("model returned no usable candidates: %w", err)
	}

	return ParseCandidates([]byte(raw))
}

func (c *openAIClient) complete(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You are a subscription analyst. Respond with ONLY a valid JSON array. No markdown, no commentary.",
			},
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: %s", common.ErrRateLimit, truncate(string(body), 200))
	case resp.StatusCode >= 500:
		return "", &common.RetryableError{
			Err:       fmt.Errorf("LLM API returned status %d: %s", resp.StatusCode, truncate(string(body), 200)),
			Retryable: true,
		}
	case resp.StatusCode != http.StatusOK:
		return "", &common.RetryableError{
			Err:       fmt.Errorf("LLM API returned status %d: %s", resp.StatusCode, truncate(string(body), 200)),
			Retryable: false,
		}
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to parse API response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("API response contained no choices")
	}

	return apiResp.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
