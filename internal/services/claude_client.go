package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/stitts-dev/dugout/pkg/circuitbreaker"
)

const (
	DefaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion        = "2023-06-01"
)

// ClaudeConfig configures the Messages API client
type ClaudeConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	MaxTokens    int
	Temperature  float64
	RateLimit    int // requests per minute
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// ClaudeMessage represents a message in the conversation
type ClaudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ClaudeRequest represents the request payload for the Messages API
type ClaudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature,omitempty"`
	Messages    []ClaudeMessage `json:"messages"`
	System      string          `json:"system,omitempty"`
}

// ClaudeResponse represents the response from the Messages API
type ClaudeResponse struct {
	ID         string               `json:"id"`
	Type       string               `json:"type"`
	Role       string               `json:"role"`
	Content    []ClaudeContentBlock `json:"content"`
	Model      string               `json:"model"`
	StopReason string               `json:"stop_reason"`
	Usage      ClaudeUsage          `json:"usage"`
}

// ClaudeContentBlock represents content blocks in the response
type ClaudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ClaudeUsage represents token usage information
type ClaudeUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Text joins every text block of the response
func (r *ClaudeResponse) Text() string {
	var parts []string
	for _, block := range r.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// ClaudeAPIError is a non-2xx response from the Messages API
type ClaudeAPIError struct {
	StatusCode int
	Type       string `json:"type"`
	Message    string `json:"message"`
}

func (e *ClaudeAPIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("claude API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("claude API returned status %d: %s", e.StatusCode, e.Message)
}

// ClientError keeps bad requests and bad credentials from tripping the breaker
func (e *ClaudeAPIError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

func (e *ClaudeAPIError) retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// ClaudeClient generates text through the Messages API. Requests share a
// rate limiter and the anthropic circuit breaker.
type ClaudeClient struct {
	httpClient  *http.Client
	config      ClaudeConfig
	rateLimiter *rate.Limiter
	breakers    *circuitbreaker.CircuitBreakerService
	logger      *logrus.Logger
}

// NewClaudeClient creates a Messages API client with rate limiting and circuit breaker
func NewClaudeClient(cfg ClaudeConfig, breakers *circuitbreaker.CircuitBreakerService, logger *logrus.Logger) *ClaudeClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAnthropicBaseURL
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 60
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}

	return &ClaudeClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config:      cfg,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimit)), 1),
		breakers:    breakers,
		logger:      logger,
	}
}

// Generate sends one user prompt and returns the generated text
func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.SendMessage(ctx, ClaudeRequest{
		Model:       c.config.Model,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
		Messages: []ClaudeMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("claude API returned no text content")
	}
	return text, nil
}

// SendMessage sends a request to the Messages API with rate limiting and circuit breaker
func (c *ClaudeClient) SendMessage(ctx context.Context, request ClaudeRequest) (*ClaudeResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	result, err := c.breakers.Execute(circuitbreaker.Anthropic, func() (interface{}, error) {
		return c.makeRequest(ctx, body)
	})
	if err != nil {
		return nil, fmt.Errorf("claude API request failed: %w", err)
	}

	resp := result.(*ClaudeResponse)
	c.logger.WithFields(logrus.Fields{
		"model":         resp.Model,
		"input_tokens":  resp.Usage.InputTokens,
		"output_tokens": resp.Usage.OutputTokens,
		"stop_reason":   resp.StopReason,
	}).Debug("Claude API response")

	return resp, nil
}

// makeRequest handles the HTTP exchange with retries
func (c *ClaudeClient) makeRequest(ctx context.Context, body []byte) (*ClaudeResponse, error) {
	var lastErr error
	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.config.RetryBackoff * time.Duration(1<<uint(attempt-1))
			c.logger.WithFields(logrus.Fields{
				"attempt": attempt + 1,
				"backoff": backoff.String(),
				"error":   lastErr.Error(),
			}).Warn("Retrying Claude API request")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.doRequest(ctx, body)
		if err == nil {
			return resp, nil
		}

		var apiErr *ClaudeAPIError
		if errors.As(err, &apiErr) && !apiErr.retryable() {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", c.config.MaxRetries, lastErr)
}

func (c *ClaudeClient) doRequest(ctx context.Context, body []byte) (*ClaudeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.config.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("claude request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var envelope struct {
			Error ClaudeAPIError `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		apiErr := envelope.Error
		apiErr.StatusCode = resp.StatusCode
		return nil, &apiErr
	}

	var claudeResp ClaudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&claudeResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &claudeResp, nil
}
