package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the production generative-language API endpoint
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel is the model used when none is configured
	DefaultModel = "gemini-1.5-flash"
	// DefaultTimeout is the default timeout for API calls
	DefaultTimeout = 30 * time.Second

	// Generation parameters are fixed for this service.
	generationTemperature = 0.7
	generationMaxTokens   = 512

	finishReasonSafety = "SAFETY"
)

// Client calls the Gemini generateContent API over plain HTTP. The API key is
// passed as a URL query parameter, which is how the generative-language API
// authenticates.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
	debugMode  bool
}

// NewClient returns a client with defaults applied.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  strings.TrimSpace(apiKey),
		model:   DefaultModel,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests and proxies).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger enables debug logging of upstream calls.
func WithLogger(logger *zap.Logger, debugMode bool) Option {
	return func(c *Client) {
		c.logger = logger
		c.debugMode = debugMode
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// GenerateReply sends the conversation to the generateContent endpoint and
// returns the first text part of the first candidate. It returns an empty
// reply (and nil error) when the upstream succeeds but produces no text.
//
// Error taxonomy: *APIError for non-2xx upstream responses, ErrSafetyFiltered
// when the candidate was blocked by the safety filter, and a wrapped
// transport error when the call itself fails.
func (c *Client) GenerateReply(ctx context.Context, systemPrompt string, messages []Content) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("api key is required")
	}

	payload := generateRequest{
		Contents: messages,
		GenerationConfig: generationConfig{
			Temperature:     generationTemperature,
			MaxOutputTokens: generationMaxTokens,
		},
	}
	if systemPrompt != "" {
		payload.SystemInstruction = &Content{Parts: []Part{{Text: systemPrompt}}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if c.logger != nil && c.debugMode {
		c.logger.Debug("gemini_api_request",
			zap.String("model", c.model),
			zap.Int("message_count", len(messages)),
			zap.Int("payload_bytes", len(body)),
		)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	latency := time.Since(start)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Tolerate unparsable error bodies; the envelope stays zero-valued.
		var errResp errorResponse
		_ = json.Unmarshal(respBody, &errResp)
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    errResp.Error.Message,
			Status:     errResp.Error.Status,
		}
		if c.logger != nil {
			c.logger.Warn("gemini_api_error",
				zap.Int("status_code", resp.StatusCode),
				zap.String("upstream_status", apiErr.Status),
				zap.Duration("latency", latency),
			)
		}
		return "", apiErr
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if c.logger != nil && c.debugMode {
		c.logger.Debug("gemini_api_response",
			zap.Int("candidate_count", len(parsed.Candidates)),
			zap.Duration("latency", latency),
		)
	}

	if len(parsed.Candidates) == 0 {
		return "", nil
	}

	first := parsed.Candidates[0]
	if first.FinishReason == finishReasonSafety {
		return "", ErrSafetyFiltered
	}
	if len(first.Content.Parts) == 0 {
		return "", nil
	}
	return first.Content.Parts[0].Text, nil
}
