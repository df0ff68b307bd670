// Package nlu turns free-text questions into compiler intents by asking an
// OpenAI-compatible chat completions endpoint.
//
// The model is treated as an unreliable boundary: empty, failed or
// undecodable responses are retried a fixed number of times, and after the
// last attempt Parse returns an empty intent instead of an error. Values are
// normalized here so the compiler always sees a well-formed record.
package nlu

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/grafana/dskit/backoff"

	"github.com/roach88/airq/internal/compiler"
)

//go:embed prompt.txt
var systemPrompt string

// Defaults for Config fields left zero.
const (
	DefaultBaseURL  = "https://api.openai.com/v1"
	DefaultModel    = "gpt-4o-mini"
	DefaultAttempts = 3
	DefaultBackoff  = 2 * time.Second
	DefaultTimeout  = 30 * time.Second
)

const maxTokens = 350

// ErrUnconfigured is returned by New when no API key is set.
var ErrUnconfigured = errors.New("nlu: no API key configured")

// Config holds the endpoint settings.
type Config struct {
	BaseURL  string
	Model    string
	APIKey   string
	Attempts int
	Backoff  time.Duration
	Timeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Attempts <= 0 {
		c.Attempts = DefaultAttempts
	}
	if c.Backoff < 0 {
		c.Backoff = 0
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

// Client parses questions. Safe for concurrent use.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its timeout is left unchanged.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for attempt diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client. It returns ErrUnconfigured when cfg has no API key.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrUnconfigured
	}
	cfg = cfg.withDefaults()
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Parse extracts an intent from question.
//
// The only error is a cancelled or expired ctx; every other failure ends as
// an empty intent after the configured attempts.
func (c *Client) Parse(ctx context.Context, question string) (compiler.Intent, error) {
	b := backoff.New(ctx, backoff.Config{
		MinBackoff: c.cfg.Backoff,
		MaxBackoff: c.cfg.Backoff,
		MaxRetries: c.cfg.Attempts,
	})

	for b.Ongoing() {
		intent, err := c.attempt(ctx, question)
		if err == nil {
			return intent, nil
		}
		if ctx.Err() != nil {
			return compiler.Intent{}, ctx.Err()
		}
		c.logger.Warn("nlu attempt failed", "attempt", b.NumRetries()+1, "error", err)
		if b.NumRetries()+1 >= c.cfg.Attempts {
			break
		}
		b.Wait()
	}
	if err := ctx.Err(); err != nil {
		return compiler.Intent{}, err
	}

	c.logger.Warn("nlu attempts exhausted", "attempts", c.cfg.Attempts)
	return compiler.Intent{}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	MaxTokens      int            `json:"max_tokens"`
	Temperature    float64        `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

var errEmptyResponse = errors.New("empty response")

func (c *Client) attempt(ctx context.Context, question string) (compiler.Intent, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: question},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		MaxTokens:      maxTokens,
	})
	if err != nil {
		return compiler.Intent{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return compiler.Intent{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return compiler.Intent{}, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return compiler.Intent{}, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return compiler.Intent{}, fmt.Errorf("decode response: %w", err)
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return compiler.Intent{}, errEmptyResponse
	}

	return Decode([]byte(cr.Choices[0].Message.Content))
}
