// Package llm wraps chat-completion calls behind a single Complete method.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sethvargo/go-retry"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// PlaceholderAPIKey is the value shipped in example env files
const PlaceholderAPIKey = "your_openai_api_key_here"

var ErrNotConfigured = errors.New("OpenAI API key not configured")

// OperationError wraps an upstream failure with the operation it happened in
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("Error during %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

type CompletionOptions struct {
	MaxTokens   int
	Temperature float64
}

// Completer produces a single completion for prompt. op names the calling
// operation for error reporting.
type Completer interface {
	Complete(ctx context.Context, op string, prompt string, opts CompletionOptions) (string, error)
}

type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	Timeout      time.Duration
	MaxRetries   uint64
	RetryBackoff time.Duration
}

// Configured reports whether key looks like a real key
func Configured(key string) bool {
	return key != "" && key != PlaceholderAPIKey
}

type Client struct {
	model        llms.Model
	timeout      time.Duration
	maxRetries   uint64
	retryBackoff time.Duration
}

// NewOpenAIClient builds a client for the OpenAI chat API
func NewOpenAIClient(cfg Config) (*Client, error) {
	if !Configured(cfg.APIKey) {
		return nil, ErrNotConfigured
	}
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return NewClient(model, cfg), nil
}

// NewClient wraps an existing model, used with fakes in tests
func NewClient(model llms.Model, cfg Config) *Client {
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	return &Client{
		model:        model,
		timeout:      cfg.Timeout,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: backoff,
	}
}

func (c *Client) Complete(ctx context.Context, op string, prompt string, opts CompletionOptions) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBackoff))

	var completion string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
			llms.WithMaxTokens(opts.MaxTokens),
			llms.WithTemperature(opts.Temperature),
		)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			slog.Warn("completion attempt failed", "operation", op, "error", err)
			return retry.RetryableError(err)
		}
		completion = out
		return nil
	})
	if err != nil {
		return "", &OperationError{Op: op, Err: err}
	}

	slog.Debug("completion finished", "operation", op, "duration", time.Since(start), "chars", len(completion))
	return strings.TrimSpace(completion), nil
}

// EstimateTokens approximates token usage at four characters per token
func EstimateTokens(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}
