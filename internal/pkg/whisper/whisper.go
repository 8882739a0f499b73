// Package whisper calls the OpenAI audio transcription endpoint.
package whisper

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://api.openai.com/v1"

// Audio is one upload, already normalized
type Audio struct {
	Data     []byte
	Filename string
	MimeType string
}

// UpstreamError is a non-2xx answer from the API
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("transcription API returned %d: %s", e.StatusCode, strings.TrimSpace(body))
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Client struct {
	http  *resty.Client
	model string
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "whisper-1"
	}
	http := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Accept", "text/plain")
	if cfg.Timeout > 0 {
		http.SetTimeout(cfg.Timeout)
	}
	return &Client{http: http, model: model}
}

// Transcribe sends audio as English with deterministic decoding and returns
// the plain-text transcript
func (c *Client) Transcribe(ctx context.Context, audio Audio) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField("file", audio.Filename, audio.MimeType, bytes.NewReader(audio.Data)).
		SetMultipartFormData(map[string]string{
			"model":           c.model,
			"language":        "en",
			"response_format": "text",
			"temperature":     "0",
		}).
		Post("/audio/transcriptions")
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	if resp.IsError() {
		return "", &UpstreamError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return strings.TrimSpace(resp.String()), nil
}
