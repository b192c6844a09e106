package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ashmilgit15/scheduler-backend/pkg/config"
	appErrors "github.com/ashmilgit15/scheduler-backend/pkg/errors"
)

// Client calls a Groq OpenAI-compatible chat completions endpoint with
// an ordered list of candidate models. Models are tried in sequence:
// a backend that rejects the model, times out, or errors advances the
// chain; the first successful completion wins. Exhausting the chain
// yields ErrVisionUnavailable.
type Client struct {
	http           *http.Client
	apiKey         string
	baseURL        string
	models         []string
	attemptTimeout time.Duration
	maxTokens      int
	logger         *zap.Logger
}

// NewClient constructs a Groq client from vision configuration.
func NewClient(cfg config.VisionConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.AttemptTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	return &Client{
		http:           &http.Client{},
		apiKey:         cfg.APIKey,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		models:         cfg.Models,
		attemptTimeout: timeout,
		maxTokens:      maxTokens,
		logger:         logger,
	}
}

// Models exposes the configured fallback order.
func (c *Client) Models() []string {
	return c.models
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string       `json:"type"`
	Text     string       `json:"text,omitempty"`
	ImageURL *imagePayload `json:"image_url,omitempty"`
}

type imagePayload struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzeImage submits the prompt and base64-encoded image to the model
// chain and returns the first completion text. The context bounds the
// whole chain; each attempt additionally carries its own timeout.
func (c *Client) AnalyzeImage(ctx context.Context, prompt, imageBase64, mimeType string) (string, error) {
	if c.apiKey == "" {
		return "", appErrors.ErrVisionUnconfigured
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, imageBase64)

	for _, model := range c.models {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := c.attempt(ctx, model, prompt, dataURL)
		if err == nil {
			return text, nil
		}
		c.logger.Warn("vision backend attempt failed",
			zap.String("model", model),
			zap.Error(err))
	}

	return "", appErrors.Clone(appErrors.ErrVisionUnavailable, "all image analysis models failed")
}

func (c *Client) attempt(ctx context.Context, model, prompt, dataURL string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	payload := chatRequest{
		Model: model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: prompt},
				{Type: "image_url", ImageURL: &imagePayload{URL: dataURL}},
			},
		}},
		MaxTokens: c.maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model %s: %w", model, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read model %s response: %w", model, err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(string(raw)), "model") {
			return "", fmt.Errorf("model %s unsupported", model)
		}
		return "", fmt.Errorf("model %s returned status %d", model, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode model %s response: %w", model, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", model)
	}

	return parsed.Choices[0].Message.Content, nil
}
