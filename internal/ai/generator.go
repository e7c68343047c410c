package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spec-kit/quickplate-service/internal/config"
)

// ErrNotConfigured indicates the remote model is disabled (no API key).
var ErrNotConfigured = errors.New("generative model not configured")

// Generator produces a free-form completion for a prompt. Implementations are
// injected into the assistant service so tests can substitute a stub.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Generative Language REST API.
type GeminiClient struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewGeminiClient builds a client from config. The call timeout comes from
// the config so a slow model cannot hold a request open indefinitely.
func NewGeminiClient(cfg config.AIConfig, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout()},
		logger:   logger,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// Generate sends the prompt and extracts the first candidate's text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("gemini call failed",
			zap.Int("status", resp.StatusCode),
			zap.String("model", c.model))
		return "", fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}

	text := gjson.GetBytes(body, "candidates.0.content.parts.0.text")
	if !text.Exists() {
		return "", errors.New("gemini: malformed response")
	}
	return text.String(), nil
}
