// Package gemini implements the content sources on top of the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"lunacat/internal/content"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

var (
	errInvalidResponse = errors.New("invalid response from language model")
	errContentBlocked  = errors.New("content blocked by safety filters")
	errEmptyText       = errors.New("language model returned no text")
)

// modelAPI is the subset of *genai.Models used by Client
type modelAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config holds Gemini client settings
type Config struct {
	APIKey         string
	Model          string
	MaxRetries     int
	RetryDelay     time.Duration
	PairCount      int
	FlashcardCount int
}

// Client generates game pairs, flashcards, level assessments and chat
// replies. Every failure is reported as content.ErrContentUnavailable.
type Client struct {
	models modelAPI
	cfg    Config
	logger *zap.Logger
}

// New creates a client connected to the Gemini API
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newClient(client.Models, cfg, logger), nil
}

func newClient(models modelAPI, cfg Config, logger *zap.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.PairCount <= 0 {
		cfg.PairCount = 6
	}
	if cfg.PairCount > content.MaxPairs {
		cfg.PairCount = content.MaxPairs
	}
	if cfg.FlashcardCount <= 0 {
		cfg.FlashcardCount = 5
	}
	return &Client{models: models, cfg: cfg, logger: logger}
}

// generate calls the model, retrying transient failures with exponential
// backoff and jitter. Blocked or empty responses are not retried.
func (c *Client) generate(ctx context.Context, op string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		resp, err := c.models.GenerateContent(ctx, c.cfg.Model, contents, config)
		if err == nil {
			text, perr := responseText(resp)
			if perr == nil {
				return text, nil
			}
			c.logger.Warn("Gemini returned unusable response",
				zap.String("op", op),
				zap.Error(perr),
			)
			return "", fmt.Errorf("%w: %s: %w", content.ErrContentUnavailable, op, perr)
		}

		lastErr = err
		c.logger.Warn("Gemini call failed",
			zap.String("op", op),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		if attempt == c.cfg.MaxRetries {
			break
		}
		if err := c.wait(ctx, attempt); err != nil {
			lastErr = err
			break
		}
	}

	return "", fmt.Errorf("%w: %s: %v", content.ErrContentUnavailable, op, lastErr)
}

func (c *Client) wait(ctx context.Context, attempt int) error {
	backoff := float64(c.cfg.RetryDelay) * math.Pow(2, float64(attempt))
	delay := time.Duration(backoff * (0.5 + rand.Float64()*0.5))

	t := time.NewTimer(delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", errInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", errContentBlocked
	}
	if resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty content", errInvalidResponse)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errEmptyText
	}
	return text, nil
}

var _ content.Source = (*Client)(nil)
