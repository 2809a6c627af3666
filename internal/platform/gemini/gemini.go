package gemini

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	genai "google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model answers with no candidates.
// Callers treat it like any other generation failure.
var ErrEmptyResponse = errors.New("gemini: empty response from model")

// Gateway is the text-generation port consumed by the assessment and chat
// services. Implementations take a prompt and return the raw model text.
type Gateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client is a thin wrapper around the official genai client. It only
// focuses on the API call itself; prompt construction and response parsing
// belong to the callers.
type Client struct {
	cli     *genai.Client
	model   string
	timeout time.Duration
	log     *zap.Logger
}

func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{cli: cli, model: model, timeout: timeout, log: log}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		c.log.Warn("gemini generate failed",
			zap.String("model", c.model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	c.log.Debug("gemini generate ok",
		zap.String("model", c.model),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
