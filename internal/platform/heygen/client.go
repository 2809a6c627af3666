package heygen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://api.heygen.com"

// ErrNoAPIKey is returned when the client was constructed without a key.
var ErrNoAPIKey = errors.New("heygen: api key not configured")

// TokenProvider issues short-lived session tokens for the streaming avatar.
// The avatar session itself runs entirely between the browser and HeyGen.
type TokenProvider interface {
	CreateSessionToken(ctx context.Context) (string, error)
}

type Client struct {
	httpClient *resty.Client
	apiKey     string
	log        *zap.Logger
}

func NewClient(apiKey string, log *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{httpClient: client, apiKey: apiKey, log: log}
}

type createTokenResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

func (c *Client) CreateSessionToken(ctx context.Context) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	var result createTokenResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", c.apiKey).
		SetResult(&result).
		Post("/v1/streaming.create_token")
	if err != nil {
		return "", fmt.Errorf("heygen create token: %w", err)
	}
	if resp.IsError() {
		c.log.Warn("heygen token request rejected", zap.Int("status", resp.StatusCode()))
		return "", fmt.Errorf("heygen create token: status %s", resp.Status())
	}
	if result.Data.Token == "" {
		return "", errors.New("heygen create token: empty token in response")
	}
	return result.Data.Token, nil
}
