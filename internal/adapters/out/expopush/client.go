// Package expopush sends push notifications through the Expo push API.
package expopush

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dispatch/internal/core/ports"
)

const (
	// DefaultEndpoint is the public Expo push send endpoint.
	DefaultEndpoint = "https://exp.host/--/api/v2/push/send"

	defaultTimeout = 5 * time.Second
)

type message struct {
	To    string      `json:"to"`
	Title string      `json:"title"`
	Body  string      `json:"body"`
	Data  messageData `json:"data"`
}

type messageData struct {
	OrderID string `json:"orderId"`
}

// Client delivers pushes over HTTP to an Expo-compatible endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a push client. An empty endpoint falls back to the public
// Expo API.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

// Send posts a single push message. A non-2xx response is an error; Expo's
// per-receipt delivery status is not inspected.
func (c *Client) Send(ctx context.Context, push ports.Push) error {
	payload, err := json.Marshal(message{
		To:    push.To,
		Title: push.Title,
		Body:  push.Body,
		Data:  messageData{OrderID: push.OrderID},
	})
	if err != nil {
		return fmt.Errorf("marshal push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push endpoint returned %d: %s", resp.StatusCode, body)
	}
	return nil
}

var _ ports.PushSender = (*Client)(nil)
