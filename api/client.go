// Package api is the HTTP client for the message store
// (GET and POST /api/messages).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const messagesPath = "/api/messages"

// StatusError is returned when the store answers with a non-2xx status.
type StatusError struct {
	Method string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api: %s %s: status %d", e.Method, messagesPath, e.Status)
	}
	return fmt.Sprintf("api: %s %s: status %d: %s", e.Method, messagesPath, e.Status, e.Body)
}

// Client talks to a message store.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for baseURL. A zero timeout leaves requests
// bounded only by their context and the transport defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// List fetches the full current message list.
func (c *Client) List(ctx context.Context) ([]Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+messagesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("api: list messages: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var out []Message
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Post stores text and returns the message echoed by the store.
func (c *Client) Post(ctx context.Context, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	body, err := json.Marshal(postRequest{Message: text})
	if err != nil {
		return Message{}, fmt.Errorf("api: encode message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return Message{}, fmt.Errorf("api: post message: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var out Message
	if err := c.do(req, &out); err != nil {
		return Message{}, err
	}
	return out, nil
}

func (c *Client) do(req *http.Request, out any) error {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", req.Method, messagesPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: req.Method, Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s response: %w", req.Method, err)
	}
	return nil
}
