package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/validators"
)

// MaxBodyLen caps a message at three concatenated GSM segments.
const MaxBodyLen = 459

type Message struct {
	To   string
	Body string
}

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
}

// Send validates the recipient and body before any network call, then makes
// a single delivery attempt. Returns the provider's message identifier.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if !validators.IsE164(msg.To) {
		return "", httperr.ErrBusiness("invalid_phone_number")
	}
	if msg.Body == "" || len(msg.Body) > MaxBodyLen {
		return "", httperr.ErrBusiness("invalid_message_body")
	}

	payload, err := json.Marshal(sendRequest{To: msg.To, Body: msg.Body})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sms api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("sms api returned %d: %s", resp.StatusCode, string(body))
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	return out.MessageID, nil
}
