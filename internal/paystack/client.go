package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PlatformSharePercent is the platform's cut of a split payment; the
// business subaccount receives the remainder.
const PlatformSharePercent = 15

type Client struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type InitializeInput struct {
	Email       string
	AmountCents int64
	Currency    string
	Reference   string

	// SubaccountCode routes the split; empty means no split (platform
	// keeps everything until the business is configured).
	SubaccountCode string
}

type initializeRequest struct {
	Email             string `json:"email"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency"`
	Reference         string `json:"reference"`
	Subaccount        string `json:"subaccount,omitempty"`
	Bearer            string `json:"bearer,omitempty"`
	TransactionCharge int64  `json:"transaction_charge,omitempty"`
}

type Authorization struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type Transaction struct {
	Status      string `json:"status"`
	Reference   string `json:"reference"`
	AmountCents int64  `json:"amount"`
	Currency    string `json:"currency"`
	PaidAt      string `json:"paid_at"`
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitializeTransaction creates a hosted checkout session. When a subaccount
// is present the business gets 85% and the platform keeps 15% via the
// transaction charge.
func (c *Client) InitializeTransaction(ctx context.Context, in InitializeInput) (*Authorization, error) {
	body := initializeRequest{
		Email:     in.Email,
		Amount:    in.AmountCents,
		Currency:  in.Currency,
		Reference: in.Reference,
	}

	if in.SubaccountCode != "" {
		body.Subaccount = in.SubaccountCode
		body.Bearer = "subaccount"
		body.TransactionCharge = in.AmountCents * PlatformSharePercent / 100
	}

	var auth Authorization
	if err := c.post(ctx, "/transaction/initialize", body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// VerifyTransaction fetches the settled state of a transaction by reference.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*Transaction, error) {
	var tx Transaction
	if err := c.get(ctx, "/transaction/verify/"+reference, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("paystack returned %d: unparseable body", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Status {
		return fmt.Errorf("paystack error: %s", env.Message)
	}

	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
