// Package razorpay implements the storefront payment gateway against the
// Razorpay Orders API.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	storefront "github.com/goliatone/go-studio/components/storefront"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Config configures the Razorpay client. KeyID and KeySecret come from the
// Razorpay dashboard; the secret never leaves the server.
type Config struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	HTTPClient *http.Client
}

// Client talks to the Razorpay REST API and verifies checkout signatures.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

// New builds a client for live Razorpay credentials.
func New(cfg Config) (*Client, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, fmt.Errorf("razorpay: key id and secret are required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   baseURL,
		client:    httpClient,
	}, nil
}

var _ storefront.PaymentGateway = (*Client)(nil)

// Key returns the public key id the checkout widget needs.
func (c *Client) Key() string {
	return c.keyID
}

// CreateOrder asks Razorpay for a checkout order.
func (c *Client) CreateOrder(ctx context.Context, req storefront.GatewayOrderRequest) (storefront.GatewayOrder, error) {
	payload := orderRequest{
		Amount:   req.AmountPaise,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	}
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", payload, &resp); err != nil {
		return storefront.GatewayOrder{}, err
	}
	return storefront.GatewayOrder{
		ID:          resp.ID,
		AmountPaise: resp.Amount,
		Currency:    resp.Currency,
	}, nil
}

// VerifySignature checks the HMAC-SHA256 signature Razorpay attaches to a
// completed checkout. The signed message is "<order_id>|<payment_id>".
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(c.keySecret, orderID, paymentID, signature)
}

// VerifySignature reports whether signature matches the expected HMAC for
// the order/payment pair under the given secret.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("razorpay: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("razorpay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("razorpay: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("razorpay: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("razorpay: decode response: %w", err)
	}
	return nil
}

type orderRequest struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}
