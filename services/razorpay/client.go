package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	// BaseURL is the Razorpay API base URL
	BaseURL = "https://api.razorpay.com"
	// DefaultTimeout is the default HTTP client timeout for API calls
	DefaultTimeout = 30 * time.Second
	// DefaultDialTimeout is the timeout for establishing TCP connections
	DefaultDialTimeout = 10 * time.Second
	// DefaultTLSTimeout is the timeout for TLS handshake
	DefaultTLSTimeout = 10 * time.Second
)

// Client handles all Razorpay API interactions. Credentials are the key id /
// key secret pair from the Razorpay dashboard, sent as HTTP basic auth.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// Config holds configuration for the Razorpay client
type Config struct {
	KeyID     string
	KeySecret string
	Timeout   time.Duration
	BaseURL   string
}

// NewClient creates a new Razorpay API client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: DefaultDialTimeout,
		}).DialContext,
		TLSHandshakeTimeout: DefaultTLSTimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	return &Client{
		keyID:     config.KeyID,
		keySecret: config.KeySecret,
		baseURL:   config.BaseURL,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
	}
}

// KeyID returns the public key id, which the checkout widget needs.
func (c *Client) KeyID() string {
	return c.keyID
}

// OrderRequest is the payload for creating a gateway order
type OrderRequest struct {
	Amount   int64          `json:"amount"` // paise
	Currency string         `json:"currency"`
	Receipt  string         `json:"receipt,omitempty"`
	Notes    map[string]any `json:"notes,omitempty"`
}

// Order is the gateway order object returned on creation
type Order struct {
	ID         string         `json:"id"`
	Entity     string         `json:"entity"`
	Amount     int64          `json:"amount"`
	AmountPaid int64          `json:"amount_paid"`
	AmountDue  int64          `json:"amount_due"`
	Currency   string         `json:"currency"`
	Receipt    string         `json:"receipt"`
	Status     string         `json:"status"`
	Notes      map[string]any `json:"notes"`
	CreatedAt  int64          `json:"created_at"`
}

// Payment is the authoritative payment object fetched from the gateway
type Payment struct {
	ID       string         `json:"id"`
	Entity   string         `json:"entity"`
	OrderID  string         `json:"order_id"`
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency"`
	Status   string         `json:"status"` // created, authorized, captured, refunded, failed
	Method   string         `json:"method"`
	Email    string         `json:"email"`
	Contact  string         `json:"contact"`
	Notes    map[string]any `json:"notes"`

	// Raw is the unparsed gateway response, kept so the audit record can
	// store the full payload.
	Raw json.RawMessage `json:"-"`
}

// APIError is an error envelope returned by the Razorpay API
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("razorpay: %s (%s, http %d)", e.Description, e.Code, e.StatusCode)
}

// CreateOrder creates an order at the gateway. It has no side effects besides
// the one remote call.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var order Order
	if _, err := c.do(ctx, http.MethodPost, "/v1/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// FetchPayment fetches the authoritative payment object by payment id.
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	var payment Payment
	raw, err := c.do(ctx, http.MethodGet, "/v1/payments/"+paymentID, nil, &payment)
	if err != nil {
		return nil, err
	}
	payment.Raw = raw
	return &payment, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read razorpay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("failed to decode razorpay response: %w", err)
		}
	}
	return data, nil
}

func parseAPIError(status int, data []byte) error {
	var envelope struct {
		Error struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Error.Description == "" {
		return &APIError{StatusCode: status, Code: "UNKNOWN", Description: string(data)}
	}
	return &APIError{
		StatusCode:  status,
		Code:        envelope.Error.Code,
		Description: envelope.Error.Description,
	}
}
