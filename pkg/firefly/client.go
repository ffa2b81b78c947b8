package firefly

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

const (
	transactionsAPI = "api/v1/transactions"
	categoriesAPI   = "api/v1/categories"
	aboutAPI        = "api/v1/about"
)

// ClientConfig holds connection settings for a Firefly III instance.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration // Default: 30 seconds
}

// Client is a Firefly III API client. It is safe for concurrent use;
// the underlying http.Client connection pool is shared across all
// in-flight message handlers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new Firefly III API client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// CreateTransaction stores a single transaction. Only HTTP 200 counts
// as success; any other status is returned as an error carrying the
// status code and response body for logging.
func (c *Client) CreateTransaction(ctx context.Context, txn Transaction) error {
	body, err := json.Marshal(transactionsRequest{Transactions: []Transaction{txn}})
	if err != nil {
		return fmt.Errorf("failed to encode transaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s", c.baseURL, transactionsAPI), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			respBody = []byte("failed to read response body")
		}
		return fmt.Errorf("failed to add transaction: [%d] %s", resp.StatusCode, respBody)
	}

	return nil
}

// ListCategories returns the names of all categories in response order.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s", c.baseURL, categoriesAPI), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to list categories: [%d] %s", resp.StatusCode, respBody)
	}

	var categories categoriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories response: %w", err)
	}

	names := make([]string, len(categories.Data))
	for i, cat := range categories.Data {
		names[i] = cat.Attributes.Name
	}

	return names, nil
}

// Ping checks that the Firefly III instance is reachable and the API
// key is accepted. Used by the /status healthcheck.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s", c.baseURL, aboutAPI), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
