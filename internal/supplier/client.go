package supplier

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
)

const (
	orderPath   = "/orders"
	catalogPath = "/catalog"
)

// HTTPError is a non-2xx supplier response. Status code and body are
// propagated to the caller untouched.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("supplier responded %d: %s", e.StatusCode, e.Body)
}

// Client talks to the hardware supplier's API using HTTP basic auth.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		http:     &http.Client{},
	}
}

// SubmitOrder posts the order document as XML and returns the supplier's
// raw response body on success.
func (c *Client) SubmitOrder(ctx context.Context, order *Order) (string, error) {
	payload, err := xml.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("marshal supplier order: %w", err)
	}
	payload = append([]byte(xml.Header), payload...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+orderPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("supplier request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read supplier response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return string(body), nil
}

// FetchCatalog downloads the product feed for the nightly sync.
func (c *Client) FetchCatalog(ctx context.Context) ([]FeedProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+catalogPath, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supplier request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read supplier response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var catalog Catalog
	if err := xml.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("parse supplier catalog: %w", err)
	}
	return catalog.Products, nil
}
