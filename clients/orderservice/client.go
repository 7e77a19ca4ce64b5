package orderservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/khanhtran-03/shopsphere/models"
	"github.com/khanhtran-03/shopsphere/payment"
)

// Client fetches orders from an external order service over REST. It is used
// in deployments where order state lives outside this service; the fetch is
// an idempotent read and safe to repeat on every poll tick.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the order service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchOrder retrieves the current state of an order. A 404 maps to
// payment.ErrOrderNotFound; any other non-200 status is an error.
func (c *Client) FetchOrder(ctx context.Context, id string) (*models.Order, error) {
	endpoint := fmt.Sprintf("%s/v1/orders/%s", c.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, payment.ErrOrderNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	var order models.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}

	return &order, nil
}
