// Package collector talks to the external data-collection platform. Sends are
// best-effort: the order flow never waits on or rolls back for this sink.
package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OrderData is the payload shipped for every completed order.
type OrderData struct {
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	MenuID        int64     `json:"menu_id"`
	MenuName      string    `json:"menu_name"`
	Quantity      int       `json:"quantity"`
	PaymentAmount int64     `json:"payment_amount"`
	OrderDate     time.Time `json:"order_date"`
}

type Client interface {
	SendOrderData(ctx context.Context, data OrderData) error
}

type HTTPClient struct {
	url string
	hc  *http.Client
}

func NewHTTPClient(url string) *HTTPClient {
	return &HTTPClient{
		url: url,
		hc:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *HTTPClient) SendOrderData(ctx context.Context, data OrderData) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal order data: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build collector request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("send order data: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("collector responded %d", resp.StatusCode)
	}
	return nil
}

// Nop drops every payload. Used when no collector endpoint is configured.
type Nop struct{}

func (Nop) SendOrderData(context.Context, OrderData) error { return nil }
