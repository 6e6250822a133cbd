package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"foodtruck-storefront/internal/config"
	"foodtruck-storefront/internal/logger"
	"foodtruck-storefront/internal/models"
)

// Client talks to the food-truck backend. It is the only component that
// crosses the network; everything above it works on decoded models.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// APIError is a non-2xx answer from the backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// New creates a backend client from configuration
func New(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  log,
	}
}

// GetTruck fetches one truck with its full menu snapshot
func (c *Client) GetTruck(ctx context.Context, id int) (*models.Truck, error) {
	var truck models.Truck
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/trucks/%d", id), nil, &truck); err != nil {
		return nil, fmt.Errorf("failed to fetch truck %d: %w", id, err)
	}
	return &truck, nil
}

// PlaceOrder submits an order and returns its id and tracking code
func (c *Client) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.OrderResult, error) {
	var result models.OrderResult
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &result); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return &result, nil
}

// GetOrder looks an order up by its customer-facing tracking code
func (c *Client) GetOrder(ctx context.Context, trackingCode string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+trackingCode, nil, &order); err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", trackingCode, err)
	}
	return &order, nil
}

// ListTruckOrders fetches all orders for one truck (vendor side)
func (c *Client) ListTruckOrders(ctx context.Context, truckID int) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/trucks/%d/orders", truckID), nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders for truck %d: %w", truckID, err)
	}
	return orders, nil
}

// do performs one JSON request/response round trip
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	requestID := logger.GenerateRequestID()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api_request", fmt.Sprintf("%s %s", method, path), requestID, map[string]interface{}{
		"method": method,
		"path":   path,
	})

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("api_request_failed", fmt.Sprintf("%s %s failed", method, path), requestID, err, map[string]interface{}{
			"method": method,
			"path":   path,
		})
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

		var envelope struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
		}

		c.logger.Error("api_request_rejected", fmt.Sprintf("%s %s - %d", method, path, resp.StatusCode), requestID, apiErr, map[string]interface{}{
			"method":      method,
			"path":        path,
			"status_code": resp.StatusCode,
		})
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
