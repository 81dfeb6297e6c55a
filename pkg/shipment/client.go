// Package shipment provides the public Go SDK for the Shipment Engine API.
package shipment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the public SDK client for the Shipment Engine.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientConfig holds client configuration.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a new Shipment Engine client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8086"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ClassifyRequest represents a classification request.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// ClassifyResponse represents a classification decision.
type ClassifyResponse struct {
	RawInput    string  `json:"raw_input"`
	Normalized  string  `json:"normalized"`
	MatchedDesc *string `json:"matched_desc"`
	Confidence  float64 `json:"confidence"`
	HSCode      *string `json:"hs_code"`
	RiskFlag    *string `json:"risk_flag"`
	HumanReview bool    `json:"human_review"`
}

// Classify submits a goods description for HS classification.
func (c *Client) Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResponse, error) {
	var resp ClassifyResponse
	if err := c.post(ctx, "/api/v1/classify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QuoteRequest represents a route quotation request.
type QuoteRequest struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	GoodsType     string  `json:"goods_type,omitempty"`
	CargoValueUSD float64 `json:"cargo_value_usd,omitempty"`
	TotalWeightKG float64 `json:"total_weight_kg,omitempty"`
	DeadlineDays  int     `json:"deadline_days"`
}

// RouteLeg represents one segment of a route option.
type RouteLeg struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Mode    string  `json:"mode"`
	Carrier *string `json:"carrier"`
}

// RouteOption represents one route candidate.
type RouteOption struct {
	ID        string     `json:"id"`
	Mode      string     `json:"mode"`
	ETADays   int        `json:"eta_days"`
	BasePrice float64    `json:"base_price"`
	Currency  string     `json:"currency"`
	RiskScore float64    `json:"risk_score"`
	Legs      []RouteLeg `json:"legs"`
}

// QuoteRoutes returns the route candidates for a shipment.
func (c *Client) QuoteRoutes(ctx context.Context, req QuoteRequest) ([]RouteOption, error) {
	var options []RouteOption
	if err := c.post(ctx, "/api/v1/routes/quote", req, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// PlanRequest represents a shipment planning request.
type PlanRequest struct {
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	GoodsDescription string  `json:"goods_description"`
	GoodsType        string  `json:"goods_type,omitempty"`
	CargoValueUSD    float64 `json:"cargo_value_usd,omitempty"`
	TotalWeightKG    float64 `json:"total_weight_kg,omitempty"`
	DeadlineDays     int     `json:"deadline_days"`
}

// CustomsDecision is the classification subset of a plan.
type CustomsDecision struct {
	HSCode      *string `json:"hs_code"`
	RiskFlag    *string `json:"risk_flag"`
	Confidence  float64 `json:"confidence"`
	Normalized  string  `json:"normalized"`
	HumanReview bool    `json:"human_review"`
}

// PlanResponse represents a fused shipment plan.
type PlanResponse struct {
	PlanID        string          `json:"plan_id"`
	SelectedRoute RouteOption     `json:"selected_route"`
	RouteDecision string          `json:"route_decision"`
	Customs       CustomsDecision `json:"customs"`
}

// PlanShipment requests a full shipment plan.
func (c *Client) PlanShipment(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	var resp PlanResponse
	if err := c.post(ctx, "/api/v1/shipments/plan", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks that the service is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("api error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("api error: status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
