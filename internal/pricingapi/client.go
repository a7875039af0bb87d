// Package pricingapi is the HTTP client for the external rate and pricing
// service. Requests are sent once; failures are returned as
// *SubmissionError and never retried.
package pricingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bitsandvolts/boxcost/internal/estimate"
	"github.com/bitsandvolts/boxcost/internal/ratecard"
)

// Endpoint paths on the rate and pricing services.
const (
	GetRatesPath      = "/api/get-rates"
	UpdateRatesPath   = "/api/update-rates"
	CalculateCostPath = "/api/calculate-cost"
)

// ErrNotConfigured is returned when the base URL for a call is empty.
var ErrNotConfigured = errors.New("pricingapi: not configured")

// SubmissionError is a failed call to the external service. StatusCode is
// zero when no response was received.
type SubmissionError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// Client talks to the rate service (fetch and update) and the pricing
// service (calculate-cost), which may live on different hosts.
type Client struct {
	RatesBaseURL   string
	PricingBaseURL string
	httpClient     *http.Client
}

func NewClient(ratesBaseURL, pricingBaseURL string, timeout time.Duration) *Client {
	return &Client{
		RatesBaseURL:   strings.TrimRight(ratesBaseURL, "/"),
		PricingBaseURL: strings.TrimRight(pricingBaseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
	}
}

// FetchRates returns the stored rate card.
func (c *Client) FetchRates(ctx context.Context) (ratecard.Wire, error) {
	var w ratecard.Wire
	err := c.do(ctx, "fetch rates", http.MethodGet, c.RatesBaseURL, GetRatesPath, nil, &w)
	return w, err
}

// UpdateRates replaces the stored rate card with w. Any 2xx status is
// success; the response body is ignored.
func (c *Client) UpdateRates(ctx context.Context, w ratecard.Wire) error {
	return c.do(ctx, "update rates", http.MethodPost, c.RatesBaseURL, UpdateRatesPath, w, nil)
}

// Estimate submits one cost request and returns the priced result.
func (c *Client) Estimate(ctx context.Context, p estimate.Payload) (estimate.Result, error) {
	var res estimate.Result
	err := c.do(ctx, "calculate cost", http.MethodPost, c.PricingBaseURL, CalculateCostPath, p, &res)
	return res, err
}

func (c *Client) do(ctx context.Context, op, method, baseURL, path string, in, out any) error {
	if baseURL == "" {
		return &SubmissionError{Op: op, Err: ErrNotConfigured}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &SubmissionError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, body)
	if err != nil {
		return &SubmissionError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SubmissionError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		text := strings.TrimSpace(string(msg))
		if text == "" {
			text = http.StatusText(resp.StatusCode)
		}
		return &SubmissionError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(text)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &SubmissionError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
