// Package frankfurter is the primary fiat historical-rate source, backed by
// the Frankfurter JSON API (ECB data).
package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"currencyrates/internal/currency"
	"currencyrates/internal/provider"
)

const defaultBaseURL = "https://api.frankfurter.app"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=frankfurter_test -destination=mock_http_client_test.go -source=frankfurter.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Frankfurter API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	name       string
}

// Option is a configuration option for the Frankfurter client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// New creates a new Frankfurter client.
func New(options ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		name:       "ECB/Frankfurter",
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) Name() string { return c.name }

type apiResponse struct {
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Latest returns the most recent base→quote reference rate.
func (c *Client) Latest(ctx context.Context, base, quote currency.Code) (provider.Quote, error) {
	u := fmt.Sprintf("%s/latest?from=%s&to=%s", c.baseURL, base, quote)
	return c.fetch(ctx, u, quote)
}

// Historical returns the base→quote reference rate for one calendar date.
func (c *Client) Historical(ctx context.Context, base, quote currency.Code, day time.Time) (provider.Quote, error) {
	u := fmt.Sprintf("%s/%s?from=%s&to=%s", c.baseURL, day.UTC().Format("2006-01-02"), base, quote)
	return c.fetch(ctx, u, quote)
}

func (c *Client) fetch(ctx context.Context, url string, quote currency.Code) (provider.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return provider.Quote{}, &provider.Unavailable{Provider: c.name, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return provider.Quote{}, &provider.Unavailable{Provider: c.name, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return provider.Quote{}, provider.Unavailablef(c.name, "GET %s -> %d", url, resp.StatusCode)
	}
	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return provider.Quote{}, &provider.Unavailable{Provider: c.name, Err: fmt.Errorf("decode: %w", err)}
	}
	rate := body.Rates[string(quote)]
	if rate <= 0 {
		return provider.Quote{}, provider.Unavailablef(c.name, "no %s rate in response", quote)
	}
	return provider.Quote{
		Rate:         rate,
		TimestampUTC: fmt.Sprintf("%s 00:00:00", body.Date),
		HasTime:      false,
		Source:       c.name,
	}, nil
}
