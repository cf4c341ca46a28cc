// Package exchangeratehost is the last-resort fiat rate source, backed by
// the exchangerate.host JSON API.
package exchangeratehost

import (
	"context"
	"fmt"
	"time"

	"currencyrates/internal/currency"
	"currencyrates/internal/httpx"
	"currencyrates/internal/provider"
)

type Config struct {
	Name    string
	BaseURL string
}

type Client struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Client {
	if cfg.Name == "" {
		cfg.Name = "exchangerate.host"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.exchangerate.host"
	}
	return &Client{cfg: cfg, client: hc}
}

func (c *Client) Name() string { return c.cfg.Name }

type latestResponse struct {
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

type convertResponse struct {
	Date   string  `json:"date"`
	Result float64 `json:"result"`
}

// Latest returns the most recent base→quote rate.
func (c *Client) Latest(ctx context.Context, base, quote currency.Code) (provider.Quote, error) {
	u := fmt.Sprintf("%s/latest?base=%s&symbols=%s", c.cfg.BaseURL, base, quote)
	var body latestResponse
	if err := c.client.GetJSON(ctx, u, &body); err != nil {
		return provider.Quote{}, &provider.Unavailable{Provider: c.cfg.Name, Err: err}
	}
	rate := body.Rates[string(quote)]
	if rate <= 0 {
		return provider.Quote{}, provider.Unavailablef(c.cfg.Name, "no %s rate in response", quote)
	}
	return c.quote(rate, body.Date), nil
}

// Historical returns the base→quote rate for one calendar date via the
// convert endpoint.
func (c *Client) Historical(ctx context.Context, base, quote currency.Code, day time.Time) (provider.Quote, error) {
	u := fmt.Sprintf("%s/convert?from=%s&to=%s&date=%s", c.cfg.BaseURL, base, quote, day.UTC().Format("2006-01-02"))
	var body convertResponse
	if err := c.client.GetJSON(ctx, u, &body); err != nil {
		return provider.Quote{}, &provider.Unavailable{Provider: c.cfg.Name, Err: err}
	}
	if body.Result <= 0 {
		return provider.Quote{}, provider.Unavailablef(c.cfg.Name, "no conversion result")
	}
	return c.quote(body.Result, body.Date), nil
}

func (c *Client) quote(rate float64, date string) provider.Quote {
	return provider.Quote{
		Rate:         rate,
		TimestampUTC: fmt.Sprintf("%s 00:00:00", date),
		HasTime:      false,
		Source:       c.cfg.Name,
	}
}
