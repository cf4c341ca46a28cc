// Package coinbase is the second-priority BTC/USD spot source.
package coinbase

import (
	"context"
	"strconv"
	"time"

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
		cfg.Name = "Coinbase"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.coinbase.com"
	}
	return &Client{cfg: cfg, client: hc}
}

func (c *Client) Name() string { return c.cfg.Name }

type exchangeRatesResponse struct {
	Data struct {
		Rates map[string]string `json:"rates"`
	} `json:"data"`
}

// USDPerBTC returns the current USD price of one bitcoin. The endpoint
// carries no timestamp, so the observation time is "now".
func (c *Client) USDPerBTC(ctx context.Context) (provider.BTCUSD, error) {
	u := c.cfg.BaseURL + "/v2/exchange-rates?currency=BTC"
	var body exchangeRatesResponse
	if err := c.client.GetJSON(ctx, u, &body); err != nil {
		return provider.BTCUSD{}, &provider.Unavailable{Provider: c.cfg.Name, Err: err}
	}
	raw, ok := body.Data.Rates["USD"]
	if !ok {
		return provider.BTCUSD{}, provider.Unavailablef(c.cfg.Name, "no USD entry in rates")
	}
	usd, err := strconv.ParseFloat(raw, 64)
	if err != nil || usd <= 0 {
		return provider.BTCUSD{}, provider.Unavailablef(c.cfg.Name, "bad USD rate %q", raw)
	}
	return provider.BTCUSD{
		USDPerBTC:    usd,
		TimestampUTC: time.Now().UTC().Format(time.RFC3339),
		HasTime:      true,
		Source:       c.cfg.Name,
	}, nil
}
