// Package coindesk is the last-resort BTC/USD spot source.
package coindesk

import (
	"context"
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
		cfg.Name = "CoinDesk"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.coindesk.com"
	}
	return &Client{cfg: cfg, client: hc}
}

func (c *Client) Name() string { return c.cfg.Name }

type currentPriceResponse struct {
	Time struct {
		UpdatedISO string `json:"updatedISO"`
	} `json:"time"`
	BPI struct {
		USD struct {
			RateFloat float64 `json:"rate_float"`
		} `json:"USD"`
	} `json:"bpi"`
}

// USDPerBTC returns the current USD price of one bitcoin.
func (c *Client) USDPerBTC(ctx context.Context) (provider.BTCUSD, error) {
	u := c.cfg.BaseURL + "/v1/bpi/currentprice/USD.json"
	var body currentPriceResponse
	if err := c.client.GetJSON(ctx, u, &body); err != nil {
		return provider.BTCUSD{}, &provider.Unavailable{Provider: c.cfg.Name, Err: err}
	}
	if body.BPI.USD.RateFloat <= 0 {
		return provider.BTCUSD{}, provider.Unavailablef(c.cfg.Name, "no USD rate_float")
	}
	ts := body.Time.UpdatedISO
	if ts == "" {
		ts = time.Now().UTC().Format(time.RFC3339)
	}
	return provider.BTCUSD{
		USDPerBTC:    body.BPI.USD.RateFloat,
		TimestampUTC: ts,
		HasTime:      true,
		Source:       c.cfg.Name,
	}, nil
}
