// Package coingecko is the first-priority BTC/USD spot source and the sole
// BTC market-chart source.
package coingecko

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
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
		cfg.Name = "CoinGecko"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.coingecko.com/api/v3"
	}
	return &Client{cfg: cfg, client: hc}
}

func (c *Client) Name() string { return c.cfg.Name }

type simplePriceResponse struct {
	Bitcoin struct {
		USD           float64 `json:"usd"`
		LastUpdatedAt int64   `json:"last_updated_at"`
	} `json:"bitcoin"`
}

// USDPerBTC returns the current USD price of one bitcoin.
func (c *Client) USDPerBTC(ctx context.Context) (provider.BTCUSD, error) {
	u := c.cfg.BaseURL + "/simple/price?ids=bitcoin&vs_currencies=usd&include_last_updated_at=true"
	var body simplePriceResponse
	if err := c.client.GetJSON(ctx, u, &body); err != nil {
		return provider.BTCUSD{}, &provider.Unavailable{Provider: c.cfg.Name, Err: err}
	}
	if body.Bitcoin.USD <= 0 {
		return provider.BTCUSD{}, provider.Unavailablef(c.cfg.Name, "no BTC/USD price")
	}
	ts := time.Now().UTC()
	if body.Bitcoin.LastUpdatedAt > 0 {
		ts = time.Unix(body.Bitcoin.LastUpdatedAt, 0).UTC()
	}
	return provider.BTCUSD{
		USDPerBTC:    body.Bitcoin.USD,
		TimestampUTC: ts.Format(time.RFC3339),
		HasTime:      true,
		Source:       c.cfg.Name,
	}, nil
}

type marketChartResponse struct {
	Prices [][2]float64 `json:"prices"`
}

// MarketChart returns the raw daily BTC price series in vsCurrency over the
// trailing number of days. Points with non-finite prices are dropped.
func (c *Client) MarketChart(ctx context.Context, vsCurrency string, days int) ([]provider.ChartPoint, error) {
	q := url.Values{}
	q.Set("vs_currency", strings.ToLower(vsCurrency))
	q.Set("days", fmt.Sprintf("%d", days))
	q.Set("interval", "daily")
	u := fmt.Sprintf("%s/coins/bitcoin/market_chart?%s", c.cfg.BaseURL, q.Encode())

	var body marketChartResponse
	if err := c.client.GetJSON(ctx, u, &body); err != nil {
		return nil, &provider.Unavailable{Provider: c.cfg.Name, Err: err}
	}
	points := make([]provider.ChartPoint, 0, len(body.Prices))
	for _, p := range body.Prices {
		if math.IsNaN(p[1]) || math.IsInf(p[1], 0) {
			continue
		}
		points = append(points, provider.ChartPoint{
			At:    time.UnixMilli(int64(p[0])).UTC(),
			Price: p[1],
		})
	}
	if len(points) == 0 {
		return nil, provider.Unavailablef(c.cfg.Name, "empty market chart")
	}
	return points, nil
}
