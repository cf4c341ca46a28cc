// Package ecb fetches the ECB daily reference table (EUR pivot) and computes
// fiat cross rates from it. The table covers "today" only; no historical
// dates.
package ecb

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"currencyrates/internal/currency"
	"currencyrates/internal/httpx"
	"currencyrates/internal/provider"
	"golang.org/x/sync/singleflight"
)

type Config struct {
	Name string
	URL  string
}

type Client struct {
	cfg    Config
	client *httpx.Client

	// coalesce concurrent table fetches; the result is not retained.
	sf singleflight.Group
}

func New(cfg Config, hc *httpx.Client) *Client {
	if cfg.Name == "" {
		cfg.Name = "ECB eurofxref"
	}
	if cfg.URL == "" {
		cfg.URL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"
	}
	return &Client{cfg: cfg, client: hc}
}

func (c *Client) Name() string { return c.cfg.Name }

// Table is one daily reference snapshot: EUR-per-1 is implied, every other
// entry is units of that currency per EUR.
type Table struct {
	Date  string
	Rates map[currency.Code]float64
}

// The feed is stable enough that attribute extraction beats a full XML
// unmarshal; this mirrors how the reference table is documented to be read.
var (
	timeRx = regexp.MustCompile(`time=['"](\d{4}-\d{2}-\d{2})['"]`)
	rateRx = regexp.MustCompile(`currency=['"]([A-Z]{3})['"]\s+rate=['"]([\d.]+)['"]`)
)

// Daily fetches and parses today's reference table. Concurrent callers
// share a single in-flight request.
func (c *Client) Daily(ctx context.Context) (Table, error) {
	v, err, _ := c.sf.Do("daily", func() (any, error) {
		return c.fetchDaily(ctx)
	})
	if err != nil {
		return Table{}, err
	}
	return v.(Table), nil
}

func (c *Client) fetchDaily(ctx context.Context) (Table, error) {
	xml, err := c.client.GetText(ctx, c.cfg.URL)
	if err != nil {
		return Table{}, &provider.Unavailable{Provider: c.cfg.Name, Err: err}
	}
	t := Table{Rates: map[currency.Code]float64{currency.EUR: 1.0}}
	if m := timeRx.FindStringSubmatch(xml); m != nil {
		t.Date = m[1]
	}
	for _, m := range rateRx.FindAllStringSubmatch(xml, -1) {
		rate, err := strconv.ParseFloat(m[2], 64)
		if err != nil || rate <= 0 {
			continue
		}
		t.Rates[currency.Code(m[1])] = rate
	}
	if len(t.Rates) == 1 || t.Date == "" {
		return Table{}, provider.Unavailablef(c.cfg.Name, "reference table empty or undated")
	}
	return t, nil
}

// Cross computes base→quote through the EUR pivot of the daily table.
func (c *Client) Cross(ctx context.Context, base, quote currency.Code) (provider.Quote, error) {
	t, err := c.Daily(ctx)
	if err != nil {
		return provider.Quote{}, err
	}
	return t.Cross(base, quote, c.cfg.Name)
}

// Cross computes base→quote from an already-fetched table.
func (t Table) Cross(base, quote currency.Code, source string) (provider.Quote, error) {
	eurToBase, ok := t.Rates[base]
	if !ok {
		return provider.Quote{}, provider.Unavailablef(source, "no %s quote in table", base)
	}
	eurToQuote, ok := t.Rates[quote]
	if !ok {
		return provider.Quote{}, provider.Unavailablef(source, "no %s quote in table", quote)
	}
	rate := eurToQuote / eurToBase
	if rate <= 0 {
		return provider.Quote{}, provider.Unavailablef(source, "non-positive cross %v", rate)
	}
	return provider.Quote{
		Rate:         rate,
		TimestampUTC: fmt.Sprintf("%s 00:00:00", t.Date),
		HasTime:      false,
		Source:       source,
	}, nil
}
