// Package bcb queries the Brazilian central bank's PTAX reference-rate
// OData service. PTAX quotes are BRL per one unit of a foreign currency.
package bcb

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"
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
	cfg Config
	// day queries ride the slow profile, range queries the fast one,
	// matching the per-endpoint budget the rest of the engine assumes.
	slow *httpx.Client
	fast *httpx.Client
}

func New(cfg Config, slow, fast *httpx.Client) *Client {
	if cfg.Name == "" {
		cfg.Name = "BCB/PTAX"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata"
	}
	return &Client{cfg: cfg, slow: slow, fast: fast}
}

func (c *Client) Name() string { return c.cfg.Name }

// DayQuote is the most recent intraday PTAX quote for one calendar day.
type DayQuote struct {
	BRLPerForeign float64
	TimestampUTC  string
}

type odataResponse struct {
	Value []odataRow `json:"value"`
}

type odataRow struct {
	CotacaoCompra   float64 `json:"cotacaoCompra"`
	CotacaoVenda    float64 `json:"cotacaoVenda"`
	DataHoraCotacao string  `json:"dataHoraCotacao"`
}

// mmddyyyy is the date format the OData endpoints expect.
func mmddyyyy(t time.Time) string { return t.UTC().Format("01-02-2006") }

// Day returns the newest intraday sell quote for foreign on the given
// calendar date. A well-formed empty result is provider.ErrNoData, which the
// resolver treats as "roll the date back one day".
func (c *Client) Day(ctx context.Context, foreign currency.Code, day time.Time) (DayQuote, error) {
	q := url.Values{}
	q.Set("@moeda", fmt.Sprintf("'%s'", foreign))
	q.Set("@dataCotacao", fmt.Sprintf("'%s'", mmddyyyy(day)))
	q.Set("$top", "100")
	q.Set("$orderby", "dataHoraCotacao desc")
	q.Set("$format", "json")
	u := fmt.Sprintf("%s/CotacaoMoedaDia(moeda=@moeda,dataCotacao=@dataCotacao)?%s", c.cfg.BaseURL, q.Encode())

	var resp odataResponse
	if err := c.slow.GetJSON(ctx, u, &resp); err != nil {
		return DayQuote{}, &provider.Unavailable{Provider: c.cfg.Name, Err: err}
	}
	if len(resp.Value) == 0 {
		return DayQuote{}, &provider.Unavailable{Provider: c.cfg.Name, Err: provider.ErrNoData}
	}
	latest := resp.Value[0]
	if !(latest.CotacaoVenda > 0) || math.IsInf(latest.CotacaoVenda, 0) {
		return DayQuote{}, provider.Unavailablef(c.cfg.Name, "bad sell quote %v", latest.CotacaoVenda)
	}
	return DayQuote{BRLPerForeign: latest.CotacaoVenda, TimestampUTC: latest.DataHoraCotacao}, nil
}

// Period returns all PTAX sell quotes for foreign between from and to,
// ascending by timestamp, with malformed rows dropped.
func (c *Client) Period(ctx context.Context, foreign currency.Code, from, to time.Time) ([]provider.Tick, error) {
	q := url.Values{}
	q.Set("$top", "1000")
	q.Set("$orderby", "dataHoraCotacao asc")
	q.Set("$format", "json")
	u := fmt.Sprintf("%s/CotacaoMoedaPeriodo(moeda='%s',dataInicial='%s',dataFinalCotacao='%s')?%s",
		c.cfg.BaseURL, foreign, mmddyyyy(from), mmddyyyy(to), q.Encode())

	var resp odataResponse
	if err := c.fast.GetJSON(ctx, u, &resp); err != nil {
		return nil, &provider.Unavailable{Provider: c.cfg.Name, Err: err}
	}
	ticks := make([]provider.Tick, 0, len(resp.Value))
	for _, row := range resp.Value {
		at, ok := currency.ParseUTC(row.DataHoraCotacao)
		if !ok || !(row.CotacaoVenda > 0) || math.IsInf(row.CotacaoVenda, 0) {
			continue
		}
		ticks = append(ticks, provider.Tick{At: at, Rate: row.CotacaoVenda})
	}
	if len(ticks) == 0 {
		return nil, &provider.Unavailable{Provider: c.cfg.Name, Err: provider.ErrNoData}
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i].At.Before(ticks[j].At) })
	return ticks, nil
}
