// Package series reconstructs a fixed 12-point month-end historical series
// for a currency pair from sparse, heterogeneous provider data.
package series

import (
	"context"
	"time"

	"currencyrates/internal/currency"
	"currencyrates/internal/provider"
	"github.com/sirupsen/logrus"
)

// RangeClient is a provider answering one range query with sparse ticks
// (PTAX period endpoint).
type RangeClient interface {
	Name() string
	Period(ctx context.Context, foreign currency.Code, from, to time.Time) ([]provider.Tick, error)
}

// ChartClient is a provider answering one raw market-chart query
// (CoinGecko).
type ChartClient interface {
	Name() string
	MarketChart(ctx context.Context, vsCurrency string, days int) ([]provider.ChartPoint, error)
}

// HistoricalClient is a per-date fiat rate source, tried in order for each
// target date.
type HistoricalClient interface {
	Name() string
	Historical(ctx context.Context, base, quote currency.Code, day time.Time) (provider.Quote, error)
}

// Series is the fixed-grid result: exactly Months labels and values, oldest
// first. A zero value means "unavailable"; AllZero flags a fully failed
// build so the caller can substitute its own placeholder.
type Series struct {
	Labels  []string  `json:"labels"`
	Values  []float64 `json:"series"`
	AllZero bool      `json:"all_zero"`
}

// btcChartCurrencies is the small set the market-chart source can quote BTC
// in directly. Other pairs degrade to an all-zero series.
var btcChartCurrencies = map[currency.Code]bool{
	currency.USD: true,
	currency.CAD: true,
	currency.EUR: true,
	currency.BRL: true,
}

type Deps struct {
	PTAX       RangeClient
	Chart      ChartClient
	Historical []HistoricalClient

	// Months is the grid length; defaults to 12.
	Months int
	// ChartDays is the market-chart lookback; defaults to 370 so the
	// oldest month-end still has a neighbor.
	ChartDays int
	Now       func() time.Time
	Logger    *logrus.Logger
}

type Builder struct {
	ptax       RangeClient
	chart      ChartClient
	historical []HistoricalClient
	months     int
	chartDays  int
	now        func() time.Time
	log        *logrus.Logger
}

func New(deps Deps) *Builder {
	if deps.Months <= 0 {
		deps.Months = 12
	}
	if deps.ChartDays <= 0 {
		deps.ChartDays = 370
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	return &Builder{
		ptax:       deps.PTAX,
		chart:      deps.Chart,
		historical: deps.Historical,
		months:     deps.Months,
		chartDays:  deps.ChartDays,
		now:        deps.Now,
		log:        deps.Logger,
	}
}

// Build produces the month-end series for base→quote. Provider failures
// degrade to zero points; Build never fails outright.
func (b *Builder) Build(ctx context.Context, base, quote currency.Code) Series {
	targets := MonthEnds(b.now(), b.months)
	labels := make([]string, len(targets))
	for i, t := range targets {
		labels[i] = currency.MonthLabel(t)
	}

	if base == currency.BTC || quote == currency.BTC {
		return b.btcSeries(ctx, base, quote, targets, labels)
	}
	if base == currency.BRL || quote == currency.BRL {
		if s, ok := b.ptaxSeries(ctx, base, quote, targets, labels); ok {
			return s
		}
		// whole-range failure: degrade to per-date lookups
	}
	return b.perDateSeries(ctx, base, quote, targets, labels)
}

func (b *Builder) btcSeries(ctx context.Context, base, quote currency.Code, targets []time.Time, labels []string) Series {
	other := quote
	if quote == currency.BTC {
		other = base
	}
	if !btcChartCurrencies[other] {
		b.log.WithField("currency", other).Debug("no BTC chart support for currency")
		return zeroSeries(labels)
	}

	points, err := b.chart.MarketChart(ctx, string(other), b.chartDays)
	if err != nil {
		b.log.WithError(err).Debug("BTC market chart failed")
		return zeroSeries(labels)
	}

	values := make([]float64, len(targets))
	for i, target := range targets {
		price, ok := nearestPrice(points, target)
		if !ok || price <= 0 {
			continue
		}
		if quote == currency.BTC {
			values[i] = 1 / price
		} else {
			values[i] = price
		}
	}
	// BTC cannot be priced at zero, so non-positive points are unavailable
	cleaned, allZero := sanitize(values, true)
	return Series{Labels: labels, Values: cleaned, AllZero: allZero}
}

func (b *Builder) ptaxSeries(ctx context.Context, base, quote currency.Code, targets []time.Time, labels []string) (Series, bool) {
	foreign := quote
	if quote == currency.BRL {
		foreign = base
	}
	first, last := targets[0], targets[len(targets)-1]
	// pad a week before the first month's start and a couple of days past
	// the last target so forward-fill always has a prior quote in range
	from := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -7)
	to := last.AddDate(0, 0, 2)

	ticks, err := b.ptax.Period(ctx, foreign, from, to)
	if err != nil {
		b.log.WithError(err).Debug("PTAX range query failed, degrading to per-date lookups")
		return Series{}, false
	}

	values := make([]float64, len(targets))
	for i, target := range targets {
		sell, ok := lastRateAtOrBefore(ticks, endOfDay(target))
		if !ok {
			continue
		}
		if base == currency.BRL {
			values[i] = 1 / sell
		} else {
			values[i] = sell
		}
	}
	cleaned, allZero := sanitize(values, false)
	return Series{Labels: labels, Values: cleaned, AllZero: allZero}, true
}

func (b *Builder) perDateSeries(ctx context.Context, base, quote currency.Code, targets []time.Time, labels []string) Series {
	values := make([]float64, len(targets))
	// one date at a time: keeps provider ordering deterministic and
	// bounds the request burst
	for i, target := range targets {
		for _, h := range b.historical {
			q, err := h.Historical(ctx, base, quote, target)
			if err != nil {
				b.log.WithFields(logrus.Fields{
					"source": h.Name(),
					"date":   target.Format("2006-01-02"),
				}).WithError(err).Debug("historical point failed")
				continue
			}
			values[i] = q.Rate
			break
		}
	}
	cleaned, allZero := sanitize(values, false)
	return Series{Labels: labels, Values: cleaned, AllZero: allZero}
}

func zeroSeries(labels []string) Series {
	return Series{Labels: labels, Values: make([]float64, len(labels)), AllZero: true}
}
