package resolve

import (
	"context"
	"time"

	"currencyrates/internal/currency"
	"currencyrates/internal/provider"
)

// rollbackDates lists the candidate PTAX query dates, newest first: today,
// today-1, ..., today-(n-1). Pure; no in-place date mutation.
func rollbackDates(now time.Time, n int) []time.Time {
	now = now.UTC()
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, now.AddDate(0, 0, -i))
	}
	return out
}

// ptaxStrategy resolves BRL fiat pairs from the PTAX day endpoint, stepping
// one calendar day back per failed attempt. PTAX quotes BRL per foreign
// unit, so base==BRL inverts.
type ptaxStrategy struct {
	r *Resolver
}

func (s *ptaxStrategy) Name() string { return s.r.ptax.Name() }

func (s *ptaxStrategy) Attempt(ctx context.Context, base, quote currency.Code) (provider.Quote, error) {
	var foreign currency.Code
	switch {
	case base == currency.BRL && quote != currency.BRL:
		foreign = quote
	case quote == currency.BRL && base != currency.BRL:
		foreign = base
	default:
		return provider.Quote{}, provider.ErrPairUnsupported
	}

	var lastErr error
	for _, day := range rollbackDates(s.r.now(), s.r.rollbackDays) {
		dq, err := s.r.ptax.Day(ctx, foreign, day)
		if err != nil {
			lastErr = err
			continue
		}
		rate := dq.BRLPerForeign
		if base == currency.BRL {
			rate = 1 / rate
		}
		return provider.Quote{
			Rate:         rate,
			TimestampUTC: dq.TimestampUTC,
			HasTime:      true,
			Source:       s.r.ptax.Name(),
		}, nil
	}
	return provider.Quote{}, &provider.Unavailable{Provider: s.r.ptax.Name(), Err: lastErr}
}

// crossStrategy resolves any fiat pair through the ECB daily pivot table.
type crossStrategy struct {
	client CrossClient
}

func (s *crossStrategy) Name() string { return s.client.Name() }

func (s *crossStrategy) Attempt(ctx context.Context, base, quote currency.Code) (provider.Quote, error) {
	return s.client.Cross(ctx, base, quote)
}

// fiatLatestStrategy is a last-resort tier backed by a latest-rate API.
type fiatLatestStrategy struct {
	client FiatClient
}

func (s *fiatLatestStrategy) Name() string { return s.client.Name() }

func (s *fiatLatestStrategy) Attempt(ctx context.Context, base, quote currency.Code) (provider.Quote, error) {
	return s.client.Latest(ctx, base, quote)
}

// btcStrategy resolves pairs with a BTC side: it obtains USD-per-BTC from
// the first crypto source that answers, then composes an ECB USD cross for
// any non-USD fiat side. The composed quote keeps the crypto source's
// timestamp and attribution.
type btcStrategy struct {
	r *Resolver
}

func (s *btcStrategy) Name() string { return "BTC/USD chain" }

func (s *btcStrategy) Attempt(ctx context.Context, base, quote currency.Code) (provider.Quote, error) {
	core, err := s.usdPerBTC(ctx)
	if err != nil {
		return provider.Quote{}, err
	}

	out := provider.Quote{TimestampUTC: core.TimestampUTC, HasTime: core.HasTime, Source: core.Source}
	switch {
	case base == currency.BTC && quote == currency.USD:
		out.Rate = core.USDPerBTC
	case base == currency.USD && quote == currency.BTC:
		out.Rate = 1 / core.USDPerBTC
	case base == currency.BTC:
		cross, err := s.r.ecb.Cross(ctx, currency.USD, quote)
		if err != nil {
			return provider.Quote{}, err
		}
		out.Rate = core.USDPerBTC * cross.Rate
	case quote == currency.BTC:
		cross, err := s.r.ecb.Cross(ctx, base, currency.USD)
		if err != nil {
			return provider.Quote{}, err
		}
		out.Rate = cross.Rate / core.USDPerBTC
	default:
		return provider.Quote{}, provider.ErrPairUnsupported
	}
	return out, nil
}

func (s *btcStrategy) usdPerBTC(ctx context.Context) (provider.BTCUSD, error) {
	var lastErr error
	for _, src := range s.r.btcSources {
		core, err := src.USDPerBTC(ctx)
		if err == nil {
			return core, nil
		}
		s.r.log.WithField("source", src.Name()).WithError(err).Debug("BTC/USD source failed, advancing")
		lastErr = err
	}
	if lastErr == nil {
		lastErr = provider.Unavailablef("BTC/USD", "no sources configured")
	}
	return provider.BTCUSD{}, lastErr
}
