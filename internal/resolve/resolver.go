// Package resolve selects and executes the provider chain for a currency
// pair, producing a single authoritative spot quote.
package resolve

import (
	"context"
	"errors"
	"time"

	"currencyrates/internal/currency"
	"currencyrates/internal/provider"
	"currencyrates/internal/provider/bcb"
	"github.com/sirupsen/logrus"
)

// PTAXClient is the slice of the BCB client the resolver needs.
type PTAXClient interface {
	Name() string
	Day(ctx context.Context, foreign currency.Code, day time.Time) (bcb.DayQuote, error)
}

// CrossClient computes fiat→fiat crosses from a shared daily pivot table.
type CrossClient interface {
	Name() string
	Cross(ctx context.Context, base, quote currency.Code) (provider.Quote, error)
}

// FiatClient is a latest-rate fiat source used as a last-resort tier.
type FiatClient interface {
	Name() string
	Latest(ctx context.Context, base, quote currency.Code) (provider.Quote, error)
}

// BTCSpotClient returns USD-per-BTC from one crypto source.
type BTCSpotClient interface {
	Name() string
	USDPerBTC(ctx context.Context) (provider.BTCUSD, error)
}

// Strategy is one tier of a resolution chain. Chains are ordered slices of
// strategies iterated with early exit on first success.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, base, quote currency.Code) (provider.Quote, error)
}

// Deps carries the provider clients and policy knobs for a Resolver.
// Timeouts live inside the injected clients; the resolver has no hidden
// process-wide state.
type Deps struct {
	PTAX          PTAXClient
	ECB           CrossClient
	BTCSources    []BTCSpotClient
	FiatFallbacks []FiatClient

	// RollbackDays is how many calendar dates (today included) the PTAX
	// tier tries before giving up. Defaults to 7.
	RollbackDays int
	// Now is injectable for tests; defaults to time.Now.
	Now    func() time.Time
	Logger *logrus.Logger
}

type Resolver struct {
	ptax          PTAXClient
	ecb           CrossClient
	btcSources    []BTCSpotClient
	fiatFallbacks []FiatClient
	rollbackDays  int
	now           func() time.Time
	log           *logrus.Logger
}

func New(deps Deps) *Resolver {
	if deps.RollbackDays <= 0 {
		deps.RollbackDays = 7
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	return &Resolver{
		ptax:          deps.PTAX,
		ecb:           deps.ECB,
		btcSources:    deps.BTCSources,
		fiatFallbacks: deps.FiatFallbacks,
		rollbackDays:  deps.RollbackDays,
		now:           deps.Now,
		log:           deps.Logger,
	}
}

// Resolve returns one spot quote for base→quote, or a *provider.ChainExhausted
// once every tier of the applicable chain has failed.
func (r *Resolver) Resolve(ctx context.Context, base, quote currency.Code) (provider.Quote, error) {
	if !currency.IsSupported(base) || !currency.IsSupported(quote) {
		return provider.Quote{}, provider.ErrPairUnsupported
	}
	if base == quote {
		return provider.Quote{
			Rate:         1,
			TimestampUTC: r.now().UTC().Format(time.RFC3339),
			HasTime:      true,
			Source:       "local",
		}, nil
	}
	return r.run(ctx, r.chainFor(base, quote), base, quote)
}

// chainFor applies the routing policy: BTC pairs, BRL fiat pairs with PTAX
// preference, then the generic fiat cross with last-resort latest sources.
func (r *Resolver) chainFor(base, quote currency.Code) []Strategy {
	if base == currency.BTC || quote == currency.BTC {
		return []Strategy{&btcStrategy{r: r}}
	}
	chain := make([]Strategy, 0, 2+len(r.fiatFallbacks))
	if (base == currency.BRL || quote == currency.BRL) && currency.IsFiat(base) && currency.IsFiat(quote) {
		chain = append(chain, &ptaxStrategy{r: r})
	}
	chain = append(chain, &crossStrategy{client: r.ecb})
	for _, f := range r.fiatFallbacks {
		chain = append(chain, &fiatLatestStrategy{client: f})
	}
	return chain
}

func (r *Resolver) run(ctx context.Context, chain []Strategy, base, quote currency.Code) (provider.Quote, error) {
	attempts := make([]error, 0, len(chain))
	for _, s := range chain {
		q, err := s.Attempt(ctx, base, quote)
		if err == nil {
			return q, nil
		}
		if errors.Is(err, provider.ErrPairUnsupported) {
			return provider.Quote{}, err
		}
		r.log.WithFields(logrus.Fields{
			"strategy": s.Name(),
			"base":     base,
			"quote":    quote,
		}).WithError(err).Debug("resolution tier failed, advancing")
		attempts = append(attempts, err)
	}
	return provider.Quote{}, &provider.ChainExhausted{Base: string(base), Quote: string(quote), Attempts: attempts}
}
