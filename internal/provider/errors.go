package provider

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPairUnsupported marks a pair shape no provider chain is defined for,
// e.g. a PTAX request where neither side is BRL. Never retried.
var ErrPairUnsupported = errors.New("currency pair unsupported")

// ErrNoData marks a well-formed provider response that simply carries no
// rows for the requested date. Recovered by date rollback.
var ErrNoData = errors.New("no data for date")

// Unavailable wraps a single failed provider attempt: network error,
// timeout, malformed payload or missing field. The resolver recovers from
// it by advancing to the next fallback tier or rollback date.
type Unavailable struct {
	Provider string
	Err      error
}

func (e *Unavailable) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Provider, e.Err)
}

func (e *Unavailable) Unwrap() error { return e.Err }

// Unavailablef builds an *Unavailable from a formatted cause.
func Unavailablef(name, format string, args ...any) error {
	return &Unavailable{Provider: name, Err: fmt.Errorf(format, args...)}
}

// ChainExhausted is the terminal spot-resolution failure: every tier of the
// chain for the pair failed. It keeps the per-tier errors for logging.
type ChainExhausted struct {
	Base     string
	Quote    string
	Attempts []error
}

func (e *ChainExhausted) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return fmt.Sprintf("rate unavailable for %s/%s: %s", e.Base, e.Quote, strings.Join(parts, "; "))
}
