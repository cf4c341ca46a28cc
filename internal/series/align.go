package series

import (
	"math"
	"time"

	"currencyrates/internal/provider"
)

// nearestPrice picks the chart point whose timestamp is closest to target,
// in absolute distance. No interpolation.
func nearestPrice(points []provider.ChartPoint, target time.Time) (float64, bool) {
	if len(points) == 0 {
		return 0, false
	}
	best := points[0]
	bestDiff := absDuration(points[0].At.Sub(target))
	for _, p := range points[1:] {
		if d := absDuration(p.At.Sub(target)); d < bestDiff {
			best, bestDiff = p, d
		}
	}
	return best.Price, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// lastRateAtOrBefore returns the newest tick not after cutoff: the
// right-aligned forward-fill used for sparse reference-rate ranges. Ticks
// must be ascending.
func lastRateAtOrBefore(ticks []provider.Tick, cutoff time.Time) (float64, bool) {
	for i := len(ticks) - 1; i >= 0; i-- {
		if !ticks[i].At.After(cutoff) {
			return ticks[i].Rate, true
		}
	}
	return 0, false
}

// sanitize clamps non-finite values (and, when nonNegative is set,
// non-positive ones) to zero and reports whether every point is zero.
func sanitize(values []float64, nonNegative bool) ([]float64, bool) {
	allZero := true
	out := make([]float64, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			out[i] = 0
		case nonNegative && v <= 0:
			out[i] = 0
		default:
			out[i] = v
		}
		if out[i] != 0 {
			allZero = false
		}
	}
	return out, allZero
}
