package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"currencyrates/internal/provider"
)

func TestNearestPrice_SmallestAbsoluteDistanceWins(t *testing.T) {
	t.Parallel()

	target := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	points := []provider.ChartPoint{
		{At: target.AddDate(0, 0, -3), Price: 100},
		{At: target.Add(12 * time.Hour), Price: 200},
		{At: target.AddDate(0, 0, 2), Price: 300},
	}
	price, ok := nearestPrice(points, target)
	require.True(t, ok)
	require.Equal(t, 200.0, price)

	_, ok = nearestPrice(nil, target)
	require.False(t, ok)
}

func TestLastRateAtOrBefore_ForwardFill(t *testing.T) {
	t.Parallel()

	ticks := []provider.Tick{
		{At: time.Date(2026, 1, 29, 13, 0, 0, 0, time.UTC), Rate: 5.10},
		{At: time.Date(2026, 2, 27, 13, 0, 0, 0, time.UTC), Rate: 5.20},
	}

	// Jan 31 has no quote of its own; the Jan 29 one carries forward
	rate, ok := lastRateAtOrBefore(ticks, endOfDay(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)))
	require.True(t, ok)
	require.Equal(t, 5.10, rate)

	rate, ok = lastRateAtOrBefore(ticks, endOfDay(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
	require.True(t, ok)
	require.Equal(t, 5.20, rate)

	// target before the first tick has nothing to fill from
	_, ok = lastRateAtOrBefore(ticks, endOfDay(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
	require.False(t, ok)
}

func TestSanitize_ClampsNonFiniteAndNonPositive(t *testing.T) {
	t.Parallel()

	in := []float64{1.5, math.NaN(), math.Inf(1), math.Inf(-1), -2, 0}

	out, allZero := sanitize(in, false)
	require.Equal(t, []float64{1.5, 0, 0, 0, -2, 0}, out)
	require.False(t, allZero)

	out, allZero = sanitize(in, true)
	require.Equal(t, []float64{1.5, 0, 0, 0, 0, 0}, out)
	require.False(t, allZero)

	out, allZero = sanitize([]float64{0, math.NaN()}, false)
	require.Equal(t, []float64{0, 0}, out)
	require.True(t, allZero)
}
