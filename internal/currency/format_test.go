package currency_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"currencyrates/internal/currency"
)

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value float64
		code  currency.Code
		want  string
	}{
		{"usd groups thousands", 1234.5, currency.USD, "1,234.50"},
		{"usd pads cents", 7, currency.USD, "7.00"},
		{"btc eight fraction digits", 1, currency.BTC, "1.00000000"},
		{"btc satoshi precision", 0.00012345, currency.BTC, "0.00012345"},
		{"jpy zero decimals", 1000, currency.JPY, "1,000"},
		{"jpy rounds", 99.6, currency.JPY, "100"},
		{"brl decimal comma", 1234.5, currency.BRL, "1.234,50"},
		{"unknown code falls back to en-US", 12.3, currency.Code("XXX"), "12.30"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, currency.FormatAmount(tt.value, tt.code))
		})
	}
}

func TestParseUTC(t *testing.T) {
	t.Parallel()

	got, ok := currency.ParseUTC("2026-08-28 13:09:05.123")
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 8, 28, 13, 9, 5, 123000000, time.UTC), got)

	got, ok = currency.ParseUTC("2026-08-28T12:30:00Z")
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC), got)

	got, ok = currency.ParseUTC("2026-08-28")
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), got)

	_, ok = currency.ParseUTC("not a timestamp")
	require.False(t, ok)
	_, ok = currency.ParseUTC("  ")
	require.False(t, ok)
}

func TestDescribeTimestamp(t *testing.T) {
	t.Parallel()

	parts := currency.DescribeTimestamp("2026-08-28 13:09:05.123")
	require.Equal(t, "13:09", parts.TimeStr)
	require.Equal(t, "Aug 28, 2026", parts.DateStr)

	parts = currency.DescribeTimestamp("garbage")
	require.Equal(t, "-", parts.TimeStr)
	require.Equal(t, "-", parts.DateStr)
}

func TestMonthLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Sep", currency.MonthLabel(time.Date(2025, 9, 30, 23, 59, 59, 0, time.UTC)))
	require.Equal(t, "Feb", currency.MonthLabel(time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)))
}
