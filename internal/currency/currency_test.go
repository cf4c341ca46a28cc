package currency_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"currencyrates/internal/currency"
)

func TestSupportedSet(t *testing.T) {
	t.Parallel()

	require.True(t, currency.IsSupported(currency.USD))
	require.True(t, currency.IsSupported(currency.BTC))
	require.False(t, currency.IsSupported(currency.Code("XBT")))
	require.False(t, currency.IsSupported(currency.Code("")))

	require.True(t, currency.IsFiat(currency.BRL))
	require.False(t, currency.IsFiat(currency.BTC))
	require.False(t, currency.IsFiat(currency.Code("DOGE")))
}

func TestAll_CoversTwentyFourFiatPlusBTC(t *testing.T) {
	t.Parallel()

	require.Len(t, currency.All, 25)
	fiat := 0
	for _, info := range currency.All {
		if currency.IsFiat(info.Code) {
			fiat++
			require.NotEmpty(t, info.Location, "every fiat currency has a trading hub")
		}
		require.NotEmpty(t, info.Name)
	}
	require.Equal(t, 24, fiat)
}

func TestNameAndLocation(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Brazilian Real", currency.Name(currency.BRL))
	require.Equal(t, "London", currency.Location(currency.GBP))
	require.Empty(t, currency.Location(currency.BTC))
	require.Empty(t, currency.Name(currency.Code("XXX")))
}

func TestDecimals(t *testing.T) {
	t.Parallel()

	require.Equal(t, 8, currency.Decimals(currency.BTC))
	require.Equal(t, 0, currency.Decimals(currency.JPY))
	require.Equal(t, 0, currency.Decimals(currency.KRW))
	require.Equal(t, 0, currency.Decimals(currency.IDR))
	require.Equal(t, 2, currency.Decimals(currency.USD))
}
