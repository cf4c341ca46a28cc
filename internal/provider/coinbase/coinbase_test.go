package coinbase_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"currencyrates/internal/httpx"
	"currencyrates/internal/provider"
	"currencyrates/internal/provider/coinbase"
)

func newClient(t *testing.T, handler http.HandlerFunc) *coinbase.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return coinbase.New(coinbase.Config{BaseURL: srv.URL}, httpx.New(5*time.Second))
}

func TestUSDPerBTC_ParsesDecimalString(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/exchange-rates", r.URL.Path)
		require.Equal(t, "BTC", r.URL.Query().Get("currency"))
		_, _ = w.Write([]byte(`{"data":{"currency":"BTC","rates":{"USD":"59876.42","EUR":"55123.01"}}}`))
	})

	core, err := client.USDPerBTC(context.Background())
	require.NoError(t, err)
	require.InEpsilon(t, 59876.42, core.USDPerBTC, 1e-9)
	require.True(t, core.HasTime)
	require.Equal(t, "Coinbase", core.Source)
}

func TestUSDPerBTC_MissingUSDIsUnavailable(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"rates":{"EUR":"55123.01"}}}`))
	})

	_, err := client.USDPerBTC(context.Background())
	var unavailable *provider.Unavailable
	require.ErrorAs(t, err, &unavailable)
}

func TestUSDPerBTC_BadNumberIsUnavailable(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"rates":{"USD":"not-a-number"}}}`))
	})

	_, err := client.USDPerBTC(context.Background())
	var unavailable *provider.Unavailable
	require.ErrorAs(t, err, &unavailable)
}
