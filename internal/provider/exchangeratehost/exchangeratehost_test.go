package exchangeratehost_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"currencyrates/internal/currency"
	"currencyrates/internal/httpx"
	"currencyrates/internal/provider"
	"currencyrates/internal/provider/exchangeratehost"
)

func newClient(t *testing.T, handler http.HandlerFunc) *exchangeratehost.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return exchangeratehost.New(exchangeratehost.Config{BaseURL: srv.URL}, httpx.New(5*time.Second))
}

func TestLatest_ParsesSymbolRate(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/latest", r.URL.Path)
		require.Equal(t, "USD", r.URL.Query().Get("base"))
		require.Equal(t, "EUR", r.URL.Query().Get("symbols"))
		_, _ = w.Write([]byte(`{"date":"2026-08-27","rates":{"EUR":0.9185}}`))
	})

	q, err := client.Latest(context.Background(), currency.USD, currency.EUR)
	require.NoError(t, err)
	require.InEpsilon(t, 0.9185, q.Rate, 1e-9)
	require.Equal(t, "2026-08-27 00:00:00", q.TimestampUTC)
	require.False(t, q.HasTime)
	require.Equal(t, "exchangerate.host", q.Source)
}

func TestHistorical_UsesConvertEndpoint(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/convert", r.URL.Path)
		require.Equal(t, "2026-06-30", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`{"date":"2026-06-30","result":0.9022}`))
	})

	day := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	q, err := client.Historical(context.Background(), currency.USD, currency.EUR, day)
	require.NoError(t, err)
	require.InEpsilon(t, 0.9022, q.Rate, 1e-9)
}

func TestHistorical_MissingResultIsUnavailable(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"date":"2026-06-30"}`))
	})

	_, err := client.Historical(context.Background(), currency.USD, currency.EUR, time.Now())
	var unavailable *provider.Unavailable
	require.ErrorAs(t, err, &unavailable)
}
