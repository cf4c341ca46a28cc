package bcb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"currencyrates/internal/currency"
	"currencyrates/internal/httpx"
	"currencyrates/internal/provider"
	"currencyrates/internal/provider/bcb"
)

func newClient(t *testing.T, handler http.HandlerFunc) *bcb.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	hc := httpx.New(5 * time.Second)
	return bcb.New(bcb.Config{BaseURL: srv.URL}, hc, hc)
}

func TestDay_ReturnsNewestIntradayQuote(t *testing.T) {
	t.Parallel()

	var gotURL string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		// rows arrive newest-first per $orderby
		_, _ = w.Write([]byte(`{"value":[
			{"cotacaoCompra":4.0990,"cotacaoVenda":4.1000,"dataHoraCotacao":"2026-08-28 13:09:05.123"},
			{"cotacaoCompra":4.0910,"cotacaoVenda":4.0920,"dataHoraCotacao":"2026-08-28 10:07:12.456"}
		]}`))
	})

	day := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	q, err := client.Day(context.Background(), currency.CAD, day)
	require.NoError(t, err)
	require.InEpsilon(t, 4.10, q.BRLPerForeign, 1e-9)
	require.Equal(t, "2026-08-28 13:09:05.123", q.TimestampUTC)

	// OData date format is MM-DD-YYYY
	require.Contains(t, gotURL, "CotacaoMoedaDia")
	require.Contains(t, gotURL, "08-28-2026")
	require.Contains(t, gotURL, "CAD")
}

func TestDay_EmptyValueIsNoData(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value":[]}`))
	})

	_, err := client.Day(context.Background(), currency.USD, time.Now())
	require.Error(t, err)
	require.True(t, errors.Is(err, provider.ErrNoData))
}

func TestDay_NonPositiveSellIsFailure(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value":[{"cotacaoVenda":0,"dataHoraCotacao":"2026-08-28 13:09:05.123"}]}`))
	})

	_, err := client.Day(context.Background(), currency.USD, time.Now())
	var unavailable *provider.Unavailable
	require.ErrorAs(t, err, &unavailable)
}

func TestPeriod_SortsAndDropsMalformedRows(t *testing.T) {
	t.Parallel()

	var gotURL string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		_, _ = w.Write([]byte(`{"value":[
			{"cotacaoVenda":5.20,"dataHoraCotacao":"2026-02-27 13:05:00.000"},
			{"cotacaoVenda":5.10,"dataHoraCotacao":"2026-01-30 13:05:00.000"},
			{"cotacaoVenda":0,"dataHoraCotacao":"2026-02-10 13:05:00.000"},
			{"cotacaoVenda":5.30,"dataHoraCotacao":"not a timestamp"}
		]}`))
	})

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	ticks, err := client.Period(context.Background(), currency.USD, from, to)
	require.NoError(t, err)
	require.Len(t, ticks, 2)
	require.True(t, ticks[0].At.Before(ticks[1].At))
	require.InEpsilon(t, 5.10, ticks[0].Rate, 1e-9)
	require.Contains(t, gotURL, "CotacaoMoedaPeriodo")
	require.Contains(t, gotURL, "01-01-2026")
	require.Contains(t, gotURL, "03-01-2026")
}

func TestPeriod_NoUsableRowsIsNoData(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value":[{"cotacaoVenda":0,"dataHoraCotacao":"2026-02-10 13:05:00.000"}]}`))
	})

	_, err := client.Period(context.Background(), currency.USD, time.Now().AddDate(0, -1, 0), time.Now())
	require.True(t, errors.Is(err, provider.ErrNoData))
}

func TestDay_ServerErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Day(context.Background(), currency.USD, time.Now())
	var unavailable *provider.Unavailable
	require.ErrorAs(t, err, &unavailable)
	require.Contains(t, err.Error(), "500")
}
