package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"currencyrates/internal/config"
	"currencyrates/internal/currency"
	"currencyrates/internal/httpx"
	"currencyrates/internal/provider/bcb"
	"currencyrates/internal/provider/coinbase"
	"currencyrates/internal/provider/coindesk"
	"currencyrates/internal/provider/coingecko"
	"currencyrates/internal/provider/ecb"
	"currencyrates/internal/provider/exchangeratehost"
	"currencyrates/internal/provider/frankfurter"
	"currencyrates/internal/resolve"
	"currencyrates/internal/series"
)

// fetch resolves one pair from the terminal, optionally with the 12-month
// series, as JSON or formatted text.
func main() {
	var (
		base       string
		quote      string
		withSeries bool
		asJSON     bool
		timeoutSec int
		configPath string
	)
	flag.StringVar(&base, "base", "USD", "base currency code")
	flag.StringVar(&quote, "quote", "EUR", "quote currency code")
	flag.BoolVar(&withSeries, "series", false, "also build the 12-month series")
	flag.BoolVar(&asJSON, "json", false, "print JSON instead of text")
	flag.IntVar(&timeoutSec, "timeout", 60, "overall timeout seconds")
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	b := currency.Code(strings.ToUpper(base))
	q := currency.Code(strings.ToUpper(quote))
	if !currency.IsSupported(b) || !currency.IsSupported(q) {
		fmt.Fprintf(os.Stderr, "unknown currency in pair %s/%s\n", base, quote)
		os.Exit(2)
	}

	resolver, builder := buildEngine(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	spot, err := resolver.Resolve(ctx, b, q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve %s/%s: %v\n", b, q, err)
		os.Exit(1)
	}

	var history series.Series
	if withSeries {
		history = builder.Build(ctx, b, q)
	}

	if asJSON {
		out := map[string]any{"base": b, "quote": q, "spot": spot}
		if withSeries {
			out["history"] = history
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}

	parts := currency.DescribeTimestamp(spot.TimestampUTC)
	fmt.Printf("1 %s = %s %s  (%s", b, currency.FormatAmount(spot.Rate, q), q, spot.Source)
	if spot.HasTime {
		fmt.Printf(", %s %s UTC)\n", parts.DateStr, parts.TimeStr)
	} else {
		fmt.Printf(", %s)\n", parts.DateStr)
	}
	if withSeries {
		for i := range history.Labels {
			fmt.Printf("%s  %s\n", history.Labels[i], currency.FormatAmount(history.Values[i], q))
		}
		if history.AllZero {
			fmt.Println("(no historical data available)")
		}
	}
}

func buildEngine(cfg config.Config, logger *logrus.Logger) (*resolve.Resolver, *series.Builder) {
	fast := httpx.New(time.Duration(cfg.HTTP.FastTimeoutSec) * time.Second)
	slow := httpx.New(time.Duration(cfg.HTTP.SlowTimeoutSec) * time.Second)

	bcbClient := bcb.New(bcb.Config{BaseURL: cfg.Endpoints.BCB}, slow, fast)
	ecbClient := ecb.New(ecb.Config{URL: cfg.Endpoints.ECB}, fast)
	frankfurterClient := frankfurter.New(
		frankfurter.WithBaseURL(cfg.Endpoints.Frankfurter),
		frankfurter.WithHTTPClient(fast.HTTP),
	)
	erhClient := exchangeratehost.New(exchangeratehost.Config{BaseURL: cfg.Endpoints.ExchangerateHost}, slow)
	geckoClient := coingecko.New(coingecko.Config{BaseURL: cfg.Endpoints.CoinGecko}, fast)
	coinbaseClient := coinbase.New(coinbase.Config{BaseURL: cfg.Endpoints.Coinbase}, fast)
	coindeskClient := coindesk.New(coindesk.Config{BaseURL: cfg.Endpoints.CoinDesk}, slow)

	resolver := resolve.New(resolve.Deps{
		PTAX:          bcbClient,
		ECB:           ecbClient,
		BTCSources:    []resolve.BTCSpotClient{geckoClient, coinbaseClient, coindeskClient},
		FiatFallbacks: []resolve.FiatClient{frankfurterClient, erhClient},
		RollbackDays:  cfg.Resolver.PTAXRollbackDays,
		Logger:        logger,
	})
	builder := series.New(series.Deps{
		PTAX:       bcbClient,
		Chart:      geckoClient,
		Historical: []series.HistoricalClient{frankfurterClient, erhClient},
		Months:     cfg.Series.Months,
		ChartDays:  cfg.Series.BTCChartDays,
		Logger:     logger,
	})
	return resolver, builder
}
