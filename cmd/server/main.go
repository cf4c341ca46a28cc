package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"currencyrates/internal/config"
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

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(getenv("CONFIG_FILE", ""))
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	resolver, builder := buildEngine(cfg, logger)

	api := &apiServer{resolver: resolver, builder: builder, log: logger}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", api.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/rate", api.handleRate).Methods(http.MethodGet)
	r.HandleFunc("/api/series", api.handleSeries).Methods(http.MethodGet)
	r.HandleFunc("/api/currencies", api.handleCurrencies).Methods(http.MethodGet)
	r.Use(loggingMiddleware(logger), recoverMiddleware(logger))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         86400,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(withGzip(r)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.RequestTimeoutSec+5) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// buildEngine wires the provider clients into the resolver and series
// builder per the configured endpoints and timeout profiles.
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
		PTAX: bcbClient,
		ECB:  ecbClient,
		BTCSources: []resolve.BTCSpotClient{
			geckoClient,
			coinbaseClient,
			coindeskClient,
		},
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
