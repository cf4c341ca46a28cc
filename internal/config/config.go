package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

// HTTP holds the two client timeout profiles: fast for the lightweight
// daily-reference APIs, slow for the heavier upstreams.
type HTTP struct {
	FastTimeoutSec int `json:"fast_timeout_sec"`
	SlowTimeoutSec int `json:"slow_timeout_sec"`
}

type Endpoints struct {
	BCB              string `json:"bcb"`
	ECB              string `json:"ecb"`
	Frankfurter      string `json:"frankfurter"`
	ExchangerateHost string `json:"exchangerate_host"`
	CoinGecko        string `json:"coingecko"`
	Coinbase         string `json:"coinbase"`
	CoinDesk         string `json:"coindesk"`
}

type Resolver struct {
	PTAXRollbackDays int `json:"ptax_rollback_days"`
}

type Series struct {
	Months       int `json:"months"`
	BTCChartDays int `json:"btc_chart_days"`
}

type Log struct {
	Level string `json:"level"`
}

type Config struct {
	Server    Server    `json:"server"`
	HTTP      HTTP      `json:"http"`
	Endpoints Endpoints `json:"endpoints"`
	Resolver  Resolver  `json:"resolver"`
	Series    Series    `json:"series"`
	Log       Log       `json:"log"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 30},
		HTTP:   HTTP{FastTimeoutSec: 8, SlowTimeoutSec: 12},
		Endpoints: Endpoints{
			BCB:              "https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata",
			ECB:              "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml",
			Frankfurter:      "https://api.frankfurter.app",
			ExchangerateHost: "https://api.exchangerate.host",
			CoinGecko:        "https://api.coingecko.com/api/v3",
			Coinbase:         "https://api.coinbase.com",
			CoinDesk:         "https://api.coindesk.com",
		},
		Resolver: Resolver{PTAXRollbackDays: 7},
		Series:   Series{Months: 12, BTCChartDays: 370},
		Log:      Log{Level: "info"},
	}
}

// Load reads JSON config from path. If path is empty or the file does not
// exist, it returns defaults. Environment variables override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("FAST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.HTTP.FastTimeoutSec = x
		}
	}
	if v := os.Getenv("SLOW_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.HTTP.SlowTimeoutSec = x
		}
	}
	if v := os.Getenv("BCB_URL"); v != "" {
		cfg.Endpoints.BCB = v
	}
	if v := os.Getenv("ECB_URL"); v != "" {
		cfg.Endpoints.ECB = v
	}
	if v := os.Getenv("FRANKFURTER_URL"); v != "" {
		cfg.Endpoints.Frankfurter = v
	}
	if v := os.Getenv("EXCHANGERATE_HOST_URL"); v != "" {
		cfg.Endpoints.ExchangerateHost = v
	}
	if v := os.Getenv("COINGECKO_URL"); v != "" {
		cfg.Endpoints.CoinGecko = v
	}
	if v := os.Getenv("COINBASE_URL"); v != "" {
		cfg.Endpoints.Coinbase = v
	}
	if v := os.Getenv("COINDESK_URL"); v != "" {
		cfg.Endpoints.CoinDesk = v
	}
	if v := os.Getenv("PTAX_ROLLBACK_DAYS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Resolver.PTAXRollbackDays = x
		}
	}
	if v := os.Getenv("SERIES_MONTHS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Series.Months = x
		}
	}
	if v := os.Getenv("BTC_CHART_DAYS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Series.BTCChartDays = x
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
