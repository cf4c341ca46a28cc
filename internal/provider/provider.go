package provider

import (
	"time"
)

// Quote is the normalized shape returned by all providers: 1 unit of the
// base currency equals Rate units of the quote currency at TimestampUTC.
// HasTime=false means the timestamp only carries date resolution (daily
// reference rates).
type Quote struct {
	Rate         float64 `json:"rate"`
	TimestampUTC string  `json:"timestamp_utc"`
	HasTime      bool    `json:"has_time"`
	Source       string  `json:"source"`
}

// BTCUSD is a USD-per-BTC spot observation from one of the crypto sources.
type BTCUSD struct {
	USDPerBTC    float64
	TimestampUTC string
	HasTime      bool
	Source       string
}

// Tick is one timestamped rate observation inside a range query.
type Tick struct {
	At   time.Time
	Rate float64
}

// ChartPoint is one point of a raw market-chart time series.
type ChartPoint struct {
	At    time.Time
	Price float64
}
