package currency

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// localeTags maps currencies to the locale their amounts are conventionally
// formatted in. Anything absent formats as en-US.
var localeTags = map[Code]language.Tag{
	BRL: language.BrazilianPortuguese,
	EUR: language.German,
	GBP: language.BritishEnglish,
	JPY: language.Japanese,
	CHF: language.MustParse("de-CH"),
	CNY: language.SimplifiedChinese,
	INR: language.MustParse("en-IN"),
	KRW: language.Korean,
	RUB: language.Russian,
	TRY: language.Turkish,
	PLN: language.Polish,
	THB: language.Thai,
	IDR: language.Indonesian,
}

// FormatAmount renders value with the grouping and decimal conventions of
// the given currency's locale: 8 fraction digits for BTC, 0 for zero-decimal
// fiat, 2 otherwise. Pure formatting, no I/O.
func FormatAmount(value float64, code Code) string {
	tag, ok := localeTags[code]
	if !ok {
		tag = language.AmericanEnglish
	}
	digits := Decimals(code)
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(value,
		number.MinFractionDigits(digits),
		number.MaxFractionDigits(digits),
	))
}

// TimestampParts is a timestamp split into separate UTC time and date strings.
type TimestampParts struct {
	TimeStr string `json:"time_str"`
	DateStr string `json:"date_str"`
}

// utcLayouts covers the timestamp shapes the providers emit: RFC3339 from
// the crypto APIs, space-separated date-times (with optional fractional
// seconds) from BCB and the daily reference sources.
var utcLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseUTC parses a provider timestamp string as UTC. Space-separated forms
// carry no zone and are taken as UTC.
func ParseUTC(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range utcLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DescribeTimestamp formats a provider timestamp into the "HH:MM" and
// "Jan 2, 2006" strings the UI renders, both in UTC. Unparsable input
// yields "-" for both parts.
func DescribeTimestamp(utc string) TimestampParts {
	t, ok := ParseUTC(utc)
	if !ok {
		return TimestampParts{TimeStr: "-", DateStr: "-"}
	}
	return TimestampParts{
		TimeStr: t.Format("15:04"),
		DateStr: t.Format("Jan 2, 2006"),
	}
}

// MonthLabel is the short English month name used as a series axis label.
func MonthLabel(t time.Time) string { return t.UTC().Format("Jan") }
