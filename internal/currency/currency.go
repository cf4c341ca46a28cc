package currency

// Code is a currency identifier from the fixed supported set.
// Fiat codes are ISO 4217; BTC is the single non-fiat entry.
type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
	CHF Code = "CHF"
	CAD Code = "CAD"
	AUD Code = "AUD"
	CNY Code = "CNY"
	INR Code = "INR"
	MXN Code = "MXN"
	BRL Code = "BRL"
	KRW Code = "KRW"
	SGD Code = "SGD"
	HKD Code = "HKD"
	NOK Code = "NOK"
	SEK Code = "SEK"
	DKK Code = "DKK"
	NZD Code = "NZD"
	ZAR Code = "ZAR"
	RUB Code = "RUB"
	TRY Code = "TRY"
	PLN Code = "PLN"
	THB Code = "THB"
	IDR Code = "IDR"
	BTC Code = "BTC"
)

// Info describes a supported currency for picker-style UIs.
type Info struct {
	Code     Code   `json:"code"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// All lists every supported currency in display order, fiat first.
var All = []Info{
	{USD, "US Dollar", "New York"},
	{EUR, "Euro", "Frankfurt"},
	{GBP, "British Pound", "London"},
	{JPY, "Japanese Yen", "Tokyo"},
	{CHF, "Swiss Franc", "Zurich"},
	{CAD, "Canadian Dollar", "Toronto"},
	{AUD, "Australian Dollar", "Sydney"},
	{CNY, "Chinese Yuan", "Shanghai"},
	{INR, "Indian Rupee", "Mumbai"},
	{MXN, "Mexican Peso", "Mexico City"},
	{BRL, "Brazilian Real", "Brasília"},
	{KRW, "South Korean Won", "Seoul"},
	{SGD, "Singapore Dollar", "Singapore"},
	{HKD, "Hong Kong Dollar", "Hong Kong"},
	{NOK, "Norwegian Krone", "Oslo"},
	{SEK, "Swedish Krona", "Stockholm"},
	{DKK, "Danish Krone", "Copenhagen"},
	{NZD, "New Zealand Dollar", "Wellington"},
	{ZAR, "South African Rand", "Johannesburg"},
	{RUB, "Russian Ruble", "Moscow"},
	{TRY, "Turkish Lira", "Istanbul"},
	{PLN, "Polish Zloty", "Warsaw"},
	{THB, "Thai Baht", "Bangkok"},
	{IDR, "Indonesian Rupiah", "Jakarta"},
	{BTC, "Bitcoin", ""},
}

var byCode = func() map[Code]Info {
	m := make(map[Code]Info, len(All))
	for _, c := range All {
		m[c.Code] = c
	}
	return m
}()

// IsSupported reports whether code belongs to the fixed supported set.
func IsSupported(code Code) bool {
	_, ok := byCode[code]
	return ok
}

// IsFiat reports whether code is a supported fiat currency.
func IsFiat(code Code) bool {
	return IsSupported(code) && code != BTC
}

// Name returns the display name for code, or "" if unsupported.
func Name(code Code) string { return byCode[code].Name }

// Location returns the trading-hub city associated with code, or "".
func Location(code Code) string { return byCode[code].Location }

// zeroDecimal holds fiat currencies conventionally quoted without
// fractional units.
var zeroDecimal = map[Code]bool{JPY: true, KRW: true, IDR: true}

// Decimals returns the fraction digits used when formatting amounts in code.
func Decimals(code Code) int {
	switch {
	case code == BTC:
		return 8
	case zeroDecimal[code]:
		return 0
	default:
		return 2
	}
}
