package domain

import "github.com/shopspring/decimal"

// Currency is one of the closed set of currencies the application supports.
// Quotes are stored in exactly one of these; the set is deliberately not
// extensible so that precision lookups stay exhaustive.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	XOF Currency = "XOF"
)

// PivotCurrency is the currency every rate-table entry is expressed
// relative to. Its own rate is always 1.
const PivotCurrency = EUR

// XOFPerEUR is the fixed CFA franc peg. The remote rate source does not
// reliably carry XOF, so this constant is injected into every fetched table.
var XOFPerEUR = decimal.NewFromFloat(655.957)

// Currencies returns the supported currencies in display order.
func Currencies() []Currency {
	return []Currency{EUR, USD, XOF}
}

// Valid reports whether c is one of the supported currency codes.
func (c Currency) Valid() bool {
	switch c {
	case EUR, USD, XOF:
		return true
	}
	return false
}

// Precision returns the number of decimal digits amounts in c carry.
// XOF is a zero-decimal currency; everything else uses two digits.
// Input parsing, display rounding, and rounding before storage all
// consult this single function.
func (c Currency) Precision() int32 {
	if c == XOF {
		return 0
	}
	return 2
}

// RoundingUnit returns the smallest representable amount in c
// (0.01 for two-decimal currencies, 1 for XOF).
func (c Currency) RoundingUnit() decimal.Decimal {
	return decimal.New(1, -c.Precision())
}

// RateTable maps a currency to its rate relative to the pivot currency.
// The table is fetched once at startup and treated as immutable.
type RateTable map[Currency]decimal.Decimal

// Rate returns the pivot-relative rate for c, falling back to 1 when the
// entry is missing. The fallback keeps conversion total but semantically
// wrong for currencies without a real rate; callers are expected to
// validate the table before relying on it (the rate service drops
// non-positive entries at fetch time).
func (t RateTable) Rate(c Currency) decimal.Decimal {
	if t != nil {
		if r, ok := t[c]; ok && r.IsPositive() {
			return r
		}
	}
	return decimal.NewFromInt(1)
}
