package utils

import (
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the canonical
// precision of the given currency.
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with XOF (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(currency.Precision()).StringFixed(currency.Precision())
}
