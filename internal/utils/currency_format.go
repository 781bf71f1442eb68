package utils

import (
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(int32(currency.Precision)).String()
}

// DisplayAmount converts a base-currency amount into the display currency and formats it.
// Unknown currency codes fall back to the base currency.
func DisplayAmount(amount decimal.Decimal, currencyCode string) string {
	c, ok := domain.LookupCurrency(currencyCode)
	if !ok {
		c, _ = domain.LookupCurrency(domain.BaseCurrencyCode)
	}
	return FormatWithCurrencyPrecision(c.FromBase(amount), c)
}
