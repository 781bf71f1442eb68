package domain

import "github.com/shopspring/decimal"

// BaseCurrencyCode is the currency every stored amount is denominated in.
const BaseCurrencyCode = "VND"

// Currency represents a display currency. Stored amounts are never converted;
// conversion happens only when presenting them.
type Currency struct {
	CurrencyCode string          `json:"currencyCode"` // e.g. "USD"
	Symbol       string          `json:"symbol"`       // e.g. "$"
	Name         string          `json:"name"`         // e.g. "US Dollar"
	Precision    int             `json:"precision"`    // Decimal places shown
	BasePerUnit  decimal.Decimal `json:"basePerUnit"`  // Base currency units per one unit of this currency
}

// SupportedCurrencies lists the display currencies with their fixed rates.
var SupportedCurrencies = map[string]Currency{
	"VND": {CurrencyCode: "VND", Symbol: "₫", Name: "Vietnamese Dong", Precision: 0, BasePerUnit: decimal.NewFromInt(1)},
	"USD": {CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2, BasePerUnit: decimal.NewFromInt(25000)},
	"EUR": {CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2, BasePerUnit: decimal.NewFromInt(27000)},
	"JPY": {CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0, BasePerUnit: decimal.NewFromInt(170)},
}

// LookupCurrency returns the supported currency for code.
func LookupCurrency(code string) (Currency, bool) {
	c, ok := SupportedCurrencies[code]
	return c, ok
}

// FromBase converts a base-currency amount into this currency for display.
func (c Currency) FromBase(amount decimal.Decimal) decimal.Decimal {
	if c.BasePerUnit.IsZero() {
		return amount
	}
	return amount.DivRound(c.BasePerUnit, int32(c.Precision)+2)
}
