// Package report renders settlements for people: amounts, currency symbols
// and the text message that gets shared with the group.
//
// Rounding here is display-only. Balances, shares and paid amounts are never
// rounded; only the copies handed to the renderer are.
package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/evenbetter/backend/internal/models"
)

// DefaultCurrency is used when no currency preference is set.
const DefaultCurrency = "ILS"

var currencySymbols = map[string]string{
	"ILS": "₪",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// CurrencySymbol returns the display symbol for an ISO 4217 code.
// Unknown codes fall back to the shekel sign.
func CurrencySymbol(code string) string {
	if s, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return s
	}
	return currencySymbols[DefaultCurrency]
}

// SupportedCurrency reports whether code has a display symbol.
func SupportedCurrency(code string) bool {
	_, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// RoundAmount rounds to the nearest whole unit, halves away from zero.
func RoundAmount(v float64) float64 {
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

// FormatAmount renders an amount either as a whole number or with two decimals.
func FormatAmount(v float64, round bool) string {
	d := decimal.NewFromFloat(v)
	if round {
		return d.Round(0).StringFixed(0)
	}
	return d.StringFixed(2)
}

// DisplayTransactions returns copies of the transactions with amounts rounded
// for display when round is set. The input slice is not modified.
func DisplayTransactions(txs []models.Transaction, round bool) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	if !round {
		return out
	}
	for i := range out {
		out[i].Amount = RoundAmount(out[i].Amount)
	}
	return out
}
