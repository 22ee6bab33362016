package v1

import (
	"github.com/givehub/backend/internal/currency"
	"github.com/givehub/backend/internal/models"
	"github.com/shopspring/decimal"
)

// currencyCode returns the display currency from the platform
// settings. Display formatting must never fail a request, so errors
// fall back to USD.
func currencyCode() string {
	settings, err := models.ActiveSettings()
	if err != nil {
		return "USD"
	}

	return settings.CurrencyCode
}

func formatAmount(amount decimal.Decimal, code string) string {
	return currency.Format(amount, code)
}
