// Package currency formats monetary amounts according to the platform
// settings for display in API responses.
package currency

import (
	"github.com/shopspring/decimal"
	x_currency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders the amount with the symbol of the given ISO 4217
// currency code. Unknown codes fall back to USD so that display
// formatting can never fail a request.
func Format(amount decimal.Decimal, code string) string {
	unit, err := x_currency.ParseISO(code)
	if err != nil {
		unit = x_currency.USD
	}

	return printer.Sprintf("%v", x_currency.Symbol(unit.Amount(amount.InexactFloat64())))
}
