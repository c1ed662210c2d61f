package internal

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// The export schema pins amounts to the CAD$ and USD$ columns, so amounts are
// shown the way a Canadian statement shows them: "$" for CAD, "US$" for USD,
// comma thousands separators, two decimals.
var displayLocale = language.MustParse("en-CA")

// Currency formats amounts for one ISO currency code.
type Currency struct {
	Code    string // "CAD", "USD"
	unit    currency.Unit
	known   bool
	printer *message.Printer
}

// GetCurrency returns the Currency for a given code. Codes that are not
// valid ISO 4217 fall back to printing the code after the amount.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(code)
	unit, err := currency.ParseISO(code)
	return Currency{
		Code:    code,
		unit:    unit,
		known:   err == nil,
		printer: message.NewPrinter(displayLocale),
	}
}

// Format renders an amount with the currency's symbol, e.g. "$16.49" or
// "US$1,234.50". The sign of the amount is kept as given; callers pass
// absolute values for display.
func (c Currency) Format(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	formatted := c.printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	if !c.known {
		return formatted + " " + c.Code
	}
	return c.printer.Sprint(currency.Symbol(c.unit)) + formatted
}
