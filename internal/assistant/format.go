package assistant

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var esPrinter = message.NewPrinter(language.EuropeanSpanish)

// FormatCurrency renders an amount the way the Spanish locale expects,
// e.g. 1234.5 → "1.234,50 €". Both the local fast path and the remote-path
// response formatting use this so the transcript looks uniform.
func FormatCurrency(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return esPrinter.Sprintf("%.2f €", f)
}
