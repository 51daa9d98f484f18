// Package money formatea montos en pesos colombianos.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// FormatCOP formatea un monto sin decimales con separador de miles local, ej. "$ 1.234.567".
func FormatCOP(d decimal.Decimal) string {
	n := d.Round(0).IntPart()
	if n < 0 {
		return "-$ " + printer.Sprintf("%d", -n)
	}
	return "$ " + printer.Sprintf("%d", n)
}
