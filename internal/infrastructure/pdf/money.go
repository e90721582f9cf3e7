package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// moneyFormatter formatea importes con el símbolo CLDR de la moneda de la bodega.
type moneyFormatter struct {
	printer *message.Printer
	unit    currency.Unit
	ok      bool
}

func newMoneyFormatter(code string) moneyFormatter {
	f := moneyFormatter{printer: message.NewPrinter(language.LatinAmericanSpanish)}
	if u, err := currency.ParseISO(code); err == nil {
		f.unit = u
		f.ok = true
	}
	return f
}

func (f moneyFormatter) format(d decimal.Decimal) string {
	if !f.ok {
		return d.StringFixed(2)
	}
	v, _ := d.Float64()
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(v)))
}
