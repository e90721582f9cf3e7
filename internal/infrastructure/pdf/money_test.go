package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestMoneyFormatter_UsaSimboloDeLaMoneda(t *testing.T) {
	f := newMoneyFormatter("PEN")
	assert.True(t, f.ok)

	sym := message.NewPrinter(language.LatinAmericanSpanish).Sprint(currency.Symbol(currency.MustParseISO("PEN")))
	out := f.format(decimal.RequireFromString("12.5"))
	assert.Contains(t, out, sym)
	assert.Contains(t, out, "12")
	assert.NotEqual(t, "12.50", out)
}

func TestMoneyFormatter_MonedaDesconocida(t *testing.T) {
	for _, code := range []string{"", "S/", "pesos"} {
		f := newMoneyFormatter(code)
		assert.False(t, f.ok, code)
		assert.Equal(t, "12.50", f.format(decimal.RequireFromString("12.5")), code)
	}
}
