package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bodega-ledger/internal/domain/inventory"
)

func TestClampQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"0", 1},
		{"-5", 1},
		{"0.4", 1},
		{"1", 1},
		{"2.9", 2},
		{"12", 12},
		{"99999999999", 1<<31 - 1},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, inventory.ClampQuantity(decimal.RequireFromString(c.in)))
		})
	}
}

func TestClampQuantity_ValorCero(t *testing.T) {
	var zero decimal.Decimal
	assert.Equal(t, 1, inventory.ClampQuantity(zero))
}
