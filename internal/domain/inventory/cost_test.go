package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/inventory"
)

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	got := inventory.CostCalculator(
		decimal.NewFromInt(10), decimal.NewFromInt(2),
		decimal.NewFromInt(10), decimal.NewFromInt(4),
	)
	assert.True(t, decimal.NewFromInt(3).Equal(got), got.String())
}

func TestCostCalculator_SinStock(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(5))
	assert.True(t, got.IsZero())
}

func TestAverageCost_IgnoraLotesDevueltos(t *testing.T) {
	returned := batch(3, 100, "99", t0)
	returned.Status = entity.BatchReturned
	batches := []*entity.Batch{
		batch(1, 1, "2.00", t0),
		batch(2, 3, "4.00", t0.Add(time.Hour)),
		returned,
	}
	assert.Equal(t, "3.5", inventory.AverageCost(batches).String())
}
