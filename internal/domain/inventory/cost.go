package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// CostCalculator costo promedio ponderado al sumar una entrada al stock existente.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// AverageCost costo promedio ponderado del stock vigente (lotes no devueltos con unidades).
func AverageCost(batches []*entity.Batch) decimal.Decimal {
	qty := decimal.Zero
	cost := decimal.Zero
	for _, b := range batches {
		if !b.Sellable() {
			continue
		}
		in := decimal.NewFromInt(int64(b.Quantity))
		cost = CostCalculator(qty, cost, in, b.PurchasePrice)
		qty = qty.Add(in)
	}
	return cost.Round(4)
}
