// Package report proyecciones de solo lectura sobre el estado actual de lotes y productos.
// Se recalculan en cada consulta; no hay caché.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// TotalStockValue Σ cantidad × costo de compra sobre lotes activos.
func TotalStockValue(batches []*entity.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		if b.IsReturned() {
			continue
		}
		total = total.Add(BatchValue(b))
	}
	return total
}

// BatchValue valor a costo de un lote.
func BatchValue(b *entity.Batch) decimal.Decimal {
	return decimal.NewFromInt(int64(b.Quantity)).Mul(b.PurchasePrice)
}

// PotentialProfit Σ cantidad × (precio de venta del producto − costo del lote) sobre lotes activos.
// Lotes cuyo producto no está en products se omiten.
func PotentialProfit(batches []*entity.Batch, products map[string]*entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		if b.IsReturned() {
			continue
		}
		p, ok := products[b.ProductSKU]
		if !ok {
			continue
		}
		margin := p.DefaultSalePrice.Sub(b.PurchasePrice)
		total = total.Add(decimal.NewFromInt(int64(b.Quantity)).Mul(margin))
	}
	return total
}

// IndexProducts arma el mapa sku → producto.
func IndexProducts(products []*entity.Product) map[string]*entity.Product {
	m := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		m[p.SKU] = p
	}
	return m
}
