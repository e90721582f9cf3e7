package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/bodega-ledger/internal/domain/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain/ledger"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

// DefaultReorderPoint umbral de stock por defecto para la lista de reposición.
const DefaultReorderPoint = 5

// ReplenishmentUseCase genera la lista de reposición de la bodega.
// Combina el stock por lotes con las ventas netas recientes para priorizar los SKUs críticos.
type ReplenishmentUseCase struct {
	repos repository.TxRepos
	now   func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición sobre repositorios de lectura.
func NewReplenishmentUseCase(repos repository.TxRepos) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{repos: repos, now: time.Now}
}

// GenerateReplenishmentList devuelve los productos con stock <= reorderPoint con la cantidad
// sugerida de pedido y un ranking de prioridad basado en margen y ventas netas de 90 días.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, reorderPoint int) ([]dto.ReplenishmentSuggestion, error) {
	if reorderPoint <= 0 {
		reorderPoint = DefaultReorderPoint
	}

	// 1. Stock por producto
	products, err := uc.repos.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	batches, err := uc.repos.Batches.List(ctx)
	if err != nil {
		return nil, err
	}
	bySKU := make(map[string][]*entity.Batch)
	for _, b := range batches {
		bySKU[b.ProductSKU] = append(bySKU[b.ProductSKU], b)
	}

	// 2. Ventas netas de los últimos 90 días
	movs, err := uc.repos.Movements.List(ctx)
	if err != nil {
		return nil, err
	}
	end := uc.now()
	netBySKU := make(map[string]int)
	for _, n := range ledger.NetSalesRanking(ledger.ByDateRange(movs, end.AddDate(0, 0, -90), time.Time{})) {
		netBySKU[n.SKU] = n.Net
	}

	// 3. Sugerencias
	hundred := decimal.NewFromInt(100)
	suggestions := make([]dto.ReplenishmentSuggestion, 0)
	for _, p := range products {
		stock := domaininv.Available(bySKU[p.SKU], true)
		if stock > reorderPoint {
			continue
		}
		ideal := (reorderPoint*3 + 1) / 2 // reorden × 1.5, redondeado hacia arriba
		suggested := max(ideal-stock, 0)

		unitCost := p.DefaultPurchasePrice
		if stock > 0 {
			unitCost = domaininv.AverageCost(bySKU[p.SKU])
		}
		var marginPct decimal.Decimal
		if p.DefaultSalePrice.IsPositive() {
			marginPct = p.DefaultSalePrice.Sub(unitCost).Div(p.DefaultSalePrice).Mul(hundred).Round(2)
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestion{
			SKU:                 p.SKU,
			ProductName:         p.Name,
			CurrentStock:        stock,
			ReorderPoint:        reorderPoint,
			IdealStock:          ideal,
			SuggestedOrderQty:   suggested,
			UnitCost:            unitCost,
			EstimatedOrderCost:  unitCost.Mul(decimal.NewFromInt(int64(suggested))),
			GrossMarginPct:      marginPct,
			NetUnitsSoldLast90D: netBySKU[p.SKU],
		})
	}

	// 4. Ordenar: mayor margen, luego más ventas netas, luego mayor déficit.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		if a.NetUnitsSoldLast90D != b.NetUnitsSoldLast90D {
			return a.NetUnitsSoldLast90D > b.NetUnitsSoldLast90D
		}
		return a.ReorderPoint-a.CurrentStock > b.ReorderPoint-b.CurrentStock
	})

	// 5. Prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
