package inventory

import (
	"fmt"
	"sort"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// SortFIFO ordena los lotes por fecha de creación ascendente; empates por ID ascendente.
func SortFIFO(batches []*entity.Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Eligible devuelve, en orden FIFO, los lotes vendibles (con unidades y no devueltos).
func Eligible(batches []*entity.Batch) []*entity.Batch {
	out := make([]*entity.Batch, 0, len(batches))
	for _, b := range batches {
		if b.Sellable() {
			out = append(out, b)
		}
	}
	SortFIFO(out)
	return out
}

// Available suma las unidades de los lotes. Con excludeReturned se omiten los lotes devueltos al proveedor.
func Available(batches []*entity.Batch, excludeReturned bool) int {
	total := 0
	for _, b := range batches {
		if excludeReturned && b.IsReturned() {
			continue
		}
		total += b.Quantity
	}
	return total
}

// AllocateFIFO reparte qty unidades entre los lotes en orden FIFO, tomando min(restante, pendiente)
// de cada uno. No modifica los lotes. Si el stock vendible no alcanza devuelve ErrInsufficientStock
// sin asignación parcial.
func AllocateFIFO(batches []*entity.Batch, qty int) ([]entity.BatchUsage, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	eligible := Eligible(batches)
	if available := Available(eligible, true); available < qty {
		return nil, fmt.Errorf("%w: solicitado %d, disponible %d", domain.ErrInsufficientStock, qty, available)
	}

	usages := make([]entity.BatchUsage, 0, len(eligible))
	pending := qty
	for _, b := range eligible {
		if pending == 0 {
			break
		}
		take := min(b.Quantity, pending)
		usages = append(usages, entity.BatchUsage{
			BatchID:       b.ID,
			Quantity:      take,
			PurchasePrice: b.PurchasePrice,
		})
		pending -= take
	}
	return usages, nil
}
