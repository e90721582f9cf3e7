package inventory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/bodega-ledger/internal/domain/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

// venta consume stock FIFO. Si el stock vendible no alcanza se rechaza completa: la asignación
// se calcula antes de tocar ningún lote.
func (uc *LedgerUseCase) venta(ctx context.Context, in eventInput) (*entity.AppliedEvent, error) {
	var applied *entity.AppliedEvent
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		product, err := r.Products.Get(ctx, in.sku)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		batches := NewBatchService(r.Batches)
		eligible, err := batches.EligibleForSale(ctx, product.SKU)
		if err != nil {
			return err
		}
		usages, err := domaininv.AllocateFIFO(eligible, in.qty)
		if err != nil {
			return err
		}

		consumed := make([]entity.Batch, 0, len(usages))
		lots := make([]string, 0, len(usages))
		for _, u := range usages {
			b, err := batches.Decrement(ctx, u.BatchID, u.Quantity)
			if err != nil {
				return err
			}
			consumed = append(consumed, *b)
			lots = append(lots, b.Lot)
		}

		price := product.DefaultSalePrice
		sale := &entity.Sale{
			Timestamp:   in.ts,
			SKU:         product.SKU,
			ProductName: product.Name,
			Quantity:    in.qty,
			SalePrice:   price,
			Total:       price.Mul(decimal.NewFromInt(int64(in.qty))),
			Operator:    in.operator,
			DeviceID:    in.deviceID,
			Bodega:      in.bodega,
			Status:      entity.SaleCompleted,
			BatchesUsed: usages,
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}

		mov := uc.movement(in, entity.MovementVenta, product, in.qty, price, strings.Join(lots, ","))
		mov.SaleID = ptr(sale.ID)
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}

		applied = &entity.AppliedEvent{
			EventID:       in.eventID,
			Kind:          entity.EventVenta,
			Product:       *product,
			Movement:      *mov,
			Sale:          sale,
			ConsumedBatch: consumed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}
