package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/bodega-ledger/internal/domain/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

// returnCompleted estado de las devoluciones registradas.
const returnCompleted = "completed"

// devolucion devolución genérica de cliente, por saldo: lo devuelto (incluida esta) no puede
// superar lo vendido en ventas completadas. La mercadería reingresa como lote vendible.
func (uc *LedgerUseCase) devolucion(ctx context.Context, in eventInput) (*entity.AppliedEvent, error) {
	var applied *entity.AppliedEvent
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		product, err := r.Products.Get(ctx, in.sku)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		sold, err := r.Sales.SumCompleted(ctx, product.SKU)
		if err != nil {
			return err
		}
		returned, err := r.Returns.SumBalanceReturns(ctx, product.SKU)
		if err != nil {
			return err
		}
		if in.qty+returned > sold {
			return fmt.Errorf("%w: vendido %d, devuelto %d, solicitado %d", domain.ErrOverReturn, sold, returned, in.qty)
		}

		ret := &entity.Return{
			SKU:       product.SKU,
			Quantity:  in.qty,
			Price:     product.DefaultSalePrice,
			Timestamp: in.ts,
			Operator:  in.operator,
			DeviceID:  in.deviceID,
			Status:    returnCompleted,
			Type:      entity.ReturnSale,
		}
		if err := r.Returns.Create(ctx, ret); err != nil {
			return err
		}

		batch := &entity.Batch{
			ProductSKU:    product.SKU,
			Lot:           domaininv.ReturnOfSaleLot(ret.ID),
			Origin:        entity.OriginReturnOfSale,
			Quantity:      in.qty,
			PurchasePrice: product.DefaultPurchasePrice,
			CreatedAt:     in.ts,
			Status:        entity.BatchActive,
		}
		if err := NewBatchService(r.Batches).Create(ctx, batch); err != nil {
			return err
		}

		mov := uc.movement(in, entity.MovementDevolucionVenta, product, in.qty, ret.Price, batch.Lot)
		mov.ReturnID = ptr(ret.ID)
		mov.BatchID = ptr(batch.ID)
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}

		applied = &entity.AppliedEvent{
			EventID:  in.eventID,
			Kind:     entity.EventDevolucion,
			Product:  *product,
			Movement: *mov,
			Return:   ret,
			Batch:    batch,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}
