package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/bodega-ledger/internal/domain/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

// UndoSale anula una venta puntual: la marca cancelled (nunca se borra), registra la devolución
// asociada y repone las unidades en un lote compensatorio al costo del primer lote consumido.
// Una segunda anulación de la misma venta devuelve ErrAlreadyCancelled.
func (uc *LedgerUseCase) UndoSale(ctx context.Context, sess entity.Session, saleID int64) (*entity.AppliedEvent, error) {
	if !sess.Connected {
		return uc.reject(ctx, entity.EventAnulacion, "", domain.ErrNotConnected)
	}
	in := uc.sessionInput(entity.EventAnulacion, sess)

	var applied *entity.AppliedEvent
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		sale, err := r.Sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("%w: id %d", domain.ErrSaleNotFound, saleID)
		}
		if sale.Status == entity.SaleCancelled {
			return fmt.Errorf("%w: id %d", domain.ErrAlreadyCancelled, saleID)
		}

		// Las devoluciones genéricas ya registradas deben seguir cubiertas por las ventas
		// completadas que quedan tras la anulación.
		sold, err := r.Sales.SumCompleted(ctx, sale.SKU)
		if err != nil {
			return err
		}
		returned, err := r.Returns.SumBalanceReturns(ctx, sale.SKU)
		if err != nil {
			return err
		}
		if returned > sold-sale.Quantity {
			return fmt.Errorf("%w: devoluciones %d quedarían sobre ventas %d", domain.ErrOverReturn, returned, sold-sale.Quantity)
		}

		product, err := r.Products.Get(ctx, sale.SKU)
		if err != nil {
			return err
		}
		if product == nil {
			product = &entity.Product{SKU: sale.SKU, Name: sale.ProductName}
		}

		ret := &entity.Return{
			SKU:            sale.SKU,
			Quantity:       sale.Quantity,
			Price:          sale.SalePrice,
			Timestamp:      in.ts,
			Operator:       in.operator,
			DeviceID:       in.deviceID,
			OriginalSaleID: ptr(sale.ID),
			Status:         returnCompleted,
			Type:           entity.ReturnSale,
		}
		if err := r.Returns.Create(ctx, ret); err != nil {
			return err
		}

		cost := decimal.Zero
		if len(sale.BatchesUsed) > 0 {
			cost = sale.BatchesUsed[0].PurchasePrice
		}
		batch := &entity.Batch{
			ProductSKU:    sale.SKU,
			Lot:           domaininv.UndoLot(ret.ID),
			Origin:        entity.OriginUndoOfSale,
			Quantity:      sale.Quantity,
			PurchasePrice: cost,
			CreatedAt:     in.ts,
			Status:        entity.BatchActive,
		}
		if err := NewBatchService(r.Batches).Create(ctx, batch); err != nil {
			return err
		}

		if err := r.Sales.UpdateStatus(ctx, sale.ID, entity.SaleCancelled); err != nil {
			return err
		}
		sale.Status = entity.SaleCancelled

		mov := uc.movement(in, entity.MovementAnulacionVenta, product, sale.Quantity, sale.SalePrice, batch.Lot)
		mov.SaleID = ptr(sale.ID)
		mov.ReturnID = ptr(ret.ID)
		mov.BatchID = ptr(batch.ID)
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}

		applied = &entity.AppliedEvent{
			EventID:  in.eventID,
			Kind:     entity.EventAnulacion,
			Product:  *product,
			Movement: *mov,
			Sale:     sale,
			Return:   ret,
			Batch:    batch,
		}
		return nil
	})
	if err != nil {
		return uc.reject(ctx, entity.EventAnulacion, "", err)
	}
	return uc.accept(ctx, applied), nil
}
