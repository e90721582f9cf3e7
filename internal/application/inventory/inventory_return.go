package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/bodega-ledger/internal/domain/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

// ReturnBatch devuelve un lote de compra al proveedor: registra la devolución, reetiqueta el lote,
// lo marca returned y deja su cantidad en 0 (el stock sale del inventario).
func (uc *LedgerUseCase) ReturnBatch(ctx context.Context, sess entity.Session, batchID int64) (*entity.AppliedEvent, error) {
	if !sess.Connected {
		return uc.reject(ctx, entity.EventDevInv, "", domain.ErrNotConnected)
	}
	in := uc.sessionInput(entity.EventDevInv, sess)

	var applied *entity.AppliedEvent
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		batches := NewBatchService(r.Batches)
		b, err := batches.ByID(ctx, batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("%w: id %d", domain.ErrBatchNotFound, batchID)
		}
		if b.Status == entity.BatchReturned {
			return fmt.Errorf("%w: id %d", domain.ErrAlreadyReturned, batchID)
		}
		if b.Quantity == 0 {
			return fmt.Errorf("%w: id %d", domain.ErrNothingToReturn, batchID)
		}
		removed := b.Quantity

		product, err := r.Products.Get(ctx, b.ProductSKU)
		if err != nil {
			return err
		}
		if product == nil {
			product = &entity.Product{SKU: b.ProductSKU}
		}

		ret := &entity.Return{
			SKU:             b.ProductSKU,
			Quantity:        removed,
			Price:           b.PurchasePrice,
			Timestamp:       in.ts,
			Operator:        in.operator,
			DeviceID:        in.deviceID,
			OriginalBatchID: ptr(b.ID),
			BatchOrigin:     b.Origin,
			Status:          returnCompleted,
			Type:            entity.ReturnInventory,
		}
		if err := r.Returns.Create(ctx, ret); err != nil {
			return err
		}

		updated, err := batches.MarkReturned(ctx, b.ID, domaininv.ReturnOfPurchaseLot(ret.ID, b.Lot))
		if err != nil {
			return err
		}

		mov := uc.movement(in, entity.MovementDevolucionInventario, product, removed, ret.Price, updated.Lot)
		mov.ReturnID = ptr(ret.ID)
		mov.BatchID = ptr(updated.ID)
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}

		applied = &entity.AppliedEvent{
			EventID:  in.eventID,
			Kind:     entity.EventDevInv,
			Product:  *product,
			Movement: *mov,
			Return:   ret,
			Batch:    updated,
		}
		return nil
	})
	if err != nil {
		return uc.reject(ctx, entity.EventDevInv, "", err)
	}
	return uc.accept(ctx, applied), nil
}
