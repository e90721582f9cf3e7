package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/bodega-ledger/internal/domain/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

// defaultMarkup precio de venta por defecto = precio de compra × 1.5.
var defaultMarkup = decimal.NewFromFloat(1.5)

// DefaultCategory categoría de productos creados sin categoría.
const DefaultCategory = "General"

// ingreso crea el producto si no existe (o actualiza sus precios/categoría si vienen en el evento),
// agrega un lote nuevo y registra el movimiento. No verifica stock.
func (uc *LedgerUseCase) ingreso(ctx context.Context, in eventInput) (*entity.AppliedEvent, error) {
	if (in.purchase != nil && in.purchase.IsNegative()) || (in.sale != nil && in.sale.IsNegative()) {
		return nil, fmt.Errorf("%w: precios negativos", domain.ErrInvalidInput)
	}

	var applied *entity.AppliedEvent
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		product, err := r.Products.Get(ctx, in.sku)
		if err != nil {
			return err
		}
		created := false
		if product == nil {
			product, err = NewProduct(in.sku, in.name, in.category, in.purchase, in.sale, in.ts)
			if err != nil {
				return err
			}
			if err := r.Products.Create(ctx, product); err != nil {
				return err
			}
			created = true
		} else if applyProductChanges(product, in) {
			product.UpdatedAt = in.ts
			if err := r.Products.Update(ctx, product); err != nil {
				return err
			}
		}

		purchase := decimal.Zero
		if in.purchase != nil {
			purchase = *in.purchase
		}
		batch := &entity.Batch{
			ProductSKU:    product.SKU,
			Lot:           domaininv.IngresoLot(in.lot, in.source, in.ts),
			Origin:        entity.OriginIngreso,
			Expiry:        in.expiry,
			Quantity:      in.qty,
			PurchasePrice: purchase,
			CreatedAt:     in.ts,
			Status:        entity.BatchActive,
		}
		if err := NewBatchService(r.Batches).Create(ctx, batch); err != nil {
			return err
		}

		mov := uc.movement(in, entity.MovementIngreso, product, in.qty, purchase, batch.Lot)
		mov.BatchID = ptr(batch.ID)
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}

		applied = &entity.AppliedEvent{
			EventID:        in.eventID,
			Kind:           entity.EventIngreso,
			Product:        *product,
			ProductCreated: created,
			Movement:       *mov,
			Batch:          batch,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}

// NewProduct arma un producto nuevo. Sin precio de venta se usa compra × 1.5; si ambos precios
// son positivos la venta debe superar a la compra.
func NewProduct(sku, name string, category *string, purchase, sale *decimal.Decimal, now time.Time) (*entity.Product, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)
	if sku == "" {
		return nil, domain.ErrMissingIdentifier
	}
	if name == "" {
		return nil, domain.ErrMissingName
	}
	p := &entity.Product{
		SKU:                  sku,
		Name:                 name,
		Category:             DefaultCategory,
		DefaultPurchasePrice: decimal.Zero,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if category != nil && strings.TrimSpace(*category) != "" {
		p.Category = strings.TrimSpace(*category)
	}
	if purchase != nil {
		if purchase.IsNegative() {
			return nil, fmt.Errorf("%w: precio de compra negativo", domain.ErrInvalidInput)
		}
		p.DefaultPurchasePrice = *purchase
	}
	if sale != nil {
		if sale.IsNegative() {
			return nil, fmt.Errorf("%w: precio de venta negativo", domain.ErrInvalidInput)
		}
		p.DefaultSalePrice = *sale
		if p.DefaultPurchasePrice.IsPositive() && p.DefaultSalePrice.IsPositive() &&
			p.DefaultSalePrice.LessThanOrEqual(p.DefaultPurchasePrice) {
			return nil, fmt.Errorf("%w: venta %s, compra %s", domain.ErrInvalidPrice,
				p.DefaultSalePrice.StringFixed(2), p.DefaultPurchasePrice.StringFixed(2))
		}
	} else {
		p.DefaultSalePrice = p.DefaultPurchasePrice.Mul(defaultMarkup).Round(2)
	}
	return p, nil
}

// applyProductChanges aplica al producto existente los precios/categoría que el evento trae
// explícitamente. La regla venta > compra no se aplica retroactivamente.
func applyProductChanges(p *entity.Product, in eventInput) bool {
	changed := false
	if in.purchase != nil && !in.purchase.Equal(p.DefaultPurchasePrice) {
		p.DefaultPurchasePrice = *in.purchase
		changed = true
	}
	if in.sale != nil && !in.sale.Equal(p.DefaultSalePrice) {
		p.DefaultSalePrice = *in.sale
		changed = true
	}
	if in.category != nil {
		if c := strings.TrimSpace(*in.category); c != "" && c != p.Category {
			p.Category = c
			changed = true
		}
	}
	return changed
}
