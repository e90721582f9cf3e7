package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/internal/application/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/bodega-ledger/internal/domain/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

// ProductUseCase catálogo: alta rápida, consulta y edición de precios/categoría.
// El stock no se toca aquí; solo cambia vía eventos del libro.
type ProductUseCase struct {
	tx    inventory.TxRunner
	reads repository.TxRepos
	now   func() time.Time
}

// NewProductUseCase construye el caso de uso. reads son los repositorios fuera de transacción.
func NewProductUseCase(tx inventory.TxRunner, reads repository.TxRepos) *ProductUseCase {
	return &ProductUseCase{tx: tx, reads: reads, now: time.Now}
}

// Create alta rápida sin stock. Mismas reglas de precios que un ingreso de producto nuevo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var category *string
	if in.Category != "" {
		category = &in.Category
	}
	var out *entity.Product
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		existing, err := r.Products.Get(ctx, strings.TrimSpace(in.SKU))
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		p, err := inventory.NewProduct(in.SKU, in.Name, category, in.PurchasePrice, in.SalePrice, uc.now())
		if err != nil {
			return err
		}
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromProduct(out)
	zero := 0
	resp.Stock = &zero
	return &resp, nil
}

// Get producto con stock vigente y costo promedio de sus lotes.
func (uc *ProductUseCase) Get(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	p, err := uc.reads.Products.Get(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	batches, err := uc.reads.Batches.ListBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	resp := withStock(p, batches)
	return &resp, nil
}

// Update cambia nombre, categoría o precios por defecto. La regla venta > compra solo rige al crear.
func (uc *ProductUseCase) Update(ctx context.Context, sku string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if (in.PurchasePrice != nil && in.PurchasePrice.IsNegative()) || (in.SalePrice != nil && in.SalePrice.IsNegative()) {
		return nil, fmt.Errorf("%w: precios negativos", domain.ErrInvalidInput)
	}
	var out *entity.Product
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		p, err := r.Products.Get(ctx, sku)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrMissingName
			}
			p.Name = name
		}
		if in.Category != nil {
			if c := strings.TrimSpace(*in.Category); c != "" {
				p.Category = c
			}
		}
		if in.PurchasePrice != nil {
			p.DefaultPurchasePrice = *in.PurchasePrice
		}
		if in.SalePrice != nil {
			p.DefaultSalePrice = *in.SalePrice
		}
		p.UpdatedAt = uc.now()
		if err := r.Products.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, out.SKU)
}

// List catálogo completo con stock por producto.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.reads.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	batches, err := uc.reads.Batches.List(ctx)
	if err != nil {
		return nil, err
	}
	bySKU := make(map[string][]*entity.Batch)
	for _, b := range batches {
		bySKU[b.ProductSKU] = append(bySKU[b.ProductSKU], b)
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, withStock(p, bySKU[p.SKU]))
	}
	return items, nil
}

func withStock(p *entity.Product, batches []*entity.Batch) dto.ProductResponse {
	resp := dto.FromProduct(p)
	stock := domaininv.Available(batches, true)
	resp.Stock = &stock
	var avg decimal.Decimal
	if stock > 0 {
		avg = domaininv.AverageCost(batches)
	} else {
		avg = decimal.Zero
	}
	resp.AverageCost = &avg
	return resp
}
