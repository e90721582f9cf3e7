package repository

import (
	"context"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Get devuelve (nil, nil) si el SKU no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Get(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
}
