package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	UpdateStatus(ctx context.Context, id int64, status entity.SaleStatus) error
	// SumCompleted suma las unidades de ventas completadas del SKU.
	SumCompleted(ctx context.Context, sku string) (int, error)
	List(ctx context.Context, from, to *time.Time) ([]*entity.Sale, error)
}
