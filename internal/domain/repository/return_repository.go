package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// ReturnRepository define el puerto de persistencia para devoluciones (solo inserción).
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.Return) error
	// SumBalanceReturns suma las devoluciones genéricas de clientes del SKU (sin venta anulada asociada).
	SumBalanceReturns(ctx context.Context, sku string) (int, error)
	List(ctx context.Context, from, to *time.Time) ([]*entity.Return, error)
}
