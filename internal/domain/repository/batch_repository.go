package repository

import (
	"context"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes.
// Los lotes nunca se borran; solo cambian cantidad, etiqueta, procedencia y estado.
type BatchRepository interface {
	// Create asigna el ID autoincremental en batch.ID.
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id int64) (*entity.Batch, error)
	// ListBySKU lista los lotes del producto ordenados por created_at e id ascendentes.
	ListBySKU(ctx context.Context, sku string) ([]*entity.Batch, error)
	// ListBySKUForUpdate igual que ListBySKU pero bloquea las filas dentro de la transacción.
	ListBySKUForUpdate(ctx context.Context, sku string) ([]*entity.Batch, error)
	Update(ctx context.Context, batch *entity.Batch) error
	List(ctx context.Context) ([]*entity.Batch, error)
}
