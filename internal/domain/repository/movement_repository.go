package repository

import (
	"context"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// MovementRepository define el puerto del libro de movimientos (solo inserción).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// List devuelve todos los movimientos en orden de timestamp e id ascendentes.
	List(ctx context.Context) ([]*entity.Movement, error)
}
