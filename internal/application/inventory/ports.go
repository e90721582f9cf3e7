package inventory

import (
	"context"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error (o el commit falla) no queda ninguna escritura parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// Observer recibe el resultado de cada evento después del commit (o del rechazo).
// Se usa para métricas y para notificar a las vistas conectadas.
type Observer interface {
	EventApplied(ctx context.Context, evt *entity.AppliedEvent)
	EventRejected(ctx context.Context, kind entity.EventKind, err error)
}
