package repository

import (
	"context"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// SettingsRepository persiste la configuración singleton, independiente del inventario.
// Get devuelve (nil, nil) si aún no se guardó.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}
