package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL (solo inserción).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (event_id, type, sku, name, quantity, price, lot, ts, operator, device_id, bodega, return_id, sale_id, batch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.EventID, m.Type, m.SKU, m.Name, m.Quantity, m.Price, m.Lot, m.Timestamp,
		m.Operator, m.DeviceID, m.Bodega, m.ReturnID, m.SaleID, m.BatchID,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// List todos los movimientos en orden cronológico.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	query := `
		SELECT id, event_id::text, type, sku, name, quantity, price, lot, ts, operator, device_id, bodega, return_id, sale_id, batch_id
		FROM movements ORDER BY ts, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var typ string
		if err := rows.Scan(&m.ID, &m.EventID, &typ, &m.SKU, &m.Name, &m.Quantity, &m.Price, &m.Lot, &m.Timestamp,
			&m.Operator, &m.DeviceID, &m.Bodega, &m.ReturnID, &m.SaleID, &m.BatchID); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}
