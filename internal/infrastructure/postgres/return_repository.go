package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo devoluciones sobre PostgreSQL (solo inserción).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, sku, quantity, price, ts, operator, device_id, original_sale_id, original_batch_id, batch_origin, status, type`

func (r *ReturnRepo) Create(ctx context.Context, ret *entity.Return) error {
	query := `
		INSERT INTO returns (sku, quantity, price, ts, operator, device_id, original_sale_id, original_batch_id, batch_origin, status, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.q.QueryRow(ctx, query,
		ret.SKU, ret.Quantity, ret.Price, ret.Timestamp, ret.Operator, ret.DeviceID,
		ret.OriginalSaleID, ret.OriginalBatchID, string(ret.BatchOrigin), ret.Status, ret.Type,
	).Scan(&ret.ID)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

// SumBalanceReturns devoluciones de clientes sin venta anulada asociada.
func (r *ReturnRepo) SumBalanceReturns(ctx context.Context, sku string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM returns WHERE sku = $1 AND type = $2 AND original_sale_id IS NULL`,
		sku, entity.ReturnSale,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum returns: %w", err)
	}
	return total, nil
}

func (r *ReturnRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.Return, error) {
	query, args := withRange(`SELECT `+returnColumns+` FROM returns WHERE 1=1`, "ts", from, to, nil)
	rows, err := r.q.Query(ctx, query+` ORDER BY ts, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.Return
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, ret)
	}
	return list, rows.Err()
}

func scanReturn(row pgx.Row) (*entity.Return, error) {
	var ret entity.Return
	var typ, origin string
	err := row.Scan(&ret.ID, &ret.SKU, &ret.Quantity, &ret.Price, &ret.Timestamp, &ret.Operator, &ret.DeviceID,
		&ret.OriginalSaleID, &ret.OriginalBatchID, &origin, &ret.Status, &typ)
	if err != nil {
		return nil, err
	}
	ret.Type = entity.ReturnType(typ)
	ret.BatchOrigin = entity.BatchOrigin(origin)
	return &ret, nil
}
