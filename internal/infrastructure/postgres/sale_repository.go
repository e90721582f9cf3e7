package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas sobre PostgreSQL; la traza de lotes se guarda como JSONB.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, ts, sku, product_name, quantity, sale_price, total, operator, device_id, bodega, status, batches_used`

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	used, err := json.Marshal(s.BatchesUsed)
	if err != nil {
		return fmt.Errorf("marshal batches_used: %w", err)
	}
	query := `
		INSERT INTO sales (ts, sku, product_name, quantity, sale_price, total, operator, device_id, bodega, status, batches_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err = r.q.QueryRow(ctx, query,
		s.Timestamp, s.SKU, s.ProductName, s.Quantity, s.SalePrice, s.Total,
		s.Operator, s.DeviceID, s.Bodega, s.Status, used,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) UpdateStatus(ctx context.Context, id int64, status entity.SaleStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE sales SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrSaleNotFound, id)
	}
	return nil
}

func (r *SaleRepo) SumCompleted(ctx context.Context, sku string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM sales WHERE sku = $1 AND status = $2`,
		sku, entity.SaleCompleted,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}

// List ventas en [from, to) ordenadas por timestamp e id.
func (r *SaleRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.Sale, error) {
	query, args := withRange(`SELECT `+saleColumns+` FROM sales WHERE 1=1`, "ts", from, to, nil)
	rows, err := r.q.Query(ctx, query+` ORDER BY ts, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var status string
	var used []byte
	err := row.Scan(&s.ID, &s.Timestamp, &s.SKU, &s.ProductName, &s.Quantity, &s.SalePrice, &s.Total,
		&s.Operator, &s.DeviceID, &s.Bodega, &status, &used)
	if err != nil {
		return nil, err
	}
	s.Status = entity.SaleStatus(status)
	if len(used) > 0 {
		if err := json.Unmarshal(used, &s.BatchesUsed); err != nil {
			return nil, fmt.Errorf("unmarshal batches_used: %w", err)
		}
	}
	return &s, nil
}
