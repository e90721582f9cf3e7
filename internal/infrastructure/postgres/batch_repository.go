package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo lotes sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, product_sku, lot, origin, expiry, quantity, purchase_price, created_at, status`

// Create inserta el lote y asigna el ID generado.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (product_sku, lot, origin, expiry, quantity, purchase_price, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.q.QueryRow(ctx, query,
		b.ProductSKU, b.Lot, b.Origin, b.Expiry, b.Quantity, b.PurchasePrice, b.CreatedAt, b.Status,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote; (nil, nil) si no existe.
func (r *BatchRepo) GetByID(ctx context.Context, id int64) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

func (r *BatchRepo) ListBySKU(ctx context.Context, sku string) ([]*entity.Batch, error) {
	return r.list(ctx, `SELECT `+batchColumns+` FROM batches WHERE product_sku = $1 ORDER BY created_at, id`, sku)
}

// ListBySKUForUpdate bloquea los lotes del SKU hasta el fin de la transacción, de modo que
// dos ventas concurrentes no consuman las mismas unidades.
func (r *BatchRepo) ListBySKUForUpdate(ctx context.Context, sku string) ([]*entity.Batch, error) {
	return r.list(ctx, `SELECT `+batchColumns+` FROM batches WHERE product_sku = $1 ORDER BY created_at, id FOR UPDATE`, sku)
}

func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `UPDATE batches SET lot = $2, origin = $3, quantity = $4, status = $5 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, b.ID, b.Lot, b.Origin, b.Quantity, b.Status)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrBatchNotFound, b.ID)
	}
	return nil
}

func (r *BatchRepo) List(ctx context.Context) ([]*entity.Batch, error) {
	return r.list(ctx, `SELECT `+batchColumns+` FROM batches ORDER BY created_at, id`)
}

func (r *BatchRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	var origin, status string
	err := row.Scan(&b.ID, &b.ProductSKU, &b.Lot, &origin, &b.Expiry, &b.Quantity, &b.PurchasePrice, &b.CreatedAt, &status)
	if err != nil {
		return nil, err
	}
	b.Origin = entity.BatchOrigin(origin)
	b.Status = entity.BatchStatus(status)
	return &b, nil
}
