package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.BatchRepository    = (*BatchRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.ReturnRepository   = (*ReturnRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.SettingsRepository = (*SettingsRepo)(nil)
)

// ProductRepo productos indexados por SKU.
type ProductRepo struct{ v view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.products[p.SKU]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.SKU] = *p
		return nil
	})
}

func (r *ProductRepo) Get(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(st *state) error {
		if p, ok := st.products[sku]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.products[p.SKU]; !ok {
			return domain.ErrProductNotFound
		}
		st.products[p.SKU] = *p
		return nil
	})
}

// List ordenado por SKU.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.with(func(st *state) error {
		out = make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, err
}

// BatchRepo lotes indexados por ID.
type BatchRepo struct{ v view }

func (r *BatchRepo) Create(_ context.Context, b *entity.Batch) error {
	return r.v.with(func(st *state) error {
		st.batchSeq++
		b.ID = st.batchSeq
		st.batches[b.ID] = *b
		return nil
	})
}

func (r *BatchRepo) GetByID(_ context.Context, id int64) (*entity.Batch, error) {
	var out *entity.Batch
	err := r.v.with(func(st *state) error {
		if b, ok := st.batches[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BatchRepo) ListBySKU(_ context.Context, sku string) ([]*entity.Batch, error) {
	return r.list(func(b *entity.Batch) bool { return b.ProductSKU == sku })
}

// ListBySKUForUpdate no necesita bloqueo propio: la transacción ya es exclusiva.
func (r *BatchRepo) ListBySKUForUpdate(ctx context.Context, sku string) ([]*entity.Batch, error) {
	return r.ListBySKU(ctx, sku)
}

func (r *BatchRepo) Update(_ context.Context, b *entity.Batch) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.batches[b.ID]; !ok {
			return fmt.Errorf("%w: id %d", domain.ErrBatchNotFound, b.ID)
		}
		st.batches[b.ID] = *b
		return nil
	})
}

func (r *BatchRepo) List(_ context.Context) ([]*entity.Batch, error) {
	return r.list(func(*entity.Batch) bool { return true })
}

func (r *BatchRepo) list(keep func(*entity.Batch) bool) ([]*entity.Batch, error) {
	var out []*entity.Batch
	err := r.v.with(func(st *state) error {
		for _, b := range st.batches {
			if keep(&b) {
				out = append(out, &b)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

// SaleRepo ventas indexadas por ID.
type SaleRepo struct{ v view }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.v.with(func(st *state) error {
		st.saleSeq++
		s.ID = st.saleSeq
		c := *s
		c.BatchesUsed = append([]entity.BatchUsage(nil), s.BatchesUsed...)
		st.sales[s.ID] = c
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.with(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			s.BatchesUsed = append([]entity.BatchUsage(nil), s.BatchesUsed...)
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) UpdateStatus(_ context.Context, id int64, status entity.SaleStatus) error {
	return r.v.with(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return fmt.Errorf("%w: id %d", domain.ErrSaleNotFound, id)
		}
		s.Status = status
		st.sales[id] = s
		return nil
	})
}

func (r *SaleRepo) SumCompleted(_ context.Context, sku string) (int, error) {
	total := 0
	err := r.v.with(func(st *state) error {
		for _, s := range st.sales {
			if s.SKU == sku && s.Status == entity.SaleCompleted {
				total += s.Quantity
			}
		}
		return nil
	})
	return total, err
}

// List ventas en [from, to) ordenadas por timestamp e id.
func (r *SaleRepo) List(_ context.Context, from, to *time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.v.with(func(st *state) error {
		for _, s := range st.sales {
			if !inRange(s.Timestamp, from, to) {
				continue
			}
			s.BatchesUsed = append([]entity.BatchUsage(nil), s.BatchesUsed...)
			out = append(out, &s)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

// ReturnRepo devoluciones en orden de inserción.
type ReturnRepo struct{ v view }

func (r *ReturnRepo) Create(_ context.Context, ret *entity.Return) error {
	return r.v.with(func(st *state) error {
		st.returnSeq++
		ret.ID = st.returnSeq
		st.returns = append(st.returns, *ret)
		return nil
	})
}

func (r *ReturnRepo) SumBalanceReturns(_ context.Context, sku string) (int, error) {
	total := 0
	err := r.v.with(func(st *state) error {
		for i := range st.returns {
			if st.returns[i].SKU == sku && st.returns[i].IsBalanceReturn() {
				total += st.returns[i].Quantity
			}
		}
		return nil
	})
	return total, err
}

func (r *ReturnRepo) List(_ context.Context, from, to *time.Time) ([]*entity.Return, error) {
	var out []*entity.Return
	err := r.v.with(func(st *state) error {
		for _, ret := range st.returns {
			if inRange(ret.Timestamp, from, to) {
				out = append(out, &ret)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, err
}

// MovementRepo libro de movimientos (solo inserción).
type MovementRepo struct{ v view }

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.v.with(func(st *state) error {
		st.movementSeq++
		m.ID = st.movementSeq
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.v.with(func(st *state) error {
		out = make([]*entity.Movement, 0, len(st.movements))
		for _, m := range st.movements {
			out = append(out, &m)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

// SettingsRepo configuración singleton.
type SettingsRepo struct{ v view }

func (r *SettingsRepo) Get(_ context.Context) (*entity.Settings, error) {
	var out *entity.Settings
	err := r.v.with(func(st *state) error {
		out = cloneSettings(st.settings)
		return nil
	})
	return out, err
}

func (r *SettingsRepo) Save(_ context.Context, s *entity.Settings) error {
	return r.v.with(func(st *state) error {
		st.settings = cloneSettings(s)
		return nil
	})
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(*to) {
		return false
	}
	return true
}
