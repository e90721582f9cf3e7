package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/memory"
)

var t0 = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func TestRun_ConfirmaAlTerminarSinError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	err := s.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Products.Create(ctx, &entity.Product{SKU: "A", Name: "Arroz"}); err != nil {
			return err
		}
		return r.Batches.Create(ctx, &entity.Batch{ProductSKU: "A", Quantity: 3, CreatedAt: t0})
	})
	require.NoError(t, err)

	p, err := s.Repos().Products.Get(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Arroz", p.Name)

	b, err := s.Repos().Batches.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, 3, b.Quantity)
}

func TestRun_DescartaTodoSiFnFalla(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	boom := errors.New("boom")

	err := s.Run(ctx, func(r repository.TxRepos) error {
		_ = r.Products.Create(ctx, &entity.Product{SKU: "A", Name: "Arroz"})
		_ = r.Batches.Create(ctx, &entity.Batch{ProductSKU: "A", Quantity: 3, CreatedAt: t0})
		_ = r.Movements.Create(ctx, &entity.Movement{SKU: "A", Type: entity.MovementIngreso, Quantity: 3})
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Repos().Products.Get(ctx, "A")
	require.NoError(t, err)
	assert.Nil(t, p)
	batches, err := s.Repos().Batches.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, batches)
	movs, err := s.Repos().Movements.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, movs)

	// Los IDs descartados no se consumen
	err = s.Run(ctx, func(r repository.TxRepos) error {
		b := &entity.Batch{ProductSKU: "A", Quantity: 1, CreatedAt: t0}
		if err := r.Batches.Create(ctx, b); err != nil {
			return err
		}
		assert.Equal(t, int64(1), b.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestRun_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.NewStore().Run(ctx, func(repository.TxRepos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRun_LaVentaNoComparteTrazaConLaCopia(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	sale := &entity.Sale{SKU: "A", Quantity: 2, Status: entity.SaleCompleted, Timestamp: t0,
		BatchesUsed: []entity.BatchUsage{{BatchID: 1, Quantity: 2, PurchasePrice: decimal.NewFromInt(1)}}}
	require.NoError(t, s.Run(ctx, func(r repository.TxRepos) error { return r.Sales.Create(ctx, sale) }))

	_ = s.Run(ctx, func(r repository.TxRepos) error {
		got, err := r.Sales.GetByID(ctx, sale.ID)
		require.NoError(t, err)
		got.BatchesUsed[0].Quantity = 99
		if err := r.Sales.UpdateStatus(ctx, sale.ID, entity.SaleCancelled); err != nil {
			return err
		}
		return errors.New("abortar")
	})

	got, err := s.Repos().Sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleCompleted, got.Status)
	assert.Equal(t, 2, got.BatchesUsed[0].Quantity)
}

func TestProductRepo_DuplicadoYNoEncontrado(t *testing.T) {
	ctx := context.Background()
	r := memory.NewStore().Repos()

	require.NoError(t, r.Products.Create(ctx, &entity.Product{SKU: "A"}))
	assert.ErrorIs(t, r.Products.Create(ctx, &entity.Product{SKU: "A"}), domain.ErrDuplicate)
	assert.ErrorIs(t, r.Products.Update(ctx, &entity.Product{SKU: "Z"}), domain.ErrProductNotFound)
	assert.ErrorIs(t, r.Batches.Update(ctx, &entity.Batch{ID: 7}), domain.ErrBatchNotFound)
}

func TestBatchRepo_OrdenFIFO(t *testing.T) {
	ctx := context.Background()
	r := memory.NewStore().Repos()
	require.NoError(t, r.Batches.Create(ctx, &entity.Batch{ProductSKU: "A", Quantity: 1, CreatedAt: t0.Add(time.Hour)}))
	require.NoError(t, r.Batches.Create(ctx, &entity.Batch{ProductSKU: "A", Quantity: 1, CreatedAt: t0}))
	require.NoError(t, r.Batches.Create(ctx, &entity.Batch{ProductSKU: "A", Quantity: 1, CreatedAt: t0}))
	require.NoError(t, r.Batches.Create(ctx, &entity.Batch{ProductSKU: "B", Quantity: 1, CreatedAt: t0}))

	list, err := r.Batches.ListBySKU(ctx, "A")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{list[0].ID, list[1].ID, list[2].ID})
}

func TestSumas_SoloVentasCompletadasYDevolucionesPorSaldo(t *testing.T) {
	ctx := context.Background()
	r := memory.NewStore().Repos()
	saleID := int64(1)

	require.NoError(t, r.Sales.Create(ctx, &entity.Sale{SKU: "A", Quantity: 5, Status: entity.SaleCompleted, Timestamp: t0}))
	require.NoError(t, r.Sales.Create(ctx, &entity.Sale{SKU: "A", Quantity: 3, Status: entity.SaleCancelled, Timestamp: t0}))
	require.NoError(t, r.Returns.Create(ctx, &entity.Return{SKU: "A", Quantity: 2, Type: entity.ReturnSale}))
	require.NoError(t, r.Returns.Create(ctx, &entity.Return{SKU: "A", Quantity: 3, Type: entity.ReturnSale, OriginalSaleID: &saleID}))
	require.NoError(t, r.Returns.Create(ctx, &entity.Return{SKU: "A", Quantity: 4, Type: entity.ReturnInventory}))

	sold, err := r.Sales.SumCompleted(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 5, sold)

	returned, err := r.Returns.SumBalanceReturns(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 2, returned)
}

func TestSaleRepo_ListPorRango(t *testing.T) {
	ctx := context.Background()
	r := memory.NewStore().Repos()
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Sales.Create(ctx, &entity.Sale{SKU: "A", Quantity: 1, Status: entity.SaleCompleted, Timestamp: t0.AddDate(0, 0, i)}))
	}
	from, to := t0.AddDate(0, 0, 1), t0.AddDate(0, 0, 2)

	list, err := r.Sales.List(ctx, &from, &to)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, from, list[0].Timestamp)

	all, err := r.Sales.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSettingsRepo(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Settings()

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	in := &entity.Settings{Bodega: "Central", Currency: "PEN", Operators: []string{"ana"}}
	require.NoError(t, repo.Save(ctx, in))
	in.Operators[0] = "mutado"

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"ana"}, got.Operators)
}
