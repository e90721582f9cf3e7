package inventory_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-ledger/internal/application/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/memory"
)

var sess = entity.Session{Operator: "ana", DeviceID: "scan-1", Bodega: "Central", Connected: true}

// ledgerFixture motor sobre el almacenamiento en memoria con un reloj que avanza un minuto por lectura.
type ledgerFixture struct {
	store  *memory.Store
	ledger *inventory.LedgerUseCase
	obs    *recordingObserver
	now    time.Time
}

func newFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	f := &ledgerFixture{
		store: memory.NewStore(),
		obs:   &recordingObserver{},
		now:   time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}
	f.ledger = inventory.NewLedgerUseCase(f.store,
		inventory.WithObserver(f.obs),
		inventory.WithClock(f.tick),
	)
	return f
}

func (f *ledgerFixture) tick() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *ledgerFixture) stock(t *testing.T, sku string) int {
	t.Helper()
	n, err := inventory.NewBatchService(f.store.Repos().Batches).StockFor(context.Background(), sku, true)
	require.NoError(t, err)
	return n
}

func (f *ledgerFixture) movements(t *testing.T) []*entity.Movement {
	t.Helper()
	movs, err := f.store.Repos().Movements.List(context.Background())
	require.NoError(t, err)
	return movs
}

func (f *ledgerFixture) sales(t *testing.T) []*entity.Sale {
	t.Helper()
	sales, err := f.store.Repos().Sales.List(context.Background(), nil, nil)
	require.NoError(t, err)
	return sales
}

func (f *ledgerFixture) batches(t *testing.T, sku string) []*entity.Batch {
	t.Helper()
	list, err := f.store.Repos().Batches.ListBySKU(context.Background(), sku)
	require.NoError(t, err)
	return list
}

func (f *ledgerFixture) ingreso(t *testing.T, sku string, qty int64, purchase, sale string) *entity.AppliedEvent {
	t.Helper()
	evt, err := f.ledger.ProcessEvent(context.Background(), sess, entity.EventPayload{
		Event:         entity.EventIngreso,
		SKU:           sku,
		Name:          "Producto " + sku,
		Quantity:      decimal.NewFromInt(qty),
		PurchasePrice: dec(purchase),
		SalePrice:     dec(sale),
	})
	require.NoError(t, err)
	return evt
}

func (f *ledgerFixture) venta(sku string, qty int64) (*entity.AppliedEvent, error) {
	return f.ledger.ProcessEvent(context.Background(), sess, entity.EventPayload{
		Event:    entity.EventVenta,
		SKU:      sku,
		Quantity: decimal.NewFromInt(qty),
	})
}

func (f *ledgerFixture) devolucion(sku string, qty int64) (*entity.AppliedEvent, error) {
	return f.ledger.ProcessEvent(context.Background(), sess, entity.EventPayload{
		Event:    entity.EventDevolucion,
		SKU:      sku,
		Quantity: decimal.NewFromInt(qty),
	})
}

func dec(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d := decimal.RequireFromString(s)
	return &d
}

type recordingObserver struct {
	applied  []entity.EventKind
	rejected []error
}

func (o *recordingObserver) EventApplied(_ context.Context, evt *entity.AppliedEvent) {
	o.applied = append(o.applied, evt.Kind)
}

func (o *recordingObserver) EventRejected(_ context.Context, _ entity.EventKind, err error) {
	o.rejected = append(o.rejected, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios base: ingreso, venta, stock insuficiente
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenario_IngresoLuegoVenta(t *testing.T) {
	f := newFixture(t)

	evt := f.ingreso(t, "GALX-001", 12, "1.45", "2.50")
	assert.True(t, evt.ProductCreated)
	assert.Equal(t, 12, f.stock(t, "GALX-001"))

	sold, err := f.venta("GALX-001", 5)
	require.NoError(t, err)
	require.NotNil(t, sold.Sale)
	assert.Equal(t, 7, f.stock(t, "GALX-001"))
	assert.Equal(t, "12.5", sold.Sale.Total.String())
	assert.Equal(t, entity.SaleCompleted, sold.Sale.Status)

	batches := f.batches(t, "GALX-001")
	require.Len(t, batches, 1)
	assert.Equal(t, 7, batches[0].Quantity)
}

func TestEscenario_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.ingreso(t, "GALX-001", 12, "1.45", "2.50")
	_, err := f.venta("GALX-001", 5)
	require.NoError(t, err)

	_, err = f.venta("GALX-001", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))
	assert.Equal(t, 7, f.stock(t, "GALX-001"))
	assert.Len(t, f.sales(t), 1)
}

func TestVenta_OrdenFIFO(t *testing.T) {
	f := newFixture(t)
	b1 := f.ingreso(t, "ARROZ", 5, "1.00", "2.00").Batch
	b2 := f.ingreso(t, "ARROZ", 5, "1.20", "").Batch

	evt, err := f.venta("ARROZ", 7)
	require.NoError(t, err)

	require.Len(t, evt.Sale.BatchesUsed, 2)
	assert.Equal(t, b1.ID, evt.Sale.BatchesUsed[0].BatchID)
	assert.Equal(t, 5, evt.Sale.BatchesUsed[0].Quantity)
	assert.Equal(t, b2.ID, evt.Sale.BatchesUsed[1].BatchID)
	assert.Equal(t, 2, evt.Sale.BatchesUsed[1].Quantity)

	batches := f.batches(t, "ARROZ")
	require.Len(t, batches, 2)
	assert.Equal(t, 0, batches[0].Quantity)
	assert.Equal(t, 3, batches[1].Quantity)

	require.Len(t, evt.ConsumedBatch, 2)
	assert.Equal(t, b1.Lot+","+b2.Lot, evt.Movement.Lot)
}

func TestVenta_TodoONada(t *testing.T) {
	f := newFixture(t)
	f.ingreso(t, "ARROZ", 3, "1", "2")
	f.ingreso(t, "ARROZ", 2, "1", "2")
	before := len(f.movements(t))

	_, err := f.venta("ARROZ", 6)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	for _, b := range f.batches(t, "ARROZ") {
		assert.Contains(t, []int{3, 2}, b.Quantity)
	}
	assert.Equal(t, 5, f.stock(t, "ARROZ"))
	assert.Empty(t, f.sales(t))
	assert.Len(t, f.movements(t), before)
}

func TestVenta_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.venta("NOPE", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStockNuncaNegativo(t *testing.T) {
	f := newFixture(t)
	f.ingreso(t, "AZUCAR", 4, "1", "2")

	ops := []struct {
		ingreso bool
		qty     int64
	}{
		{false, 3}, {false, 3}, {true, 2}, {false, 1}, {false, 2}, {false, 1}, {true, 5}, {false, 6}, {false, 5},
	}
	for _, op := range ops {
		if op.ingreso {
			f.ingreso(t, "AZUCAR", op.qty, "1", "")
		} else {
			_, _ = f.venta("AZUCAR", op.qty)
		}
		assert.GreaterOrEqual(t, f.stock(t, "AZUCAR"), 0)
		for _, b := range f.batches(t, "AZUCAR") {
			assert.GreaterOrEqual(t, b.Quantity, 0)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones previas a cualquier escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessEvent_SinSesionConectada(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.ProcessEvent(context.Background(), entity.Session{}, entity.EventPayload{
		Event: entity.EventIngreso, SKU: "A", Name: "A", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotConnected)
	assert.Empty(t, f.movements(t))
	require.Len(t, f.obs.rejected, 1)
}

func TestProcessEvent_TipoDesconocido(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.ProcessEvent(context.Background(), sess, entity.EventPayload{Event: "traslado", SKU: "A"})
	assert.ErrorIs(t, err, domain.ErrUnknownEvent)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestProcessEvent_SinIdentificador(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.ProcessEvent(context.Background(), sess, entity.EventPayload{Event: entity.EventVenta, SKU: "  "})
	assert.ErrorIs(t, err, domain.ErrMissingIdentifier)
}

func TestProcessEvent_UsaCodigoDeBarrasSiNoHaySKU(t *testing.T) {
	f := newFixture(t)
	evt, err := f.ledger.ProcessEvent(context.Background(), sess, entity.EventPayload{
		Event: entity.EventIngreso, Barcode: "7750001", Name: "Leche", Quantity: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "7750001", evt.Product.SKU)
}

func TestProcessEvent_SKUEnBlancoUsaCodigoDeBarras(t *testing.T) {
	f := newFixture(t)
	evt, err := f.ledger.ProcessEvent(context.Background(), sess, entity.EventPayload{
		Event: entity.EventIngreso, SKU: "   ", Barcode: " 7750 ", Name: "Pan", Quantity: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "7750", evt.Product.SKU)
}

func TestIngreso_ProductoNuevoSinNombre(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.ProcessEvent(context.Background(), sess, entity.EventPayload{
		Event: entity.EventIngreso, SKU: "A", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrMissingName)
	assert.Empty(t, f.movements(t))
}

func TestIngreso_VentaDebeSuperarCompra(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.ProcessEvent(context.Background(), sess, entity.EventPayload{
		Event: entity.EventIngreso, SKU: "A", Name: "A", Quantity: decimal.NewFromInt(1),
		PurchasePrice: dec("3"), SalePrice: dec("3"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestIngreso_PrecioDeVentaPorDefecto(t *testing.T) {
	f := newFixture(t)
	evt := f.ingreso(t, "A", 1, "2.00", "")
	assert.Equal(t, "3", evt.Product.DefaultSalePrice.String())
	assert.Equal(t, inventory.DefaultCategory, evt.Product.Category)
}

func TestIngreso_CantidadSeNormaliza(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		in   string
		want int
	}{{"0", 1}, {"-3", 1}, {"2.7", 2}}
	for _, c := range cases {
		evt, err := f.ledger.ProcessEvent(context.Background(), sess, entity.EventPayload{
			Event: entity.EventIngreso, SKU: "Q", Name: "Q", Quantity: decimal.RequireFromString(c.in),
		})
		require.NoError(t, err)
		assert.Equal(t, c.want, evt.Movement.Quantity, c.in)
		assert.Equal(t, c.want, evt.Batch.Quantity, c.in)
	}
}

func TestIngreso_LoteGeneradoSegunOrigen(t *testing.T) {
	f := newFixture(t)
	evt, err := f.ledger.ProcessEvent(context.Background(), sess, entity.EventPayload{
		Event: entity.EventIngreso, SKU: "A", Name: "A", Quantity: decimal.NewFromInt(1), Source: entity.SourceScan,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(evt.Batch.Lot, "AUTO-"), evt.Batch.Lot)
	assert.Equal(t, entity.OriginIngreso, evt.Batch.Origin)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devoluciones por saldo
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenario_DevolucionSuperaLoVendido(t *testing.T) {
	f := newFixture(t)
	f.ingreso(t, "A", 10, "1", "2")
	_, err := f.venta("A", 3)
	require.NoError(t, err)

	_, err = f.devolucion("A", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOverReturn)
	assert.Equal(t, 7, f.stock(t, "A"))
}

func TestDevolucion_ReingresaComoLoteVendible(t *testing.T) {
	f := newFixture(t)
	f.ingreso(t, "A", 10, "1.00", "2.00")
	_, err := f.venta("A", 4)
	require.NoError(t, err)

	evt, err := f.devolucion("A", 2)
	require.NoError(t, err)
	require.NotNil(t, evt.Return)
	require.NotNil(t, evt.Batch)
	assert.Equal(t, "DEV-SALE-"+itoa(evt.Return.ID), evt.Batch.Lot)
	assert.Equal(t, entity.OriginReturnOfSale, evt.Batch.Origin)
	assert.Nil(t, evt.Return.OriginalSaleID)
	assert.Equal(t, 8, f.stock(t, "A"))

	// El lote devuelto puede venderse
	_, err = f.venta("A", 8)
	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t, "A"))
}

func TestDevolucion_SaldoAcumulado(t *testing.T) {
	f := newFixture(t)
	f.ingreso(t, "A", 10, "1", "2")
	_, err := f.venta("A", 3)
	require.NoError(t, err)

	_, err = f.devolucion("A", 2)
	require.NoError(t, err)
	_, err = f.devolucion("A", 1)
	require.NoError(t, err)
	_, err = f.devolucion("A", 1)
	assert.ErrorIs(t, err, domain.ErrOverReturn)

	returned, err := f.store.Repos().Returns.SumBalanceReturns(context.Background(), "A")
	require.NoError(t, err)
	sold, err := f.store.Repos().Sales.SumCompleted(context.Background(), "A")
	require.NoError(t, err)
	assert.LessOrEqual(t, returned, sold)
}

// ──────────────────────────────────────────────────────────────────────────────
// Anulación de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenario_AnulacionEsInversaExacta(t *testing.T) {
	f := newFixture(t)
	f.ingreso(t, "A", 10, "1.00", "2.00")
	sold, err := f.venta("A", 4)
	require.NoError(t, err)
	require.Equal(t, 6, f.stock(t, "A"))

	undo, err := f.ledger.UndoSale(context.Background(), sess, sold.Sale.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, f.stock(t, "A"))
	assert.Equal(t, entity.SaleCancelled, undo.Sale.Status)
	require.NotNil(t, undo.Batch)
	assert.Equal(t, entity.OriginUndoOfSale, undo.Batch.Origin)
	assert.True(t, decimal.RequireFromString("1.00").Equal(undo.Batch.PurchasePrice))
	require.NotNil(t, undo.Return.OriginalSaleID)
	assert.Equal(t, sold.Sale.ID, *undo.Return.OriginalSaleID)

	stored, err := f.store.Repos().Sales.GetByID(context.Background(), sold.Sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleCancelled, stored.Status)
}

func TestAnulacion_SegundaVezFalla(t *testing.T) {
	f := newFixture(t)
	f.ingreso(t, "A", 5, "1", "2")
	sold, err := f.venta("A", 2)
	require.NoError(t, err)

	_, err = f.ledger.UndoSale(context.Background(), sess, sold.Sale.ID)
	require.NoError(t, err)
	movs := len(f.movements(t))

	_, err = f.ledger.UndoSale(context.Background(), sess, sold.Sale.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Equal(t, 5, f.stock(t, "A"))
	assert.Len(t, f.movements(t), movs)
}

func TestAnulacion_VentaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.UndoSale(context.Background(), sess, 99)
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func TestAnulacion_NoDejaDevolucionesSinCubrir(t *testing.T) {
	f := newFixture(t)
	f.ingreso(t, "A", 10, "1", "2")
	sold, err := f.venta("A", 4)
	require.NoError(t, err)
	_, err = f.devolucion("A", 4)
	require.NoError(t, err)

	_, err = f.ledger.UndoSale(context.Background(), sess, sold.Sale.ID)
	assert.ErrorIs(t, err, domain.ErrOverReturn)
}

func TestAnulacion_SinSesion(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.UndoSale(context.Background(), entity.Session{}, 1)
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devolución de lote al proveedor
// ──────────────────────────────────────────────────────────────────────────────

func TestReturnBatch_SacaElLoteDelInventario(t *testing.T) {
	f := newFixture(t)
	b := f.ingreso(t, "A", 6, "1.50", "3").Batch
	f.ingreso(t, "A", 2, "1.50", "3")

	evt, err := f.ledger.ReturnBatch(context.Background(), sess, b.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, f.stock(t, "A"))
	assert.Equal(t, entity.BatchReturned, evt.Batch.Status)
	assert.Equal(t, 0, evt.Batch.Quantity)
	assert.Equal(t, "DEV-INV-"+itoa(evt.Return.ID)+"-"+b.Lot, evt.Batch.Lot)
	assert.Equal(t, entity.ReturnInventory, evt.Return.Type)
	assert.Equal(t, 6, evt.Movement.Quantity)
	assert.Equal(t, entity.MovementDevolucionInventario, evt.Movement.Type)

	_, err = f.ledger.ReturnBatch(context.Background(), sess, b.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyReturned)
}

func TestReturnBatch_ConservaElOrigenDelLote(t *testing.T) {
	f := newFixture(t)
	f.ingreso(t, "A", 3, "1", "2")
	_, err := f.venta("A", 3)
	require.NoError(t, err)
	dev, err := f.devolucion("A", 1)
	require.NoError(t, err)
	require.Equal(t, entity.OriginReturnOfSale, dev.Batch.Origin)

	evt, err := f.ledger.ReturnBatch(context.Background(), sess, dev.Batch.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OriginReturnOfPurchase, evt.Batch.Origin)
	assert.Equal(t, entity.OriginReturnOfSale, evt.Return.BatchOrigin)
	assert.True(t, strings.HasSuffix(evt.Batch.Lot, dev.Batch.Lot))

	rets, err := f.store.Repos().Returns.List(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, rets, 2)
	assert.Equal(t, entity.OriginReturnOfSale, rets[1].BatchOrigin)
	assert.Empty(t, rets[0].BatchOrigin)
}

func TestReturnBatch_LoteVacioOInexistente(t *testing.T) {
	f := newFixture(t)
	b := f.ingreso(t, "A", 2, "1", "2").Batch
	_, err := f.venta("A", 2)
	require.NoError(t, err)

	_, err = f.ledger.ReturnBatch(context.Background(), sess, b.ID)
	assert.ErrorIs(t, err, domain.ErrNothingToReturn)

	_, err = f.ledger.ReturnBatch(context.Background(), sess, 404)
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestAuditoria_UnMovimientoPorEventoAceptado(t *testing.T) {
	f := newFixture(t)
	type expect struct {
		typ entity.MovementType
		sku string
		qty int
	}
	var want []expect

	evt := f.ingreso(t, "A", 10, "1", "2")
	want = append(want, expect{entity.MovementIngreso, "A", 10})
	b := evt.Batch

	sold, err := f.venta("A", 3)
	require.NoError(t, err)
	want = append(want, expect{entity.MovementVenta, "A", 3})

	_, err = f.venta("A", 2)
	require.NoError(t, err)
	want = append(want, expect{entity.MovementVenta, "A", 2})

	_, err = f.venta("A", 100) // rechazada: sin movimiento
	require.Error(t, err)

	_, err = f.devolucion("A", 1)
	require.NoError(t, err)
	want = append(want, expect{entity.MovementDevolucionVenta, "A", 1})

	_, err = f.ledger.UndoSale(context.Background(), sess, sold.Sale.ID)
	require.NoError(t, err)
	want = append(want, expect{entity.MovementAnulacionVenta, "A", 3})

	_, err = f.ledger.ReturnBatch(context.Background(), sess, b.ID)
	require.NoError(t, err)
	want = append(want, expect{entity.MovementDevolucionInventario, "A", 5})

	movs := f.movements(t)
	require.Len(t, movs, len(want))
	seen := make(map[string]bool)
	for i, m := range movs {
		assert.Equal(t, want[i].typ, m.Type, "movimiento %d", i)
		assert.Equal(t, want[i].sku, m.SKU, "movimiento %d", i)
		assert.Equal(t, want[i].qty, m.Quantity, "movimiento %d", i)
		assert.Equal(t, "ana", m.Operator)
		assert.NotEmpty(t, m.EventID)
		assert.False(t, seen[m.EventID], "event_id repetido")
		seen[m.EventID] = true
	}
	assert.Len(t, f.obs.applied, 6)
	assert.Len(t, f.obs.rejected, 1)
}

// failingRunner envuelve el almacenamiento y hace fallar la escritura del movimiento,
// la última de cada evento.
type failingRunner struct {
	store *memory.Store
}

var errDisk = errors.New("disco lleno")

type failingMovements struct {
	repository.MovementRepository
}

func (failingMovements) Create(context.Context, *entity.Movement) error { return errDisk }

func (r failingRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	return r.store.Run(ctx, func(repos repository.TxRepos) error {
		repos.Movements = failingMovements{repos.Movements}
		return fn(repos)
	})
}

func TestAtomicidad_FallaDelAlmacenamientoNoDejaEscriturasParciales(t *testing.T) {
	f := newFixture(t)
	f.ingreso(t, "A", 5, "1", "2")
	broken := inventory.NewLedgerUseCase(failingRunner{store: f.store})

	_, err := broken.ProcessEvent(context.Background(), sess, entity.EventPayload{
		Event: entity.EventIngreso, SKU: "NUEVO", Name: "Nuevo", Quantity: decimal.NewFromInt(3),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, errDisk)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))

	p, err := f.store.Repos().Products.Get(context.Background(), "NUEVO")
	require.NoError(t, err)
	assert.Nil(t, p, "el producto no debe quedar creado")

	_, err = broken.ProcessEvent(context.Background(), sess, entity.EventPayload{
		Event: entity.EventVenta, SKU: "A", Quantity: decimal.NewFromInt(2),
	})
	require.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, 5, f.stock(t, "A"))
	assert.Empty(t, f.sales(t))
	assert.Len(t, f.movements(t), 1)
}

func TestBatchService_Secciones(t *testing.T) {
	f := newFixture(t)
	b := f.ingreso(t, "A", 4, "1", "2").Batch
	f.ingreso(t, "A", 4, "1", "2")
	_, err := f.venta("A", 2)
	require.NoError(t, err)
	_, err = f.devolucion("A", 1)
	require.NoError(t, err)
	_, err = f.ledger.ReturnBatch(context.Background(), sess, b.ID)
	require.NoError(t, err)

	svc := inventory.NewBatchService(f.store.Repos().Batches)
	inv, err := svc.List(context.Background(), "A", inventory.SectionInventory)
	require.NoError(t, err)
	assert.Len(t, inv, 2, "lote de ingreso restante y lote de devolución")

	rets, err := svc.List(context.Background(), "", inventory.SectionReturns)
	require.NoError(t, err)
	assert.Len(t, rets, 2, "lote de devolución y lote devuelto al proveedor")

	all, err := svc.List(context.Background(), "A", inventory.SectionAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func itoa(n int64) string {
	return decimal.NewFromInt(n).String()
}
