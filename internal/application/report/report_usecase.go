// Package report arma los documentos de consulta (tablero, inventario actual, historial diario)
// a partir del estado vigente. Todo se recalcula en cada llamada.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/bodega-ledger/internal/domain/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain/ledger"
	projection "github.com/jhoicas/bodega-ledger/internal/domain/report"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

// SettingsProvider configuración vigente (nombre de bodega y moneda de los documentos).
type SettingsProvider interface {
	Current(ctx context.Context) (*entity.Settings, error)
}

// ReportUseCase consultas y documentos de reporte.
type ReportUseCase struct {
	repos    repository.TxRepos
	settings SettingsProvider
	warnDays int
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso. warnDays es la ventana de "por vencer".
func NewReportUseCase(repos repository.TxRepos, settings SettingsProvider, warnDays int) *ReportUseCase {
	if warnDays <= 0 {
		warnDays = domaininv.DefaultExpiryWarningDays
	}
	return &ReportUseCase{repos: repos, settings: settings, warnDays: warnDays, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

type snapshot struct {
	settings *entity.Settings
	products map[string]*entity.Product
	batches  []*entity.Batch
}

func (uc *ReportUseCase) load(ctx context.Context) (*snapshot, error) {
	s, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.repos.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	batches, err := uc.repos.Batches.List(ctx)
	if err != nil {
		return nil, err
	}
	return &snapshot{settings: s, products: projection.IndexProducts(products), batches: batches}, nil
}

// Inventory documento "inventario actual": un renglón por lote con stock, agrupado por SKU en orden FIFO.
func (uc *ReportUseCase) Inventory(ctx context.Context) (*dto.InventoryReport, error) {
	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	active := make([]*entity.Batch, 0, len(snap.batches))
	for _, b := range snap.batches {
		if b.Sellable() {
			active = append(active, b)
		}
	}
	domaininv.SortFIFO(active)
	sort.SliceStable(active, func(i, j int) bool { return active[i].ProductSKU < active[j].ProductSKU })

	rows := make([]dto.InventoryRow, 0, len(active))
	for _, b := range active {
		row := dto.InventoryRow{
			SKU:           b.ProductSKU,
			Lot:           b.Lot,
			ExpiryStatus:  string(domaininv.ExpiryStatusAt(b.Expiry, now, uc.warnDays)),
			Stock:         b.Quantity,
			PurchasePrice: b.PurchasePrice,
			Value:         projection.BatchValue(b),
		}
		if b.Expiry != nil {
			row.Expiry = b.Expiry.Format(dto.DateLayout)
		}
		if p, ok := snap.products[b.ProductSKU]; ok {
			row.Name = p.Name
			row.Category = p.Category
			row.SalePrice = p.DefaultSalePrice
		}
		rows = append(rows, row)
	}
	return &dto.InventoryReport{
		Bodega:      snap.settings.Bodega,
		Currency:    snap.settings.Currency,
		GeneratedAt: now,
		Rows:        rows,
		TotalValue:  projection.TotalStockValue(snap.batches),
	}, nil
}

// Summary indicadores del tablero: valor del stock, ganancia potencial, más y menos vendido, vencimientos.
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	movs, err := uc.repos.Movements.List(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := &dto.SummaryResponse{
		Bodega:          snap.settings.Bodega,
		Currency:        snap.settings.Currency,
		Products:        len(snap.products),
		TotalStockValue: projection.TotalStockValue(snap.batches),
		PotentialProfit: projection.PotentialProfit(snap.batches, snap.products),
		GeneratedAt:     now,
	}
	for _, b := range snap.batches {
		if !b.Sellable() {
			continue
		}
		out.ActiveBatches++
		out.TotalUnits += b.Quantity
		switch domaininv.ExpiryStatusAt(b.Expiry, now, uc.warnDays) {
		case domaininv.ExpiryExpired:
			out.Expired++
		case domaininv.ExpiryExpiringSoon:
			out.ExpiringSoon++
		}
	}
	best, worst := ledger.BestAndWorst(ledger.NetSalesRanking(movs))
	out.BestSeller = netSalesRow(best)
	out.WorstSeller = netSalesRow(worst)
	return out, nil
}

// Daily historial de movimientos del día (en la zona de day) y totales por operador.
// El estado de los renglones de venta es el de la venta (completed o cancelled).
func (uc *ReportUseCase) Daily(ctx context.Context, day time.Time) (*dto.DailyReport, error) {
	s, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	from, to := ledger.Day(day)
	movs, err := uc.repos.Movements.List(ctx)
	if err != nil {
		return nil, err
	}
	movs = ledger.ByDateRange(movs, from, to)

	sales, err := uc.repos.Sales.List(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	saleStatus := make(map[int64]entity.SaleStatus, len(sales))
	for _, sale := range sales {
		saleStatus[sale.ID] = sale.Status
	}

	out := &dto.DailyReport{
		Date:      from.Format(dto.DateLayout),
		Bodega:    s.Bodega,
		Currency:  s.Currency,
		Movements: make([]dto.MovementRow, 0, len(movs)),
		Operators: make([]dto.OperatorSummaryRow, 0),
	}
	for _, m := range movs {
		out.Movements = append(out.Movements, dto.MovementRow{
			Timestamp: m.Timestamp,
			Type:      string(m.Type),
			SKU:       m.SKU,
			Name:      m.Name,
			Quantity:  m.Quantity,
			Price:     m.Price,
			Lot:       m.Lot,
			Operator:  m.Operator,
			DeviceID:  m.DeviceID,
			Status:    movementStatus(m, saleStatus),
		})
	}
	for _, op := range ledger.SummarizeByOperator(movs) {
		out.Operators = append(out.Operators, dto.OperatorSummaryRow{
			Operator:         op.Operator,
			DeviceID:         op.DeviceID,
			SaleUnits:        op.SaleUnits,
			IngresoEvents:    op.IngresoEvents,
			DevolucionEvents: op.DevolucionEvents,
		})
	}
	return out, nil
}

// Sales ventas en [from, to).
func (uc *ReportUseCase) Sales(ctx context.Context, from, to *time.Time) ([]dto.SaleResponse, error) {
	list, err := uc.repos.Sales.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromSale(s))
	}
	return out, nil
}

// Returns devoluciones en [from, to).
func (uc *ReportUseCase) Returns(ctx context.Context, from, to *time.Time) ([]dto.ReturnResponse, error) {
	list, err := uc.repos.Returns.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReturnResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.FromReturn(r))
	}
	return out, nil
}

// Movements libro de movimientos filtrado y paginado (orden cronológico).
func (uc *ReportUseCase) Movements(ctx context.Context, f dto.MovementFilter, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	movs, err := uc.repos.Movements.List(ctx)
	if err != nil {
		return nil, err
	}
	movs = ledger.ByDateRange(movs, f.From, f.To)
	if f.SKU != "" {
		movs = ledger.BySKU(movs, f.SKU)
	}
	if f.Operator != "" {
		movs = ledger.ByOperator(movs, f.Operator)
	}
	total := len(movs)
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)
	items := make([]dto.MovementResponse, 0, end-start)
	for _, m := range movs[start:end] {
		items = append(items, dto.FromMovement(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// BatchViews lotes con su estado de vencimiento a la fecha actual.
func (uc *ReportUseCase) BatchViews(list []*entity.Batch) []dto.BatchResponse {
	now := uc.now()
	out := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		r := dto.FromBatch(b)
		r.ExpiryStatus = string(domaininv.ExpiryStatusAt(b.Expiry, now, uc.warnDays))
		out = append(out, r)
	}
	return out
}

func movementStatus(m *entity.Movement, saleStatus map[int64]entity.SaleStatus) string {
	switch m.Type {
	case entity.MovementVenta:
		if m.SaleID != nil {
			if st, ok := saleStatus[*m.SaleID]; ok {
				return string(st)
			}
		}
		return string(entity.SaleCompleted)
	case entity.MovementIngreso:
		return ""
	default:
		return "completed"
	}
}

func netSalesRow(n *ledger.NetSales) *dto.NetSalesRow {
	if n == nil {
		return nil
	}
	return &dto.NetSalesRow{SKU: n.SKU, Name: n.Name, Net: n.Net}
}
