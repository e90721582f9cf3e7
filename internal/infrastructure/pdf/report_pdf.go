// Package pdf genera los reportes imprimibles de la bodega: inventario actual e historial diario.
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Bodega + título      │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas del documento (mismo orden que el CSV)      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES / RESUMEN POR OPERADOR                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportGenerator arma los PDF con Maroto v2.
type ReportGenerator struct{}

// NewReportGenerator construye el generador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

type column struct {
	label string
	size  int
	align align.Type
}

var inventoryColumns = []column{
	{"SKU", 1, align.Left},
	{"Nombre", 2, align.Left},
	{"Categoría", 1, align.Left},
	{"Lote", 2, align.Left},
	{"Vence", 1, align.Center},
	{"Stock", 1, align.Right},
	{"P. compra", 1, align.Right},
	{"P. venta", 1, align.Right},
	{"Valor", 2, align.Right},
}

var dailyColumns = []column{
	{"Hora", 1, align.Left},
	{"Tipo", 2, align.Left},
	{"SKU", 1, align.Left},
	{"Nombre", 2, align.Left},
	{"Cant.", 1, align.Right},
	{"Precio", 1, align.Right},
	{"Lote", 1, align.Left},
	{"Operador", 1, align.Left},
	{"Disp.", 1, align.Left},
	{"Estado", 1, align.Center},
}

// InventoryPDF documento "inventario actual".
func (g *ReportGenerator) InventoryPDF(r *dto.InventoryReport) ([]byte, error) {
	money := newMoneyFormatter(r.Currency)
	m := newDocument("Inventario actual", r.Bodega)

	m.AddRows(headerRow(r.Bodega, "INVENTARIO ACTUAL", r.GeneratedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(inventoryColumns))
	for _, it := range r.Rows {
		var color *props.Color
		if it.ExpiryStatus == "expired" || it.ExpiryStatus == "expiring_soon" {
			color = colorAlert
		}
		m.AddRows(tableRow(inventoryColumns, color,
			it.SKU, it.Name, it.Category, it.Lot, nonEmpty(it.Expiry, "—"), strconv.Itoa(it.Stock),
			money.format(it.PurchasePrice), money.format(it.SalePrice), money.format(it.Value),
		))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(8),
		col.New(2).Add(text.New("VALOR TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1, Right: 2,
		})),
		col.New(2).Add(text.New(money.format(r.TotalValue), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1, Right: 1,
		})),
	))
	return generate(m)
}

// DailyPDF historial de movimientos del día con el resumen por operador.
func (g *ReportGenerator) DailyPDF(r *dto.DailyReport, generatedAt time.Time) ([]byte, error) {
	money := newMoneyFormatter(r.Currency)
	m := newDocument("Movimientos "+r.Date, r.Bodega)

	m.AddRows(headerRow(r.Bodega, "MOVIMIENTOS DEL "+r.Date, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(dailyColumns))
	if len(r.Movements) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(text.New("Sin movimientos en el día.", props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: 2,
		}))))
	}
	for _, mv := range r.Movements {
		var color *props.Color
		if mv.Status == "cancelled" {
			color = colorGray
		}
		m.AddRows(tableRow(dailyColumns, color,
			mv.Timestamp.Format("15:04"), mv.Type, mv.SKU, mv.Name, strconv.Itoa(mv.Quantity),
			money.format(mv.Price), mv.Lot, mv.Operator, mv.DeviceID, mv.Status,
		))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(row.New(7).Add(col.New(12).Add(text.New("RESUMEN POR OPERADOR", props.Text{
		Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
	}))))
	opCols := []column{
		{"Operador", 3, align.Left},
		{"Dispositivo", 3, align.Left},
		{"Unid. vendidas", 2, align.Right},
		{"Ingresos", 2, align.Right},
		{"Devoluciones", 2, align.Right},
	}
	m.AddRows(tableHeaderRow(opCols))
	for _, op := range r.Operators {
		m.AddRows(tableRow(opCols, nil,
			nonEmpty(op.Operator, "—"), nonEmpty(op.DeviceID, "—"),
			strconv.Itoa(op.SaleUnits), strconv.Itoa(op.IngresoEvents), strconv.Itoa(op.DevolucionEvents),
		))
	}
	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func newDocument(title, bodega string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		WithAuthor(bodega, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: bodega + título (izq) y fecha de generación (der).
func headerRow(bodega, title string, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(bodega, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(title, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(cols []column) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		out = append(out, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(out...)
}

func tableRow(cols []column, color *props.Color, values ...string) core.Row {
	out := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		out = append(out, col.New(c.size).Add(text.New(v, props.Text{
			Size: 7.5, Align: c.align, Top: 1, Left: 1, Right: 1, Color: color,
		})))
	}
	return row.New(6).Add(out...)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
