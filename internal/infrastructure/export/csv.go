// Package export escribe los documentos de reporte como hojas CSV (UTF-8 con BOM para
// que las planillas detecten la codificación). El orden y las etiquetas de columnas son fijos.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
)

// InventoryHeader columnas del documento "inventario actual".
var InventoryHeader = []string{
	"sku", "name", "category", "lot", "expiry", "stock", "purchase price", "sale price", "row value",
}

// DailyHeader columnas del historial diario de movimientos.
var DailyHeader = []string{
	"timestamp", "type", "sku", "name", "quantity", "price", "lot", "operator", "device", "status",
}

// OperatorHeader columnas del resumen por operador.
var OperatorHeader = []string{
	"operator", "device", "sale-units", "ingreso-events", "devolución-events",
}

const bom = "\uFEFF"

// WriteInventoryCSV escribe una fila por lote con stock.
func WriteInventoryCSV(w io.Writer, r *dto.InventoryReport) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(InventoryHeader); err != nil {
		return err
	}
	for _, row := range r.Rows {
		rec := []string{
			row.SKU,
			row.Name,
			row.Category,
			row.Lot,
			row.Expiry,
			strconv.Itoa(row.Stock),
			row.PurchasePrice.StringFixed(2),
			row.SalePrice.StringFixed(2),
			row.Value.StringFixed(2),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDailyCSV escribe los movimientos del día, una línea en blanco y el resumen por operador.
func WriteDailyCSV(w io.Writer, r *dto.DailyReport) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(DailyHeader); err != nil {
		return err
	}
	for _, m := range r.Movements {
		rec := []string{
			m.Timestamp.Format(time.RFC3339),
			m.Type,
			m.SKU,
			m.Name,
			strconv.Itoa(m.Quantity),
			m.Price.StringFixed(2),
			m.Lot,
			m.Operator,
			m.DeviceID,
			m.Status,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{}); err != nil {
		return err
	}
	if err := cw.Write(OperatorHeader); err != nil {
		return err
	}
	for _, op := range r.Operators {
		rec := []string{
			op.Operator,
			op.DeviceID,
			strconv.Itoa(op.SaleUnits),
			strconv.Itoa(op.IngresoEvents),
			strconv.Itoa(op.DevolucionEvents),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename nombre de descarga sin extensión: <documento>-<bodega>-<fecha>.
func Filename(doc, bodega, date string) string {
	return fmt.Sprintf("%s-%s-%s", doc, slug(bodega), date)
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-' || r == '_':
			if len(out) > 0 && out[len(out)-1] != '-' {
				out = append(out, '-')
			}
		}
	}
	if len(out) == 0 {
		return "bodega"
	}
	return string(out)
}
