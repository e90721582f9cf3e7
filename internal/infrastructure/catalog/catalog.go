// Package catalog lee el catálogo inicial de la bodega (CSV exportado de una hoja de cálculo)
// y lo convierte en eventos de ingreso.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/inventory"
)

// ErrEmpty catálogo sin filas de datos.
var ErrEmpty = errors.New("catálogo vacío")

// Columnas obligatorias, con su nombre canónico.
var required = []string{"sku", "name", "purchase_price", "sale_price", "quantity"}

// Cabeceras alternativas (planillas en castellano).
var aliases = map[string]string{
	"codigo":        "sku",
	"código":        "sku",
	"nombre":        "name",
	"producto":      "name",
	"categoria":     "category",
	"categoría":     "category",
	"precio_compra": "purchase_price",
	"costo":         "purchase_price",
	"precio_venta":  "sale_price",
	"precio":        "sale_price",
	"cantidad":      "quantity",
	"stock":         "quantity",
	"vencimiento":   "expiry",
	"lote":          "lot",
	"codigo_barras": "barcode",
	"ean":           "barcode",
}

// Options ajustes de lectura.
type Options struct {
	Latin1   bool           // el archivo viene en ISO-8859-1 (Excel en Windows)
	Location *time.Location // zona para interpretar expiry; nil = UTC
}

// Skipped fila descartada porque su lote pertenece a un movimiento que no es un ingreso.
type Skipped struct {
	Line   int
	SKU    string
	Lot    string
	Origin entity.BatchOrigin
}

// Result eventos listos para el motor y filas descartadas.
type Result struct {
	Events  []entity.EventPayload
	Skipped []Skipped
}

// Read convierte cada fila en un ingreso con fuente "initial".
// Las filas cuyo lote lleva un prefijo de devolución o anulación (DEV-SALE-, DEV-INV-, UNDO-, DEV-)
// no se importan: ese stock no es de compra y no debe quedar vendible como ingreso.
func Read(r io.Reader, opts Options) (*Result, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmpty
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
		if canon, ok := aliases[name]; ok {
			name = canon
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}
	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	res := &Result{Events: make([]entity.EventPayload, 0, len(rows)-1)}
	for n, row := range rows[1:] {
		line := n + 2
		if blank(row) {
			continue
		}
		lot := get(row, "lot")
		if origin := inventory.OriginFromLegacyLot(lot); origin != entity.OriginIngreso {
			res.Skipped = append(res.Skipped, Skipped{Line: line, SKU: get(row, "sku"), Lot: lot, Origin: origin})
			continue
		}

		purchase, err := number(get(row, "purchase_price"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: purchase_price: %w", line, err)
		}
		sale, err := number(get(row, "sale_price"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: sale_price: %w", line, err)
		}
		qty, err := number(get(row, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: quantity: %w", line, err)
		}
		p := entity.EventPayload{
			Event:         entity.EventIngreso,
			SKU:           get(row, "sku"),
			Barcode:       get(row, "barcode"),
			Name:          get(row, "name"),
			Quantity:      qty,
			PurchasePrice: &purchase,
			SalePrice:     &sale,
			Lot:           lot,
			Source:        entity.SourceInitial,
		}
		if c := get(row, "category"); c != "" {
			p.Category = &c
		}
		if e := get(row, "expiry"); e != "" {
			t, err := time.ParseInLocation("2006-01-02", e, loc)
			if err != nil {
				return nil, fmt.Errorf("línea %d: expiry: %w", line, err)
			}
			p.Expiry = &t
		}
		res.Events = append(res.Events, p)
	}
	return res, nil
}

// number acepta coma decimal ("2,50") como la escriben las planillas locales.
func number(s string) (decimal.Decimal, error) {
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
