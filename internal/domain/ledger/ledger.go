// Package ledger contiene consultas puras sobre el libro de movimientos: filtros por fecha,
// SKU y operador, y agregaciones para el reporte diario y el ranking de ventas netas.
// Los volúmenes de una bodega local no justifican índices: todo es recorrido lineal.
package ledger

import (
	"sort"
	"time"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// ByDateRange movimientos con from <= timestamp < to. Un límite cero no filtra.
func ByDateRange(movs []*entity.Movement, from, to time.Time) []*entity.Movement {
	out := make([]*entity.Movement, 0, len(movs))
	for _, m := range movs {
		if !from.IsZero() && m.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && !m.Timestamp.Before(to) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// BySKU movimientos de un SKU.
func BySKU(movs []*entity.Movement, sku string) []*entity.Movement {
	out := make([]*entity.Movement, 0)
	for _, m := range movs {
		if m.SKU == sku {
			out = append(out, m)
		}
	}
	return out
}

// ByOperator movimientos registrados por un operador.
func ByOperator(movs []*entity.Movement, operator string) []*entity.Movement {
	out := make([]*entity.Movement, 0)
	for _, m := range movs {
		if m.Operator == operator {
			out = append(out, m)
		}
	}
	return out
}

// Day devuelve [00:00, 00:00 del día siguiente) de day en su zona horaria.
func Day(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// OperatorSummary totales de un operador (y su dispositivo) en el período.
type OperatorSummary struct {
	Operator         string
	DeviceID         string
	SaleUnits        int // unidades vendidas
	IngresoEvents    int // cantidad de ingresos
	DevolucionEvents int // devoluciones y anulaciones
}

// SummarizeByOperator agrega por (operador, dispositivo) en orden de primera aparición.
func SummarizeByOperator(movs []*entity.Movement) []OperatorSummary {
	type key struct{ op, dev string }
	idx := make(map[key]int)
	out := make([]OperatorSummary, 0)
	for _, m := range movs {
		k := key{m.Operator, m.DeviceID}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, OperatorSummary{Operator: m.Operator, DeviceID: m.DeviceID})
		}
		switch {
		case m.Type == entity.MovementVenta:
			out[i].SaleUnits += m.Quantity
		case m.Type == entity.MovementIngreso:
			out[i].IngresoEvents++
		case m.Type.IsDevolucion():
			out[i].DevolucionEvents++
		}
	}
	return out
}

// NetSales ventas netas de un SKU: unidades vendidas menos unidades devueltas por clientes.
type NetSales struct {
	SKU  string
	Name string
	Net  int
}

// NetSalesRanking ordena los SKUs con ventas o devoluciones por ventas netas descendentes.
// El orden es estable: en empate queda primero el SKU que apareció antes en movs.
func NetSalesRanking(movs []*entity.Movement) []NetSales {
	idx := make(map[string]int)
	out := make([]NetSales, 0)
	for _, m := range movs {
		var delta int
		switch m.Type {
		case entity.MovementVenta:
			delta = m.Quantity
		case entity.MovementDevolucionVenta, entity.MovementAnulacionVenta:
			delta = -m.Quantity
		default:
			continue
		}
		i, ok := idx[m.SKU]
		if !ok {
			i = len(out)
			idx[m.SKU] = i
			out = append(out, NetSales{SKU: m.SKU, Name: m.Name})
		}
		out[i].Net += delta
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Net > out[j].Net })
	return out
}

// BestAndWorst primer y último elemento del ranking; nil si está vacío.
func BestAndWorst(ranking []NetSales) (best, worst *NetSales) {
	if len(ranking) == 0 {
		return nil, nil
	}
	b, w := ranking[0], ranking[len(ranking)-1]
	return &b, &w
}
