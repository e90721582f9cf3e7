package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// Prefijos heredados de las etiquetas de lote. El orden importa: los más largos primero,
// para que DEV-SALE- y DEV-INV- no caigan en el genérico DEV-.
var legacyPrefixes = []struct {
	prefix string
	origin entity.BatchOrigin
}{
	{"DEV-SALE-", entity.OriginReturnOfSale},
	{"DEV-INV-", entity.OriginReturnOfPurchase},
	{"UNDO-", entity.OriginUndoOfSale},
	{"INIT-", entity.OriginIngreso},
	{"AUTO-", entity.OriginIngreso},
	{"DEV-", entity.OriginReturnOfPurchase},
}

// IngresoLot devuelve la etiqueta para un ingreso: la indicada, o una generada según el origen.
func IngresoLot(lot string, source entity.IngresoSource, ts time.Time) string {
	if lot = strings.TrimSpace(lot); lot != "" {
		return lot
	}
	switch source {
	case entity.SourceInitial:
		return fmt.Sprintf("INIT-%d", ts.UnixMilli())
	case entity.SourceScan:
		return fmt.Sprintf("AUTO-%d", ts.UnixMilli())
	default:
		return fmt.Sprintf("L-%s-%d", ts.Format("20060102"), ts.UnixMilli())
	}
}

// ReturnOfSaleLot etiqueta del lote creado por una devolución genérica.
func ReturnOfSaleLot(returnID int64) string {
	return fmt.Sprintf("DEV-SALE-%d", returnID)
}

// UndoLot etiqueta del lote compensatorio de una venta anulada.
func UndoLot(returnID int64) string {
	return fmt.Sprintf("UNDO-%d", returnID)
}

// ReturnOfPurchaseLot reetiqueta un lote devuelto al proveedor conservando la etiqueta original.
func ReturnOfPurchaseLot(returnID int64, previous string) string {
	if previous == "" {
		return fmt.Sprintf("DEV-INV-%d", returnID)
	}
	return fmt.Sprintf("DEV-INV-%d-%s", returnID, previous)
}

// OriginFromLegacyLot clasifica una etiqueta con el esquema de prefijos heredado
// (importación de datos antiguos). Etiquetas sin prefijo conocido son ingresos.
func OriginFromLegacyLot(label string) entity.BatchOrigin {
	upper := strings.ToUpper(strings.TrimSpace(label))
	for _, p := range legacyPrefixes {
		if strings.HasPrefix(upper, p.prefix) {
			return p.origin
		}
	}
	return entity.OriginIngreso
}
