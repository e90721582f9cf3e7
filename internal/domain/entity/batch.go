package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchOrigin procedencia de un lote. Reemplaza la clasificación por prefijo del código de lote.
type BatchOrigin string

const (
	OriginIngreso          BatchOrigin = "ingreso"            // entrada normal de mercadería
	OriginReturnOfSale     BatchOrigin = "return_of_sale"     // devolución genérica de cliente
	OriginUndoOfSale       BatchOrigin = "undo_of_sale"       // anulación de una venta puntual
	OriginReturnOfPurchase BatchOrigin = "return_of_purchase" // lote devuelto al proveedor
)

// Valid indica si o es una procedencia conocida.
func (o BatchOrigin) Valid() bool {
	switch o {
	case OriginIngreso, OriginReturnOfSale, OriginUndoOfSale, OriginReturnOfPurchase:
		return true
	}
	return false
}

// BatchStatus estado del lote.
type BatchStatus string

const (
	BatchActive   BatchStatus = "active"
	BatchReturned BatchStatus = "returned"
)

// Batch es el remanente de una entrada de stock, con su propio costo y vencimiento.
type Batch struct {
	ID            int64
	ProductSKU    string
	Lot           string // etiqueta opaca para mostrar/exportar
	Origin        BatchOrigin
	Expiry        *time.Time
	Quantity      int
	PurchasePrice decimal.Decimal
	CreatedAt     time.Time
	Status        BatchStatus
}

// IsReturned indica si el lote fue devuelto al proveedor (no cuenta como stock).
func (b *Batch) IsReturned() bool {
	return b.Status == BatchReturned || b.Origin == OriginReturnOfPurchase
}

// Sellable indica si el lote puede consumirse en una venta.
func (b *Batch) Sellable() bool {
	return !b.IsReturned() && b.Quantity > 0
}
