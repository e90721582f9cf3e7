package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnType distingue devoluciones de clientes de devoluciones a proveedor.
type ReturnType string

const (
	ReturnSale      ReturnType = "sale_return"
	ReturnInventory ReturnType = "inventory_return"
)

// Return registro (solo inserción) de una devolución.
type Return struct {
	ID              int64
	SKU             string
	Quantity        int
	Price           decimal.Decimal
	Timestamp       time.Time
	Operator        string
	DeviceID        string
	OriginalSaleID  *int64
	OriginalBatchID *int64
	// Origen del lote al momento de devolverlo al proveedor; el lote queda como return_of_purchase.
	BatchOrigin BatchOrigin
	Status      string
	Type        ReturnType
}

// IsBalanceReturn indica una devolución genérica de cliente, no atada a una venta anulada.
// Son las que cuentan contra el saldo vendido del SKU.
func (r *Return) IsBalanceReturn() bool {
	return r.Type == ReturnSale && r.OriginalSaleID == nil
}
