package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de asiento del libro de movimientos.
type MovementType string

const (
	MovementIngreso              MovementType = "ingreso"
	MovementVenta                MovementType = "venta"
	MovementDevolucionVenta      MovementType = "devolucion_venta"
	MovementDevolucionInventario MovementType = "devolucion_inventario"
	MovementAnulacionVenta       MovementType = "anulacion_venta"
)

// IsDevolucion indica si el movimiento cuenta como devolución en los reportes por operador.
func (t MovementType) IsDevolucion() bool {
	switch t {
	case MovementDevolucionVenta, MovementDevolucionInventario, MovementAnulacionVenta:
		return true
	}
	return false
}

// Movement asiento (solo inserción) del libro de auditoría. Cada cambio de estado escribe exactamente uno.
type Movement struct {
	ID        int64
	EventID   string // agrupa todas las escrituras de un mismo evento
	Type      MovementType
	SKU       string
	Name      string
	Quantity  int
	Price     decimal.Decimal
	Lot       string
	Timestamp time.Time
	Operator  string
	DeviceID  string
	Bodega    string
	ReturnID  *int64
	SaleID    *int64
	BatchID   *int64
}
