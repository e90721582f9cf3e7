package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EventKind tipo de evento entrante (escaneo simulado o formulario manual).
type EventKind string

const (
	EventIngreso    EventKind = "ingreso"
	EventVenta      EventKind = "venta"
	EventDevolucion EventKind = "devolucion"
	EventAnulacion  EventKind = "anulacion"             // UndoSale
	EventDevInv     EventKind = "devolucion_inventario" // ReturnBatch
)

// IngresoSource punto de origen de un ingreso; define el prefijo del lote generado.
type IngresoSource string

const (
	SourceManual  IngresoSource = "manual"
	SourceInitial IngresoSource = "initial"
	SourceScan    IngresoSource = "scan"
)

// Session capacidad explícita del dispositivo conectado; el motor la exige en cada entrada.
type Session struct {
	Operator  string
	DeviceID  string
	Bodega    string
	Connected bool
}

// EventPayload evento candidato. Quantity se normaliza a max(1, floor(q)).
type EventPayload struct {
	Event         EventKind
	SKU           string
	Barcode       string
	Name          string
	Quantity      decimal.Decimal
	PurchasePrice *decimal.Decimal
	SalePrice     *decimal.Decimal
	Lot           string
	Expiry        *time.Time
	Category      *string
	Source        IngresoSource
	Operator      string
	DeviceID      string
	Bodega        string
	Timestamp     time.Time
}

// Identifier devuelve el SKU, o el código de barras si el SKU viene vacío o en blanco.
func (p *EventPayload) Identifier() string {
	if s := strings.TrimSpace(p.SKU); s != "" {
		return s
	}
	return strings.TrimSpace(p.Barcode)
}

// AppliedEvent resultado de un evento aceptado y persistido.
type AppliedEvent struct {
	EventID        string
	Kind           EventKind
	Product        Product
	ProductCreated bool
	Movement       Movement
	Sale           *Sale
	Return         *Return
	Batch          *Batch  // lote creado o modificado (ingreso, devolución, anulación, devolución a proveedor)
	ConsumedBatch  []Batch // lotes decrementados por una venta, en orden FIFO
}
