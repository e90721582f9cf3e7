package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// EventRequest body para POST /api/events (escaneo simulado o formulario manual).
// quantity se normaliza a max(1, floor(q)); no se rechaza.
type EventRequest struct {
	Event         string           `json:"event" validate:"required,oneof=ingreso venta devolucion"`
	SKU           string           `json:"sku" validate:"omitempty,max=64,sku"`
	Barcode       string           `json:"barcode" validate:"omitempty,max=64"`
	Name          string           `json:"name" validate:"omitempty,max=200"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	Lot           string           `json:"lot,omitempty" validate:"omitempty,max=80"`
	Expiry        string           `json:"expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Category      *string          `json:"category,omitempty"`
	Source        string           `json:"source,omitempty" validate:"omitempty,oneof=manual initial scan"`
	Operator      string           `json:"operator,omitempty"`
	DeviceID      string           `json:"device_id,omitempty"`
	Bodega        string           `json:"bodega,omitempty"`
	Timestamp     *time.Time       `json:"timestamp,omitempty"`
}

// AppliedEventResponse salida de un evento aceptado.
type AppliedEventResponse struct {
	EventID         string           `json:"event_id"`
	Kind            string           `json:"kind"`
	Product         ProductResponse  `json:"product"`
	ProductCreated  bool             `json:"product_created"`
	Movement        MovementResponse `json:"movement"`
	Sale            *SaleResponse    `json:"sale,omitempty"`
	Return          *ReturnResponse  `json:"return,omitempty"`
	Batch           *BatchResponse   `json:"batch,omitempty"`
	ConsumedBatches []BatchResponse  `json:"consumed_batches,omitempty"`
}

// ToPayload convierte el body en el evento del motor. La fecha de vencimiento se interpreta en loc.
func (r EventRequest) ToPayload(loc *time.Location) (entity.EventPayload, error) {
	p := entity.EventPayload{
		Event:         entity.EventKind(strings.ToLower(strings.TrimSpace(r.Event))),
		SKU:           strings.TrimSpace(r.SKU),
		Barcode:       strings.TrimSpace(r.Barcode),
		Name:          r.Name,
		Quantity:      r.Quantity,
		PurchasePrice: r.PurchasePrice,
		SalePrice:     r.SalePrice,
		Lot:           strings.TrimSpace(r.Lot),
		Category:      r.Category,
		Source:        entity.IngresoSource(r.Source),
		Operator:      r.Operator,
		DeviceID:      r.DeviceID,
		Bodega:        r.Bodega,
	}
	if p.Source == "" {
		p.Source = entity.SourceManual
	}
	if r.Expiry != "" {
		t, err := time.ParseInLocation(DateLayout, r.Expiry, loc)
		if err != nil {
			return entity.EventPayload{}, fmt.Errorf("%w: expiry debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		p.Expiry = &t
	}
	if r.Timestamp != nil {
		p.Timestamp = *r.Timestamp
	}
	return p, nil
}
