package dto

import (
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// DateLayout formato de fechas de vencimiento y de reportes diarios.
const DateLayout = "2006-01-02"

// FromProduct mapea un producto.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		SKU:                  p.SKU,
		Name:                 p.Name,
		Category:             p.Category,
		DefaultPurchasePrice: p.DefaultPurchasePrice,
		DefaultSalePrice:     p.DefaultSalePrice,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// FromBatch mapea un lote (sin estado de vencimiento; lo completa quien conoce la fecha actual).
func FromBatch(b *entity.Batch) BatchResponse {
	out := BatchResponse{
		ID:            b.ID,
		ProductSKU:    b.ProductSKU,
		Lot:           b.Lot,
		Origin:        string(b.Origin),
		Quantity:      b.Quantity,
		PurchasePrice: b.PurchasePrice,
		CreatedAt:     b.CreatedAt,
		Status:        string(b.Status),
	}
	if b.Expiry != nil {
		s := b.Expiry.Format(DateLayout)
		out.Expiry = &s
	}
	return out
}

// FromSale mapea una venta con su traza de lotes.
func FromSale(s *entity.Sale) SaleResponse {
	used := make([]BatchUsageResponse, 0, len(s.BatchesUsed))
	for _, u := range s.BatchesUsed {
		used = append(used, BatchUsageResponse{BatchID: u.BatchID, Quantity: u.Quantity, PurchasePrice: u.PurchasePrice})
	}
	return SaleResponse{
		ID:          s.ID,
		Timestamp:   s.Timestamp,
		SKU:         s.SKU,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		SalePrice:   s.SalePrice,
		Total:       s.Total,
		Operator:    s.Operator,
		DeviceID:    s.DeviceID,
		Status:      string(s.Status),
		BatchesUsed: used,
	}
}

// FromReturn mapea una devolución.
func FromReturn(r *entity.Return) ReturnResponse {
	return ReturnResponse{
		ID:              r.ID,
		SKU:             r.SKU,
		Quantity:        r.Quantity,
		Price:           r.Price,
		Timestamp:       r.Timestamp,
		Operator:        r.Operator,
		OriginalSaleID:  r.OriginalSaleID,
		OriginalBatchID: r.OriginalBatchID,
		BatchOrigin:     string(r.BatchOrigin),
		Status:          r.Status,
		Type:            string(r.Type),
	}
}

// FromMovement mapea un movimiento.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		EventID:   m.EventID,
		Type:      string(m.Type),
		SKU:       m.SKU,
		Name:      m.Name,
		Quantity:  m.Quantity,
		Price:     m.Price,
		Lot:       m.Lot,
		Timestamp: m.Timestamp,
		Operator:  m.Operator,
		DeviceID:  m.DeviceID,
		Bodega:    m.Bodega,
		ReturnID:  m.ReturnID,
		SaleID:    m.SaleID,
		BatchID:   m.BatchID,
	}
}

// FromAppliedEvent mapea el resultado del motor.
func FromAppliedEvent(e *entity.AppliedEvent) AppliedEventResponse {
	out := AppliedEventResponse{
		EventID:        e.EventID,
		Kind:           string(e.Kind),
		Product:        FromProduct(&e.Product),
		ProductCreated: e.ProductCreated,
		Movement:       FromMovement(&e.Movement),
	}
	if e.Sale != nil {
		s := FromSale(e.Sale)
		out.Sale = &s
	}
	if e.Return != nil {
		r := FromReturn(e.Return)
		out.Return = &r
	}
	if e.Batch != nil {
		b := FromBatch(e.Batch)
		out.Batch = &b
	}
	for i := range e.ConsumedBatch {
		out.ConsumedBatches = append(out.ConsumedBatches, FromBatch(&e.ConsumedBatch[i]))
	}
	return out
}
