package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta. Las ventas nunca se borran: se anulan.
type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

// BatchUsage unidades tomadas de un lote por una venta (traza FIFO).
type BatchUsage struct {
	BatchID       int64           `json:"batchId"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

// Sale venta registrada junto con los lotes que consumió.
type Sale struct {
	ID          int64
	Timestamp   time.Time
	SKU         string
	ProductName string
	Quantity    int
	SalePrice   decimal.Decimal
	Total       decimal.Decimal
	Operator    string
	DeviceID    string
	Bodega      string
	Status      SaleStatus
	BatchesUsed []BatchUsage
}

// CostOfGoods costo de lo vendido según los lotes consumidos.
func (s *Sale) CostOfGoods() decimal.Decimal {
	total := decimal.Zero
	for _, u := range s.BatchesUsed {
		total = total.Add(u.PurchasePrice.Mul(decimal.NewFromInt(int64(u.Quantity))))
	}
	return total
}
