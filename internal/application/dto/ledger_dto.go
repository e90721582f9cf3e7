package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductResponse salida de un producto; Stock y AverageCost solo en consultas de catálogo.
type ProductResponse struct {
	SKU                  string           `json:"sku"`
	Name                 string           `json:"name"`
	Category             string           `json:"category"`
	DefaultPurchasePrice decimal.Decimal  `json:"default_purchase_price"`
	DefaultSalePrice     decimal.Decimal  `json:"default_sale_price"`
	Stock                *int             `json:"stock,omitempty"`
	AverageCost          *decimal.Decimal `json:"average_cost,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// CreateProductRequest alta rápida de producto (sin stock).
type CreateProductRequest struct {
	SKU           string           `json:"sku" validate:"required,max=64,sku"`
	Name          string           `json:"name" validate:"required,max=200"`
	Category      string           `json:"category" validate:"omitempty,max=80"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
}

// UpdateProductRequest cambia precios/categoría; el SKU es inmutable.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string          `json:"category" validate:"omitempty,max=80"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID            int64           `json:"id"`
	ProductSKU    string          `json:"product_sku"`
	Lot           string          `json:"lot"`
	Origin        string          `json:"origin"`
	Expiry        *string         `json:"expiry,omitempty"`
	ExpiryStatus  string          `json:"expiry_status,omitempty"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CreatedAt     time.Time       `json:"created_at"`
	Status        string          `json:"status"`
}

// BatchUsageResponse unidades tomadas de un lote por una venta.
type BatchUsageResponse struct {
	BatchID       int64           `json:"batch_id"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          int64                `json:"id"`
	Timestamp   time.Time            `json:"timestamp"`
	SKU         string               `json:"sku"`
	ProductName string               `json:"product_name"`
	Quantity    int                  `json:"quantity"`
	SalePrice   decimal.Decimal      `json:"sale_price"`
	Total       decimal.Decimal      `json:"total"`
	Operator    string               `json:"operator"`
	DeviceID    string               `json:"device_id"`
	Status      string               `json:"status"`
	BatchesUsed []BatchUsageResponse `json:"batches_used"`
}

// ReturnResponse salida de una devolución.
type ReturnResponse struct {
	ID              int64           `json:"id"`
	SKU             string          `json:"sku"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Timestamp       time.Time       `json:"timestamp"`
	Operator        string          `json:"operator"`
	OriginalSaleID  *int64          `json:"original_sale_id,omitempty"`
	OriginalBatchID *int64          `json:"original_batch_id,omitempty"`
	BatchOrigin     string          `json:"batch_origin,omitempty"`
	Status          string          `json:"status"`
	Type            string          `json:"type"`
}

// MovementResponse salida de un asiento del libro de movimientos.
type MovementResponse struct {
	ID        int64           `json:"id"`
	EventID   string          `json:"event_id"`
	Type      string          `json:"type"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Lot       string          `json:"lot"`
	Timestamp time.Time       `json:"timestamp"`
	Operator  string          `json:"operator"`
	DeviceID  string          `json:"device_id"`
	Bodega    string          `json:"bodega"`
	ReturnID  *int64          `json:"return_id,omitempty"`
	SaleID    *int64          `json:"sale_id,omitempty"`
	BatchID   *int64          `json:"batch_id,omitempty"`
}

// MovementFilter filtros de GET /api/movements.
type MovementFilter struct {
	SKU      string
	Operator string
	From     time.Time
	To       time.Time
}

// MovementListResponse página del libro de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
