package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRow fila del documento "inventario actual". El orden de campos es el de la exportación.
type InventoryRow struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Lot           string          `json:"lot"`
	Expiry        string          `json:"expiry"`
	ExpiryStatus  string          `json:"expiry_status"`
	Stock         int             `json:"stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Value         decimal.Decimal `json:"value"`
}

// InventoryReport documento de inventario actual.
type InventoryReport struct {
	Bodega      string          `json:"bodega"`
	Currency    string          `json:"currency"`
	GeneratedAt time.Time       `json:"generated_at"`
	Rows        []InventoryRow  `json:"rows"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// MovementRow fila del historial diario.
type MovementRow struct {
	Timestamp time.Time       `json:"timestamp"`
	Type      string          `json:"type"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Lot       string          `json:"lot"`
	Operator  string          `json:"operator"`
	DeviceID  string          `json:"device_id"`
	Status    string          `json:"status"`
}

// OperatorSummaryRow totales de un operador en el día.
type OperatorSummaryRow struct {
	Operator         string `json:"operator"`
	DeviceID         string `json:"device_id"`
	SaleUnits        int    `json:"sale_units"`
	IngresoEvents    int    `json:"ingreso_events"`
	DevolucionEvents int    `json:"devolucion_events"`
}

// DailyReport historial de movimientos de un día con resumen por operador.
type DailyReport struct {
	Date      string               `json:"date"`
	Bodega    string               `json:"bodega"`
	Currency  string               `json:"currency"`
	Movements []MovementRow        `json:"movements"`
	Operators []OperatorSummaryRow `json:"operators"`
}

// NetSalesRow ventas netas de un SKU.
type NetSalesRow struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
	Net  int    `json:"net"`
}

// SummaryResponse indicadores del tablero.
type SummaryResponse struct {
	Bodega          string          `json:"bodega"`
	Currency        string          `json:"currency"`
	Products        int             `json:"products"`
	ActiveBatches   int             `json:"active_batches"`
	TotalUnits      int             `json:"total_units"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	PotentialProfit decimal.Decimal `json:"potential_profit"`
	BestSeller      *NetSalesRow    `json:"best_seller,omitempty"`
	WorstSeller     *NetSalesRow    `json:"worst_seller,omitempty"`
	Expired         int             `json:"expired"`
	ExpiringSoon    int             `json:"expiring_soon"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// ReplenishmentSuggestion producto bajo el umbral de stock con la cantidad sugerida de pedido.
type ReplenishmentSuggestion struct {
	SKU                 string          `json:"sku"`
	ProductName         string          `json:"product_name"`
	CurrentStock        int             `json:"current_stock"`
	ReorderPoint        int             `json:"reorder_point"`
	IdealStock          int             `json:"ideal_stock"`
	SuggestedOrderQty   int             `json:"suggested_order_qty"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost  decimal.Decimal `json:"estimated_order_cost"`
	GrossMarginPct      decimal.Decimal `json:"gross_margin_pct"`
	NetUnitsSoldLast90D int             `json:"net_units_sold_last_90_days"`
	Priority            int             `json:"priority"`
}
