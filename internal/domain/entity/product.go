package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la bodega. SKU es la identidad inmutable.
type Product struct {
	SKU                  string
	Name                 string
	Category             string
	DefaultPurchasePrice decimal.Decimal
	DefaultSalePrice     decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
