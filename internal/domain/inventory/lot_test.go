package inventory_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/inventory"
)

func TestIngresoLot(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "LOTE-7", inventory.IngresoLot("  LOTE-7 ", entity.SourceScan, ts))
	assert.True(t, strings.HasPrefix(inventory.IngresoLot("", entity.SourceInitial, ts), "INIT-"))
	assert.True(t, strings.HasPrefix(inventory.IngresoLot("", entity.SourceScan, ts), "AUTO-"))
	assert.True(t, strings.HasPrefix(inventory.IngresoLot("", entity.SourceManual, ts), "L-20240501-"))
}

func TestEtiquetasDeDevolucion(t *testing.T) {
	assert.Equal(t, "DEV-SALE-3", inventory.ReturnOfSaleLot(3))
	assert.Equal(t, "UNDO-4", inventory.UndoLot(4))
	assert.Equal(t, "DEV-INV-5-L1", inventory.ReturnOfPurchaseLot(5, "L1"))
	assert.Equal(t, "DEV-INV-5", inventory.ReturnOfPurchaseLot(5, ""))
}

func TestOriginFromLegacyLot(t *testing.T) {
	cases := map[string]entity.BatchOrigin{
		"DEV-SALE-12":     entity.OriginReturnOfSale,
		"dev-inv-3-L1":    entity.OriginReturnOfPurchase,
		"UNDO-8":          entity.OriginUndoOfSale,
		"INIT-1714557600": entity.OriginIngreso,
		"AUTO-1714557600": entity.OriginIngreso,
		"DEV-77":          entity.OriginReturnOfPurchase,
		"LOTE-A":          entity.OriginIngreso,
		"":                entity.OriginIngreso,
	}
	for label, want := range cases {
		assert.Equal(t, want, inventory.OriginFromLegacyLot(label), label)
	}
}
