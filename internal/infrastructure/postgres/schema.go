package postgres

import (
	"context"
	"fmt"
)

// schema DDL idempotente del libro de bodega.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		sku                    TEXT PRIMARY KEY,
		name                   TEXT NOT NULL,
		category               TEXT NOT NULL DEFAULT 'General',
		default_purchase_price NUMERIC(14,4) NOT NULL DEFAULT 0,
		default_sale_price     NUMERIC(14,4) NOT NULL DEFAULT 0,
		created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at             TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS batches (
		id             BIGSERIAL PRIMARY KEY,
		product_sku    TEXT NOT NULL REFERENCES products(sku),
		lot            TEXT NOT NULL,
		origin         TEXT NOT NULL,
		expiry         DATE,
		quantity       INTEGER NOT NULL CHECK (quantity >= 0),
		purchase_price NUMERIC(14,4) NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL,
		status         TEXT NOT NULL DEFAULT 'active'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_batches_fifo ON batches (product_sku, created_at, id)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id           BIGSERIAL PRIMARY KEY,
		ts           TIMESTAMPTZ NOT NULL,
		sku          TEXT NOT NULL REFERENCES products(sku),
		product_name TEXT NOT NULL,
		quantity     INTEGER NOT NULL CHECK (quantity > 0),
		sale_price   NUMERIC(14,4) NOT NULL,
		total        NUMERIC(14,4) NOT NULL,
		operator     TEXT NOT NULL DEFAULT '',
		device_id    TEXT NOT NULL DEFAULT '',
		bodega       TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'completed',
		batches_used JSONB NOT NULL DEFAULT '[]'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_sku ON sales (sku, status)`,
	`CREATE TABLE IF NOT EXISTS returns (
		id                BIGSERIAL PRIMARY KEY,
		sku               TEXT NOT NULL,
		quantity          INTEGER NOT NULL,
		price             NUMERIC(14,4) NOT NULL DEFAULT 0,
		ts                TIMESTAMPTZ NOT NULL,
		operator          TEXT NOT NULL DEFAULT '',
		device_id         TEXT NOT NULL DEFAULT '',
		original_sale_id  BIGINT REFERENCES sales(id),
		original_batch_id BIGINT REFERENCES batches(id),
		batch_origin      TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL,
		type              TEXT NOT NULL
	)`,
	`ALTER TABLE returns ADD COLUMN IF NOT EXISTS batch_origin TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS idx_returns_sku ON returns (sku, type)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id        BIGSERIAL PRIMARY KEY,
		event_id  UUID NOT NULL,
		type      TEXT NOT NULL,
		sku       TEXT NOT NULL,
		name      TEXT NOT NULL,
		quantity  INTEGER NOT NULL,
		price     NUMERIC(14,4) NOT NULL DEFAULT 0,
		lot       TEXT NOT NULL DEFAULT '',
		ts        TIMESTAMPTZ NOT NULL,
		operator  TEXT NOT NULL DEFAULT '',
		device_id TEXT NOT NULL DEFAULT '',
		bodega    TEXT NOT NULL DEFAULT '',
		return_id BIGINT,
		sale_id   BIGINT,
		batch_id  BIGINT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_ts ON movements (ts, id)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value JSONB NOT NULL
	)`,
}

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
