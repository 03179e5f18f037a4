package postgres

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id                  TEXT PRIMARY KEY,
		name                TEXT NOT NULL,
		category            TEXT NOT NULL DEFAULT '',
		sub_category        TEXT NOT NULL DEFAULT '',
		buy_price           NUMERIC(14,2) NOT NULL CHECK (buy_price >= 0),
		buy_date            TIMESTAMPTZ NOT NULL,
		sell_price          NUMERIC(14,2),
		sell_date           TIMESTAMPTZ,
		profit              NUMERIC(14,2),
		fee_amount          NUMERIC(14,2),
		payment_type        TEXT NOT NULL DEFAULT '',
		platform_sold       TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL CHECK (status IN ('IN_STOCK','ORDERED','IN_COMPOSITION','SOLD','TRADED')),
		is_defective        BOOLEAN NOT NULL DEFAULT false,
		is_draft            BOOLEAN NOT NULL DEFAULT false,
		specs               JSONB NOT NULL DEFAULT '{}'::jsonb,
		is_pc               BOOLEAN NOT NULL DEFAULT false,
		is_bundle           BOOLEAN NOT NULL DEFAULT false,
		component_ids       TEXT[] NOT NULL DEFAULT '{}',
		parent_container_id TEXT NOT NULL DEFAULT '',
		traded_from_id      TEXT NOT NULL DEFAULT '',
		traded_for_ids      TEXT[] NOT NULL DEFAULT '{}',
		cash_on_top         NUMERIC(14,2),
		notes               TEXT NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS inventory_items_status_idx ON inventory_items (status)`,
	`CREATE INDEX IF NOT EXISTS inventory_items_category_idx ON inventory_items (category, sub_category)`,
	`CREATE INDEX IF NOT EXISTS inventory_items_created_idx ON inventory_items (created_at DESC, id)`,
	`CREATE INDEX IF NOT EXISTS inventory_items_parent_idx ON inventory_items (parent_container_id)
	  WHERE parent_container_id <> ''`,
}

// Migrate crea la tabla e índices si no existen (idempotente).
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
