package database

import (
	"fmt"
	"log/slog"
)

// Schema creates the tables of the order store. It is idempotent.
const Schema = `
	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		reference VARCHAR(255) UNIQUE NOT NULL,
		status VARCHAR(50) NOT NULL,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		postal_code VARCHAR(32) NOT NULL,
		subtotal INTEGER NOT NULL,
		tax INTEGER NOT NULL,
		total INTEGER NOT NULL,
		currency VARCHAR(3) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS order_items (
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		name VARCHAR(255) NOT NULL,
		price INTEGER NOT NULL,
		PRIMARY KEY (order_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_orders_reference ON orders(reference);
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
`

// RunMigrations creates the necessary database tables
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := DB.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create order tables: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}
