package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"dispatch-strategy-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		time_window TEXT NOT NULL DEFAULT 'any'
	);
	`

	createOrderItemsQuery := `
	CREATE TABLE IF NOT EXISTS order_items (
		item_id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(order_id),
		name TEXT NOT NULL,
		warehouse_id TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_order_items_order_id
	ON order_items(order_id);
	`

	statements := []string{
		createOrdersQuery,
		createOrderItemsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type OrderSeed struct {
	OrderID string     `json:"order_id"`
	Address string     `json:"address"`
	Window  string     `json:"time_window"`
	Items   []ItemSeed `json:"items"`
}

type ItemSeed struct {
	ItemID      string `json:"item_id"`
	Name        string `json:"name"`
	WarehouseID string `json:"warehouse_id"`
}

// ReadSeeds parses and validates an order seed file. Shared by the SQLite
// startup path and the Postgres dbtool.
func ReadSeeds(jsonPath string) ([]OrderSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed orders: read %q: %w", jsonPath, err)
	}

	var data []OrderSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed orders: parse json: %w", err)
	}

	for i, o := range data {
		if strings.TrimSpace(o.OrderID) == "" {
			return nil, fmt.Errorf("seed orders: empty order_id at index %d", i+1)
		}
		if strings.TrimSpace(o.Address) == "" {
			return nil, fmt.Errorf("seed orders: order %q: address cannot be empty", o.OrderID)
		}
		for j, item := range o.Items {
			if strings.TrimSpace(item.ItemID) == "" {
				return nil, fmt.Errorf("seed orders: order %q: empty item_id at index %d", o.OrderID, j+1)
			}
			if strings.TrimSpace(item.WarehouseID) == "" {
				return nil, fmt.Errorf("seed orders: order %q item %q: warehouse_id cannot be empty", o.OrderID, item.ItemID)
			}
		}
	}
	return data, nil
}

// Populate the database with order data from a JSON file. Existing rows
// with the same IDs are replaced, so reseeding is idempotent.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	data, err := ReadSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed orders: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	orderStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO orders (
		order_id,
		address,
		time_window
	)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed orders: prepare order insert: %w", err)
	}
	defer orderStmt.Close()

	itemStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO order_items (
		item_id,
		order_id,
		name,
		warehouse_id
	)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed orders: prepare item insert: %w", err)
	}
	defer itemStmt.Close()

	for _, o := range data {
		window := string(domain.ParseTimeWindow(o.Window))
		if _, err := orderStmt.Exec(o.OrderID, strings.TrimSpace(o.Address), window); err != nil {
			return fmt.Errorf("seed orders: insert order_id=%q: %w", o.OrderID, err)
		}
		for _, item := range o.Items {
			if _, err := itemStmt.Exec(item.ItemID, o.OrderID, item.Name, item.WarehouseID); err != nil {
				return fmt.Errorf("seed orders: insert item_id=%q: %w", item.ItemID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed orders: commit tx: %w", err)
	}

	return nil
}
