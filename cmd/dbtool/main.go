package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"dispatch-strategy-service/internal/adapters/repositories"
	"dispatch-strategy-service/internal/config"
	"dispatch-strategy-service/internal/domain"
	"dispatch-strategy-service/internal/platform/db"
)

// dbtool prepares a shared Postgres instance with the order schema and
// seed data. Local runs use the embedded SQLite path in cmd/server instead.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/orders.json")

	log.Println("Initializing database schema...")
	if err := initSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := seed(conn, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func initSchema(conn *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			address TEXT NOT NULL,
			time_window TEXT NOT NULL DEFAULT 'any'
		);`,
		`CREATE TABLE IF NOT EXISTS order_items (
			item_id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL REFERENCES orders(order_id),
			name TEXT NOT NULL,
			warehouse_id TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id
		ON order_items(order_id);`,
	}
	for i, stmt := range statements {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("exec statement #%d: %w", i+1, err)
		}
	}
	return nil
}

func seed(conn *sql.DB, seedPath string) error {
	data, err := repositories.ReadSeeds(seedPath)
	if err != nil {
		return err
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	orderQuery := `
	INSERT INTO orders (order_id, address, time_window)
	VALUES ($1, $2, $3)
	ON CONFLICT (order_id) DO UPDATE
	SET address = EXCLUDED.address, time_window = EXCLUDED.time_window;
	`
	itemQuery := `
	INSERT INTO order_items (item_id, order_id, name, warehouse_id)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (item_id) DO UPDATE
	SET order_id = EXCLUDED.order_id, name = EXCLUDED.name, warehouse_id = EXCLUDED.warehouse_id;
	`

	for _, o := range data {
		window := string(domain.ParseTimeWindow(o.Window))
		if _, err := tx.Exec(orderQuery, o.OrderID, strings.TrimSpace(o.Address), window); err != nil {
			return fmt.Errorf("insert order_id=%q: %w", o.OrderID, err)
		}
		for _, item := range o.Items {
			if _, err := tx.Exec(itemQuery, item.ItemID, o.OrderID, item.Name, item.WarehouseID); err != nil {
				return fmt.Errorf("insert item_id=%q: %w", item.ItemID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
