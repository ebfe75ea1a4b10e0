package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"dispatch-strategy-service/internal/domain"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "orders.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func seedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

const seedJSON = `[
  {
    "order_id": "o-2",
    "address": "customer-south",
    "time_window": "morning",
    "items": [
      {"item_id": "i-3", "name": "crate", "warehouse_id": "wh-east"}
    ]
  },
  {
    "order_id": "o-1",
    "address": "customer-north",
    "time_window": "afternoon",
    "items": [
      {"item_id": "i-1", "name": "pallet", "warehouse_id": "wh-west"},
      {"item_id": "i-2", "name": "drum", "warehouse_id": "wh-east"}
    ]
  },
  {
    "order_id": "o-3",
    "address": "customer-idle",
    "time_window": "whenever",
    "items": []
  }
]`

func TestListOrders(t *testing.T) {
	db := openTestDB(t)
	if err := SeedFromJSON(db, seedFile(t, seedJSON)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := NewSqliteOrderRepository(db)
	orders, err := repo.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("got %d orders, want 3", len(orders))
	}

	// Stable order_id order, not seed-file order.
	if orders[0].ID != "o-1" || orders[1].ID != "o-2" || orders[2].ID != "o-3" {
		t.Fatalf("order ids = [%s %s %s]", orders[0].ID, orders[1].ID, orders[2].ID)
	}

	o1 := orders[0]
	if o1.Address != "customer-north" || o1.Window != domain.WindowAfternoon {
		t.Fatalf("o-1 = %+v", o1)
	}
	if len(o1.Items) != 2 || o1.Items[0].ID != "i-1" || o1.Items[1].WarehouseID != "wh-east" {
		t.Fatalf("o-1 items = %+v", o1.Items)
	}

	if orders[1].Window != domain.WindowMorning {
		t.Fatalf("o-2 window = %q", orders[1].Window)
	}

	// Unknown window labels fall back to "any"; itemless orders stay inactive.
	o3 := orders[2]
	if o3.Window != domain.WindowAny {
		t.Fatalf("o-3 window = %q", o3.Window)
	}
	if o3.Active() {
		t.Fatal("itemless order reported active")
	}
}

func TestSeedFromJSONIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	path := seedFile(t, seedJSON)

	if err := SeedFromJSON(db, path); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedFromJSON(db, path); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	orders, err := NewSqliteOrderRepository(db).ListOrders(context.Background())
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("got %d orders after reseed, want 3", len(orders))
	}
	if len(orders[0].Items) != 2 {
		t.Fatalf("o-1 has %d items after reseed, want 2", len(orders[0].Items))
	}
}

func TestSeedFromJSONRejectsBadRows(t *testing.T) {
	db := openTestDB(t)

	cases := []struct {
		name string
		json string
	}{
		{"missing order id", `[{"order_id": " ", "address": "x", "items": []}]`},
		{"missing address", `[{"order_id": "o-1", "address": "", "items": []}]`},
		{"missing warehouse", `[{"order_id": "o-1", "address": "x", "items": [{"item_id": "i-1", "warehouse_id": ""}]}]`},
		{"not json", `{"order_id"`},
	}
	for _, tc := range cases {
		if err := SeedFromJSON(db, seedFile(t, tc.json)); err == nil {
			t.Errorf("%s: seed accepted", tc.name)
		}
	}
}
