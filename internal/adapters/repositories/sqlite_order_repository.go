package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dispatch-strategy-service/internal/domain"
)

// SQLite-backed implementation of the OrderRepository port.
type SqliteOrderRepository struct{ DB *sql.DB }

func NewSqliteOrderRepository(db *sql.DB) *SqliteOrderRepository {
	return &SqliteOrderRepository{DB: db}
}

// Return all orders with their line items, in stable order_id order.
func (s *SqliteOrderRepository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite order repository: DB is nil")
	}

	ordersQuery := `
	SELECT
		order_id,
		address,
		time_window
	FROM orders
	ORDER BY order_id;
	`
	rows, err := s.DB.QueryContext(ctx, ordersQuery)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 64)
	byID := make(map[string]*domain.Order, 64)
	for rows.Next() {
		var id, address, window string
		if err := rows.Scan(&id, &address, &window); err != nil {
			return nil, fmt.Errorf("list orders: scan order row: %w", err)
		}
		o := &domain.Order{
			ID:      id,
			Address: address,
			Window:  domain.ParseTimeWindow(window),
		}
		orders = append(orders, o)
		byID[id] = o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: order row iteration: %w", err)
	}

	itemsQuery := `
	SELECT
		item_id,
		order_id,
		name,
		warehouse_id
	FROM order_items
	ORDER BY order_id, item_id;
	`
	itemRows, err := s.DB.QueryContext(ctx, itemsQuery)
	if err != nil {
		return nil, fmt.Errorf("list orders: query order_items table: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var itemID, orderID, name, warehouseID string
		if err := itemRows.Scan(&itemID, &orderID, &name, &warehouseID); err != nil {
			return nil, fmt.Errorf("list orders: scan item row: %w", err)
		}
		o, ok := byID[orderID]
		if !ok {
			return nil, fmt.Errorf("list orders: item %q references missing order %q", itemID, orderID)
		}
		o.Items = append(o.Items, domain.LineItem{
			ID:          itemID,
			Name:        name,
			WarehouseID: warehouseID,
		})
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: item row iteration: %w", err)
	}

	return orders, nil
}
