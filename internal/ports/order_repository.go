package ports

import (
	"context"

	"dispatch-strategy-service/internal/domain"
)

// Port: a boundary for retrieving the active order set from a data source.
type OrderRepository interface {
	// Retrieve all orders with their line items, in stable order.
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}
