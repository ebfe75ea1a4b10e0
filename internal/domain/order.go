package domain

import "strings"

// Delivery time-window preference. A soft scheduling hint, not a hard
// constraint: morning stops are visited before the rest of the pool.
type TimeWindow string

const (
	WindowAny       TimeWindow = "any"
	WindowMorning   TimeWindow = "morning"
	WindowAfternoon TimeWindow = "afternoon"
)

// ParseTimeWindow normalizes a raw window string; anything unrecognized
// falls back to WindowAny.
func ParseTimeWindow(s string) TimeWindow {
	switch TimeWindow(strings.ToLower(strings.TrimSpace(s))) {
	case WindowMorning:
		return WindowMorning
	case WindowAfternoon:
		return WindowAfternoon
	default:
		return WindowAny
	}
}

// A single ordered item, sourced from a specific warehouse node.
type LineItem struct {
	ID          string
	Name        string
	WarehouseID string
}

// A customer order: destination node, requested window, and line items.
// Orders are ephemeral simulation inputs; the core never persists or
// mutates them.
type Order struct {
	ID      string
	Address string
	Window  TimeWindow
	Items   []LineItem
}

// Active reports whether the order participates in planning.
func (o *Order) Active() bool {
	return o != nil && len(o.Items) > 0
}

// Warehouses returns the distinct source warehouses of the order's items,
// in first-seen item order.
func (o *Order) Warehouses() []string {
	seen := make(map[string]struct{}, len(o.Items))
	out := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.WarehouseID]; ok {
			continue
		}
		seen[it.WarehouseID] = struct{}{}
		out = append(out, it.WarehouseID)
	}
	return out
}
