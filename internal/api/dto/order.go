package dto

type LineItemResponse struct {
	ItemID      string `json:"item_id"`
	Name        string `json:"name"`
	WarehouseID string `json:"warehouse_id"`
}

type OrderResponse struct {
	OrderID    string             `json:"order_id"`
	Address    string             `json:"address"`
	TimeWindow string             `json:"time_window"`
	Active     bool               `json:"active"`
	Items      []LineItemResponse `json:"items"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}
