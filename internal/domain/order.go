package domain

import "time"

// OrderStatusPending is the status every new order is created with.
const OrderStatusPending = "pending"

// Order is an append-only record of a finalized purchase. Lines carry the
// item price captured at checkout, decoupled from later catalog changes.
type Order struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"userId"`
	Status     string      `json:"status"`
	TotalPrice float64     `json:"totalPrice"`
	CreatedAt  time.Time   `json:"createdAt"`
	Lines      []OrderLine `json:"lines"`
}

type OrderLine struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	ItemID    int64     `json:"itemId"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Item      *Item     `json:"item,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
