package domain

import "time"

// Cart is the single mutable item collection a user owns. Checkout drains
// its lines but never deletes the cart row itself.
type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	Lines     []CartLine `json:"lines"`
}

type CartLine struct {
	ID        int64     `json:"id"`
	CartID    int64     `json:"cartId"`
	ItemID    int64     `json:"itemId"`
	Quantity  int       `json:"quantity"`
	Item      *Item     `json:"item,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
