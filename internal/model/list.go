package model

import "time"

// List is a shopping list. The four aggregate fields are computed from
// the current items on every read and are never stored.
type List struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"owner_id"`
	Name        string     `json:"name"`
	ValidAt     *time.Time `json:"valid_at"`
	IsActive    bool       `json:"is_active"`
	TotalValue  float64    `json:"total_value"`
	ItemsQty    int        `json:"items_qty"`
	ProductsQty float64    `json:"products_qty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ActiveAt reports whether the list is active at the given instant.
// A list with no valid_at never expires. Expiry is exclusive: a list
// whose valid_at equals the evaluation instant is no longer active.
func (l *List) ActiveAt(now time.Time) bool {
	if l.ValidAt == nil {
		return true
	}
	return l.ValidAt.After(now)
}

// Item is a quantity of a product on a list. The product reference is
// optional; an item without one contributes zero to the list's total
// value. TotalPrice is computed, never stored.
type Item struct {
	ID         int64     `json:"id"`
	ListID     int64     `json:"list_id"`
	Product    *Product  `json:"product"`
	Quantity   float64   `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
