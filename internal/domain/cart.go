package domain

import "time"

// Cart is a user's cart. Each user has at most one.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem references a product with a quantity. Product is nil when the
// referenced product could not be loaded.
type CartItem struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cart_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LineTotal is price × quantity, or 0 for an unresolved product.
func (i CartItem) LineTotal() int64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price * int64(i.Quantity)
}

// CartTotal sums the line totals of items.
func CartTotal(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// CartCount sums the quantities of items.
func CartCount(items []CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
