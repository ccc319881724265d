package domain

import "time"

// WishlistItem is a product saved by a user. Product is nil when it could
// not be loaded.
type WishlistItem struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardCounts are the headline numbers shown on the admin dashboard.
type DashboardCounts struct {
	Products int `json:"products"`
	Users    int `json:"users"`
	Reviews  int `json:"reviews"`
	Carts    int `json:"carts"`
	Orders   int `json:"orders"`
}
