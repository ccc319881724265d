package domain

import "time"

// RecentlyViewedCapacity is the number of products kept per visitor.
const RecentlyViewedCapacity = 8

// RecentlyViewedProduct is a snapshot of a product taken when it was viewed.
type RecentlyViewedProduct struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Price    int64     `json:"price"`
	ImageURL string    `json:"image_url"`
	Category string    `json:"category"`
	ViewedAt time.Time `json:"viewed_at"`
}

// SnapshotForRecentlyViewed captures p at viewedAt.
func SnapshotForRecentlyViewed(p *Product, viewedAt time.Time) RecentlyViewedProduct {
	return RecentlyViewedProduct{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Category: p.Category,
		ViewedAt: viewedAt,
	}
}

// PushRecentlyViewed returns list with entry at the front, any older entry
// with the same ID removed and the result truncated to capacity. list is
// not modified.
func PushRecentlyViewed(list []RecentlyViewedProduct, entry RecentlyViewedProduct) []RecentlyViewedProduct {
	out := make([]RecentlyViewedProduct, 0, RecentlyViewedCapacity)
	out = append(out, entry)
	for _, p := range list {
		if len(out) == RecentlyViewedCapacity {
			break
		}
		if p.ID == entry.ID {
			continue
		}
		out = append(out, p)
	}
	return out
}
