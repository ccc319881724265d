package domain

import (
	"time"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

// Sort orders accepted by the catalog query.
const (
	SortPriceAsc   = "price-asc"
	SortPriceDesc  = "price-desc"
	SortRatingDesc = "rating-desc"
	SortNewest     = "newest"
	SortPopularity = "popularity"
)

// Product represents a catalog product. Prices are in minor units.
type Product struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Slug          *string    `json:"slug,omitempty"`
	Description   string     `json:"description"`
	Price         int64      `json:"price"`
	OriginalPrice *int64     `json:"original_price,omitempty"`
	ImageURL      string     `json:"image_url"`
	Category      string     `json:"category"`
	Badge         *string    `json:"badge,omitempty"`
	Rating        float64    `json:"rating"`
	IsNew         bool       `json:"is_new"`
	InStock       bool       `json:"in_stock"`
	StockQuantity *int       `json:"stock_quantity,omitempty"`
	Origin        *string    `json:"origin,omitempty"`
	Weight        *string    `json:"weight,omitempty"`
	ShelfLife     *string    `json:"shelf_life,omitempty"`
	Ingredients   *string    `json:"ingredients,omitempty"`
	Nutrition     *Nutrition `json:"nutrition,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Nutrition is the optional per-serving nutrition panel.
type Nutrition struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  *string  `json:"protein,omitempty"`
	Fat      *string  `json:"fat,omitempty"`
	Carbs    *string  `json:"carbs,omitempty"`
	Fiber    *string  `json:"fiber,omitempty"`
}

// DiscountPercent returns the whole-number discount against OriginalPrice,
// or 0 when there is no higher original price.
func (p *Product) DiscountPercent() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice == 0 {
		return 0
	}
	return int((*p.OriginalPrice - p.Price) * 100 / *p.OriginalPrice)
}

// ProductQuery holds the catalog filter, sort and page options. Nil pointers
// and empty strings mean "no filter".
type ProductQuery struct {
	Categories []string
	PriceMin   *int64
	PriceMax   *int64
	MinRating  *float64
	InStock    *bool
	IsNew      *bool
	Origin     string
	Search     string
	Sort       string
	Page       int
	PageSize   int
}

// ProductPage is one page of a catalog query. TotalCount counts every
// matching product regardless of the page.
type ProductPage = pagination.Result[Product]

// ValidSorts returns the accepted sort values.
func ValidSorts() []string {
	return []string{SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNewest, SortPopularity}
}

// IsValidSort reports whether s is empty or one of ValidSorts.
func IsValidSort(s string) bool {
	if s == "" {
		return true
	}
	for _, v := range ValidSorts() {
		if v == s {
			return true
		}
	}
	return false
}
