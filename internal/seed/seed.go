// Package seed holds the bulk product sets loaded through the admin API.
package seed

import (
	"sort"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/slug"
)

// Set names.
const (
	SetSample  = "sample"
	SetCurated = "curated"
)

// item is the authored part of a product. Everything else is derived.
type item struct {
	name, category, description string
	price, originalPrice        int64
	badge, origin, weight       string
	shelfLife, ingredients      string
	isNew, inStock              bool
	stock                       int
	calories                    float64
	protein, fat, carbs, fiber  string
}

var sets = map[string][]item{
	SetSample:  sampleItems,
	SetCurated: curatedItems,
}

// Names returns the available set names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Products returns fresh product values for the named set. The second
// result is false for an unknown set. Rating and IDs are left zero.
func Products(set string) ([]domain.Product, bool) {
	items, ok := sets[set]
	if !ok {
		return nil, false
	}
	out := make([]domain.Product, len(items))
	for i, it := range items {
		out[i] = it.product()
	}
	return out, true
}

func (it item) product() domain.Product {
	s := slug.Generate(it.name)
	p := domain.Product{
		Name:        it.name,
		Slug:        &s,
		Description: it.description,
		Price:       it.price,
		ImageURL:    "/images/products/" + s + ".jpg",
		Category:    domain.NormalizeCategory(it.category),
		IsNew:       it.isNew,
		InStock:     it.inStock,
		Origin:      optional(it.origin),
		Weight:      optional(it.weight),
		ShelfLife:   optional(it.shelfLife),
		Ingredients: optional(it.ingredients),
		Badge:       optional(it.badge),
	}
	if it.originalPrice > 0 {
		op := it.originalPrice
		p.OriginalPrice = &op
	}
	if it.inStock {
		stock := it.stock
		p.StockQuantity = &stock
	}
	if it.calories > 0 {
		cal := it.calories
		p.Nutrition = &domain.Nutrition{
			Calories: &cal,
			Protein:  optional(it.protein),
			Fat:      optional(it.fat),
			Carbs:    optional(it.carbs),
			Fiber:    optional(it.fiber),
		}
	}
	return p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
