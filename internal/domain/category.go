package domain

import "strings"

// CategoryAll lists every category.
const CategoryAll = "all"

// categoryStorage maps URL slugs to the form stored on products.
var categoryStorage = map[string]string{
	"dry-fruits":     "dry fruits",
	"premium-spices": "premium spices",
	"gift-boxes":     "gift boxes",
	"spices":         "spices",
	"nuts":           "nuts",
	"seeds":          "seeds",
	"dates":          "dates",
}

// Category is a distinct product category with its URL form.
type Category struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"product_count"`
}

// NormalizeCategory converts a slug or human-readable category into its
// stored form. Unknown values are lowercased and trimmed.
func NormalizeCategory(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if stored, ok := categoryStorage[c]; ok {
		return stored
	}
	return c
}

// CategorySlug converts a stored category into its URL form.
func CategorySlug(c string) string {
	return strings.Join(strings.Fields(strings.ToLower(c)), "-")
}

// NormalizeCategories normalizes every value, dropping empty ones and
// duplicates while keeping order.
func NormalizeCategories(cs []string) []string {
	out := make([]string, 0, len(cs))
	seen := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		n := NormalizeCategory(c)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
