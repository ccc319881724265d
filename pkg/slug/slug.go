package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Product names in the catalog use a handful of Latin accents ("Medjool Dates – Jumbo",
// "Piment d’Espelette") that should fold to plain ASCII in URLs.
var foldAccents = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "î", "i", "ï", "i",
	"ó", "o", "ô", "o", "ö", "o",
	"ú", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
	"&", " and ",
	"’", "", "'", "",
)

// Generate creates a URL-friendly slug from a product or category name.
//
//	"Kashmiri Saffron (Premium Grade)" → "kashmiri-saffron-premium-grade"
//	"Dry Fruits"                       → "dry-fruits"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = foldAccents.Replace(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ToWords reverses a slug into a space separated candidate name: "dry-fruits" → "dry fruits".
func ToWords(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "-", " ")), " ")
}
