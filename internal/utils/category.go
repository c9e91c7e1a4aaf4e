package utils

import "strings"

// Catalog categories. "naked" bikes share the sport listing filter; every
// other category stands on its own.
var categories = map[string]string{
	"cruiser":   "cruiser",
	"sport":     "sport",
	"naked":     "sport",
	"touring":   "touring",
	"adventure": "adventure",
	"scooter":   "scooter",
}

// NormalizeCategory maps a user-supplied category filter onto a canonical
// catalog category. Unknown values return an empty string, which callers
// treat as "no filter".
func NormalizeCategory(raw string) string {
	return categories[strings.ToLower(strings.TrimSpace(raw))]
}
