package core

// SynonymTable maps a canonical user-facing category to the provider-side
// labels that should be treated as equivalent. Alias order matters: the
// resolver uses the first alias present on a card.
type SynonymTable map[string][]string

// CanonicalCategories is the fixed set of spending categories the calling
// surface offers. The optimizer itself accepts any category string.
var CanonicalCategories = []string{
	"groceries", "gas", "restaurants", "travel", "online_shopping",
	"department_stores", "utilities", "insurance", "entertainment",
	"streaming_services", "phone_bill", "other",
}

// DefaultSynonyms returns the built-in category synonym table.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		"groceries":          {"groceries", "grocery_stores", "supermarkets"},
		"gas":                {"gas", "gas_stations", "fuel"},
		"restaurants":        {"dining", "restaurants", "food"},
		"travel":             {"travel", "airlines", "hotels", "car_rental"},
		"online_shopping":    {"online", "e_commerce", "amazon"},
		"department_stores":  {"department_stores", "retail"},
		"utilities":          {"utilities", "bills"},
		"streaming_services": {"streaming", "entertainment"},
		"phone_bill":         {"phone", "telecommunications"},
	}
}

// Aliases returns the provider labels for a canonical category. A category
// absent from the table is its own single-element alias list, so unknown
// categories never fail resolution.
func (t SynonymTable) Aliases(category string) []string {
	if aliases, ok := t[category]; ok {
		return aliases
	}
	return []string{category}
}
