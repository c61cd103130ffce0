package tool

// Static lookup tables backing gift suggestions. Pure data, fixed at
// compile time.

// giftCategoryTable maps a gift recipient to catalog categories worth
// searching. Unknown recipients fall back to defaultGiftCategories.
var giftCategoryTable = map[string][]string{
	"girlfriend": {"Jewelry", "Perfume", "Accessories", "Clothing", "Bags"},
	"boyfriend":  {"Electronics", "Watches", "Clothing", "Accessories", "Sports"},
	"mother":     {"Jewelry", "Perfume", "Home", "Bags", "Clothing"},
	"father":     {"Electronics", "Watches", "Clothing", "Sports", "Tools"},
	"friend":     {"Accessories", "Electronics", "Books", "Sports", "Clothing"},
	"wife":       {"Jewelry", "Perfume", "Bags", "Clothing", "Accessories"},
	"husband":    {"Electronics", "Watches", "Clothing", "Sports", "Accessories"},
	"child":      {"Toys", "Books", "Games", "Clothing", "Electronics"},
	"teen":       {"Electronics", "Games", "Clothing", "Accessories", "Sports"},
}

var defaultGiftCategories = []string{"Accessories", "Jewelry", "Clothing"}

// vagueQueryTable expands vague preference wording into concrete search
// terms.
var vagueQueryTable = map[string][]string{
	"gift":           {"accessories", "jewelry", "perfume", "watches"},
	"present":        {"accessories", "jewelry", "perfume", "watches"},
	"something nice": {"jewelry", "accessories", "clothing"},
	"surprise":       {"jewelry", "perfume", "accessories", "electronics"},
	"romantic":       {"jewelry", "perfume", "accessories"},
	"special":        {"jewelry", "watches", "perfume"},
}
