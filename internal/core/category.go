package core

// Category is one of a fixed set of spend classifications.
type Category string

// Declaration order is the enumeration order everywhere: keyboards,
// keyword matching and AllCategories all follow it.
const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryHealth        Category = "health"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"
	CategoryOther         Category = "other"
)

var allCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryHealth,
	CategoryShopping,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryOther,
}

var categoryEmojis = map[Category]string{
	CategoryFood:          "🍽️",
	CategoryTransport:     "🚗",
	CategoryHealth:        "🏥",
	CategoryShopping:      "🛍️",
	CategoryEntertainment: "🎬",
	CategoryUtilities:     "💡",
	CategoryOther:         "📌",
}

var categoryNames = map[Category]string{
	CategoryFood:          "Food",
	CategoryTransport:     "Transport",
	CategoryHealth:        "Health",
	CategoryShopping:      "Shopping",
	CategoryEntertainment: "Entertainment",
	CategoryUtilities:     "Utilities",
	CategoryOther:         "Other",
}

// AllCategories returns the closed set in declaration order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// IsValidCategory is an exact membership test. Unknown strings are invalid
// categories, not an implicit "other".
func IsValidCategory(value string) bool {
	_, ok := categoryNames[Category(value)]
	return ok
}

// DisplayName returns the user-facing name for a valid category.
func (c Category) DisplayName() string {
	return categoryNames[c]
}

// Emoji returns the glyph used next to the display name.
func (c Category) Emoji() string {
	return categoryEmojis[c]
}
