package core

// CategoryAmount pairs a category with its total for a period.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// Summary is a per-user monthly overview: the overall total plus one entry
// per category that had spend, in category declaration order.
type Summary struct {
	Year       int
	Month      int
	Total      Money
	ByCategory []CategoryAmount
}
