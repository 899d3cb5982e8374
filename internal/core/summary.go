package core

import "github.com/shopspring/decimal"

// CategoryTotal is an amount aggregated under one category name.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// MonthSummary is the per-category aggregation for one calendar month.
// Total always equals the sum of the category amounts exactly.
type MonthSummary struct {
	Year       int
	Month      int // 1-12
	Total      decimal.Decimal
	ByCategory []CategoryTotal
}
