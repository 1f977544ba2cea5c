package domain

type SortKey string

const (
	SortPopularity   SortKey = "popularity"
	SortPriceLowHigh SortKey = "price-low-high"
	SortPriceHighLow SortKey = "price-high-low"
	SortRating       SortKey = "rating"
)

// A PriceRange bounds are inclusive. Low greater than High matches nothing.
type PriceRange struct {
	Low  float64
	High float64
}

// A FilterSpec describes how to narrow and order a product list.
//
// Empty Category means no category filter, nil MinRating means no
// rating filter.
type FilterSpec struct {
	Category  string
	Price     PriceRange
	MinRating *float64
	SortBy    SortKey
}
