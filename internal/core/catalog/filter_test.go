package catalog_test

import (
	"testing"

	"github.com/niksmo/smartshop/internal/core/catalog"
	"github.com/niksmo/smartshop/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratingPtr(v float64) *float64 { return &v }

func anyPrice() domain.PriceRange {
	return domain.PriceRange{Low: 0, High: 1000}
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{
			ID: 1, Title: "Leather Backpack", Price: 10,
			Description: "Fits laptops up to 15 inches",
			Category:    "a",
			Rating:      domain.ProductRating{Rate: 4.5, Count: 100},
		},
		{
			ID: 2, Title: "Cotton T-Shirt", Price: 5,
			Description: "Slim fit casual wear",
			Category:    "b",
			Rating:      domain.ProductRating{Rate: 3.0, Count: 200},
		},
	}
}

func productIDs(ps []domain.Product) []int {
	ids := make([]int, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestApplyFilters(t *testing.T) {
	t.Run("EmptyInput", func(t *testing.T) {
		spec := domain.FilterSpec{Price: anyPrice()}
		got := catalog.Apply(nil, spec, "")
		assert.Empty(t, got)
	})

	t.Run("NoFiltersSortPriceLowHigh", func(t *testing.T) {
		spec := domain.FilterSpec{
			Price:  anyPrice(),
			SortBy: domain.SortPriceLowHigh,
		}

		got := catalog.Apply(sampleProducts(), spec, "")

		assert.Equal(t, []int{2, 1}, productIDs(got))
	})

	t.Run("Category", func(t *testing.T) {
		spec := domain.FilterSpec{Category: "a", Price: anyPrice()}

		got := catalog.Apply(sampleProducts(), spec, "")

		assert.Equal(t, []int{1}, productIDs(got))
	})

	t.Run("CategoryIsCaseSensitive", func(t *testing.T) {
		spec := domain.FilterSpec{Category: "A", Price: anyPrice()}

		got := catalog.Apply(sampleProducts(), spec, "")

		assert.Empty(t, got)
	})

	t.Run("PriceRangeInclusiveBounds", func(t *testing.T) {
		spec := domain.FilterSpec{
			Price: domain.PriceRange{Low: 5, High: 10},
		}

		got := catalog.Apply(sampleProducts(), spec, "")

		assert.Len(t, got, 2)
	})

	t.Run("PriceRangeExcludes", func(t *testing.T) {
		spec := domain.FilterSpec{
			Price: domain.PriceRange{Low: 6, High: 100},
		}

		got := catalog.Apply(sampleProducts(), spec, "")

		assert.Equal(t, []int{1}, productIDs(got))
	})

	t.Run("InvertedPriceRangeMatchesNothing", func(t *testing.T) {
		spec := domain.FilterSpec{
			Price: domain.PriceRange{Low: 100, High: 0},
		}

		got := catalog.Apply(sampleProducts(), spec, "")

		assert.Empty(t, got)
	})

	t.Run("MinRating", func(t *testing.T) {
		spec := domain.FilterSpec{
			Price:     anyPrice(),
			MinRating: ratingPtr(4),
		}

		got := catalog.Apply(sampleProducts(), spec, "")

		assert.Equal(t, []int{1}, productIDs(got))
	})

	t.Run("MinRatingInclusive", func(t *testing.T) {
		spec := domain.FilterSpec{
			Price:     anyPrice(),
			MinRating: ratingPtr(3),
		}

		got := catalog.Apply(sampleProducts(), spec, "")

		assert.Len(t, got, 2)
	})
}

func TestApplySearch(t *testing.T) {
	t.Run("MatchesTitleCaseInsensitive", func(t *testing.T) {
		spec := domain.FilterSpec{Price: anyPrice()}

		got := catalog.Apply(sampleProducts(), spec, "LEATHER")

		assert.Equal(t, []int{1}, productIDs(got))
	})

	t.Run("MatchesDescription", func(t *testing.T) {
		spec := domain.FilterSpec{Price: anyPrice()}

		got := catalog.Apply(sampleProducts(), spec, "casual")

		assert.Equal(t, []int{2}, productIDs(got))
	})

	t.Run("MatchesCategory", func(t *testing.T) {
		spec := domain.FilterSpec{Price: anyPrice()}

		got := catalog.Apply(sampleProducts(), spec, "b")

		assert.Contains(t, productIDs(got), 2)
	})

	t.Run("NoMatch", func(t *testing.T) {
		spec := domain.FilterSpec{Price: anyPrice()}

		got := catalog.Apply(sampleProducts(), spec, "umbrella")

		assert.Empty(t, got)
	})
}

func TestApplySort(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Price: 30, Rating: domain.ProductRating{Rate: 4.0, Count: 10}},
		{ID: 2, Price: 10, Rating: domain.ProductRating{Rate: 5.0, Count: 30}},
		{ID: 3, Price: 20, Rating: domain.ProductRating{Rate: 3.0, Count: 20}},
	}

	tests := []struct {
		name    string
		sortBy  domain.SortKey
		wantIDs []int
	}{
		{"Popularity", domain.SortPopularity, []int{2, 3, 1}},
		{"PriceLowHigh", domain.SortPriceLowHigh, []int{2, 3, 1}},
		{"PriceHighLow", domain.SortPriceHighLow, []int{1, 3, 2}},
		{"Rating", domain.SortRating, []int{2, 1, 3}},
		{"UnknownKeyFallsBackToPopularity", domain.SortKey("bogus"), []int{2, 3, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := domain.FilterSpec{Price: anyPrice(), SortBy: tc.sortBy}

			got := catalog.Apply(products, spec, "")

			assert.Equal(t, tc.wantIDs, productIDs(got))
		})
	}

	t.Run("StableOnTies", func(t *testing.T) {
		tied := []domain.Product{
			{ID: 10, Price: 5},
			{ID: 11, Price: 5},
			{ID: 12, Price: 5},
		}
		spec := domain.FilterSpec{
			Price:  anyPrice(),
			SortBy: domain.SortPriceLowHigh,
		}

		got := catalog.Apply(tied, spec, "")

		assert.Equal(t, []int{10, 11, 12}, productIDs(got))
	})
}

func TestApplyPurity(t *testing.T) {
	t.Run("Idempotent", func(t *testing.T) {
		spec := domain.FilterSpec{
			Price:  anyPrice(),
			SortBy: domain.SortPriceLowHigh,
		}
		products := sampleProducts()

		first := catalog.Apply(products, spec, "")
		second := catalog.Apply(products, spec, "")

		assert.Equal(t, first, second)
	})

	t.Run("InputNotMutated", func(t *testing.T) {
		products := sampleProducts()
		spec := domain.FilterSpec{
			Price:  anyPrice(),
			SortBy: domain.SortPriceLowHigh,
		}

		got := catalog.Apply(products, spec, "")

		require.Equal(t, []int{2, 1}, productIDs(got))
		assert.Equal(t, []int{1, 2}, productIDs(products))
	})
}
