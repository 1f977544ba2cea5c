// Package catalog narrows and orders product lists.
package catalog

import (
	"sort"
	"strings"

	"github.com/niksmo/smartshop/internal/core/domain"
)

// Apply returns the products matching spec and searchTerm, ordered by
// the spec sort key.
//
// Stages run in fixed order: category, price range, minimum rating,
// free-text search, stable sort. The input slice is never mutated and
// the result keeps the relative input order of equally-sorted
// products. An inverted price range matches nothing; the engine
// performs no validation.
func Apply(
	products []domain.Product, spec domain.FilterSpec, searchTerm string,
) []domain.Product {
	result := make([]domain.Product, 0, len(products))

	for _, p := range products {
		if matches(p, spec, searchTerm) {
			result = append(result, p)
		}
	}

	sortProducts(result, spec.SortBy)
	return result
}

func matches(p domain.Product, spec domain.FilterSpec, searchTerm string) bool {
	if spec.Category != "" && p.Category != spec.Category {
		return false
	}

	if p.Price < spec.Price.Low || p.Price > spec.Price.High {
		return false
	}

	if spec.MinRating != nil && p.Rating.Rate < *spec.MinRating {
		return false
	}

	if searchTerm != "" && !matchesSearch(p, searchTerm) {
		return false
	}

	return true
}

func matchesSearch(p domain.Product, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

func sortProducts(ps []domain.Product, key domain.SortKey) {
	var less func(a, b domain.Product) bool

	switch key {
	case domain.SortPriceLowHigh:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case domain.SortPriceHighLow:
		less = func(a, b domain.Product) bool { return a.Price > b.Price }
	case domain.SortRating:
		less = func(a, b domain.Product) bool {
			return a.Rating.Rate > b.Rating.Rate
		}
	default: // popularity
		less = func(a, b domain.Product) bool {
			return a.Rating.Count > b.Rating.Count
		}
	}

	sort.SliceStable(ps, func(i, j int) bool { return less(ps[i], ps[j]) })
}
