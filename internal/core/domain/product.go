package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrEmptyCart          = errors.New("cart is empty")
)

type (
	Product struct {
		ID          int
		Title       string
		Price       float64
		Description string
		Category    string
		Image       string
		Rating      ProductRating
	}

	ProductRating struct {
		Rate  float64
		Count int
	}
)

// A CartItem holds the product snapshot taken at the moment the product
// was added to the cart. Quantity is at least 1 while the item exists.
type CartItem struct {
	Product  Product
	Quantity int
}

type Order struct {
	Items    []CartItem
	Total    float64
	PlacedAt time.Time
}
