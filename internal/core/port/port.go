package port

import (
	"context"

	"github.com/niksmo/smartshop/internal/core/domain"
)

// CatalogProvider is the external Product Source boundary.
type CatalogProvider interface {
	FetchProducts(context.Context) ([]domain.Product, error)
	FetchProduct(ctx context.Context, productID int) (domain.Product, error)
	FetchCategories(context.Context) ([]string, error)
}

type ClientEventsProducer interface {
	ProduceEvent(context.Context, domain.ClientEvent) error
}

type CatalogBrowser interface {
	BrowseProducts(
		ctx context.Context, spec domain.FilterSpec, searchTerm string,
	) ([]domain.Product, error)
	ProductDetails(
		ctx context.Context, productID int,
	) (domain.Product, []domain.Product, error)
	Categories(context.Context) ([]string, error)
}

type CartKeeper interface {
	AddToCart(ctx context.Context, p domain.Product, quantity int)
	UpdateQuantity(ctx context.Context, productID, quantity int)
	RemoveFromCart(ctx context.Context, productID int)
	ClearCart(ctx context.Context)
	CartItems() []domain.CartItem
	CartCount() int
	CartTotal() float64
}

type CheckoutPerformer interface {
	Checkout(context.Context) (domain.Order, error)
}
