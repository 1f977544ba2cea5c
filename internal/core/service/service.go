package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/smartshop/internal/core/cart"
	"github.com/niksmo/smartshop/internal/core/catalog"
	"github.com/niksmo/smartshop/internal/core/domain"
	"github.com/niksmo/smartshop/internal/core/port"
)

var _ port.CatalogBrowser = (*Service)(nil)
var _ port.CartKeeper = (*Service)(nil)
var _ port.CheckoutPerformer = (*Service)(nil)

type Service struct {
	catalogProvider port.CatalogProvider
	cart            *cart.Store
	events          port.ClientEventsProducer
	checkoutDelay   time.Duration
}

func New(
	catalogProvider port.CatalogProvider,
	cartStore *cart.Store,
	events port.ClientEventsProducer,
	checkoutDelay time.Duration,
) Service {
	return Service{
		catalogProvider: catalogProvider,
		cart:            cartStore,
		events:          events,
		checkoutDelay:   checkoutDelay,
	}
}

// BrowseProducts fetches the full catalog and applies the filter
// specification. The engine is pure, so redundant invocations with the
// same inputs are safe; debouncing belongs to the caller.
func (s Service) BrowseProducts(
	ctx context.Context, spec domain.FilterSpec, searchTerm string,
) ([]domain.Product, error) {
	const op = "Service.BrowseProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products, err := s.catalogProvider.FetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return catalog.Apply(products, spec, searchTerm), nil
}

// maxRelated caps the related-products strip on the detail view.
const maxRelated = 10

// ProductDetails returns the product and up to maxRelated products
// sharing its category, excluding the product itself.
func (s Service) ProductDetails(
	ctx context.Context, productID int,
) (domain.Product, []domain.Product, error) {
	const op = "Service.ProductDetails"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.catalogProvider.FetchProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	related, err := s.relatedProducts(ctx, p)
	if err != nil {
		return domain.Product{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	s.produceEvent(ctx, domain.ClientEvent{
		Type:      domain.EventProductViewed,
		ProductID: p.ID,
		At:        time.Now(),
	})

	return p, related, nil
}

func (s Service) relatedProducts(
	ctx context.Context, p domain.Product,
) ([]domain.Product, error) {
	all, err := s.catalogProvider.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	var related []domain.Product
	for _, v := range all {
		if v.Category == p.Category && v.ID != p.ID {
			related = append(related, v)
			if len(related) == maxRelated {
				break
			}
		}
	}
	return related, nil
}

func (s Service) Categories(ctx context.Context) ([]string, error) {
	const op = "Service.Categories"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cs, err := s.catalogProvider.FetchCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

func (s Service) AddToCart(
	ctx context.Context, p domain.Product, quantity int,
) {
	s.cart.Add(p, quantity)
	s.produceEvent(ctx, domain.ClientEvent{
		Type:      domain.EventCartItemAdded,
		ProductID: p.ID,
		Quantity:  quantity,
		CartCount: s.cart.Count(),
		CartTotal: s.cart.Total(),
		At:        time.Now(),
	})
}

func (s Service) UpdateQuantity(ctx context.Context, productID, quantity int) {
	s.cart.UpdateQuantity(productID, quantity)
	s.produceEvent(ctx, domain.ClientEvent{
		Type:      domain.EventCartQtyChanged,
		ProductID: productID,
		Quantity:  quantity,
		CartCount: s.cart.Count(),
		CartTotal: s.cart.Total(),
		At:        time.Now(),
	})
}

func (s Service) RemoveFromCart(ctx context.Context, productID int) {
	s.cart.Remove(productID)
	s.produceEvent(ctx, domain.ClientEvent{
		Type:      domain.EventCartItemRemoved,
		ProductID: productID,
		CartCount: s.cart.Count(),
		CartTotal: s.cart.Total(),
		At:        time.Now(),
	})
}

func (s Service) ClearCart(ctx context.Context) {
	s.cart.Clear()
	s.produceEvent(ctx, domain.ClientEvent{
		Type: domain.EventCartCleared,
		At:   time.Now(),
	})
}

func (s Service) CartItems() []domain.CartItem {
	return s.cart.Items()
}

func (s Service) CartCount() int {
	return s.cart.Count()
}

func (s Service) CartTotal() float64 {
	return s.cart.Total()
}

// Checkout simulates order processing: it waits the configured delay,
// then removes the ordered items and returns the order summary built
// from the items present when checkout started. Only the snapshotted
// line items are removed, so an item added while the order is in
// flight stays in the cart.
func (s Service) Checkout(ctx context.Context) (domain.Order, error) {
	const op = "Service.Checkout"

	items := s.cart.Items()
	if len(items) == 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	timer := time.NewTimer(s.checkoutDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return domain.Order{}, fmt.Errorf("%s: %w", op, ctx.Err())
	case <-timer.C:
	}

	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}

	order := domain.Order{Items: items, Total: total, PlacedAt: time.Now()}
	for _, item := range items {
		s.cart.Remove(item.Product.ID)
	}

	s.produceEvent(ctx, domain.ClientEvent{
		Type:      domain.EventOrderPlaced,
		CartTotal: order.Total,
		At:        order.PlacedAt,
	})

	return order, nil
}

// produceEvent is best effort: telemetry failures are logged, cart
// operations never propagate them.
func (s Service) produceEvent(ctx context.Context, evt domain.ClientEvent) {
	const op = "Service.produceEvent"

	if s.events == nil {
		return
	}

	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.With("op", op).Warn(
			"failed to produce client event",
			"eventType", evt.Type, "err", err,
		)
	}
}
