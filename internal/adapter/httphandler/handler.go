package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/niksmo/smartshop/internal/core/domain"
	"github.com/niksmo/smartshop/internal/core/port"
)

// defaultPriceCeiling bounds the price filter when the query carries
// no upper bound.
const defaultPriceCeiling = 1000

// GET v1/products?category=&price_min=&price_max=&min_rating=&sort=&search=
// GET v1/products/{id}
// GET v1/categories

type CatalogHandler struct {
	browser port.CatalogBrowser
}

func RegisterCatalog(mux *http.ServeMux, browser port.CatalogBrowser) {
	h := CatalogHandler{browser}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	spec, searchTerm, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid filter parameters", http.StatusBadRequest)
		log.Warn("failed to parse filter query", "err", err)
		return
	}

	ps, err := h.browser.BrowseProducts(r.Context(), spec, searchTerm)
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		log.Error("failed to browse products", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProductViews(ps))
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, related, err := h.browser.ProductDetails(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		log.Error("failed to get product details", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, ProductDetails{
		Product: toProductView(p),
		Related: toProductViews(related),
	})
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCategories"
	log := slog.With("op", op)

	cs, err := h.browser.Categories(r.Context())
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		log.Error("failed to get categories", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, cs)
}

// GET v1/cart
// POST v1/cart/items JSON {"product", "quantity"} (202 Accepted)
// PATCH v1/cart/items/{id} JSON {"quantity"}
// DELETE v1/cart/items/{id}
// DELETE v1/cart

type CartHandler struct {
	keeper port.CartKeeper
}

func RegisterCart(mux *http.ServeMux, keeper port.CartKeeper) {
	h := CartHandler{keeper}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart := toCartView(
		h.keeper.CartItems(), h.keeper.CartCount(), h.keeper.CartTotal(),
	)
	writeJSON(w, http.StatusOK, cart)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var body AddCartItem
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if body.Quantity < 1 {
		http.Error(w, "quantity must be positive", http.StatusBadRequest)
		return
	}

	h.keeper.AddToCart(r.Context(), body.Product.toDomain(), body.Quantity)
	w.WriteHeader(http.StatusAccepted)

	log.Info("item added", "productID", body.Product.ID, "qty", body.Quantity)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var body UpdateCartItem
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if body.Quantity < 1 {
		http.Error(w, "quantity must be positive", http.StatusBadRequest)
		return
	}

	h.keeper.UpdateQuantity(r.Context(), id, body.Quantity)
	w.WriteHeader(http.StatusOK)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	h.keeper.RemoveFromCart(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.keeper.ClearCart(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// POST v1/checkout (200 OK order summary, 409 Conflict on empty cart)

type CheckoutHandler struct {
	performer port.CheckoutPerformer
}

func RegisterCheckout(mux *http.ServeMux, performer port.CheckoutPerformer) {
	h := CheckoutHandler{performer}
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	order, err := h.performer.Checkout(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			http.Error(w, "cart is empty", http.StatusConflict)
			return
		}
		http.Error(w, "checkout failed", http.StatusServiceUnavailable)
		log.Error("failed to checkout", "err", err)
		return
	}

	items := make([]CartItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, CartItem{
			Product:  toProductView(item.Product),
			Quantity: item.Quantity,
		})
	}

	writeJSON(w, http.StatusOK, Order{
		Items:    items,
		Total:    order.Total,
		PlacedAt: order.PlacedAt.UTC().Format(time.RFC3339),
	})

	log.Info("order placed", "nItems", len(items), "total", order.Total)
}

func parseFilterSpec(
	q url.Values,
) (spec domain.FilterSpec, searchTerm string, err error) {
	spec.Category = q.Get("category")
	spec.SortBy = domain.SortKey(q.Get("sort"))
	if spec.SortBy == "" {
		spec.SortBy = domain.SortPopularity
	}
	searchTerm = q.Get("search")

	spec.Price.High = defaultPriceCeiling
	if v := q.Get("price_min"); v != "" {
		spec.Price.Low, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return spec, "", err
		}
	}
	if v := q.Get("price_max"); v != "" {
		spec.Price.High, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return spec, "", err
		}
	}

	if v := q.Get("min_rating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return spec, "", err
		}
		spec.MinRating = &r
	}

	return spec, searchTerm, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.With("op", op).Error("failed to write response body", "err", err)
	}
}
