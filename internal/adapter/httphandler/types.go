package httphandler

import "github.com/niksmo/smartshop/internal/core/domain"

type (
	Product struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Image       string  `json:"image"`
		Rating      Rating  `json:"rating"`
	}

	Rating struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	}
)

type ProductDetails struct {
	Product Product   `json:"product"`
	Related []Product `json:"related"`
}

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type Cart struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`
	Total float64    `json:"total"`
}

type AddCartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type UpdateCartItem struct {
	Quantity int `json:"quantity"`
}

type Order struct {
	Items    []CartItem `json:"items"`
	Total    float64    `json:"total"`
	PlacedAt string     `json:"placed_at"`
}

func toProductView(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rating:      Rating{Rate: p.Rating.Rate, Count: p.Rating.Count},
	}
}

func toProductViews(ps []domain.Product) []Product {
	views := make([]Product, 0, len(ps))
	for _, p := range ps {
		views = append(views, toProductView(p))
	}
	return views
}

func (p Product) toDomain() domain.Product {
	return domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rating: domain.ProductRating{
			Rate:  p.Rating.Rate,
			Count: p.Rating.Count,
		},
	}
}

func toCartView(items []domain.CartItem, count int, total float64) Cart {
	views := make([]CartItem, 0, len(items))
	for _, item := range items {
		views = append(views, CartItem{
			Product:  toProductView(item.Product),
			Quantity: item.Quantity,
		})
	}
	return Cart{Items: views, Count: count, Total: total}
}
