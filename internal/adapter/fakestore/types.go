package fakestore

import "github.com/niksmo/smartshop/internal/core/domain"

type (
	product struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Image       string  `json:"image"`
		Rating      rating  `json:"rating"`
	}

	rating struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	}
)

func (p product) toDomain() domain.Product {
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

func toDomain(ps []product) []domain.Product {
	domainPs := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		domainPs = append(domainPs, p.toDomain())
	}
	return domainPs
}
