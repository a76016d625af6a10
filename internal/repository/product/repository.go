package product

import (
	"context"

	"aswaq-storefront/internal/domain"
)

type Repository interface {
	// List returns one page of products, newest first.
	List(ctx context.Context, page, limit int) (domain.ProductPage, error)
	// ListByCategory returns one page of a category's products, newest first.
	ListByCategory(ctx context.Context, categoryID string, page, limit int) (domain.ProductPage, error)
	// ListNewest returns the full product listing, newest first.
	ListNewest(ctx context.Context) ([]domain.Product, error)
	// GetByID returns domain.ErrNotFound when no such product exists.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
