package category

import (
	"context"

	"aswaq-storefront/internal/domain"
)

type Repository interface {
	// ListAll returns every category ordered by name.
	ListAll(ctx context.Context) ([]domain.Category, error)
	// GetByID returns domain.ErrNotFound when no such category exists.
	GetByID(ctx context.Context, id string) (*domain.Category, error)
}
