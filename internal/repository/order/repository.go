package order

import (
	"context"

	"aswaq-storefront/internal/domain"
)

// CreateOrderInput is a snapshot of the cart at submission time. The
// header and every line are written in one transaction.
type CreateOrderInput struct {
	CustomerName string
	TotalAmount  int64
	Status       string
	Notes        string
	Lines        []LineInput
}

type LineInput struct {
	ProductID  string
	Quantity   int
	UnitPrice  int64
	TotalPrice int64
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	// GetStatus returns domain.ErrNotFound when no such order exists.
	GetStatus(ctx context.Context, id string) (string, error)
}
