package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"aswaq-storefront/internal/clientstore"
	"aswaq-storefront/internal/domain"
	orderrepo "aswaq-storefront/internal/repository/order"
	"aswaq-storefront/internal/service/cart"
)

var (
	// ErrEmptyName rejects a submission with no customer name.
	ErrEmptyName = errors.New("customer name required")
	// ErrEmptyCart rejects a submission from an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// LastOrder is the minimal order-tracking view kept per session.
type LastOrder struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// Service runs the checkout flow: validate, snapshot the cart into an
// order, and only then release the cart.
type Service struct {
	orders orderrepo.Repository
	cart   *cart.Manager
	store  clientstore.Store
	logger *log.Logger
}

func New(orders orderrepo.Repository, cartMgr *cart.Manager, store clientstore.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, cart: cartMgr, store: store, logger: logger}
}

// Submit validates locally, writes the order (header plus lines, one
// transaction), then clears the cart and records the order id for the
// session. A failed write leaves the cart untouched so the session can
// retry.
func (s *Service) Submit(ctx context.Context, session, customerName string) (*domain.Order, error) {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return nil, ErrEmptyName
	}
	items := s.cart.Load(ctx, session)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	in := orderrepo.CreateOrderInput{
		CustomerName: name,
		TotalAmount:  items.TotalPrice(),
		Status:       domain.OrderStatusPending,
		Notes:        fmt.Sprintf("order with %d items", items.TotalItems()),
		Lines:        make([]orderrepo.LineInput, 0, len(items)),
	}
	for _, item := range items {
		in.Lines = append(in.Lines, orderrepo.LineInput{
			ProductID:  item.ID,
			Quantity:   item.Quantity,
			UnitPrice:  item.Price,
			TotalPrice: item.LineTotal(),
		})
	}

	ord, err := s.orders.Create(ctx, in)
	if err != nil {
		s.logger.Printf("order: submit session=%s error=%v", session, err)
		return nil, fmt.Errorf("submit order: %w", err)
	}

	s.cart.Clear(ctx, session)
	if err := s.store.Set(ctx, clientstore.LastOrderKey(session), []byte(ord.ID)); err != nil {
		s.logger.Printf("order: record last order session=%s id=%s: %v", session, ord.ID, err)
	}
	s.logger.Printf("order: submitted session=%s id=%s lines=%d total=%d", session, ord.ID, len(ord.Lines), ord.TotalAmount)
	return ord, nil
}

// Last returns the session's tracked order and its current status, or
// nil when the session has never submitted one.
func (s *Service) Last(ctx context.Context, session string) (*LastOrder, error) {
	raw, err := s.store.Get(ctx, clientstore.LastOrderKey(session))
	if err != nil {
		if errors.Is(err, clientstore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	id := string(raw)
	status, err := s.orders.GetStatus(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &LastOrder{OrderID: id, Status: status}, nil
}
