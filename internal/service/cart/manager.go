package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"aswaq-storefront/internal/clientstore"
	"aswaq-storefront/internal/domain"
)

// Manager binds cart collections to the durable session store. The
// store is a best-effort mirror: every mutation rehydrates the
// session's cart, applies the change, and writes the full snapshot
// back, but a failed write never fails the operation.
type Manager struct {
	store  clientstore.Store
	logger *log.Logger
}

func NewManager(store clientstore.Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Manager{store: store, logger: logger}
}

// Load rehydrates the session's cart. A missing snapshot is an empty
// cart; so is a corrupted one — a session must never be broken by bad
// persisted state. Load never writes back, so an empty hydration
// cannot clobber a snapshot that simply failed to read.
func (m *Manager) Load(ctx context.Context, session string) Items {
	raw, err := m.store.Get(ctx, clientstore.CartKey(session))
	if err != nil {
		if !errors.Is(err, clientstore.ErrNotFound) {
			m.logger.Printf("cart: load session=%s: %v", session, err)
		}
		return Items{}
	}
	var items Items
	if err := json.Unmarshal(raw, &items); err != nil {
		m.logger.Printf("cart: corrupt snapshot session=%s, starting empty: %v", session, err)
		return Items{}
	}
	return items
}

// Add merges a product into the session's cart and persists it.
func (m *Manager) Add(ctx context.Context, session string, p domain.Product, quantity int) Items {
	items := m.Load(ctx, session).Add(p, quantity)
	m.persist(ctx, session, items)
	return items
}

// UpdateQuantity replaces a line's quantity (or removes it at zero or
// below) and persists the cart.
func (m *Manager) UpdateQuantity(ctx context.Context, session, productID string, quantity int) Items {
	items := m.Load(ctx, session).UpdateQuantity(productID, quantity)
	m.persist(ctx, session, items)
	return items
}

// Remove drops a line and persists the cart.
func (m *Manager) Remove(ctx context.Context, session, productID string) Items {
	items := m.Load(ctx, session).Remove(productID)
	m.persist(ctx, session, items)
	return items
}

// Clear empties the session's cart and drops the snapshot.
func (m *Manager) Clear(ctx context.Context, session string) {
	if err := m.store.Delete(ctx, clientstore.CartKey(session)); err != nil {
		m.logger.Printf("cart: clear session=%s: %v", session, err)
	}
}

func (m *Manager) persist(ctx context.Context, session string, items Items) {
	raw, err := json.Marshal(items)
	if err != nil {
		m.logger.Printf("cart: marshal snapshot session=%s: %v", session, err)
		return
	}
	if err := m.store.Set(ctx, clientstore.CartKey(session), raw); err != nil {
		m.logger.Printf("cart: persist session=%s: %v", session, err)
	}
}
