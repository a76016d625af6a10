// Package cart holds the shopping-cart state machine. A cart belongs
// to exactly one client session and is only ever mutated by that
// session's own requests; single-writer-per-session is a precondition
// of every type here, not an accident of the current call sites.
package cart

import "aswaq-storefront/internal/domain"

// Items is the cart collection: an ordered list with at most one entry
// per product id and every quantity strictly positive. The update
// operations are pure: they return the next collection and leave the
// receiver untouched.
type Items []domain.CartItem

func (items Items) index(productID string) int {
	for i, item := range items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// Add merges quantity into an existing line for the product or appends
// a new one. A merge only touches the quantity; whatever else the
// existing line carries stays as is.
func (items Items) Add(p domain.Product, quantity int) Items {
	if quantity < 1 {
		quantity = 1
	}
	if i := items.index(p.ID); i >= 0 {
		next := make(Items, len(items))
		copy(next, items)
		next[i].Quantity += quantity
		return next
	}
	next := make(Items, len(items), len(items)+1)
	copy(next, items)
	return append(next, domain.CartItem{Product: p, Quantity: quantity})
}

// UpdateQuantity sets the line's quantity outright. Anything at or
// below zero removes the line instead.
func (items Items) UpdateQuantity(productID string, quantity int) Items {
	if quantity <= 0 {
		return items.Remove(productID)
	}
	i := items.index(productID)
	if i < 0 {
		return items
	}
	next := make(Items, len(items))
	copy(next, items)
	next[i].Quantity = quantity
	return next
}

// Remove drops the line if present.
func (items Items) Remove(productID string) Items {
	i := items.index(productID)
	if i < 0 {
		return items
	}
	next := make(Items, 0, len(items)-1)
	next = append(next, items[:i]...)
	return append(next, items[i+1:]...)
}

// TotalItems is the sum of all quantities, recomputed on every call.
func (items Items) TotalItems() int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity over all lines,
// recomputed on every call.
func (items Items) TotalPrice() int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
