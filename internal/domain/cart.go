package domain

// CartItem is a product plus the quantity the session wants to buy.
// Invariant: Quantity > 0; an item that would drop to zero or below is
// removed from the cart instead of being kept around.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is the price of the line at the item's current quantity.
func (i CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}
