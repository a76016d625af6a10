package domain

import "time"

const OrderStatusPending = "pending"

type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	TotalAmount  int64       `json:"totalAmount"`
	Status       string      `json:"status"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	Lines        []OrderLine `json:"lines,omitempty"`
}

type OrderLine struct {
	OrderID    string `json:"orderId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unitPrice"`
	TotalPrice int64  `json:"totalPrice"`
}
