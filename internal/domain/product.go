package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	CategoryID  string    `json:"categoryId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
