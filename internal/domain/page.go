package domain

// ProductPage is one page of a product listing plus the pagination window
// it was computed from. TotalPages is ceil(Total/Limit).
type ProductPage struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

// NewProductPage derives the page envelope for a fetched row range.
func NewProductPage(products []Product, total, page, limit int) ProductPage {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	if products == nil {
		products = []Product{}
	}
	return ProductPage{
		Products:   products,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
