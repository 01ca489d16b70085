package product

import "github.com/shopspring/decimal"

type Product struct {
	ID       int64           `json:"product_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Category string          `json:"category"`
	ImageURL string          `json:"image_url,omitempty"`
}

// StockUpdate is the absolute stock value the backend should store.
type StockUpdate struct {
	ProductID    int64 `json:"product_id"`
	UpdatedStock int   `json:"updated_stock"`
}
