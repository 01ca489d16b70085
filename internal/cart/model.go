package cart

import (
	"github.com/shopspring/decimal"

	"salesdash/internal/product"
)

// Entry is one cart line. Product is the snapshot taken when the line was
// added; Quantity is always positive.
type Entry struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is price × quantity for the line.
func (e Entry) Subtotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// AddResult reports how much of a request actually landed in the cart.
type AddResult struct {
	Requested int  `json:"requested"`
	Added     int  `json:"added"`
	Clamped   bool `json:"clamped"`
}

// View is the JSON shape returned to the dashboard.
type View struct {
	UserID     string          `json:"user_id"`
	Items      []Entry         `json:"items"`
	Total      decimal.Decimal `json:"total"`
	TotalItems int             `json:"total_items"`
}
