package order

import (
	"strconv"
	"strings"

	"salesdash/internal/cart"
)

// BuildFromCart turns a cart into a pending order payload.
func BuildFromCart(c *cart.Cart) (*Payload, error) {
	return BuildWithStatus(c, StatusPending)
}

// validateUser checks the user first, then emptiness, then the id format.
func validateUser(rawUserID string, lines int) (int64, error) {
	raw := strings.TrimSpace(rawUserID)
	if raw == "" {
		return 0, ErrMissingUser
	}
	if lines == 0 {
		return 0, ErrEmptyOrder
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidUserID
	}
	return userID, nil
}

// BuildWithStatus validates the cart and builds the payload.
func BuildWithStatus(c *cart.Cart, status Status) (*Payload, error) {
	userID, err := validateUser(c.UserID(), c.Len())
	if err != nil {
		return nil, err
	}

	entries := c.Entries()
	p := &Payload{
		UserID:       userID,
		TotalAmount:  c.Total(),
		Status:       status,
		Products:     make([]ProductLine, 0, len(entries)),
		UpdatedStock: make([]StockLine, 0, len(entries)),
	}
	for _, e := range entries {
		p.Products = append(p.Products, ProductLine{ProductID: e.Product.ID, Quantity: e.Quantity})
		p.UpdatedStock = append(p.UpdatedStock, StockLine{
			ProductID: e.Product.ID,
			NewStock:  max(0, e.Product.Stock-e.Quantity),
		})
	}
	return p, nil
}
