// Package dataset holds the bulk read of the sales backend that the
// aggregation and directory code work from.
package dataset

import (
	"salesdash/internal/order"
	"salesdash/internal/product"
	"salesdash/internal/user"
)

// Snapshot is one consistent load: either every collection came back or
// none did.
type Snapshot struct {
	Orders     []order.Order     `json:"orders"`
	Users      []user.User       `json:"users"`
	OrderItems []order.LineItem  `json:"order_items"`
	Products   []product.Product `json:"products"`
}
