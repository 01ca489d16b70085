package cart

import (
	"github.com/shopspring/decimal"

	"salesdash/internal/product"
)

// Cart holds the operator-typed user id and the lines in insertion order.
// It is not safe for concurrent use; Service serialises access.
type Cart struct {
	userID  string
	entries []Entry
}

func New() *Cart {
	return &Cart{}
}

// FromEntries rebuilds a cart from stored lines, dropping any line whose
// quantity is not positive and merging duplicate product ids.
func FromEntries(userID string, entries []Entry) *Cart {
	c := &Cart{userID: userID}
	for _, e := range entries {
		if e.Quantity <= 0 {
			continue
		}
		if i := c.indexOf(e.Product.ID); i >= 0 {
			c.entries[i].Quantity += e.Quantity
			continue
		}
		c.entries = append(c.entries, e)
	}
	return c
}

func (c *Cart) indexOf(productID int64) int {
	for i := range c.entries {
		if c.entries[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem merges quantity units of p into the cart. A non-positive quantity
// counts as one. The amount added never exceeds p.Stock minus what the cart
// already holds.
func (c *Cart) AddItem(p product.Product, quantity int) (AddResult, error) {
	if quantity <= 0 {
		quantity = 1
	}

	idx := c.indexOf(p.ID)
	inCart := 0
	if idx >= 0 {
		inCart = c.entries[idx].Quantity
	}

	available := p.Stock - inCart
	if available <= 0 {
		return AddResult{Requested: quantity}, ErrNoStock
	}

	added := min(quantity, available)
	if idx >= 0 {
		c.entries[idx].Product = p
		c.entries[idx].Quantity += added
	} else {
		c.entries = append(c.entries, Entry{Product: p, Quantity: added})
	}

	return AddResult{Requested: quantity, Added: added, Clamped: added < quantity}, nil
}

func (c *Cart) RemoveItem(productID int64) error {
	idx := c.indexOf(productID)
	if idx < 0 {
		return ErrCartItemNotFound
	}
	c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	return nil
}

// SetQuantity replaces a line's quantity. Zero or less removes the line
// (a no-op for unknown ids). Larger values are clamped to the snapshot stock.
func (c *Cart) SetQuantity(productID int64, quantity int) (clamped bool, err error) {
	idx := c.indexOf(productID)
	if quantity <= 0 {
		if idx >= 0 {
			c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
		}
		return false, nil
	}
	if idx < 0 {
		return false, ErrCartItemNotFound
	}

	stock := c.entries[idx].Product.Stock
	if stock <= 0 {
		return false, ErrNoStock
	}
	if quantity > stock {
		quantity = stock
		clamped = true
	}
	c.entries[idx].Quantity = quantity
	return clamped, nil
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

func (c *Cart) TotalItems() int {
	n := 0
	for _, e := range c.entries {
		n += e.Quantity
	}
	return n
}

// Entries returns a copy of the lines.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Cart) Len() int { return len(c.entries) }

func (c *Cart) Clear() {
	c.entries = nil
}

func (c *Cart) SetUser(userID string) {
	c.userID = userID
}

func (c *Cart) UserID() string { return c.userID }

func (c *Cart) View() View {
	return View{
		UserID:     c.userID,
		Items:      c.Entries(),
		Total:      c.Total(),
		TotalItems: c.TotalItems(),
	}
}
