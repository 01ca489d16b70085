package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"salesdash/internal/product"
)

// storedEntry is the JSONB element persisted in carts.items.
type storedEntry struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
}

func encodeEntries(entries []Entry) ([]byte, error) {
	stored := make([]storedEntry, 0, len(entries))
	for _, e := range entries {
		stored = append(stored, storedEntry{
			ProductID: e.Product.ID,
			Name:      e.Product.Name,
			Price:     e.Product.Price,
			Stock:     e.Product.Stock,
			Category:  e.Product.Category,
			Quantity:  e.Quantity,
		})
	}
	return json.Marshal(stored)
}

func decodeEntries(raw []byte) ([]Entry, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var stored []storedEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(stored))
	for _, s := range stored {
		entries = append(entries, Entry{
			Product: product.Product{
				ID:       s.ProductID,
				Name:     s.Name,
				Price:    s.Price,
				Stock:    s.Stock,
				Category: s.Category,
			},
			Quantity: s.Quantity,
		})
	}
	return entries, nil
}
