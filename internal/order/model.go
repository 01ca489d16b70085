package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// ParseStatus accepts any casing and surrounding blanks.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusCompleted, StatusCanceled:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Order as read from the backend. Status is empty when the backend row has
// no status.
type Order struct {
	ID          int64           `json:"order_id"`
	UserID      int64           `json:"user_id"`
	Status      Status          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (o Order) IsCompleted() bool {
	return o.Status == StatusCompleted
}

type LineItem struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Payload is the body of POST /api/orders.
type Payload struct {
	UserID       int64           `json:"user_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       Status          `json:"status"`
	Products     []ProductLine   `json:"products"`
	UpdatedStock []StockLine     `json:"updated_stock"`
}

type ProductLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type StockLine struct {
	ProductID int64 `json:"product_id"`
	NewStock  int   `json:"new_stock"`
}

// StatusChange is the body of PATCH /api/orders/status.
type StatusChange struct {
	OrderID   int64  `json:"order_id"`
	NewStatus Status `json:"new_status"`
}

// Draft is an order composed by an operator outside of any cart.
type Draft struct {
	UserID string      `json:"user_id"`
	Status string      `json:"status"`
	Lines  []DraftLine `json:"lines"`
}

type DraftLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Receipt is what the backend acknowledged plus the payload that was sent.
type Receipt struct {
	OrderID int64   `json:"order_id,omitempty"`
	Message string  `json:"message,omitempty"`
	Order   Payload `json:"order"`
}
