package backend

import (
	"strings"

	"github.com/shopspring/decimal"

	"salesdash/internal/order"
	"salesdash/internal/product"
	"salesdash/internal/user"
	"salesdash/internal/utils"
)

// The backend is loose about names: a row may carry "id" or "order_id",
// "created_at" or "order_created_at". DTOs accept both and nulls anywhere.

type orderDTO struct {
	ID             *int64              `json:"id"`
	OrderID        *int64              `json:"order_id"`
	UserID         *int64              `json:"user_id"`
	Status         *string             `json:"status"`
	TotalAmount    decimal.NullDecimal `json:"total_amount"`
	CreatedAt      *string             `json:"created_at"`
	OrderCreatedAt *string             `json:"order_created_at"`
}

type userDTO struct {
	ID            *int64  `json:"id"`
	UserID        *int64  `json:"user_id"`
	Username      *string `json:"username"`
	Email         *string `json:"email"`
	CreatedAt     *string `json:"created_at"`
	UserCreatedAt *string `json:"user_created_at"`
}

type orderItemDTO struct {
	OrderID   *int64 `json:"order_id"`
	ProductID *int64 `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type productDTO struct {
	ID        *int64              `json:"id"`
	ProductID *int64              `json:"product_id"`
	Name      *string             `json:"name"`
	Price     decimal.NullDecimal `json:"price"`
	Stock     *int                `json:"stock"`
	Category  *string             `json:"category"`
}

// joinedRow is one row of GET /api/data, a full outer join of orders,
// users, order_items and products.
type joinedRow struct {
	OrderID         *int64              `json:"order_id"`
	UserID          *int64              `json:"user_id"`
	ProductID       *int64              `json:"product_id"`
	UserCreatedAt   *string             `json:"user_created_at"`
	OrderCreatedAt  *string             `json:"order_created_at"`
	TotalAmount     decimal.NullDecimal `json:"total_amount"`
	ProductName     *string             `json:"product_name"`
	ProductCategory *string             `json:"product_category"`
	Category        *string             `json:"category"`
	Quantity        *int                `json:"quantity"`
	Status          *string             `json:"status"`
	Username        *string             `json:"username"`
	Email           *string             `json:"email"`
}

func firstID(ids ...*int64) int64 {
	for _, id := range ids {
		if id != nil {
			return *id
		}
	}
	return 0
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstStr(vals ...*string) string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func num(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func amount(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// toStatus keeps unknown statuses verbatim so the cards can still count
// them as "has a status".
func toStatus(s *string) order.Status {
	if s == nil {
		return ""
	}
	if st, err := order.ParseStatus(*s); err == nil {
		return st
	}
	return order.Status(strings.TrimSpace(*s))
}

func (d orderDTO) toDomain() order.Order {
	return order.Order{
		ID:          firstID(d.OrderID, d.ID),
		UserID:      firstID(d.UserID),
		Status:      toStatus(d.Status),
		TotalAmount: amount(d.TotalAmount),
		CreatedAt:   utils.ParseTimestamp(firstStr(d.OrderCreatedAt, d.CreatedAt)),
	}
}

func (d userDTO) toDomain() user.User {
	return user.User{
		ID:        firstID(d.UserID, d.ID),
		Username:  str(d.Username),
		Email:     str(d.Email),
		CreatedAt: utils.ParseTimestamp(firstStr(d.UserCreatedAt, d.CreatedAt)),
	}
}

func (d orderItemDTO) toDomain() order.LineItem {
	return order.LineItem{
		OrderID:   firstID(d.OrderID),
		ProductID: firstID(d.ProductID),
		Quantity:  num(d.Quantity),
	}
}

func (d productDTO) toDomain() product.Product {
	return product.Product{
		ID:       firstID(d.ProductID, d.ID),
		Name:     str(d.Name),
		Price:    amount(d.Price),
		Stock:    max(0, num(d.Stock)),
		Category: str(d.Category),
	}
}

func mapSlice[D, T any](in []D, f func(D) T) []T {
	out := make([]T, 0, len(in))
	for _, d := range in {
		out = append(out, f(d))
	}
	return out
}
