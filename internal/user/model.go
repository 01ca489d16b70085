package user

import (
	"time"

	"github.com/shopspring/decimal"

	"salesdash/internal/order"
)

type User struct {
	ID        int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary is one row of the user directory.
type Summary struct {
	User
	OrderCount int             `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// Detail is a single user with the orders they placed.
type Detail struct {
	User
	Orders     []order.Order   `json:"orders"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of POST /api/users.
type Registration struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}
