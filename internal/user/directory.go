package user

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"salesdash/internal/order"
)

const (
	unknownUsername = "Unknown"
	unknownEmail    = "No email"
)

// UniqueUsers keeps the first occurrence of every positive id and fills in
// display defaults for blank names and emails.
func UniqueUsers(users []User) []User {
	seen := make(map[int64]struct{}, len(users))
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.ID <= 0 {
			continue
		}
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}

		if strings.TrimSpace(u.Username) == "" {
			u.Username = unknownUsername
		}
		if strings.TrimSpace(u.Email) == "" {
			u.Email = unknownEmail
		}
		out = append(out, u)
	}
	return out
}

// OrdersFor returns userID's orders, deduplicated by order id.
func OrdersFor(orders []order.Order, userID int64) []order.Order {
	seen := make(map[int64]struct{})
	var out []order.Order
	for _, o := range orders {
		if o.UserID != userID || o.ID <= 0 {
			continue
		}
		if _, dup := seen[o.ID]; dup {
			continue
		}
		seen[o.ID] = struct{}{}
		out = append(out, o)
	}
	return out
}

func TotalSpent(orders []order.Order, userID int64) decimal.Decimal {
	return sumTotals(OrdersFor(orders, userID))
}

func sumTotals(orders []order.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalAmount)
	}
	return total
}

// Summarize builds one directory row per unique user, in input order.
func Summarize(users []User, orders []order.Order) []Summary {
	byUser := make(map[int64][]order.Order)
	for _, o := range orders {
		byUser[o.UserID] = append(byUser[o.UserID], o)
	}

	unique := UniqueUsers(users)
	out := make([]Summary, 0, len(unique))
	for _, u := range unique {
		mine := OrdersFor(byUser[u.ID], u.ID)
		out = append(out, Summary{User: u, OrderCount: len(mine), TotalSpent: sumTotals(mine)})
	}
	return out
}

type Field string

const (
	FieldUsername   Field = "username"
	FieldTotalSpent Field = "total_spent"
	FieldCreatedAt  Field = "created_at"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query filters and orders the directory. Zero values search and sort by
// username ascending.
type Query struct {
	SearchBy  Field
	Term      string
	SortBy    Field
	Direction Direction
}

func (q Query) normalized() (Query, error) {
	if q.SearchBy == "" {
		q.SearchBy = FieldUsername
	}
	if q.SortBy == "" {
		q.SortBy = FieldUsername
	}
	if q.Direction == "" {
		q.Direction = Asc
	}
	q.Term = strings.TrimSpace(q.Term)

	if !validField(q.SearchBy) || !validField(q.SortBy) {
		return q, ErrInvalidFilter
	}
	if q.Direction != Asc && q.Direction != Desc {
		return q, ErrInvalidFilter
	}
	return q, nil
}

func validField(f Field) bool {
	return f == FieldUsername || f == FieldTotalSpent || f == FieldCreatedAt
}

// Apply filters rows by q and sorts them stably.
func Apply(rows []Summary, q Query) ([]Summary, error) {
	q, err := q.normalized()
	if err != nil {
		return nil, err
	}

	match, err := matcher(q)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		if match(r) {
			out = append(out, r)
		}
	}

	compare := comparator(q.SortBy)
	slices.SortStableFunc(out, func(a, b Summary) int {
		if q.Direction == Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out, nil
}

func matcher(q Query) (func(Summary) bool, error) {
	switch q.SearchBy {
	case FieldTotalSpent:
		if q.Term == "" {
			return func(Summary) bool { return true }, nil
		}
		floor, err := decimal.NewFromString(q.Term)
		if err != nil {
			return nil, ErrInvalidFilter
		}
		return func(s Summary) bool { return s.TotalSpent.GreaterThanOrEqual(floor) }, nil

	case FieldCreatedAt:
		return func(s Summary) bool {
			if s.CreatedAt.IsZero() {
				return false
			}
			return strings.Contains(s.CreatedAt.Format("02/01/2006"), q.Term)
		}, nil

	default:
		term := strings.ToLower(q.Term)
		return func(s Summary) bool {
			return strings.Contains(strings.ToLower(s.Username), term)
		}, nil
	}
}

func comparator(f Field) func(a, b Summary) int {
	switch f {
	case FieldTotalSpent:
		return func(a, b Summary) int { return a.TotalSpent.Cmp(b.TotalSpent) }
	case FieldCreatedAt:
		return func(a, b Summary) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return func(a, b Summary) int {
			return cmp.Compare(strings.ToLower(a.Username), strings.ToLower(b.Username))
		}
	}
}
