// Package analytics turns a backend snapshot into chart series and summary
// cards. Every function is a pure pass over its inputs; none of them mutate
// the slices they receive.
package analytics

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"salesdash/internal/dataset"
	"salesdash/internal/order"
	"salesdash/internal/product"
)

const dayLayout = "2006-01-02"

func dayKey(t time.Time) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	return t.UTC().Format(dayLayout), true
}

// GroupByDay buckets orders by UTC creation date. Orders without a valid
// timestamp are skipped.
func GroupByDay(orders []order.Order) []DayBucket {
	index := make(map[string]int)
	var buckets []DayBucket

	for _, o := range orders {
		key, ok := dayKey(o.CreatedAt)
		if !ok {
			continue
		}
		i, seen := index[key]
		if !seen {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, DayBucket{Date: key, Sales: decimal.Zero})
		}
		buckets[i].Sales = buckets[i].Sales.Add(o.TotalAmount)
		buckets[i].Transactions++
	}

	for i := range buckets {
		buckets[i].Sales = buckets[i].Sales.Round(2)
	}
	slices.SortFunc(buckets, func(a, b DayBucket) int {
		return cmp.Compare(a.Date, b.Date)
	})
	return buckets
}

func TransactionsPerDay(orders []order.Order) []DayCount {
	buckets := GroupByDay(orders)
	out := make([]DayCount, len(buckets))
	for i, b := range buckets {
		out[i] = DayCount{Date: b.Date, Transactions: b.Transactions}
	}
	return out
}

// GroupByCategory sums item quantities per (day, category). Items whose
// order or product is unknown, or whose order has no valid date, are
// skipped. Rows are ordered by date, then by first appearance.
func GroupByCategory(items []order.LineItem, orders []order.Order, products []product.Product) []CategoryRow {
	orderDay := make(map[int64]string, len(orders))
	for _, o := range orders {
		if key, ok := dayKey(o.CreatedAt); ok {
			if _, dup := orderDay[o.ID]; !dup {
				orderDay[o.ID] = key
			}
		}
	}
	category := make(map[int64]string, len(products))
	for _, p := range products {
		if _, dup := category[p.ID]; !dup {
			category[p.ID] = p.Category
		}
	}

	type key struct{ date, category string }
	index := make(map[key]int)
	var rows []CategoryRow

	for _, it := range items {
		date, ok := orderDay[it.OrderID]
		if !ok {
			continue
		}
		cat, ok := category[it.ProductID]
		if !ok {
			continue
		}
		k := key{date, cat}
		i, seen := index[k]
		if !seen {
			i = len(rows)
			index[k] = i
			rows = append(rows, CategoryRow{Date: date, Category: cat})
		}
		rows[i].Quantity += it.Quantity
	}

	slices.SortStableFunc(rows, func(a, b CategoryRow) int {
		return cmp.Compare(a.Date, b.Date)
	})
	return rows
}

// Categories lists the distinct categories of rows in first-seen order.
func Categories(rows []CategoryRow) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}

var hundred = decimal.NewFromInt(100)

// Summarize computes the dashboard cards. "Today" is now's UTC date.
func Summarize(snap dataset.Snapshot, now time.Time) Cards {
	cards := Cards{
		TotalSales:       decimal.Zero,
		CompletedPercent: decimal.Zero,
		SalesToday:       decimal.Zero,
	}

	users := make(map[int64]struct{})
	for _, u := range snap.Users {
		if u.ID > 0 {
			users[u.ID] = struct{}{}
		}
	}
	cards.TotalUsers = len(users)

	today, _ := dayKey(now)
	withStatus, completed := 0, 0
	for _, o := range snap.Orders {
		if o.Status != "" {
			withStatus++
		}
		if !o.IsCompleted() {
			continue
		}
		completed++
		cards.TotalSales = cards.TotalSales.Add(o.TotalAmount)
		if day, ok := dayKey(o.CreatedAt); ok && day == today {
			cards.SalesToday = cards.SalesToday.Add(o.TotalAmount)
		}
	}

	if withStatus > 0 {
		cards.CompletedPercent = decimal.NewFromInt(int64(completed)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(withStatus))).
			Round(2)
	}
	cards.TotalSales = cards.TotalSales.Round(2)
	cards.SalesToday = cards.SalesToday.Round(2)
	return cards
}
