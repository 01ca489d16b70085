package analytics

import "github.com/shopspring/decimal"

// DayBucket is one point of the sales-per-day chart.
type DayBucket struct {
	Date         string          `json:"date"`
	Sales        decimal.Decimal `json:"sales"`
	Transactions int             `json:"transactions"`
}

type DayCount struct {
	Date         string `json:"date"`
	Transactions int    `json:"transactions"`
}

// CategoryRow is the quantity sold of one category on one day.
type CategoryRow struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// Cards are the headline numbers of the dashboard.
type Cards struct {
	TotalUsers       int             `json:"total_users"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	CompletedPercent decimal.Decimal `json:"completed_percentage"`
	SalesToday       decimal.Decimal `json:"sales_today"`
}
