// Package report renders dashboard aggregates for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"salesdash/internal/analytics"
	"salesdash/internal/dataset"
)

type Section string

const (
	SectionSummary    Section = "summary"
	SectionDaily      Section = "daily"
	SectionCategories Section = "categories"
)

// Report holds every section computed from one snapshot.
type Report struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Summary     analytics.Cards         `json:"summary"`
	Daily       []analytics.DayBucket   `json:"daily"`
	Categories  []analytics.CategoryRow `json:"categories"`
	Colors      map[string]string       `json:"colors"`
}

func Build(snap dataset.Snapshot, now time.Time) Report {
	rows := analytics.GroupByCategory(snap.OrderItems, snap.Orders, snap.Products)
	return Report{
		GeneratedAt: now.UTC(),
		Summary:     analytics.Summarize(snap, now),
		Daily:       analytics.GroupByDay(snap.Orders),
		Categories:  rows,
		Colors:      analytics.Colors(analytics.Categories(rows)),
	}
}

// WriteJSON emits one section as indented JSON.
func (r Report) WriteJSON(w io.Writer, s Section) error {
	var v any
	switch s {
	case SectionSummary:
		v = r.Summary
	case SectionDaily:
		v = nonNil(r.Daily)
	case SectionCategories:
		v = struct {
			Rows   []analytics.CategoryRow `json:"rows"`
			Colors map[string]string       `json:"colors"`
		}{nonNil(r.Categories), r.Colors}
	default:
		return fmt.Errorf("unknown report section %q", s)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Render writes one section as a styled table.
func (r Report) Render(w io.Writer, s Section) error {
	switch s {
	case SectionSummary:
		return RenderSummary(w, r.Summary)
	case SectionDaily:
		return RenderDaily(w, r.Daily)
	case SectionCategories:
		return RenderCategories(w, r.Categories, r.Colors)
	}
	return fmt.Errorf("unknown report section %q", s)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func RenderSummary(w io.Writer, c analytics.Cards) error {
	section(w, "Summary")

	pct := c.CompletedPercent.StringFixed(2) + "%"
	switch {
	case c.CompletedPercent.GreaterThanOrEqual(decimal.NewFromInt(75)):
		pct = goodStyle.Render(pct)
	case c.CompletedPercent.LessThan(decimal.NewFromInt(25)):
		pct = warnStyle.Render(pct)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", mutedStyle.Render("Total users"), valueStyle.Render(fmt.Sprint(c.TotalUsers)))
	fmt.Fprintf(tw, "%s\t%s\n", mutedStyle.Render("Total sales"), valueStyle.Render(money(c.TotalSales)))
	fmt.Fprintf(tw, "%s\t%s\n", mutedStyle.Render("Completed orders"), pct)
	fmt.Fprintf(tw, "%s\t%s\n", mutedStyle.Render("Sales today"), valueStyle.Render(money(c.SalesToday)))
	return tw.Flush()
}

func RenderDaily(w io.Writer, buckets []analytics.DayBucket) error {
	section(w, "Sales per day")
	if len(buckets) == 0 {
		empty(w, "sales")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, headerStyle.Render("DATE")+"\t"+headerStyle.Render("SALES")+"\t"+headerStyle.Render("ORDERS")+"\t")
	total := decimal.Zero
	orders := 0
	for _, b := range buckets {
		fmt.Fprintf(tw, "%s\t%s\t%d\t\n", b.Date, money(b.Sales), b.Transactions)
		total = total.Add(b.Sales)
		orders += b.Transactions
	}
	fmt.Fprintf(tw, "%s\t%s\t%d\t\n", valueStyle.Render("total"), money(total), orders)
	return tw.Flush()
}

// RenderCategories prints one line per date and category with the chart
// color next to the category name.
func RenderCategories(w io.Writer, rows []analytics.CategoryRow, colors map[string]string) error {
	section(w, "Category quantity per day")
	if len(rows) == 0 {
		empty(w, "category sales")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join([]string{
		headerStyle.Render("DATE"),
		headerStyle.Render("CATEGORY"),
		headerStyle.Render("QTY"),
		headerStyle.Render("COLOR"),
	}, "\t"))
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.Date, r.Category, r.Quantity, mutedStyle.Render(colors[r.Category]))
	}
	return tw.Flush()
}
