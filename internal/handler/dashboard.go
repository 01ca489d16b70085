package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/analytics"
	"salesdash/internal/dataset"
	"salesdash/internal/utils"
)

// SnapshotLoader is satisfied by *backend.Loader.
type SnapshotLoader interface {
	Load(ctx context.Context) (*dataset.Snapshot, error)
}

type DashboardHandler struct {
	loader SnapshotLoader
	now    func() time.Time
}

func NewDashboardHandler(loader SnapshotLoader) *DashboardHandler {
	return &DashboardHandler{loader: loader, now: time.Now}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
	r.Get("/sales-per-day", h.SalesPerDay)
	r.Get("/transactions-per-day", h.TransactionsPerDay)
	r.Get("/category-per-day", h.CategoryPerDay)
}

type categoryChartResponse struct {
	Rows       []analytics.CategoryRow `json:"rows"`
	Categories []string                `json:"categories"`
	Colors     map[string]string       `json:"colors"`
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loader.Load(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, analytics.Summarize(*snap, h.now()))
}

func (h *DashboardHandler) SalesPerDay(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loader.Load(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	buckets := analytics.GroupByDay(snap.Orders)
	if buckets == nil {
		buckets = []analytics.DayBucket{}
	}
	utils.WriteJSON(w, http.StatusOK, buckets)
}

func (h *DashboardHandler) TransactionsPerDay(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loader.Load(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, analytics.TransactionsPerDay(snap.Orders))
}

func (h *DashboardHandler) CategoryPerDay(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loader.Load(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	rows := analytics.GroupByCategory(snap.OrderItems, snap.Orders, snap.Products)
	categories := analytics.Categories(rows)
	if rows == nil {
		rows = []analytics.CategoryRow{}
	}
	if categories == nil {
		categories = []string{}
	}
	utils.WriteJSON(w, http.StatusOK, categoryChartResponse{
		Rows:       rows,
		Categories: categories,
		Colors:     analytics.Colors(categories),
	})
}
