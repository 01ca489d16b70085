package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/user"
	"salesdash/internal/utils"
)

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
}

// List accepts search_by, q, sort_by and direction query parameters.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := user.Query{
		SearchBy:  user.Field(qs.Get("search_by")),
		Term:      qs.Get("q"),
		SortBy:    user.Field(qs.Get("sort_by")),
		Direction: user.Direction(qs.Get("direction")),
	}

	rows, err := h.svc.List(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rows == nil {
		rows = []user.Summary{}
	}
	utils.WriteJSON(w, http.StatusOK, rows)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	detail, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, detail)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input user.NewUser
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Create(r.Context(), input); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]string{"message": "User inserted successfully"})
}
