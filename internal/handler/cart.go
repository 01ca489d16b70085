package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"salesdash/internal/cart"
	"salesdash/internal/order"
	"salesdash/internal/session"
	"salesdash/internal/utils"
)

// CartHandler serves the session cart. Routes must sit behind
// middleware.RequireSession.
type CartHandler struct {
	carts  cart.Service
	orders order.Service
}

func NewCartHandler(carts cart.Service, orders order.Service) *CartHandler {
	return &CartHandler{carts: carts, orders: orders}
}

func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Delete("/", h.Clear)
	r.Put("/user", h.SetUser)
	r.Post("/items", h.AddItem)
	r.Patch("/items/{productID}", h.SetQuantity)
	r.Delete("/items/{productID}", h.RemoveItem)
	r.Post("/checkout", h.Checkout)
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// setQuantityRequest takes zero to remove the line; negatives are rejected.
type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type setUserRequest struct {
	UserID string `json:"user_id"`
}

type addItemResponse struct {
	Cart   cart.View      `json:"cart"`
	Result cart.AddResult `json:"result"`
}

type setQuantityResponse struct {
	Cart    cart.View `json:"cart"`
	Clamped bool      `json:"clamped"`
}

func sessionID(r *http.Request) (uuid.UUID, error) {
	id, ok := session.FromContext(r.Context())
	if !ok {
		return uuid.Nil, session.ErrMissingSession
	}
	return id, nil
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.carts.Get(r.Context(), sid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c.View())
}

func (h *CartHandler) SetUser(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req setUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.carts.SetUser(r.Context(), sid, req.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c.View())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.ProductID <= 0 {
		writeError(w, r, utils.ErrInvalidID)
		return
	}

	c, res, err := h.carts.AddItem(r.Context(), sid, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, addItemResponse{Cart: c.View(), Result: res})
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req setQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Quantity < 0 {
		writeError(w, r, cart.ErrInvalidQuantity)
		return
	}

	c, clamped, err := h.carts.SetQuantity(r.Context(), sid, productID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, setQuantityResponse{Cart: c.View(), Clamped: clamped})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.carts.RemoveItem(r.Context(), sid, productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c.View())
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.carts.Clear(r.Context(), sid); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	receipt, err := h.orders.Checkout(r.Context(), sid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, receipt)
}
