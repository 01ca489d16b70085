package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"salesdash/internal/auth"
	"salesdash/internal/session"
	"salesdash/internal/utils"
)

type SessionHandler struct {
	issuer *session.Issuer
	secure bool
}

// NewSessionHandler marks the cookie Secure when secure is set.
func NewSessionHandler(issuer *session.Issuer, secure bool) *SessionHandler {
	return &SessionHandler{issuer: issuer, secure: secure}
}

func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
}

type sessionResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Create starts a new anonymous session and returns its token both in the
// body and as an HttpOnly cookie.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := uuid.New()
	token, expires, err := h.issuer.Issue(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteJSON(w, http.StatusCreated, sessionResponse{
		Token:     token,
		SessionID: id.String(),
		ExpiresAt: expires.UTC(),
	})
}
