package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"salesdash/internal/auth"
	"salesdash/internal/logger"
	"salesdash/internal/session"
	"salesdash/internal/utils"
)

// Session attaches the session id of a valid token to the request context.
// Requests without a token pass through untouched; a token that does not
// verify is rejected with 401.
func Session(issuer *session.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := auth.ExtractToken(r)
			if tok == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := issuer.Parse(tok)
			if err != nil {
				logger.FromCtx(r.Context()).Warn("rejected session token", zap.Error(err))
				utils.WriteJSONError(w, "invalid session token", http.StatusUnauthorized)
				return
			}

			ctx := session.WithID(r.Context(), id)
			ctx = logger.WithSessionID(ctx, id.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession answers 401 unless Session stored an id for the request.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); !ok {
			utils.WriteJSONError(w, session.ErrMissingSession.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
