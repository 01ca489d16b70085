package auth

import (
	"net/http"
	"strings"
)

// CookieName is where the dashboard may keep its session token instead of
// sending an Authorization header.
const CookieName = "salesdash_session"

// ExtractToken returns the session token from the Authorization bearer
// header, falling back to the session cookie.
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if tok := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")); tok != "" {
			return tok
		}
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}
