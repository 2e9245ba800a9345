package auth

import (
	"net/http"
	"time"
)

// CookieName is the session carrier cookie.
const CookieName = "token"

// ReadToken extracts the raw session token from the request cookie.
func ReadToken(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// WriteToken attaches the token to the response. The cookie is HTTP-only and
// same-site strict, scoped to the whole application, with a Max-Age matching
// the token lifetime.
func WriteToken(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearToken overwrites the carrier with an empty, already-expired cookie
// (Max-Age=0). There is no server-side session state to destroy.
func ClearToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
