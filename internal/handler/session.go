package handler

import (
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "cart_session"

// session returns the shopper's cart session ID, minting a new one (and
// setting the cookie) when the request carries none or an invalid value.
// The cart is local to this browser profile; there is no cross-device sync.
func session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
