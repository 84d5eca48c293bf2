package middleware

import (
	"crypto/subtle"
	"net/http"
)

const adminCookieName = "fire_admin_token"

// RequireAdmin gates a route behind the static admin access token. The token
// is accepted from the admin session cookie or the X-Admin-Token header.
// An empty configured token disables admin access entirely rather than
// leaving the routes open.
func RequireAdmin(adminToken string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("X-Admin-Token")
			if presented == "" {
				if cookie, err := r.Cookie(adminCookieName); err == nil {
					presented = cookie.Value
				}
			}

			if adminToken == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(adminToken)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"Unauthorized"}`))
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}

// AdminCookieName is exposed for the admin login handler.
func AdminCookieName() string {
	return adminCookieName
}
