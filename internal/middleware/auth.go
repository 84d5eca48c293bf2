package middleware

import (
	"net/http"

	"github.com/firesalehomes/firesale/internal/ctxkeys"
	"github.com/firesalehomes/firesale/internal/repository"
	"github.com/firesalehomes/firesale/internal/service"
)

// AuthMiddleware resolves the session cookie to an investor and stores it in
// the request context. Requests without a valid session pass through
// anonymously; a stale or forged cookie is cleared on the way.
func AuthMiddleware(authService *service.AuthService, investorRepository repository.InvestorRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(authService.SessionCookieName())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			investorID, err := authService.VerifyJWT(cookie.Value)
			if err != nil {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			investor, err := investorRepository.ByID(investorID)
			if err != nil {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			// The hash never travels further than this lookup.
			investor.PasswordHash = ""

			ctx := ctxkeys.WithInvestor(r.Context(), investor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireInvestor rejects unauthenticated requests with a 401.
func RequireInvestor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		investor := ctxkeys.Investor(r.Context())
		if investor == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Authentication required"}`))
			return
		}

		next.ServeHTTP(w, r)
	}
}
