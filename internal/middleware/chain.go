package middleware

import "net/http"

// Chain wraps h with the given middleware so requests pass through them in
// the order listed.
//
// Example:
//
//	handler := Chain(mux,
//	    RequestLogging,         // runs first
//	    AuthMiddleware(...),    // runs second
//	)
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	// Wrap in reverse so the first middleware listed sees the request first.
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
