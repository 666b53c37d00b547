// Package middleware contains the ordered cross-cutting stages wrapped around
// every request. Stages that detect a fault forward an error value to the
// terminal error handler instead of writing responses themselves.
package middleware

import "net/http"

// SecurityHeaders unconditionally attaches the fixed security header set to
// every response. It never blocks a request.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Permissions-Policy", "geolocation=(), camera=(), microphone=()")

		// API responses must never be cached.
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		h.Set("Surrogate-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}
