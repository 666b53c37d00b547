package middleware

import (
	"net/http"

	apperrors "github.com/yarchiT/analogue-memory-backend/pkg/errors"
)

// OriginGuard rejects requests whose declared Origin is not on the allow-list
// before any handler runs. Requests without an Origin header (curl, mobile
// clients) are always allowed. The allow-list supports exact matches and the
// "*" wildcard.
func OriginGuard(allowedOrigins []string, errHandler *apperrors.Handler) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	wildcard := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			wildcard = true
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || wildcard {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := allowed[origin]; !ok {
				errHandler.Handle(w, r, apperrors.NewForbidden("Origin not allowed by CORS"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Preflight short-circuits OPTIONS requests with an empty 204 after the CORS
// stage has attached its headers.
func Preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AllowOrigin is the origin predicate handed to the CORS header stage; it
// mirrors the guard's allow-list semantics.
func AllowOrigin(allowedOrigins []string) func(r *http.Request, origin string) bool {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	wildcard := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			wildcard = true
		}
		allowed[origin] = struct{}{}
	}
	return func(r *http.Request, origin string) bool {
		if wildcard {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
