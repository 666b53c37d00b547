package middleware

import (
	"net/http"

	apperrors "github.com/yarchiT/analogue-memory-backend/pkg/errors"
)

// BodyLimit enforces the request body size ceiling. Requests declaring a
// larger Content-Length are rejected immediately; bodies without a declared
// length are capped with MaxBytesReader so an oversized chunked body fails at
// read time, before parsing completes.
func BodyLimit(maxBytes int64, errHandler *apperrors.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				errHandler.Handle(w, r, apperrors.NewPayloadTooLarge("Request body exceeds the allowed size"))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
