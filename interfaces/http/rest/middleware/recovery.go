package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	apperrors "github.com/yarchiT/analogue-memory-backend/pkg/errors"
)

// Recovery converts handler panics into internal errors routed through the
// terminal error handler. The original cause is preserved for logging only.
func Recovery(logger *zap.Logger, errHandler *apperrors.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("Panic recovered",
						zap.Any("panic", rec),
						zap.String("requestID", GetRequestID(r.Context())),
						zap.String("stack", string(debug.Stack())),
					)
					errHandler.Handle(w, r, apperrors.NewInternal("An internal error occurred").
						WithCause(fmt.Errorf("panic: %v", rec)))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
