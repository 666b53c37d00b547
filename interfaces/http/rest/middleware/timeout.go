package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/yarchiT/analogue-memory-backend/pkg/errors"
)

// Timeout enforces a per-request deadline. When the deadline elapses before a
// response is produced, a 503 is emitted and any later writes from the handler
// are discarded. The deadline timer is cancelled on every exit path, including
// client-initiated disconnects, so no scheduled work leaks.
func Timeout(d time.Duration, logger *zap.Logger, errHandler *apperrors.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			tw := newTimeoutWriter(w)
			done := make(chan struct{})

			go func() {
				defer close(done)
				defer func() {
					if rec := recover(); rec != nil {
						// Recovery runs inside this goroutine; this is a
						// backstop for panics raised above it.
						logger.Error("Panic escaped recovery stage", zap.Any("panic", rec))
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				canEmit := tw.abort()
				if ctx.Err() != context.DeadlineExceeded {
					// Client went away; nothing left to write. The writer is
					// already sealed so the handler cannot touch the
					// connection after this returns.
					return
				}
				if !canEmit {
					// The handler started writing; the response is theirs.
					return
				}
				logger.Warn("Request timeout",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				errHandler.Handle(w, r, apperrors.NewServiceUnavailable(
					"Request timeout - the server took too long to respond"))
			}
		})
	}
}

// timeoutWriter is the ResponseWriter handed to the inner handler. The handler
// only ever sees a detached header map; real headers are committed together
// with the first write, under the same mutex the abort path takes. Once
// aborted, every handler write (headers included) lands in the detached map or
// is dropped, so a late-finishing handler never touches the connection
// concurrently with the timeout response or after it.
type timeoutWriter struct {
	w http.ResponseWriter
	h http.Header

	mu          sync.Mutex
	wroteHeader bool
	aborted     bool
}

func newTimeoutWriter(w http.ResponseWriter) *timeoutWriter {
	return &timeoutWriter{w: w, h: make(http.Header)}
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.h
}

func (tw *timeoutWriter) WriteHeader(status int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.aborted || tw.wroteHeader {
		return
	}
	tw.commitHeader()
	tw.w.WriteHeader(status)
}

func (tw *timeoutWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.aborted {
		return len(p), nil
	}
	if !tw.wroteHeader {
		tw.commitHeader()
	}
	return tw.w.Write(p)
}

// commitHeader copies the detached header map onto the real writer. Callers
// must hold the mutex.
func (tw *timeoutWriter) commitHeader() {
	tw.wroteHeader = true
	dst := tw.w.Header()
	for key, values := range tw.h {
		dst[key] = values
	}
}

// abort seals the writer: all handler writes from here on are discarded. It
// reports whether the response was still unwritten, i.e. whether the caller
// may emit its own response.
func (tw *timeoutWriter) abort() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.aborted {
		return !tw.wroteHeader
	}
	tw.aborted = true
	return !tw.wroteHeader
}
