package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Fields masked before a request body reaches the log.
var redactedFields = []string{"password", "passwordConfirm", "token"}

// RequestLogger records each request and its response outcome. Responses with
// status >= 400 escalate to warn level. Outside production the request body is
// logged at debug level with credential-bearing fields masked.
func RequestLogger(logger *zap.Logger, logBody bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			logger.Info("Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remoteAddr", r.RemoteAddr),
				zap.String("requestID", GetRequestID(r.Context())),
			)

			if logBody && r.Body != nil && r.ContentLength != 0 {
				if snapshot := redactBody(r); snapshot != "" {
					logger.Debug("Request body", zap.String("body", snapshot))
				}
			}

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", GetRequestID(r.Context())),
			}
			if ww.Status() >= 400 {
				logger.Warn("Response", fields...)
			} else {
				logger.Info("Response", fields...)
			}
		})
	}
}

// redactBody reads and restores the request body, returning a JSON snapshot
// with sensitive fields masked. Non-JSON bodies are skipped.
func redactBody(r *http.Request) string {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, field := range redactedFields {
		if _, ok := body[field]; ok {
			body[field] = "[REDACTED]"
		}
	}
	redacted, err := json.Marshal(body)
	if err != nil {
		return ""
	}
	return string(redacted)
}
