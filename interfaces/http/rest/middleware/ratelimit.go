package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/yarchiT/analogue-memory-backend/pkg/errors"
	"github.com/yarchiT/analogue-memory-backend/pkg/ratelimit"
)

// RateLimitOptions configures the rate limiting stage.
type RateLimitOptions struct {
	Limiter *ratelimit.SlidingWindow
	Logger  *zap.Logger
	Errors  *apperrors.Handler
	// SkipLoopback exempts localhost clients; enabled in development.
	SkipLoopback bool
}

// RateLimit counts requests per client address against a sliding window.
// Exceeding the budget short-circuits with 429 and a retry hint derived from
// the window size. RateLimit-* headers are attached to every counted response.
func RateLimit(opts RateLimitOptions) func(http.Handler) http.Handler {
	retryMinutes := int(math.Ceil(opts.Limiter.Window().Minutes()))
	if retryMinutes < 1 {
		retryMinutes = 1
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if opts.SkipLoopback && isLoopback(ip) {
				next.ServeHTTP(w, r)
				return
			}

			res := opts.Limiter.Allow(ip)

			h := w.Header()
			h.Set("RateLimit-Limit", strconv.Itoa(opts.Limiter.Limit()))
			h.Set("RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("RateLimit-Reset", strconv.FormatInt(res.Reset.Unix(), 10))

			if !res.Allowed {
				opts.Logger.Warn("Rate limit exceeded", zap.String("ip", ip))
				h.Set("Retry-After", strconv.Itoa(int(time.Until(res.Reset).Seconds())+1))
				opts.Errors.Handle(w, r, apperrors.NewTooManyRequests(fmt.Sprintf(
					"Too many requests from this IP, please try again after %d minute(s)", retryMinutes)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client address, tolerating bare hosts left by an
// upstream RealIP stage.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func isLoopback(ip string) bool {
	if ip == "localhost" {
		return true
	}
	parsed := net.ParseIP(ip)
	return parsed != nil && parsed.IsLoopback()
}
