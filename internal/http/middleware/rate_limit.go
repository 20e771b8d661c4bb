package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/diagnosis/hbnb-listings/internal/http/response"
	"github.com/diagnosis/hbnb-listings/pkg/logger"
)

// LoginRateLimit throttles login attempts per email+IP using a fixed
// redis window. The limiter fails open when redis is unavailable.
func LoginRateLimit(rdb *redis.Client, attempts int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil {
				next.ServeHTTP(w, r)
				return
			}

			// Peek at the email without consuming the body for the handler.
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
			if err != nil {
				response.BadRequest(w, "failed to read request body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			var peek struct {
				Email string `json:"email"`
			}
			_ = json.Unmarshal(body, &peek)

			email := strings.ToLower(strings.TrimSpace(peek.Email))
			key := "rl:login:" + email + ":" + clientIP(r)

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				logger.WarnContext(r.Context(), "rate limit check failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(r.Context(), key, window)
			}
			if count > int64(attempts) {
				response.RateLimit(w, "too many login attempts, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the real client IP from the request
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
