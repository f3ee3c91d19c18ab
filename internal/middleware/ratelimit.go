package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter applies a fixed-window per-IP limit ahead of all handlers.
// The window counter lives in Redis so limits hold across replicas.
type RateLimiter struct {
	redis  *redis.Client
	name   string
	limit  int
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, name string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		name:   name,
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		key := fmt.Sprintf("ratelimit:%s:%s", rl.name, ip)

		count, err := rl.redis.Incr(r.Context(), key).Result()
		if err != nil {
			// Admission control must not take the API down with it.
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.redis.Expire(r.Context(), key, rl.window)
		}

		if count > int64(rl.limit) {
			writeAuthError(w, http.StatusTooManyRequests, "Too many requests",
				"Too many requests from this IP, please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
