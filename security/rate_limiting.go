package security

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: redisClient, limit: limit, window: window}
}

// allow counts one hit for the key inside the current window. Redis being
// unavailable fails open so checkout keeps working without it.
func (r *RateLimiter) allow(ctx context.Context, key string) bool {
	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		r.redis.Expire(ctx, key, r.window)
	}
	return count <= int64(r.limit)
}

// CheckoutLimit throttles checkout mutations per client IP.
func (r *RateLimiter) CheckoutLimit(e *core.RequestEvent) error {
	key := fmt.Sprintf("ratelimit:checkout:%s", e.RealIP())
	if !r.allow(e.Request.Context(), key) {
		return apis.NewApiError(http.StatusTooManyRequests, "Muitas tentativas. Aguarde um instante e tente novamente.", nil)
	}
	return e.Next()
}

// AntiBot rejects obvious scraping user agents before they reach the
// checkout flow.
func (r *RateLimiter) AntiBot(e *core.RequestEvent) error {
	if isSuspiciousUserAgent(e.Request.Header.Get("User-Agent")) {
		return apis.NewForbiddenError("Access denied", nil)
	}
	return e.Next()
}

func isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
