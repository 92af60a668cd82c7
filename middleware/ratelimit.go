package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/ariebrainware/colposcopy-api/config"
	"github.com/ariebrainware/colposcopy-api/util"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRateLimit  = 30
	defaultRateWindow = time.Minute
)

// localCounters backs the limiter when Redis is not configured.
var localCounters = cache.New(defaultRateWindow, 5*time.Minute)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// RateLimiter limits requests per client IP and path in fixed windows.
// Counters live in Redis when available and in process memory otherwise.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit <= 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultRateWindow
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		endpoint := c.Request.URL.Path
		key := rateLimitKey(clientIP, endpoint)

		allowed, err := checkRateLimit(c.Request.Context(), key, cfg.Limit, cfg.Window)
		if err != nil {
			// Redis trouble must not take uploads down with it.
			util.LogEvent(util.Event{
				Type:    util.EventRateLimitDegraded,
				IP:      clientIP,
				Message: fmt.Sprintf("rate limit check failed: %v", err),
			})
			c.Next()
			return
		}

		if !allowed {
			util.LogEvent(util.Event{
				Type:    util.EventRateLimitExceeded,
				IP:      clientIP,
				Message: fmt.Sprintf("rate limit exceeded for endpoint: %s", endpoint),
			})
			util.CallTooManyRequests(c, util.APIErrorParams{
				Msg: "Too many requests. Please try again later.",
				Err: fmt.Errorf("rate limit exceeded"),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func rateLimitKey(clientIP, endpoint string) string {
	return fmt.Sprintf("ratelimit:%s:%s", endpoint, clientIP)
}

// checkRateLimit increments the counter for key and reports whether it is still within limit.
func checkRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return checkLocalRateLimit(key, limit, window)
	}

	count, err := rdb.Incr(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if count == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return count <= int64(limit), nil
}

func checkLocalRateLimit(key string, limit int, window time.Duration) (bool, error) {
	// Add is a no-op while the window's counter exists.
	_ = localCounters.Add(key, int64(0), window)
	count, err := localCounters.IncrementInt64(key, 1)
	if err != nil {
		return false, fmt.Errorf("failed to check local rate limit: %w", err)
	}
	return count <= int64(limit), nil
}

// ResetRateLimit clears the counter for a client and endpoint.
func ResetRateLimit(clientIP, endpoint string) error {
	key := rateLimitKey(clientIP, endpoint)
	localCounters.Delete(key)

	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return rdb.Del(context.Background(), key).Err()
}
