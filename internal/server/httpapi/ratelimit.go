package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/dmitrijs2005/contacthub/internal/logging"
)

// Counter is the fixed-window hit counter behind RateLimit. Incr
// returns the window's running count; the first hit of a window arms
// the window expiry.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter counts hits with INCR and arms the window TTL on the
// first hit.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// RateLimit enforces at most times requests per window per client IP on
// the route it wraps. When the counter backend is unreachable the
// limiter lets the request through and logs a warning, availability
// wins over throttling.
func RateLimit(counter Counter, logger logging.Logger, times int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "rl:" + c.FullPath() + ":" + c.ClientIP()

		count, err := counter.Incr(ctx, key, window)
		if err != nil {
			logger.Warn(ctx, "rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		if count > times {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Too many requests"})
			return
		}

		c.Next()
	}
}
