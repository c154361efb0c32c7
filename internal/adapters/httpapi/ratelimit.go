package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const rateLimitKeyPrefix = "ratelimit:search:"

// SearchRateLimit applies a fixed-window per-client cap to the public
// registry search. Redis failures let the request through so the store
// stays the only hard dependency.
func SearchRateLimit(client *redis.Client, perMinute int, logger zerolog.Logger) gin.HandlerFunc {
	limiterLogger := logger.With().Str("component", "search_rate_limit").Logger()

	return func(c *gin.Context) {
		if perMinute <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := rateLimitKeyPrefix + c.ClientIP()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			limiterLogger.Warn().Err(err).Msg("Rate limit check failed, letting request through")
			c.Next()
			return
		}

		if count == 1 {
			if err := client.Expire(ctx, key, time.Minute).Err(); err != nil {
				limiterLogger.Warn().Err(err).Msg("Failed to set rate limit window")
			}
		}

		if count > int64(perMinute) {
			respondErrorAbort(c, http.StatusTooManyRequests, gin.H{"detail": "Too many search requests"})
			return
		}

		c.Next()
	}
}

func respondErrorAbort(c *gin.Context, code int, detail any) {
	c.AbortWithStatusJSON(code, Envelope{Error: detail})
}
