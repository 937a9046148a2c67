package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

// RateLimiter provides Redis-backed IP rate limiting using a fixed-window counter.
// All server instances share the counters. When Redis is unreachable requests pass through.
type RateLimiter struct {
	redisClient *redis.Client
	limit       int
	window      time.Duration
	logger      logger.Interface
	now         func() time.Time
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration, logger logger.Interface) *RateLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &RateLimiter{
		redisClient: redisClient,
		limit:       limit,
		window:      window,
		logger:      logger,
		now:         time.Now,
	}
}

// Limit enforces the limit per client IP and scope, so each route group gets its own budget.
func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		windowSeconds := int64(rl.window.Seconds())
		windowBucket := rl.now().Unix() / windowSeconds
		key := fmt.Sprintf("ticketing:ratelimit:%s:%s:%d", scope, c.ClientIP(), windowBucket)

		ctx := c.Request.Context()

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if count == 1 {
			rl.redisClient.Expire(ctx, key, rl.window+time.Second)
		}

		if count > int64(rl.limit) {
			retryAfter := (windowBucket+1)*windowSeconds - rl.now().Unix()
			c.Header("Retry-After", strconv.FormatInt(max(retryAfter, 1), 10))
			abortWith(c, errors.NewTooManyRequestsError("rate limit exceeded, please try again later"))
			return
		}

		c.Next()
	}
}
