package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	domainerror "github.com/project-ledger/backend/internal/domain/error"
	"github.com/project-ledger/backend/internal/integration/entrypoint/dto"
)

// RateLimiter limits requests per client IP.
type RateLimiter struct {
	name    string
	limiter *limiter.Limiter
}

// NewRateLimiter creates a limiter from a formatted rate such as "10-M". Counters
// live in Redis when client is set so limits hold across instances, in memory
// otherwise.
func NewRateLimiter(name, formatted string, client *redis.Client) (*RateLimiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid %s rate %q: %w", name, formatted, err)
	}

	options := limiter.StoreOptions{Prefix: "ratelimit:" + name}

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, options)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s rate limit store: %w", name, err)
		}
	} else {
		store = memory.NewStoreWithOptions(options)
	}

	return &RateLimiter{
		name:    name,
		limiter: limiter.New(store, rate),
	}, nil
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		logger := GetLoggerFromContext(c)

		limit, err := rl.limiter.Get(c.Request.Context(), ip)
		if err != nil {
			// A broken limiter store must not lock admins out.
			logger.Error("Failed to get rate limit context", "limiter", rl.name, "ip", ip, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(limit.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(limit.Reset, 10))

		if limit.Reached {
			logger.Warn("Rate limit exceeded", "limiter", rl.name, "ip", ip, "limit", limit.Limit)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}
