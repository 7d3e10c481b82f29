package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-contact-service/internal/adapter/gin/handler"
	"user-contact-service/internal/adapter/ratelimit"
	"user-contact-service/pkg/logger"
)

// RateLimiter returns a Gin middleware that spends one token per request from
// the bucket of the client IP and route. A nil limiter disables it.
func RateLimiter(limiter ratelimit.Limiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("http:%s:%s:%s", c.Request.Method, c.Request.URL.Path, c.ClientIP())

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Fail open
			logger.WithContext(c.Request.Context(), log).Warn("rate limiter error, allowing request", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			logger.WithContext(c.Request.Context(), log).Warn("rate limit exceeded", zap.String("key", key))
			c.Header("Retry-After", "1")
			handler.WriteProblem(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}

		c.Next()
	}
}
