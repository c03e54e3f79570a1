package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"museum-backend/pkg/response"
)

const rateLimitPrefix = "museum:rate_limit:"

// RateLimiter 滑动窗口计数，实现见 pkg/redis
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

func rateLimitKey(c *gin.Context) string {
	return strings.Join([]string{rateLimitPrefix + c.ClientIP(), c.FullPath()}, ":")
}

// RateLimit 按 IP + 路由限流，窗口 window 内最多 limit 次
// limiter 为 nil 或计数出错时放行，超限返回 429 并带 Retry-After
func RateLimit(limiter RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	if limiter == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(c *gin.Context) {
		allowed, err := limiter.CheckRateLimit(c.Request.Context(), rateLimitKey(c), limit, window)
		if err == nil && !allowed {
			c.Header("Retry-After", retryAfter)
			response.Error(c, http.StatusTooManyRequests, response.CodeTooManyRequests, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}
