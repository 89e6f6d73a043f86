package middleware

import (
	"time"

	"gamecrowd/backend/internal/infra/metrics"

	"github.com/gin-gonic/gin"
)

// RequestMetrics 按路由模板记录每个请求的次数与耗时。
// 使用 FullPath 而非原始 URL，避免 /api/games/123 之类的路径把指标打散。
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
