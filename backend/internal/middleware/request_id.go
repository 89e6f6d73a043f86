package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader 是请求标识使用的 HTTP 头。
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey 是请求标识在 gin.Context 里的键名。
	RequestIDKey = "request_id"
)

// RequestID 为每个请求生成（或透传）一个 UUID 标识，
// 写入响应头并挂到上下文，供日志与排障串联使用。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom 取出当前请求的标识，未设置时返回空串。
func RequestIDFrom(c *gin.Context) string {
	if id, ok := c.Get(RequestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
