package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径里的数字 ID。解析失败视同资源不存在，
// 与路由层按整型匹配路径参数的行为保持一致。
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}

// intQuery 解析查询串里的整数参数，缺失或非法时返回 fallback。
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

// isEmptyBody 判断绑定失败是否因为请求体为空。
func isEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}
