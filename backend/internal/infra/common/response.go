package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 本服务的线上契约刻意保持扁平：成功时直接返回文档本身
// （数组、对象或分页信封），失败时统一为 {"error": "<message>"}。

// JSON 以指定状态码返回成功结果。
func JSON(c *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, data)
}

// Created 返回 201 Created 的成功响应。
func Created(c *gin.Context, data any) {
	JSON(c, http.StatusCreated, data)
}

// Message 返回 {"message": ...} 形式的操作确认。
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Error 以统一格式返回错误结果。
func Error(c *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = http.StatusText(status)
	}
	c.JSON(status, gin.H{"error": message})
}
