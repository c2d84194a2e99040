package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenitybot/serenity/internal/repository"
	"github.com/serenitybot/serenity/internal/service/auth"
	"github.com/serenitybot/serenity/internal/service/llm"
)

// SuccessResponse 成功响应
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Success 成功响应 (200)
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

// Created 创建成功响应 (201)
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: msg})
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Message: msg})
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Success: false, Message: msg})
}

// Conflict 409 错误响应
func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, ErrorResponse{Success: false, Message: msg})
}

// PayloadTooLarge 413 错误响应
func PayloadTooLarge(c *gin.Context, msg string) {
	c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Success: false, Message: msg})
}

// InternalServerError 500 错误响应
func InternalServerError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Message: msg})
}

// Error 按错误类型映射状态码
// 意外错误只返回笼统信息，细节留在服务端日志
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "Resource not found")
	case errors.Is(err, repository.ErrConflict):
		Conflict(c, "The conversation was modified concurrently, please retry")
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(c, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(c, "Not authorized, token failed")
	case errors.Is(err, auth.ErrUserExists):
		BadRequest(c, "User already exists")
	case errors.Is(err, llm.ErrGeneration):
		InternalServerError(c, "Server error processing your message")
	default:
		InternalServerError(c, "Server error")
	}
}
