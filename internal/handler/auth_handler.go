package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/serenitybot/serenity/internal/middleware"
	"github.com/serenitybot/serenity/internal/service"
	"github.com/serenitybot/serenity/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.Services
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register 注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	resp, err := h.svc.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		log.Printf("register failed: %v", err)
		Error(c, err)
		return
	}

	Created(c, resp)
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	resp, err := h.svc.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, resp)
}

// Profile 当前用户信息
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		Unauthorized(c, "Not authorized")
		return
	}

	Success(c, gin.H{
		"_id":      user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// Logout 登出，撤销当前令牌
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token == "" {
		Unauthorized(c, "Not authorized")
		return
	}

	if err := h.svc.Auth.Logout(c.Request.Context(), token); err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{"message": "Logged out"})
}
