package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/ai-tools-hub/internal/service"
	"github.com/ashwinyue/ai-tools-hub/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.Services
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.svc.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, resp, "Login successful")
}

// GetCurrentUser 获取当前用户
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.svc.Auth.CurrentUser(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, user.ToUserInfo(), "User retrieved successfully")
}

// Logout 用户登出，总是成功
func (h *AuthHandler) Logout(c *gin.Context) {
	_ = h.svc.Auth.Logout(c.Request.Context(), BearerToken(c))
	Success(c, nil, "Logged out successfully")
}
