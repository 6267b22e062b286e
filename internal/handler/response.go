package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/ai-tools-hub/internal/logger"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
)

// DebugKey gin 上下文中的 debug 标记，为 true 时 500 响应携带原始错误
const DebugKey = "app.debug"

// Response 统一响应信封
type Response struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Success 成功响应 (200)
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Message: message})
}

// Created 创建成功响应 (201)
func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data, Message: message})
}

// Fail 失败响应
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, msg string) {
	Fail(c, http.StatusBadRequest, msg)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, msg string) {
	Fail(c, http.StatusNotFound, msg)
}

// ValidationFailed 422 错误响应
func ValidationFailed(c *gin.Context, verr *types.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  verr.Fields,
	})
}

// Error 根据错误类型返回相应的错误响应
func Error(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if verr, ok := types.AsValidation(err); ok {
		ValidationFailed(c, verr)
		return
	}

	switch {
	case errors.Is(err, types.ErrInvalidCredentials):
		Fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, types.ErrInvalidToken):
		Fail(c, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, types.ErrUnauthenticated):
		Fail(c, http.StatusUnauthorized, "Unauthenticated")
	case errors.Is(err, types.ErrForbidden):
		Fail(c, http.StatusForbidden, "Forbidden")
	case errors.Is(err, types.ErrNotFound):
		Fail(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, types.ErrConflict):
		Fail(c, http.StatusConflict, "Resource conflict")
	default:
		logger.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		InternalServerError(c, err)
	}
}

// InternalServerError 500 错误响应，非 debug 模式隐藏错误细节
func InternalServerError(c *gin.Context, err error) {
	msg := "Internal server error"
	if c.GetBool(DebugKey) && err != nil {
		msg = err.Error()
	}
	Fail(c, http.StatusInternalServerError, msg)
}

// bindJSON 解析请求体，失败时直接写 400
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		BadRequest(c, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// paramID 解析路径中的数字 ID，非法 ID 按不存在处理
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		NotFound(c, "Resource not found")
		return 0, false
	}
	return uint(id), true
}

// BearerToken 从 Authorization 头提取令牌
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
