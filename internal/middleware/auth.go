package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/ai-tools-hub/internal/handler"
	"github.com/ashwinyue/ai-tools-hub/internal/logger"
	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/service"
	"github.com/ashwinyue/ai-tools-hub/internal/service/auth"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
)

const userKey = "user"

// OptionalAuth 有有效令牌时设置当前用户，否则匿名继续
func OptionalAuth(svc *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := handler.BearerToken(c)
		if token != "" {
			user, err := svc.Auth.ValidateToken(c.Request.Context(), token)
			switch {
			case err == nil:
				setUser(c, user)
			case !auth.IsAuthError(err):
				logger.L().Warn("optional auth lookup failed", zap.Error(err))
			}
		}
		c.Next()
	}
}

// RequireAuth 要求有效认证
// 必须提供有效的 Bearer token，否则返回 401
func RequireAuth(svc *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := handler.BearerToken(c)
		if token == "" {
			handler.Error(c, types.ErrUnauthenticated)
			c.Abort()
			return
		}

		user, err := svc.Auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			handler.Error(c, err)
			c.Abort()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// RequirePermission 要求当前用户的角色拥有权限，需在 RequireAuth 之后使用
func RequirePermission(svc *service.Services, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			handler.Error(c, types.ErrUnauthenticated)
			c.Abort()
			return
		}
		if !svc.Auth.HasPermission(user, permission) {
			handler.Error(c, types.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func setUser(c *gin.Context, user *model.User) {
	c.Set(userKey, user)
	c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), user))
}

// GetCurrentUser 从上下文获取当前用户
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	user, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}
