package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/ai-tools-hub/internal/handler"
	"github.com/ashwinyue/ai-tools-hub/internal/logger"
)

const handlerDebugKey = handler.DebugKey

// RecoveryMiddleware 恢复中间件
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.L().Error("panic recovered",
					zap.Any("panic", err),
					zap.ByteString("stack", debug.Stack()),
				)
				handler.InternalServerError(c, fmt.Errorf("panic: %v", err))
				c.Abort()
			}
		}()
		c.Next()
	}
}
