package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/ai-tools-hub/internal/database"
	"github.com/ashwinyue/ai-tools-hub/internal/service"
)

// SystemHandler 系统处理器
type SystemHandler struct {
	svc *service.Services
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(svc *service.Services) *SystemHandler {
	return &SystemHandler{svc: svc}
}

// Health 健康检查，附带数据库连通性
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	info := gin.H{
		"status":  "ok",
		"name":    h.svc.Config.App.Name,
		"version": h.svc.Config.App.Version,
	}

	db := &database.DB{DB: h.svc.Repos.DB}
	if err := db.Ping(ctx); err != nil {
		info["status"] = "degraded"
		info["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, Response{Success: false, Data: info, Message: "Database unreachable"})
		return
	}

	info["database"] = "ok"
	Success(c, info, "OK")
}
