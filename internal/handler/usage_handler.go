package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/ai-tools-hub/internal/service"
	"github.com/ashwinyue/ai-tools-hub/internal/service/usage"
)

// UsageHandler 使用记录和收藏处理器
type UsageHandler struct {
	svc *service.Services
}

// NewUsageHandler 创建使用记录处理器
func NewUsageHandler(svc *service.Services) *UsageHandler {
	return &UsageHandler{svc: svc}
}

// RecordUsage POST /ai-tools/:id/usage，请求体可省略
func (h *UsageHandler) RecordUsage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	user, err := h.svc.Auth.CurrentUser(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	var req usage.RecordUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "Invalid JSON body: "+err.Error())
		return
	}

	row, err := h.svc.Usage.RecordUsage(c.Request.Context(), user.ID, id, req.Metadata)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, row, "Usage recorded successfully")
}

// ListUsage GET /usage
func (h *UsageHandler) ListUsage(c *gin.Context) {
	user, err := h.svc.Auth.CurrentUser(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	logs, err := h.svc.Usage.ListUsage(c.Request.Context(), user.ID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, logs, "Usage retrieved successfully")
}

// ToggleFavorite POST /ai-tools/:id/favorite
func (h *UsageHandler) ToggleFavorite(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	user, err := h.svc.Auth.CurrentUser(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	result, err := h.svc.Usage.ToggleFavorite(c.Request.Context(), user.ID, id)
	if err != nil {
		Error(c, err)
		return
	}

	msg := "Tool removed from favorites"
	if result.Favorited {
		msg = "Tool added to favorites"
	}
	Success(c, result, msg)
}

// ListFavorites GET /favorites
func (h *UsageHandler) ListFavorites(c *gin.Context) {
	user, err := h.svc.Auth.CurrentUser(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	favorites, err := h.svc.Usage.ListFavorites(c.Request.Context(), user.ID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, favorites, "Favorites retrieved successfully")
}
