package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/ai-tools-hub/internal/config"
	"github.com/ashwinyue/ai-tools-hub/internal/handler"
	"github.com/ashwinyue/ai-tools-hub/internal/middleware"
	"github.com/ashwinyue/ai-tools-hub/internal/mockapi"
	"github.com/ashwinyue/ai-tools-hub/internal/service"
)

const (
	// PermissionManageTools 管理工具角色授权
	PermissionManageTools = "manage_tools"
	// PermissionManageTaxonomy 管理分类、标签、角色
	PermissionManageTaxonomy = "manage_taxonomy"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := newEngine(svc.Config)

	// 健康检查
	r.GET("/health", h.System.Health)

	requireAuth := middleware.RequireAuth(svc)
	optionalAuth := middleware.OptionalAuth(svc)
	manageTools := middleware.RequirePermission(svc, PermissionManageTools)
	manageTaxonomy := middleware.RequirePermission(svc, PermissionManageTaxonomy)

	api := r.Group("/api")
	{
		// 认证
		api.POST("/login", h.Auth.Login)
		api.POST("/logout", optionalAuth, h.Auth.Logout)
		api.GET("/user", requireAuth, h.Auth.GetCurrentUser)

		// 工具目录
		tools := api.Group("/ai-tools")
		{
			tools.GET("", h.Tool.ListTools)
			tools.POST("", h.Tool.CreateTool)
			tools.GET("/:id", h.Tool.GetTool)
			tools.PUT("/:id", h.Tool.UpdateTool)
			tools.PATCH("/:id", h.Tool.UpdateTool)
			tools.DELETE("/:id", h.Tool.DeleteTool)

			tools.PUT("/:id/roles", requireAuth, manageTools, h.Tool.SyncRoles)
			tools.GET("/:id/access", requireAuth, h.Tool.GetAccess)
			tools.POST("/:id/favorite", requireAuth, h.Usage.ToggleFavorite)
			tools.POST("/:id/usage", requireAuth, h.Usage.RecordUsage)
		}

		meta := api.Group("/ai-tools-meta")
		{
			meta.GET("/categories", h.Tool.ListCategories)
			meta.GET("/teams", h.Tool.ListTeams)
			meta.GET("/tags", h.Tool.ListTags)
		}

		api.GET("/favorites", requireAuth, h.Usage.ListFavorites)
		api.GET("/usage", requireAuth, h.Usage.ListUsage)

		// 分类
		categories := api.Group("/categories")
		{
			categories.GET("", h.Category.ListCategories)
			categories.GET("/:id", h.Category.GetCategory)
			categories.POST("", requireAuth, manageTaxonomy, h.Category.CreateCategory)
			categories.PUT("/:id", requireAuth, manageTaxonomy, h.Category.UpdateCategory)
			categories.DELETE("/:id", requireAuth, manageTaxonomy, h.Category.DeleteCategory)
		}

		// 标签
		tags := api.Group("/tags")
		{
			tags.GET("", h.Tag.ListTags)
			tags.GET("/:id", h.Tag.GetTag)
			tags.POST("", requireAuth, manageTaxonomy, h.Tag.CreateTag)
			tags.PUT("/:id", requireAuth, manageTaxonomy, h.Tag.UpdateTag)
			tags.DELETE("/:id", requireAuth, manageTaxonomy, h.Tag.DeleteTag)
		}

		// 角色
		roles := api.Group("/roles")
		{
			roles.GET("", h.Role.ListRoles)
			roles.GET("/:id", h.Role.GetRole)
			roles.POST("", requireAuth, manageTaxonomy, h.Role.CreateRole)
			roles.PUT("/:id", requireAuth, manageTaxonomy, h.Role.UpdateRole)
			roles.DELETE("/:id", requireAuth, manageTaxonomy, h.Role.DeleteRole)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		handler.NotFound(c, "Resource not found")
	})

	return r
}

// SetupMockRouter 只挂载内存数据的 mock 路由，不需要数据库
func SetupMockRouter(cfg *config.Config) *gin.Engine {
	r := newEngine(cfg)
	r.NoRoute(mockapi.Handler("/api"))
	return r
}

func newEngine(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = false

	// 中间件
	r.Use(middleware.DebugMiddleware(cfg.App.Debug))
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS))
	return r
}
