package service

import (
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ashwinyue/ai-tools-hub/internal/config"
	"github.com/ashwinyue/ai-tools-hub/internal/logger"
	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/service/auth"
	"github.com/ashwinyue/ai-tools-hub/internal/service/category"
	"github.com/ashwinyue/ai-tools-hub/internal/service/role"
	"github.com/ashwinyue/ai-tools-hub/internal/service/tag"
	"github.com/ashwinyue/ai-tools-hub/internal/service/tool"
	"github.com/ashwinyue/ai-tools-hub/internal/service/usage"
)

// Services 服务集合
type Services struct {
	Auth     *auth.Service
	Tool     *tool.Service
	Category *category.Service
	Tag      *tag.Service
	Role     *role.Service
	Usage    *usage.Service

	// 配置
	Config *config.Config
	Repos  *repository.Repositories
}

// NewServices 创建所有服务，redisClient 为 nil 时登出不记录令牌
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) *Services {
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		// 只有 debug 模式允许为空，见 config.Validate
		secret = uuid.NewString()
		logger.L().Warn("auth.jwtSecret is empty, using a random secret; tokens will not survive restarts")
	}
	tokens := auth.NewTokenIssuer(secret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)

	var revoked auth.RevocationStore
	if redisClient != nil {
		revoked = auth.NewRedisRevocationStore(redisClient)
	}

	return &Services{
		Auth:     auth.NewService(repo, tokens, revoked),
		Tool:     tool.NewService(repo),
		Category: category.NewService(repo),
		Tag:      tag.NewService(repo),
		Role:     role.NewService(repo),
		Usage:    usage.NewService(repo),

		Config: cfg,
		Repos:  repo,
	}
}
