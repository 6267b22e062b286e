package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashwinyue/ai-tools-hub/internal/logger"
	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
)

type contextKey struct{}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// missingUserHash 用户不存在时参与比对的哈希，使两种失败耗时一致
func missingUserHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("ai-tools-hub/missing-user"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// WithUser 把当前用户放入 context
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// Service 认证服务
type Service struct {
	repo    *repository.Repositories
	tokens  *TokenIssuer
	revoked RevocationStore
	now     func() time.Time
	compare func(hash, password []byte) error
}

// NewService 创建认证服务，revoked 可以为 nil
func NewService(repo *repository.Repositories, tokens *TokenIssuer, revoked RevocationStore) *Service {
	return &Service{
		repo:    repo,
		tokens:  tokens,
		revoked: revoked,
		now:     time.Now,
		compare: bcrypt.CompareHashAndPassword,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User      *model.UserInfo `json:"user"`
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Authenticate 校验邮箱和密码并签发令牌
// 用户不存在、密码错误、账号停用返回同一个错误
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, *Token, error) {
	user, err := s.repo.Auth.GetUserByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			_ = s.compare(missingUserHash(), []byte(password))
			return nil, nil, types.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.compare([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, types.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, types.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, nil, err
	}

	now := s.now().UTC()
	if err := s.repo.Auth.TouchLastLogin(ctx, user.ID, now); err != nil {
		logger.L().Warn("failed to update last login", zap.Uint("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}

	return user, token, nil
}

// Login 登录
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, token, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:      user.ToUserInfo(),
		Token:     token.Value,
		TokenType: "Bearer",
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// ValidateToken 验证令牌并返回用户
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, types.ErrInvalidToken
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			logger.L().Warn("revocation lookup failed", zap.Error(err))
		} else if revoked {
			return nil, types.ErrInvalidToken
		}
	}

	user, err := s.repo.Auth.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, types.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, types.ErrInvalidToken
	}
	return user, nil
}

// CurrentUser 从 context 获取当前用户
func (s *Service) CurrentUser(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(contextKey{}).(*model.User)
	if !ok || user == nil {
		return nil, types.ErrUnauthenticated
	}
	return user, nil
}

// Logout 登出总是成功；配置了登出名单时记录令牌直到过期
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	if s.revoked == nil || tokenString == "" {
		return nil
	}

	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.L().Warn("failed to revoke token", zap.Uint("user_id", claims.UserID), zap.Error(err))
	}
	return nil
}

// HasPermission 用户角色是否拥有权限
func (s *Service) HasPermission(user *model.User, permission string) bool {
	if user == nil {
		return false
	}
	return user.Role != nil && user.Role.IsActive && user.Role.HasPermission(permission)
}

// HashPassword bcrypt 哈希
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// IsAuthError 是否为 401 类错误
func IsAuthError(err error) bool {
	return errors.Is(err, types.ErrInvalidCredentials) ||
		errors.Is(err, types.ErrInvalidToken) ||
		errors.Is(err, types.ErrUnauthenticated)
}
