package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
)

// Service 使用记录和收藏服务
type Service struct {
	repo *repository.Repositories
	now  func() time.Time
}

// NewService 创建使用记录服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo, now: time.Now}
}

// RecordUsageRequest 记录使用请求
type RecordUsageRequest struct {
	Metadata map[string]interface{} `json:"metadata"`
}

// FavoriteResult 收藏切换结果
type FavoriteResult struct {
	ToolID    uint  `json:"ai_tool_id"`
	Favorited bool  `json:"favorited"`
	Count     int64 `json:"favorites_count"`
}

// RecordUsage 记录一次使用，同一用户和工具只保留一行
func (s *Service) RecordUsage(ctx context.Context, userID, toolID uint, metadata map[string]interface{}) (*model.UsageLog, error) {
	if err := s.ensureTool(ctx, toolID); err != nil {
		return nil, err
	}

	row, err := s.repo.Usage.Increment(ctx, userID, toolID, s.now().UTC(), metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to record usage: %w", err)
	}
	return row, nil
}

// ListUsage 用户的使用记录，最近使用在前
func (s *Service) ListUsage(ctx context.Context, userID uint) ([]*model.UsageLog, error) {
	logs, err := s.repo.Usage.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage: %w", err)
	}
	return logs, nil
}

// ToggleFavorite 切换收藏
func (s *Service) ToggleFavorite(ctx context.Context, userID, toolID uint) (*FavoriteResult, error) {
	if err := s.ensureTool(ctx, toolID); err != nil {
		return nil, err
	}

	favorited, err := s.repo.Usage.ToggleFavorite(ctx, userID, toolID)
	if err != nil {
		if _, ok := repository.UniqueViolation(err); ok {
			return nil, fmt.Errorf("%w: %v", types.ErrConflict, err)
		}
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	count, err := s.repo.Usage.CountFavoritesForTool(ctx, toolID)
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}
	return &FavoriteResult{ToolID: toolID, Favorited: favorited, Count: count}, nil
}

// ListFavorites 用户的收藏
func (s *Service) ListFavorites(ctx context.Context, userID uint) ([]*model.Favorite, error) {
	favorites, err := s.repo.Usage.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

func (s *Service) ensureTool(ctx context.Context, toolID uint) error {
	exists, err := s.repo.Tool.Exists(ctx, toolID)
	if err != nil {
		return fmt.Errorf("failed to check tool: %w", err)
	}
	if !exists {
		return types.ErrNotFound
	}
	return nil
}
