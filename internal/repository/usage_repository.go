package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
)

// UsageRepository 使用记录和收藏
type UsageRepository struct {
	db *gorm.DB
}

// NewUsageRepository 创建使用记录仓库
func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// Increment 累加使用次数，(user_id, ai_tool_id) 不存在时插入
func (r *UsageRepository) Increment(ctx context.Context, userID, toolID uint, at time.Time, metadata map[string]interface{}) (*model.UsageLog, error) {
	row := &model.UsageLog{
		UserID:     userID,
		AIToolID:   toolID,
		UsageCount: 1,
		LastUsedAt: &at,
		Metadata:   metadata,
	}

	updates := map[string]interface{}{
		"usage_count":  gorm.Expr("usage_logs.usage_count + 1"),
		"last_used_at": at,
		"updated_at":   at,
	}
	if metadata != nil {
		updates["metadata"] = row.Metadata
	}

	err := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "ai_tool_id"}},
		DoUpdates: clause.Assignments(updates),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}

	var stored model.UsageLog
	if err := r.db.WithContext(ctx).Where("user_id = ? AND ai_tool_id = ?", userID, toolID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListByUser 列出用户的使用记录
func (r *UsageRepository) ListByUser(ctx context.Context, userID uint) ([]*model.UsageLog, error) {
	var logs []*model.UsageLog
	err := r.db.WithContext(ctx).Preload("AITool").
		Where("user_id = ?", userID).
		Order("last_used_at DESC").
		Find(&logs).Error
	return logs, err
}

// CountForTool 工具的使用记录数量
func (r *UsageRepository) CountForTool(ctx context.Context, toolID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UsageLog{}).Where("ai_tool_id = ?", toolID).Count(&count).Error
	return count, err
}

// ToggleFavorite 切换收藏状态，返回切换后是否已收藏
func (r *UsageRepository) ToggleFavorite(ctx context.Context, userID, toolID uint) (bool, error) {
	favorited := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND ai_tool_id = ?", userID, toolID).Delete(&model.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		favorited = true
		_, err := addFavorite(tx, userID, toolID)
		return err
	})
	return favorited, err
}

// AddFavorite 添加收藏，已存在时不报错，返回是否新插入
func (r *UsageRepository) AddFavorite(ctx context.Context, userID, toolID uint) (bool, error) {
	return addFavorite(r.db.WithContext(ctx), userID, toolID)
}

// 并发切换时另一事务可能已插入同一对，冲突按已收藏处理
func addFavorite(tx *gorm.DB, userID, toolID uint) (bool, error) {
	res := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "ai_tool_id"}},
		DoNothing: true,
	}).Create(&model.Favorite{UserID: userID, AIToolID: toolID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListFavorites 列出用户收藏
func (r *UsageRepository) ListFavorites(ctx context.Context, userID uint) ([]*model.Favorite, error) {
	var favorites []*model.Favorite
	err := r.db.WithContext(ctx).Preload("AITool").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

// CountFavoritesForTool 工具被收藏的次数
func (r *UsageRepository) CountFavoritesForTool(ctx context.Context, toolID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).Where("ai_tool_id = ?", toolID).Count(&count).Error
	return count, err
}
