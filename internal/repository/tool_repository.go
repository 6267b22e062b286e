package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
)

// ToolQuery 工具列表查询条件
type ToolQuery struct {
	Category        string
	Type            string
	Team            string
	Tag             string
	Search          string
	IncludeInactive bool
	SortBy          string
	SortOrder       string
	Offset          int
	Limit           int
}

// sortableColumns 允许排序的列，其它值不排序
var sortableColumns = map[string]string{
	"name":       "name",
	"category":   "category",
	"rating":     "rating",
	"created_at": "created_at",
}

// ToolRepository 工具数据访问
type ToolRepository struct {
	db *gorm.DB
}

// NewToolRepository 创建工具仓库
func NewToolRepository(db *gorm.DB) *ToolRepository {
	return &ToolRepository{db: db}
}

// Create 创建工具
func (r *ToolRepository) Create(ctx context.Context, tool *model.AITool) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(tool).Error
}

// GetByID 获取工具，预加载创建者和角色
func (r *ToolRepository) GetByID(ctx context.Context, id uint) (*model.AITool, error) {
	var tool model.AITool
	err := r.db.WithContext(ctx).Preload("User.Role").Where("id = ?", id).First(&tool).Error
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

// Exists 工具是否存在
func (r *ToolRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AITool{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List 按条件分页查询工具
func (r *ToolRepository) List(ctx context.Context, q ToolQuery) ([]*model.AITool, int64, error) {
	var tools []*model.AITool
	var total int64

	query := r.filtered(r.db.WithContext(ctx).Model(&model.AITool{}), q)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tools: %w", err)
	}

	if col, ok := sortableColumns[q.SortBy]; ok {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: col},
			Desc:   !strings.EqualFold(q.SortOrder, "asc"),
		})
	}
	if q.Limit > 0 {
		query = query.Offset(q.Offset).Limit(q.Limit)
	}

	err := query.Preload("User.Role").Find(&tools).Error
	return tools, total, err
}

func (r *ToolRepository) filtered(query *gorm.DB, q ToolQuery) *gorm.DB {
	if !q.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Type != "" {
		query = query.Where("tool_type = ?", q.Type)
	}
	if q.Team != "" {
		query = query.Where("team = ?", q.Team)
	}
	if q.Tag != "" {
		// 标签以 JSON 数组存储，按带引号的元素做包含匹配
		encoded, _ := json.Marshal(q.Tag)
		query = query.Where(`CAST(tags AS TEXT) LIKE ? ESCAPE '\'`, "%"+escapeLike(string(encoded))+"%")
	}
	if q.Search != "" {
		// sqlite 的 LOWER 只折叠 ASCII，postgres 按数据库 locale 折叠
		pattern := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		query = query.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(author_name) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}
	return query
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Update 更新工具
func (r *ToolRepository) Update(ctx context.Context, tool *model.AITool) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(tool).Error
}

// Delete 删除工具及其关联数据，返回是否删除了记录
// 外键已声明 ON DELETE CASCADE，这里在同一事务中显式清理，保证未开启外键的 sqlite 结果一致
func (r *ToolRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []interface{}{
			&model.AIToolCategory{},
			&model.AIToolRole{},
			&model.AIToolTag{},
			&model.UsageLog{},
			&model.Favorite{},
		}
		for _, d := range dependents {
			if err := tx.Where("ai_tool_id = ?", id).Delete(d).Error; err != nil {
				return fmt.Errorf("failed to delete dependents: %w", err)
			}
		}
		res := tx.Delete(&model.AITool{}, id)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected > 0, err
}

// DistinctValues 活跃工具中某列去重、非空、升序的取值
func (r *ToolRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	switch column {
	case "category", "team":
	default:
		return nil, fmt.Errorf("column %q is not listable", column)
	}

	var values []string
	err := r.db.WithContext(ctx).Model(&model.AITool{}).
		Where("is_active = ?", true).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Distinct(column).
		Order(column+" ASC").
		Pluck(column, &values).Error
	return values, err
}

// DistinctTags 活跃工具的标签展开后去重排序
func (r *ToolRepository) DistinctTags(ctx context.Context) ([]string, error) {
	var tools []*model.AITool
	if err := r.db.WithContext(ctx).Select("id", "tags").Where("is_active = ?", true).Find(&tools).Error; err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	for _, t := range tools {
		for _, tag := range t.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			seen[tag] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out, nil
}

// ========== 工具-分类/标签/角色关联 ==========

// CategoriesFor 获取工具的分类
func (r *ToolRepository) CategoriesFor(ctx context.Context, toolID uint) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.db.WithContext(ctx).
		Joins("JOIN ai_tool_category ON ai_tool_category.category_id = categories.id").
		Where("ai_tool_category.ai_tool_id = ?", toolID).
		Order("categories.name ASC").
		Find(&categories).Error
	return categories, err
}

// TagsFor 获取工具的标签实体
func (r *ToolRepository) TagsFor(ctx context.Context, toolID uint) ([]*model.Tag, error) {
	var tags []*model.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN ai_tool_tag ON ai_tool_tag.tag_id = tags.id").
		Where("ai_tool_tag.ai_tool_id = ?", toolID).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}

// RolesFor 获取工具的角色授权
func (r *ToolRepository) RolesFor(ctx context.Context, toolID uint) ([]*model.AIToolRole, error) {
	var rows []*model.AIToolRole
	err := r.db.WithContext(ctx).Preload("Role").
		Where("ai_tool_id = ?", toolID).
		Order("role_id ASC").
		Find(&rows).Error
	return rows, err
}

// AccessFor 获取某角色对工具的授权
func (r *ToolRepository) AccessFor(ctx context.Context, toolID, roleID uint) (*model.AIToolRole, error) {
	var row model.AIToolRole
	err := r.db.WithContext(ctx).Where("ai_tool_id = ? AND role_id = ?", toolID, roleID).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SetCategories 设置工具的分类（先删除后添加）
func (r *ToolRepository) SetCategories(ctx context.Context, toolID uint, categoryIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ai_tool_id = ?", toolID).Delete(&model.AIToolCategory{}).Error; err != nil {
			return fmt.Errorf("failed to remove existing categories: %w", err)
		}
		for _, id := range dedupe(categoryIDs) {
			if err := tx.Create(&model.AIToolCategory{AIToolID: toolID, CategoryID: id}).Error; err != nil {
				return fmt.Errorf("failed to add category %d: %w", id, err)
			}
		}
		return nil
	})
}

// SetTags 设置工具的标签实体（先删除后添加）
func (r *ToolRepository) SetTags(ctx context.Context, toolID uint, tagIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ai_tool_id = ?", toolID).Delete(&model.AIToolTag{}).Error; err != nil {
			return fmt.Errorf("failed to remove existing tags: %w", err)
		}
		for _, id := range dedupe(tagIDs) {
			if err := tx.Create(&model.AIToolTag{AIToolID: toolID, TagID: id}).Error; err != nil {
				return fmt.Errorf("failed to add tag %d: %w", id, err)
			}
		}
		return nil
	})
}

// SetRoles 设置工具的角色授权（先删除后添加）
func (r *ToolRepository) SetRoles(ctx context.Context, toolID uint, rows []*model.AIToolRole) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ai_tool_id = ?", toolID).Delete(&model.AIToolRole{}).Error; err != nil {
			return fmt.Errorf("failed to remove existing roles: %w", err)
		}
		now := time.Now().UTC()
		for _, row := range rows {
			row.ID = 0
			row.AIToolID = toolID
			row.CreatedAt = now
			row.UpdatedAt = now
			if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
				return fmt.Errorf("failed to add role %d: %w", row.RoleID, err)
			}
		}
		return nil
	})
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
