package tool

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ashwinyue/ai-tools-hub/internal/logger"
	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
)

// uniqueFields ai_tools 上带唯一约束的字段
var uniqueFields = []string{"slug", "name"}

// Service 工具目录服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建工具服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// ListTools 按过滤、排序、分页列出工具
func (s *Service) ListTools(ctx context.Context, req *ListToolsRequest) (*types.Page[*model.AITool], error) {
	req.Page.Normalize()

	tools, total, err := s.repo.Tool.List(ctx, repository.ToolQuery{
		Category:        req.Category,
		Type:            req.Type,
		Team:            req.Team,
		Tag:             req.Tag,
		Search:          req.Search,
		IncludeInactive: req.IncludeInactive,
		SortBy:          req.SortBy,
		SortOrder:       req.SortOrder,
		Offset:          req.Page.Offset(),
		Limit:           req.Page.PerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	for _, t := range tools {
		t.AttachCreator()
	}
	return types.NewPage(req.Page, tools, total), nil
}

// GetTool 获取工具详情，包含分类、标签实体和角色授权
func (s *Service) GetTool(ctx context.Context, id uint) (*model.AITool, error) {
	tool, err := s.repo.Tool.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tool: %w", err)
	}
	tool.AttachCreator()

	if tool.Categories, err = s.repo.Tool.CategoriesFor(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if tool.TagItems, err = s.repo.Tool.TagsFor(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	rows, err := s.repo.Tool.RolesFor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	tool.Roles = toRoleAccess(rows)

	usageCount, err := s.repo.Usage.CountForTool(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count usage: %w", err)
	}
	favorites, err := s.repo.Usage.CountFavoritesForTool(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}
	tool.UsageCount = &usageCount
	tool.FavoritesCount = &favorites
	return tool, nil
}

// CreateTool 校验并创建工具
func (s *Service) CreateTool(ctx context.Context, req *CreateToolRequest) (*model.AITool, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Slug == "" && req.Name != "" {
		req.Slug = model.Slugify(req.Name)
		if req.Slug == "" {
			return nil, types.FieldError("slug", "The slug could not be derived from the name.")
		}
	}

	verr := s.validate(ctx, req, req.UserID)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	status := model.ToolStatusActive
	if req.Status != "" {
		status = model.ToolStatus(req.Status)
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	tool := &model.AITool{
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		LongDescription:  req.LongDescription,
		URL:              req.URL,
		DocumentationURL: req.DocumentationURL,
		GithubURL:        req.GithubURL,
		Icon:             req.Icon,
		Color:            req.Color,
		Version:          req.Version,
		Status:           status,
		ToolType:         model.ToolType(req.ToolType),
		Category:         req.Category,
		Team:             req.Team,
		Tags:             normalizeTags(req.Tags),
		AuthorName:       req.AuthorName,
		AuthorEmail:      req.AuthorEmail,
		UseCase:          req.UseCase,
		Pros:             req.Pros,
		Cons:             req.Cons,
		Rating:           req.Rating,
		IsActive:         isActive,
		RequiresAuth:     req.RequiresAuth,
		APIKeyRequired:   req.APIKeyRequired,
		UsageLimit:       req.UsageLimit,
		Metadata:         req.Metadata,
		UserID:           req.UserID,
	}

	if err := s.repo.Tool.Create(ctx, tool); err != nil {
		return nil, mapWriteError(err)
	}

	s.syncTaxonomy(ctx, tool)
	return s.GetTool(ctx, tool.ID)
}

// UpdateTool 部分更新工具
func (s *Service) UpdateTool(ctx context.Context, id uint, req *UpdateToolRequest) (*model.AITool, error) {
	tool, err := s.repo.Tool.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tool: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	var userID uint
	if req.UserID != nil {
		userID = *req.UserID
	}
	verr := s.validate(ctx, req, userID)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	categoryChanged := req.Category != nil && *req.Category != tool.Category
	tagsChanged := req.Tags != nil

	req.apply(tool)
	tool.User = nil
	if err := s.repo.Tool.Update(ctx, tool); err != nil {
		return nil, mapWriteError(err)
	}

	if categoryChanged || tagsChanged {
		s.syncTaxonomy(ctx, tool)
	}
	return s.GetTool(ctx, id)
}

// DeleteTool 硬删除工具，关联数据级联删除
func (s *Service) DeleteTool(ctx context.Context, id uint) error {
	deleted, err := s.repo.Tool.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete tool: %w", err)
	}
	if !deleted {
		return types.ErrNotFound
	}
	return nil
}

// ListCategories 活跃工具的分类取值
func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "category")
}

// ListTeams 活跃工具的团队取值
func (s *Service) ListTeams(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "team")
}

// ListTags 活跃工具的标签取值
func (s *Service) ListTags(ctx context.Context) ([]string, error) {
	tags, err := s.repo.Tool.DistinctTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (s *Service) distinct(ctx context.Context, column string) ([]string, error) {
	values, err := s.repo.Tool.DistinctValues(ctx, column)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s values: %w", column, err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// SyncRoles 替换工具的角色授权
func (s *Service) SyncRoles(ctx context.Context, toolID uint, req *SyncRolesRequest) ([]model.RoleAccess, error) {
	exists, err := s.repo.Tool.Exists(ctx, toolID)
	if err != nil {
		return nil, fmt.Errorf("failed to check tool: %w", err)
	}
	if !exists {
		return nil, types.ErrNotFound
	}

	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}

	rows := make([]*model.AIToolRole, 0, len(req.Roles))
	ids := make([]uint, 0, len(req.Roles))
	seen := map[uint]bool{}
	verr := types.NewValidationError()
	for i, r := range req.Roles {
		if seen[r.RoleID] {
			verr.Add(fmt.Sprintf("roles.%d.role_id", i), "The role id field has a duplicate value.")
			continue
		}
		seen[r.RoleID] = true
		ids = append(ids, r.RoleID)
		rows = append(rows, &model.AIToolRole{
			RoleID:            r.RoleID,
			AccessLevel:       model.AccessLevel(r.AccessLevel),
			CustomPermissions: r.CustomPermissions,
		})
	}
	if len(ids) > 0 {
		count, err := s.repo.Role.CountByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to check roles: %w", err)
		}
		if count != int64(len(ids)) {
			verr.Add("roles", "One or more selected roles are invalid.")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.repo.Tool.SetRoles(ctx, toolID, rows); err != nil {
		return nil, fmt.Errorf("failed to sync roles: %w", err)
	}

	stored, err := s.repo.Tool.RolesFor(ctx, toolID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	return toRoleAccess(stored), nil
}

// AccessFor 角色对工具的访问级别，未授权返回 false
func (s *Service) AccessFor(ctx context.Context, toolID uint, roleID *uint) (model.AccessLevel, bool, error) {
	exists, err := s.repo.Tool.Exists(ctx, toolID)
	if err != nil {
		return "", false, fmt.Errorf("failed to check tool: %w", err)
	}
	if !exists {
		return "", false, types.ErrNotFound
	}
	if roleID == nil {
		return "", false, nil
	}

	row, err := s.repo.Tool.AccessFor(ctx, toolID, *roleID)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load access: %w", err)
	}
	return row.AccessLevel, true, nil
}

// validate 结构体规则 + user_id 存在性
func (s *Service) validate(ctx context.Context, req interface{}, userID uint) *types.ValidationError {
	verr := types.NewValidationError()
	if err := types.ValidateStruct(req); err != nil {
		ve, ok := types.AsValidation(err)
		if !ok {
			verr.Add("_", err.Error())
			return verr
		}
		verr = ve
	}

	if userID != 0 && !verr.Has("user_id") {
		exists, err := s.repo.Auth.UserExists(ctx, userID)
		if err != nil || !exists {
			verr.Add("user_id", "The selected user id is invalid.")
		}
	}
	return verr
}

// syncTaxonomy 把 category 字符串和 tags 数组同步到分类、标签实体及关联表
// 同步失败不影响工具本身的写入
func (s *Service) syncTaxonomy(ctx context.Context, tool *model.AITool) {
	var categoryIDs []uint
	if name := strings.TrimSpace(tool.Category); name != "" {
		if slug := model.Slugify(name); slug != "" {
			category, err := s.repo.Category.FirstOrCreateByName(ctx, name, slug)
			if err != nil {
				logger.L().Warn("failed to mirror category", zap.String("category", name), zap.Error(err))
			} else {
				categoryIDs = append(categoryIDs, category.ID)
			}
		}
	}
	if err := s.repo.Tool.SetCategories(ctx, tool.ID, categoryIDs); err != nil {
		logger.L().Warn("failed to set tool categories", zap.Uint("tool_id", tool.ID), zap.Error(err))
	}

	names := make([]string, 0, len(tool.Tags))
	for _, tag := range tool.Tags {
		if model.Slugify(tag) != "" {
			names = append(names, tag)
		}
	}
	tags, err := s.repo.Tag.FirstOrCreateByNames(ctx, names, model.Slugify)
	if err != nil {
		logger.L().Warn("failed to mirror tags", zap.Uint("tool_id", tool.ID), zap.Error(err))
		return
	}
	tagIDs := make([]uint, 0, len(tags))
	for _, t := range tags {
		tagIDs = append(tagIDs, t.ID)
	}
	if err := s.repo.Tool.SetTags(ctx, tool.ID, tagIDs); err != nil {
		logger.L().Warn("failed to set tool tags", zap.Uint("tool_id", tool.ID), zap.Error(err))
	}
}

// mapWriteError 唯一约束冲突转换为字段错误
func mapWriteError(err error) error {
	if field, ok := repository.UniqueViolation(err, uniqueFields...); ok {
		if field == "" {
			return fmt.Errorf("%w: %v", types.ErrConflict, err)
		}
		return types.FieldError(field, types.TakenMessage(field))
	}
	return fmt.Errorf("failed to save tool: %w", err)
}

func toRoleAccess(rows []*model.AIToolRole) []model.RoleAccess {
	out := make([]model.RoleAccess, 0, len(rows))
	for _, row := range rows {
		access := model.RoleAccess{
			RoleID:            row.RoleID,
			AccessLevel:       row.AccessLevel,
			CustomPermissions: []string(row.CustomPermissions),
		}
		if row.Role != nil {
			access.Name = row.Role.Name
			access.Slug = row.Role.Slug
		}
		if access.CustomPermissions == nil {
			access.CustomPermissions = []string{}
		}
		out = append(out, access)
	}
	return out
}
