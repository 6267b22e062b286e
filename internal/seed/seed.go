// Package seed 初始数据：角色、分类、标签、用户和工具
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ashwinyue/ai-tools-hub/internal/logger"
	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/service/auth"
)

//go:embed data/seed.json
var defaultSeed []byte

// Dataset 种子数据集
type Dataset struct {
	Roles      []*model.Role     `json:"roles"`
	Categories []*model.Category `json:"categories"`
	Tags       []*model.Tag      `json:"tags"`
	Users      []*UserSeed       `json:"users"`
	Tools      []*ToolSeed       `json:"tools"`
}

// UserSeed 用户种子，密码为明文，写库时哈希
type UserSeed struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

// RoleGrant 工具的角色授权
type RoleGrant struct {
	Role        string            `json:"role"`
	AccessLevel model.AccessLevel `json:"access_level"`
}

// ToolSeed 工具种子，creator 为创建者邮箱
type ToolSeed struct {
	model.AITool
	CreatorEmail string      `json:"creator"`
	RoleAccess   []RoleGrant `json:"role_access"`
}

// Default 内置数据集
func Default() (*Dataset, error) {
	return Parse(defaultSeed)
}

// LoadFile 从文件读取数据集
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse 解析数据集，先修复手写 JSON 中常见的问题（注释、尾逗号、单引号）
func Parse(data []byte) (*Dataset, error) {
	repaired, err := jsonrepair.JSONRepair(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to repair seed json: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal([]byte(repaired), &ds); err != nil {
		return nil, fmt.Errorf("failed to decode seed json: %w", err)
	}
	if err := ds.check(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// check 引用必须能在数据集内解析
func (ds *Dataset) check() error {
	roles := map[string]bool{}
	for _, r := range ds.Roles {
		if r.Slug == "" {
			r.Slug = model.Slugify(r.Name)
		}
		roles[r.Slug] = true
	}
	users := map[string]bool{}
	for _, u := range ds.Users {
		if u.Email == "" || u.Password == "" {
			return fmt.Errorf("seed user %q: email and password are required", u.Name)
		}
		if u.Role != "" && !roles[u.Role] {
			return fmt.Errorf("seed user %s: unknown role %q", u.Email, u.Role)
		}
		users[u.Email] = true
	}
	for _, t := range ds.Tools {
		if t.Slug == "" {
			t.Slug = model.Slugify(t.Name)
		}
		if !model.SlugPattern.MatchString(t.Slug) {
			return fmt.Errorf("seed tool %q: invalid slug %q", t.Name, t.Slug)
		}
		if !users[t.CreatorEmail] {
			return fmt.Errorf("seed tool %s: unknown creator %q", t.Slug, t.CreatorEmail)
		}
		for _, g := range t.RoleAccess {
			if !roles[g.Role] || !g.AccessLevel.Valid() {
				return fmt.Errorf("seed tool %s: invalid role grant %s/%s", t.Slug, g.Role, g.AccessLevel)
			}
		}
	}
	return nil
}

// Seed 写入数据集，按 slug/email 跳过已存在的记录，可重复执行
func Seed(ctx context.Context, db *gorm.DB, ds *Dataset, bcryptCost int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := repository.NewRepositories(tx)

		roleIDs := map[string]uint{}
		for _, r := range ds.Roles {
			role := *r
			if err := tx.Where("slug = ?", role.Slug).FirstOrCreate(&role).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", r.Slug, err)
			}
			roleIDs[role.Slug] = role.ID
		}

		for _, c := range ds.Categories {
			category := *c
			if category.Slug == "" {
				category.Slug = model.Slugify(category.Name)
			}
			if err := tx.Where("slug = ?", category.Slug).FirstOrCreate(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", category.Slug, err)
			}
		}

		for _, t := range ds.Tags {
			tag := *t
			if tag.Slug == "" {
				tag.Slug = model.Slugify(tag.Name)
			}
			tag.ApplyDefaults()
			if err := tx.Where("slug = ?", tag.Slug).FirstOrCreate(&tag).Error; err != nil {
				return fmt.Errorf("failed to seed tag %s: %w", tag.Slug, err)
			}
		}

		userIDs := map[string]uint{}
		for _, u := range ds.Users {
			existing, err := repos.Auth.GetUserByEmail(ctx, u.Email)
			if err == nil {
				userIDs[u.Email] = existing.ID
				continue
			}
			if !repository.IsNotFound(err) {
				return fmt.Errorf("failed to load user %s: %w", u.Email, err)
			}

			hashed, err := auth.HashPassword(u.Password, bcryptCost)
			if err != nil {
				return err
			}
			user := &model.User{
				Name:     u.Name,
				Email:    u.Email,
				Password: hashed,
				IsActive: u.IsActive == nil || *u.IsActive,
			}
			if id, ok := roleIDs[u.Role]; ok {
				user.RoleID = &id
			}
			if err := repos.Auth.CreateUser(ctx, user); err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
			}
			userIDs[u.Email] = user.ID
		}

		created := 0
		for _, t := range ds.Tools {
			var count int64
			if err := tx.Model(&model.AITool{}).Where("slug = ?", t.Slug).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			tool := t.AITool
			tool.ID = 0
			tool.UserID = userIDs[t.CreatorEmail]
			if tool.Status == "" {
				tool.Status = model.ToolStatusActive
			}
			if err := tx.Omit(clause.Associations).Create(&tool).Error; err != nil {
				return fmt.Errorf("failed to seed tool %s: %w", t.Slug, err)
			}
			if err := linkTaxonomy(ctx, repos, &tool); err != nil {
				return err
			}

			grants := make([]*model.AIToolRole, 0, len(t.RoleAccess))
			for _, g := range t.RoleAccess {
				grants = append(grants, &model.AIToolRole{RoleID: roleIDs[g.Role], AccessLevel: g.AccessLevel})
			}
			if err := repos.Tool.SetRoles(ctx, tool.ID, grants); err != nil {
				return fmt.Errorf("failed to seed roles for %s: %w", t.Slug, err)
			}
			created++
		}

		logger.L().Info("seed completed",
			zap.Int("roles", len(roleIDs)),
			zap.Int("users", len(userIDs)),
			zap.Int("tools_created", created),
		)
		return nil
	})
}

// linkTaxonomy 建立工具与分类、标签的关联
func linkTaxonomy(ctx context.Context, repos *repository.Repositories, tool *model.AITool) error {
	if tool.Category != "" {
		category, err := repos.Category.FirstOrCreateByName(ctx, tool.Category, model.Slugify(tool.Category))
		if err != nil {
			return fmt.Errorf("failed to link category for %s: %w", tool.Slug, err)
		}
		if err := repos.Tool.SetCategories(ctx, tool.ID, []uint{category.ID}); err != nil {
			return err
		}
	}

	tags, err := repos.Tag.FirstOrCreateByNames(ctx, tool.TagList(), model.Slugify)
	if err != nil {
		return fmt.Errorf("failed to link tags for %s: %w", tool.Slug, err)
	}
	ids := make([]uint, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return repos.Tool.SetTags(ctx, tool.ID, ids)
}
