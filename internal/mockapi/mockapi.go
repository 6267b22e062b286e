// Package mockapi 不依赖数据库的只读 API，数据来自内置种子集
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/seed"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
)

// Envelope 与正式 API 相同的响应信封
type Envelope struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Response mock 路由结果
type Response struct {
	Status int
	Body   Envelope
}

type user struct {
	info     *model.UserInfo
	password string
}

type dataset struct {
	tools []*model.AITool
	users map[string]user
}

// data 在包初始化时构建，之后只读
var data = mustBuild()

func mustBuild() *dataset {
	ds, err := seed.Default()
	if err != nil {
		panic(fmt.Sprintf("mockapi: invalid seed dataset: %v", err))
	}
	return build(ds)
}

func build(ds *seed.Dataset) *dataset {
	roles := map[string]model.RoleInfo{}
	for i, r := range ds.Roles {
		id := uint(i + 1)
		roles[r.Slug] = model.RoleInfo{ID: &id, Name: r.Name, Slug: r.Slug}
	}

	out := &dataset{users: map[string]user{}}
	creators := map[string]*model.UserInfo{}
	for i, u := range ds.Users {
		role, ok := roles[u.Role]
		if !ok {
			role = model.RoleInfo{Name: model.UnknownRoleName, Slug: "unknown"}
		}
		info := &model.UserInfo{
			ID:       uint(i + 1),
			Name:     u.Name,
			Email:    u.Email,
			Role:     role,
			IsActive: u.IsActive == nil || *u.IsActive,
		}
		creators[u.Email] = info
		out.users[strings.ToLower(u.Email)] = user{info: info, password: u.Password}
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, t := range ds.Tools {
		tool := t.AITool
		tool.ID = uint(i + 1)
		tool.CreatedAt = base.Add(time.Duration(i) * 24 * time.Hour)
		tool.UpdatedAt = tool.CreatedAt
		if tool.Status == "" {
			tool.Status = model.ToolStatusActive
		}
		if c, ok := creators[t.CreatorEmail]; ok {
			tool.UserID = c.ID
			tool.Creator = c
		}
		out.tools = append(out.tools, &tool)
	}
	return out
}

// Route 把一次请求映射为响应，path 不含 /api 前缀
func Route(method, path string, query url.Values, body []byte) Response {
	path = "/" + strings.Trim(path, "/")
	if query == nil {
		query = url.Values{}
	}

	switch {
	case method == http.MethodGet && path == "/ai-tools":
		return listTools(path, query)
	case method == http.MethodGet && strings.HasPrefix(path, "/ai-tools/"):
		return showTool(strings.TrimPrefix(path, "/ai-tools/"))
	case method == http.MethodGet && path == "/ai-tools-meta/categories":
		return ok(distinct(func(t *model.AITool) []string { return []string{t.Category} }), "Categories retrieved successfully")
	case method == http.MethodGet && path == "/ai-tools-meta/teams":
		return ok(distinct(func(t *model.AITool) []string { return []string{t.Team} }), "Teams retrieved successfully")
	case method == http.MethodGet && path == "/ai-tools-meta/tags":
		return ok(distinct(func(t *model.AITool) []string { return t.TagList() }), "Tags retrieved successfully")
	case method == http.MethodPost && path == "/login":
		return login(body)
	case method == http.MethodPost && path == "/logout":
		return ok(nil, "Logged out successfully")
	case method == http.MethodGet && path == "/health":
		return ok(map[string]string{"status": "ok", "mode": "mock"}, "OK")
	default:
		return fail(http.StatusNotFound, "Resource not found")
	}
}

func listTools(path string, q url.Values) Response {
	category, typ, team, tag := q.Get("category"), q.Get("type"), q.Get("team"), q.Get("tag")
	search := strings.ToLower(strings.TrimSpace(q.Get("search")))
	includeInactive := q.Get("include_inactive") == "true" || q.Get("include_inactive") == "1"

	matched := make([]*model.AITool, 0, len(data.tools))
	for _, t := range data.tools {
		if !includeInactive && !t.IsActive {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		if typ != "" && string(t.ToolType) != typ {
			continue
		}
		if team != "" && t.Team != team {
			continue
		}
		if tag != "" && !hasTag(t, tag) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Name), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.AuthorName), search) {
			continue
		}
		matched = append(matched, t)
	}

	sortTools(matched, q.Get("sort_by"), q.Get("sort_order"))

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	req := types.PageRequest{Page: page, PerPage: perPage, BaseURL: path, Query: q}
	req.Normalize()

	start := req.Offset()
	if start < 0 {
		start = 0
	}
	if start > len(matched) {
		start = len(matched)
	}
	end := start + req.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return ok(types.NewPage(req, matched[start:end], int64(len(matched))), "AI tools retrieved successfully")
}

func sortTools(tools []*model.AITool, by, order string) {
	if by == "" {
		by = "created_at"
	}
	var less func(a, b *model.AITool) bool
	switch by {
	case "name":
		less = func(a, b *model.AITool) bool { return a.Name < b.Name }
	case "category":
		less = func(a, b *model.AITool) bool { return a.Category < b.Category }
	case "rating":
		less = func(a, b *model.AITool) bool { return ratingOf(a) < ratingOf(b) }
	case "created_at":
		less = func(a, b *model.AITool) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return
	}
	desc := strings.ToLower(order) != "asc"
	sort.SliceStable(tools, func(i, j int) bool {
		if desc {
			return less(tools[j], tools[i])
		}
		return less(tools[i], tools[j])
	})
}

func ratingOf(t *model.AITool) int {
	if t.Rating == nil {
		return 0
	}
	return *t.Rating
}

func hasTag(t *model.AITool, tag string) bool {
	for _, v := range t.Tags {
		if v == tag {
			return true
		}
	}
	return false
}

func showTool(idParam string) Response {
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		return fail(http.StatusNotFound, "Resource not found")
	}
	for _, t := range data.tools {
		if uint64(t.ID) == id {
			return ok(t, "AI tool retrieved successfully")
		}
	}
	return fail(http.StatusNotFound, "Resource not found")
}

func distinct(values func(*model.AITool) []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range data.tools {
		if !t.IsActive {
			continue
		}
		for _, v := range values(t) {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func login(body []byte) Response {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return fail(http.StatusBadRequest, "Invalid JSON body")
	}

	verr := types.NewValidationError()
	if req.Email == "" {
		verr.Add("email", "The email field is required.")
	}
	if req.Password == "" {
		verr.Add("password", "The password field is required.")
	}
	if !verr.Empty() {
		return Response{
			Status: http.StatusUnprocessableEntity,
			Body:   Envelope{Success: false, Message: "Validation failed", Errors: verr.Fields},
		}
	}

	u, found := data.users[strings.ToLower(req.Email)]
	if !found || u.password != req.Password || !u.info.IsActive {
		return fail(http.StatusUnauthorized, "Invalid credentials")
	}

	return ok(map[string]interface{}{
		"user":       u.info,
		"token":      fmt.Sprintf("mock-token-%d", u.info.ID),
		"token_type": "Bearer",
	}, "Login successful")
}

func ok(payload interface{}, message string) Response {
	return Response{Status: http.StatusOK, Body: Envelope{Success: true, Data: payload, Message: message}}
}

func fail(status int, message string) Response {
	return Response{Status: status, Body: Envelope{Success: false, Message: message}}
}
