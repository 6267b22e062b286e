package mockapi

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
)

func page(t *testing.T, resp Response) *types.Page[*model.AITool] {
	t.Helper()
	require.Equal(t, http.StatusOK, resp.Status)
	p, ok := resp.Body.Data.(*types.Page[*model.AITool])
	require.True(t, ok, "unexpected data %T", resp.Body.Data)
	return p
}

func names(p *types.Page[*model.AITool]) []string {
	out := []string{}
	for _, t := range p.Data {
		out = append(out, t.Name)
	}
	return out
}

func TestListTools(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"search", "search=Tensor", []string{"TensorFlow"}},
		{"category", "category=Design+Tools", []string{"Figma"}},
		{"tag", "tag=python&sort_by=name&sort_order=asc", []string{"LangChain", "PyTorch", "TensorFlow"}},
		{"type and team", "type=framework&team=AI+Research&sort_by=name&sort_order=asc", []string{"LangChain", "PyTorch"}},
		{"no match", "search=zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			p := page(t, Route(http.MethodGet, "/ai-tools", q, nil))
			assert.Equal(t, tt.want, names(p))
		})
	}
}

func TestListToolsPagination(t *testing.T) {
	q := url.Values{"per_page": {"5"}, "page": {"2"}}
	p := page(t, Route(http.MethodGet, "/ai-tools", q, nil))
	assert.Equal(t, int64(8), p.Total)
	assert.Equal(t, 2, p.LastPage)
	assert.Len(t, p.Data, 3)

	q = url.Values{"per_page": {"5"}, "page": {"9"}}
	p = page(t, Route(http.MethodGet, "/ai-tools", q, nil))
	assert.Empty(t, p.Data)
	assert.Equal(t, int64(8), p.Total)

	q = url.Values{"per_page": {"4"}, "page": {"4611686018427387904"}}
	p = page(t, Route(http.MethodGet, "/ai-tools", q, nil))
	assert.Empty(t, p.Data)
	assert.Nil(t, p.From)
	assert.Equal(t, int64(8), p.Total)

	p = page(t, Route(http.MethodGet, "/ai-tools", nil, nil))
	require.Len(t, p.Data, 8)
	assert.Equal(t, "OpenAI API", p.Data[0].Name, "newest first by default")
}

func TestShowTool(t *testing.T) {
	resp := Route(http.MethodGet, "/ai-tools/1", nil, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	tool := resp.Body.Data.(*model.AITool)
	assert.Equal(t, "TensorFlow", tool.Name)
	require.NotNil(t, tool.Creator)
	assert.Equal(t, "admin", tool.Creator.Role.Slug)

	for _, path := range []string{"/ai-tools/999", "/ai-tools/abc"} {
		resp := Route(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.Status, path)
		assert.False(t, resp.Body.Success)
	}
}

func TestMetaLists(t *testing.T) {
	resp := Route(http.MethodGet, "/ai-tools-meta/categories", nil, nil)
	assert.Equal(t, []string{"API Development", "Design Tools", "Development Tools", "Machine Learning"}, resp.Body.Data)

	resp = Route(http.MethodGet, "/ai-tools-meta/tags/", nil, nil)
	tags := resp.Body.Data.([]string)
	assert.IsIncreasing(t, tags)
	assert.Contains(t, tags, "python")
}

func TestLogin(t *testing.T) {
	resp := Route(http.MethodPost, "/login", nil, []byte(`{"email":"Editor@Example.com","password":"password"}`))
	require.Equal(t, http.StatusOK, resp.Status)
	data := resp.Body.Data.(map[string]interface{})
	assert.Equal(t, "mock-token-2", data["token"])
	assert.Equal(t, "Bearer", data["token_type"])

	resp = Route(http.MethodPost, "/login", nil, []byte(`{"email":"editor@example.com","password":"nope"}`))
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Equal(t, "Invalid credentials", resp.Body.Message)

	resp = Route(http.MethodPost, "/login", nil, []byte(`{}`))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	assert.Contains(t, resp.Body.Errors, "email")
	assert.Contains(t, resp.Body.Errors, "password")

	resp = Route(http.MethodPost, "/login", nil, []byte(`{`))
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestUnknownRoutes(t *testing.T) {
	for _, r := range []struct{ method, path string }{
		{http.MethodPost, "/ai-tools"},
		{http.MethodGet, "/user"},
		{http.MethodDelete, "/ai-tools/1"},
	} {
		resp := Route(r.method, r.path, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.Status, r.path)
	}

	resp := Route(http.MethodPost, "/logout", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Status)
}
