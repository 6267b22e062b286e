package types

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	q := url.Values{"search": {"ai"}, "per_page": {"5"}}

	tests := []struct {
		name     string
		page     int
		perPage  int
		items    int
		total    int64
		lastPage int
		from     *int
		to       *int
		hasNext  bool
		hasPrev  bool
	}{
		{"first page", 1, 5, 5, 8, 2, intPtr(1), intPtr(5), true, false},
		{"second page", 2, 5, 3, 8, 2, intPtr(6), intPtr(8), false, true},
		{"empty result", 1, 5, 0, 0, 1, nil, nil, false, false},
		{"page past end", 4, 5, 0, 8, 2, nil, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := PageRequest{Page: tt.page, PerPage: tt.perPage, BaseURL: "http://localhost/api/ai-tools", Query: q}
			page := NewPage(req, make([]int, tt.items), tt.total)

			assert.Equal(t, tt.page, page.CurrentPage)
			assert.Equal(t, tt.lastPage, page.LastPage)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.from, page.From)
			assert.Equal(t, tt.to, page.To)
			assert.Equal(t, tt.hasNext, page.NextPageURL != nil)
			assert.Equal(t, tt.hasPrev, page.PrevPageURL != nil)
			assert.NotNil(t, page.Data)
			assert.Equal(t, "http://localhost/api/ai-tools", page.Path)
		})
	}
}

func TestPageURLKeepsQuery(t *testing.T) {
	q := url.Values{"search": {"ai"}, "page": {"2"}}
	page := NewPage(PageRequest{Page: 2, PerPage: 1, BaseURL: "/ai-tools", Query: q}, []int{1}, 3)

	require.NotNil(t, page.NextPageURL)
	u, err := url.Parse(*page.NextPageURL)
	require.NoError(t, err)
	assert.Equal(t, "3", u.Query().Get("page"))
	assert.Equal(t, "ai", u.Query().Get("search"))
	assert.Equal(t, "2", q.Get("page"), "original query must not be modified")
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		in          PageRequest
		wantPage    int
		wantPerPage int
	}{
		{PageRequest{}, 1, DefaultPerPage},
		{PageRequest{Page: -1, PerPage: -5}, 1, DefaultPerPage},
		{PageRequest{Page: 3, PerPage: 500}, 3, MaxPerPage},
		{PageRequest{Page: 2, PerPage: 20}, 2, 20},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantPerPage, tt.in.PerPage)
		})
	}
}

func TestPageRequestHugePage(t *testing.T) {
	req := PageRequest{Page: 4611686018427387904, PerPage: 4}
	req.Normalize()
	assert.Equal(t, math.MaxInt/4, req.Page)
	assert.GreaterOrEqual(t, req.Offset(), 0)

	page := NewPage(PageRequest{Page: math.MaxInt, PerPage: 4, BaseURL: "/ai-tools"}, []int{}, 8)
	assert.Nil(t, page.From)
	assert.Nil(t, page.NextPageURL)
	assert.Equal(t, 2, page.LastPage)
}

func TestValidationError(t *testing.T) {
	var nilErr *ValidationError
	assert.True(t, nilErr.Empty())
	assert.NoError(t, NewValidationError().OrNil())

	verr := FieldError("slug", TakenMessage("slug"))
	verr.Add("name", "The name field is required.")
	err := verr.OrNil()
	require.Error(t, err)

	wrapped := fmt.Errorf("create: %w", err)
	got, ok := AsValidation(wrapped)
	require.True(t, ok)
	assert.Equal(t, []string{"The slug has already been taken."}, got.Fields["slug"])
	assert.Equal(t, "validation failed: name: The name field is required., slug: The slug has already been taken.", got.Error())

	_, ok = AsValidation(errors.New("plain"))
	assert.False(t, ok)
}

type sample struct {
	Name   string   `json:"name" validate:"required,max=5"`
	Slug   string   `json:"slug" validate:"omitempty,slug"`
	Rating *int     `json:"rating" validate:"omitnil,min=1,max=5"`
	Kind   string   `json:"kind" validate:"omitempty,oneof=a b"`
	Tags   []string `json:"tags" validate:"omitempty,dive,max=3"`
	Email  string   `json:"author_email" validate:"omitempty,email"`
	Perms  []string `json:"permissions" validate:"omitempty,dive,min=1"`
	Labels []string `json:"labels" validate:"omitempty,max=1"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name   string
		in     sample
		fields map[string]string
	}{
		{"valid", sample{Name: "ok", Slug: "a-b", Rating: intPtr(5)}, nil},
		{"required", sample{}, map[string]string{"name": "The name field is required."}},
		{"rating too high", sample{Name: "x", Rating: intPtr(6)}, map[string]string{"rating": "The rating field must not be greater than 5."}},
		{"rating too low", sample{Name: "x", Rating: intPtr(0)}, map[string]string{"rating": "The rating field must be at least 1."}},
		{"bad slug", sample{Name: "x", Slug: "Bad Slug"}, map[string]string{"slug": "The slug field must only contain lowercase letters, numbers, and hyphens."}},
		{"enum", sample{Name: "x", Kind: "c"}, map[string]string{"kind": "The selected kind is invalid."}},
		{"tag element", sample{Name: "x", Tags: []string{"ok", "toolong"}}, map[string]string{"tags.1": "The tags entry 2 field must not be greater than 3 characters."}},
		{"blank element", sample{Name: "x", Perms: []string{"a", "b", ""}}, map[string]string{"permissions.2": "The permissions entry 3 field must be at least 1 character."}},
		{"too many items", sample{Name: "x", Labels: []string{"a", "b"}}, map[string]string{"labels": "The labels field must not be greater than 1 item."}},
		{"email", sample{Name: "x", Email: "nope"}, map[string]string{"author_email": "The author email field must be a valid email address."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.in)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			verr, ok := AsValidation(err)
			require.True(t, ok, "expected ValidationError, got %v", err)
			assert.Len(t, verr.Fields, len(tt.fields))
			for field, msg := range tt.fields {
				assert.Equal(t, []string{msg}, verr.Fields[field])
			}
		})
	}
}

func intPtr(v int) *int { return &v }
