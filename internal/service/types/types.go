// Package types 定义服务层共享的错误和分页类型
package types

import (
	"math"
	"net/url"
	"strconv"
)

// Page 分页结果，字段与前端约定的分页结构一致
type Page[T any] struct {
	CurrentPage  int     `json:"current_page"`
	Data         []T     `json:"data"`
	FirstPageURL string  `json:"first_page_url"`
	From         *int    `json:"from"`
	LastPage     int     `json:"last_page"`
	LastPageURL  string  `json:"last_page_url"`
	NextPageURL  *string `json:"next_page_url"`
	Path         string  `json:"path"`
	PerPage      int     `json:"per_page"`
	PrevPageURL  *string `json:"prev_page_url"`
	To           *int    `json:"to"`
	Total        int64   `json:"total"`
}

// PageRequest 分页参数和用于生成链接的原始请求地址
type PageRequest struct {
	Page    int
	PerPage int
	// BaseURL 不含查询串的请求地址，例如 http://host/ai-tools
	BaseURL string
	// Query 原始查询参数，生成链接时只替换 page
	Query url.Values
}

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// Normalize 填充默认值
func (p *PageRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	// 页码上限保证 Offset 不溢出
	if maxPage := math.MaxInt / p.PerPage; p.Page > maxPage {
		p.Page = maxPage
	}
}

// Offset 计算偏移量
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPage 根据总数和当前页数据构造分页结果
func NewPage[T any](req PageRequest, items []T, total int64) *Page[T] {
	req.Normalize()
	if items == nil {
		items = []T{}
	}

	lastPage := int((total + int64(req.PerPage) - 1) / int64(req.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	page := &Page[T]{
		CurrentPage:  req.Page,
		Data:         items,
		FirstPageURL: req.pageURL(1),
		LastPage:     lastPage,
		LastPageURL:  req.pageURL(lastPage),
		Path:         req.BaseURL,
		PerPage:      req.PerPage,
		Total:        total,
	}

	if len(items) > 0 {
		from := req.Offset() + 1
		to := req.Offset() + len(items)
		page.From = &from
		page.To = &to
	}
	if req.Page < lastPage {
		next := req.pageURL(req.Page + 1)
		page.NextPageURL = &next
	}
	if req.Page > 1 {
		prev := req.pageURL(req.Page - 1)
		page.PrevPageURL = &prev
	}
	return page
}

func (p PageRequest) pageURL(n int) string {
	q := url.Values{}
	for k, v := range p.Query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.Itoa(n))
	return p.BaseURL + "?" + q.Encode()
}
