package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound 资源不存在 (404)
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials 邮箱或密码错误，两种情况不做区分 (401)
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken 令牌格式、签名、过期或用户不存在 (401)
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthenticated 请求未携带身份 (401)
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden 权限不足 (403)
	ErrForbidden = errors.New("forbidden")
	// ErrConflict 存储层唯一约束冲突且无法归属到字段 (409)
	ErrConflict = errors.New("conflict")
)

// ValidationError 字段级校验错误 (422)
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError 创建空的校验错误
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// FieldError 创建只包含一个字段的校验错误
func FieldError(field, message string) *ValidationError {
	v := NewValidationError()
	v.Add(field, message)
	return v
}

// Add 追加字段错误
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Has 是否包含字段错误
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// Empty 没有任何错误
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// OrNil 没有错误时返回 nil，避免返回带类型的 nil 接口
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// AsValidation 提取 ValidationError
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
