package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsNotFound 记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// UniqueViolation 判断是否为唯一约束冲突，并尽量识别冲突的字段
// sqlite: "UNIQUE constraint failed: ai_tools.slug"
// postgres: `duplicate key value violates unique constraint "idx_ai_tools_slug"`
func UniqueViolation(err error, fields ...string) (field string, ok bool) {
	if err == nil {
		return "", false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique") && !strings.Contains(msg, "duplicate key") {
		return "", false
	}
	for _, f := range fields {
		if strings.Contains(msg, "."+f) || strings.Contains(msg, "_"+f+`"`) {
			return f, true
		}
	}
	return "", true
}
