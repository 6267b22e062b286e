package types

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator 返回共享的校验器，字段名取 json tag
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return model.SlugPattern.MatchString(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// ValidateStruct 校验请求结构体，失败时返回 *ValidationError
// 每个字段只报告第一条失败的规则
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := NewValidationError()
	for _, fe := range verrs {
		field := fieldKey(fe)
		if out.Has(field) {
			continue
		}
		out.Add(field, message(fe))
	}
	return out
}

// fieldKey 把 tags[0] 转成 tags.0
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	ns = strings.ReplaceAll(ns, "]", "")
	return ns
}

func message(fe validator.FieldError) string {
	attr := attribute(fieldKey(fe))
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, sizeBound(fe))
	case "min":
		return fmt.Sprintf("The %s field must be at least %s.", attr, sizeBound(fe))
	case "url":
		return fmt.Sprintf("The %s field must be a valid URL.", attr)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	case "slug":
		return fmt.Sprintf("The %s field must only contain lowercase letters, numbers, and hyphens.", attr)
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

// attribute 消息中的字段名，permissions.2 显示为 permissions entry 3
func attribute(key string) string {
	parts := strings.Split(key, ".")
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil && i > 0 {
			parts[i] = fmt.Sprintf("entry %d", n+1)
		}
	}
	return strings.ReplaceAll(strings.Join(parts, " "), "_", " ")
}

// sizeBound min/max 的上下限，字符串按字符数、切片按条目数
func sizeBound(fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fe.Param()
	case reflect.Slice, reflect.Array, reflect.Map:
		return plural(fe.Param(), "item")
	default:
		return plural(fe.Param(), "character")
	}
}

func plural(n, unit string) string {
	if n == "1" {
		return n + " " + unit
	}
	return n + " " + unit + "s"
}

// TakenMessage 唯一约束冲突时的字段提示
func TakenMessage(field string) string {
	return fmt.Sprintf("The %s has already been taken.", strings.ReplaceAll(field, "_", " "))
}
