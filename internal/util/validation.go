package util

import (
	"errors"
	"fmt"
	"reflect"
	"skillpath_backend/internal/model"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError 字段级的校验错误，key 为 json 字段路径
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("invalid input: %s", e.Fields[keys[0]])
}

// NewFieldError 构造单个字段的校验错误
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once

	// 个别字段沿用表单上的提示文案
	fieldMessages = map[string]string{
		"careerGoal.min":          "Please describe your career goal in more detail.",
		"profession.min":          "You have to select at least one profession.",
		"learningStyle.min":       "You have to select at least one learning style.",
		"currentSkills.min":       "Please list at least one current skill.",
		"email.email":             "Please enter a valid email address.",
		"password.min":            "Password must be at least 8 characters.",
		"confirmPassword.eqfield": "Passwords don't match.",
		"role.oneof":              "You need to select a role.",
	}
)

// Validator 返回共享的校验器，字段名使用 json tag
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		model.RegisterValidations(validate)
	})
	return validate
}

// ValidateStruct 校验结构体，失败时返回 *ValidationError
func ValidateStruct(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe)
		if _, exists := fields[path]; exists {
			continue
		}
		fields[path] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

// fieldPath 去掉顶层结构体名，例如 GoalProfile.learningStyle[0] -> learningStyle[0]
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", name)
	case "notblank":
		return fmt.Sprintf("%s must not be blank.", name)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items.", name, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s items.", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", name, fe.Param())
	case "len":
		return fmt.Sprintf("%s must contain exactly %s items.", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", name)
	case "url":
		return fmt.Sprintf("%s must be a valid URL.", name)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s.", name, fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s.", name, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s.", name, fe.Param())
	case "answer_in_options":
		return fmt.Sprintf("%s must be one of the options.", name)
	default:
		return fmt.Sprintf("%s is invalid (%s).", name, fe.Tag())
	}
}
