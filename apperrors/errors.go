package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors 同一类校验中累积的全部字段错误
type ValidationErrors struct {
	Errors []FieldError
}

func (e *ValidationErrors) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// ConflictError 唯一性冲突：重复邮箱、重复队名、重复业务编号
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflictf(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError 引用的资源不存在
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// AuthError 令牌缺失/过期/无效或角色不匹配
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// TransientStoreError 存储暂时不可达，允许一次重连重试
type TransientStoreError struct {
	Err error
}

func (e *TransientStoreError) Error() string {
	return "store temporarily unavailable: " + e.Err.Error()
}

func (e *TransientStoreError) Unwrap() error { return e.Err }

// InvalidStateError 任务状态机非法迁移
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string { return e.Message }

func InvalidState(message string) *InvalidStateError {
	return &InvalidStateError{Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationErrors
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func IsInvalidState(err error) bool {
	var se *InvalidStateError
	return errors.As(err, &se)
}
