package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误分类（对外导出）
// 管线边界根据分类统一翻译为HTTP状态码
type Kind int

const (
	// KindInternal 内部错误（默认分类）
	KindInternal Kind = iota
	// KindUnauthorized 身份校验失败
	KindUnauthorized
	// KindValidation 参数或数据校验失败
	KindValidation
	// KindNotFound 资源不存在
	KindNotFound
)

// Error 带分类的错误（对外导出）
type Error struct {
	Kind    Kind
	Message string
	Err     error // 底层错误，可为nil
}

// Error 实现error接口
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.Err
}

// Unauthorizedf 创建身份校验错误
func Unauthorizedf(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Validationf 创建校验错误
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf 创建资源不存在错误
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误为内部错误，保留错误链
func Wrap(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf 提取错误分类，非*Error一律视为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus 错误分类到HTTP状态码的映射
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
