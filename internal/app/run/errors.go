package run

import (
	"errors"
	"fmt"

	"github.com/John-Robertt/oldphoto/internal/domain"
)

// Error 是整次运行的致命错误：记录失败发生的阶段与 error_code。
// 单文件失败不会变成 Error（见 worker）。
type Error struct {
	Phase domain.Phase
	Code  string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s（%s）：%v", e.Code, e.Phase, e.Err)
	}
	return fmt.Sprintf("%s（%s）", e.Code, e.Phase)
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func fail(phase domain.Phase, code string, err error) *Error {
	return &Error{Phase: phase, Code: code, Err: err}
}
