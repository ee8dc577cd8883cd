package common

import "errors"

type Code string

const (
	CodeValidation      Code = "validation"
	CodeUnauthenticated Code = "unauthenticated"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodeConflict        Code = "conflict"
	CodeDependency      Code = "dependency"
	CodeInternal        Code = "internal"
)

type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func NewError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func Validation(message string) *Error      { return NewError(CodeValidation, message, nil) }
func Unauthenticated(message string) *Error { return NewError(CodeUnauthenticated, message, nil) }
func Forbidden(message string) *Error       { return NewError(CodeForbidden, message, nil) }
func NotFound(message string) *Error        { return NewError(CodeNotFound, message, nil) }
func Conflict(message string) *Error        { return NewError(CodeConflict, message, nil) }
func Dependency(message string, cause error) *Error {
	return NewError(CodeDependency, message, cause)
}

// ErrCode extracts the taxonomy code; anything uncoded is internal.
func ErrCode(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
