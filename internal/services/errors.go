package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Code is the stable error taxonomy every failure maps onto.
type Code string

const (
	CodeNotFound         Code = "not_found"
	CodeInvalidArgument  Code = "invalid_argument"
	CodeUnauthorized     Code = "unauthorized"
	CodeForbidden        Code = "forbidden"
	CodeConflict         Code = "conflict"
	CodeInvalidOperation Code = "invalid_operation"
	CodeInternal         Code = "internal"
)

// Error is a domain failure carrying its taxonomy code. Validation
// failures carry every violated rule, not just the first.
type Error struct {
	Code       Code
	Message    string
	Violations []string
}

func (e *Error) Error() string {
	if len(e.Violations) > 0 {
		return e.Message + ": " + strings.Join(e.Violations, "; ")
	}
	return e.Message
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Invalid(message string, violations ...string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: message, Violations: violations}
}

func Unauthorizedf(format string, args ...any) *Error {
	return &Error{Code: CodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) *Error {
	return &Error{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidOperationf(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

// ErrInternal hides storage and infrastructure failures from callers.
// The triggering error is logged where it happened, never returned.
var ErrInternal = &Error{Code: CodeInternal, Message: "internal server error"}

// AsError extracts the taxonomy error, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// isNotFound reports whether a repository error means the row is absent.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate reports whether a repository error is a unique-index
// violation, the signal both the like toggle and the tag insert lean on.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
