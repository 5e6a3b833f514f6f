package workflow

import "fmt"

// Code is the machine-readable category of an engine error.
type Code string

const (
	CodeCaseNotFound         Code = "CASE_NOT_FOUND"
	CodeStageNotFound        Code = "STAGE_NOT_FOUND"
	CodeInvalidTransition    Code = "INVALID_TRANSITION"
	CodeInvalidGuardContext  Code = "INVALID_GUARD_CONTEXT"
	CodeTransitionNotAllowed Code = "TRANSITION_NOT_ALLOWED"
	CodeGuardExecutionFailed Code = "GUARD_EXECUTION_FAILED"
	CodeUnknownGuard         Code = "UNKNOWN_GUARD"
)

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrCaseNotFound         = &Error{Code: CodeCaseNotFound}
	ErrStageNotFound        = &Error{Code: CodeStageNotFound}
	ErrInvalidTransition    = &Error{Code: CodeInvalidTransition}
	ErrInvalidGuardContext  = &Error{Code: CodeInvalidGuardContext}
	ErrTransitionNotAllowed = &Error{Code: CodeTransitionNotAllowed}
	ErrGuardExecutionFailed = &Error{Code: CodeGuardExecutionFailed}
	ErrUnknownGuard         = &Error{Code: CodeUnknownGuard}
)

// Error is the engine error type. Guard denials carry the guard name, the
// human-readable reason and any structured metadata the guard produced.
type Error struct {
	Code      Code
	Message   string
	GuardName GuardName
	Reason    string
	Metadata  map[string]any
	Cause     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Reason)
	}
	return string(e.Code)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// NewError creates an engine error with a formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates an engine error around a cause.
func WrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Denied builds the error for a negative guard verdict. An empty code means
// the guard itself refused (TransitionNotAllowed).
func Denied(code Code, guard GuardName, reason string, metadata map[string]any) *Error {
	if code == "" {
		code = CodeTransitionNotAllowed
	}
	return &Error{
		Code:      code,
		Message:   fmt.Sprintf("transition not allowed by %s: %s", guard, reason),
		GuardName: guard,
		Reason:    reason,
		Metadata:  metadata,
	}
}
