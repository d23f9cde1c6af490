package eval

import (
	"fmt"
	"strings"

	"github.com/jsonnetlang/jsonnet/compiler/errors"
	"github.com/jsonnetlang/jsonnet/compiler/parser"
)

// RuntimeError is returned for every evaluation failure: type mismatches,
// missing fields, explicit `error` expressions, failed asserts, stack
// depth exceeded, and the like. Code is one of the E2xx runtime codes from
// compiler/errors, letting the driver's --errors-as-json path emit a
// CompilerError with the right taxonomy entry rather than a single
// catch-all code.
type RuntimeError struct {
	Message string
	Code    string
	File    string
	Line    int
	Column  int
}

func (e *RuntimeError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("RUNTIME ERROR: %s", e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: RUNTIME ERROR: %s", e.File, e.Line, e.Column, e.Message)
}

func (e *RuntimeError) ErrorCode() string { return e.Code }

// newRuntimeError builds a RuntimeError, classifying its code from the
// formatted message. Use newRuntimeErrorCode instead at call sites where
// the message text alone doesn't determine the category (a user-supplied
// `error`/`assert` message can say anything).
func newRuntimeError(loc parser.SourceLocation, format string, args ...interface{}) *RuntimeError {
	msg := fmt.Sprintf(format, args...)
	return &RuntimeError{
		Message: msg,
		Code:    classifyRuntimeCode(msg),
		File:    loc.File,
		Line:    loc.Line,
		Column:  loc.Column,
	}
}

// newRuntimeErrorCode builds a RuntimeError with an explicit code, bypassing
// message classification.
func newRuntimeErrorCode(code string, loc parser.SourceLocation, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		File:    loc.File,
		Line:    loc.Line,
		Column:  loc.Column,
	}
}

// classifyRuntimeCode maps a runtime error's message text onto the
// compiler/errors runtime taxonomy (E200-E299), the same substring
// approach compiler/errors/suggestions.go uses for std namespace hints.
func classifyRuntimeCode(msg string) string {
	switch {
	case strings.Contains(msg, "unknown variable"):
		return errors.ErrUnknownVariable
	case strings.Contains(msg, "does not exist"):
		return errors.ErrFieldNotFound
	case strings.Contains(msg, "out of bounds"):
		return errors.ErrIndexOutOfRange
	case strings.Contains(msg, "self used outside"):
		return errors.ErrSelfOutsideObject
	case strings.Contains(msg, "super"):
		return errors.ErrSuperOutsideObject
	case strings.Contains(msg, "division by zero"):
		return errors.ErrDivisionByZero
	case strings.Contains(msg, "couldn't resolve import"), strings.Contains(msg, "couldn't open import"):
		return errors.ErrImportNotFound
	case strings.Contains(msg, "max stack frames"):
		return errors.ErrStackDepthExceeded
	case strings.Contains(msg, "must be boolean"), strings.Contains(msg, "requires booleans"), strings.Contains(msg, "requires a boolean"):
		return errors.ErrNonBooleanCondition
	case strings.Contains(msg, "requires an array"), strings.Contains(msg, "for loop requires"):
		return errors.ErrNonIterable
	case strings.Contains(msg, "must be a string"):
		return errors.ErrNonStringObjectKey
	case strings.Contains(msg, "cannot call"), strings.Contains(msg, "cannot index into"):
		return errors.ErrNotCallable
	default:
		return errors.ErrTypeMismatch
	}
}
