// Package errors provides standardized error messaging for VLang
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"

	"github.com/vlang-lab/vlang/internal/position"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategorySemantic   ErrorCategory = "SEMANTIC"
	CategoryType       ErrorCategory = "TYPE"
	CategoryBounds     ErrorCategory = "BOUNDS"
	CategoryArithmetic ErrorCategory = "ARITHMETIC"
	CategoryMemory     ErrorCategory = "MEMORY"
	CategorySystem     ErrorCategory = "SYSTEM"
)

// IsRuntime reports whether errors of this category are raised by
// executing a well-formed program rather than by misusing the language.
func (c ErrorCategory) IsRuntime() bool {
	switch c {
	case CategoryBounds, CategoryArithmetic, CategoryMemory, CategorySystem:
		return true
	}
	return false
}

// Error codes shared by the environment and the interpreter.
const (
	CodeUndefinedName     = "UNDEFINED_NAME"
	CodeDuplicateName     = "DUPLICATE_NAME"
	CodeImmutableAssign   = "IMMUTABLE_ASSIGN"
	CodeTypeMismatch      = "TYPE_MISMATCH"
	CodeInvalidOperation  = "INVALID_OPERATION"
	CodeArity             = "ARITY_MISMATCH"
	CodeUnknownType       = "UNKNOWN_TYPE"
	CodeUnknownField      = "UNKNOWN_FIELD"
	CodeMissingField      = "MISSING_FIELD"
	CodeDuplicateField    = "DUPLICATE_FIELD"
	CodeInvalidTransfer   = "INVALID_TRANSFER"
	CodeMissingReturn     = "MISSING_RETURN"
	CodeNotCallable       = "NOT_CALLABLE"
	CodeIndexOutOfBounds  = "INDEX_OUT_OF_BOUNDS"
	CodeDivisionByZero    = "DIVISION_BY_ZERO"
	CodeNilDereference    = "NIL_DEREFERENCE"
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeCallDepthExceeded = "CALL_DEPTH_EXCEEDED"
	CodeIntegerOverflow   = "INTEGER_OVERFLOW"
	CodeCancelled         = "EVALUATION_CANCELLED"
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
	Span     position.Span
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return fmt.Sprintf("[%s:%s] %s (caller: %s)", e.Category, e.Code, e.Message, e.Caller)
}

// Is matches errors carrying the same code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	return ok && t.Code == e.Code
}

// At records where the error happened unless a location is already set.
func (e *StandardError) At(span position.Span) *StandardError {
	if !e.Span.IsValid() {
		e.Span = span
	}
	return e
}

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(2)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// As extracts a *StandardError from err's chain.
func As(err error) (*StandardError, bool) {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// HasCode reports whether err is a *StandardError with the given code.
func HasCode(err error, code string) bool {
	se, ok := As(err)
	return ok && se.Code == code
}

// Semantic builds a semantic error with a free-form message.
func Semantic(code, format string, args ...interface{}) *StandardError {
	return NewStandardError(CategorySemantic, code, fmt.Sprintf(format, args...), nil)
}

// Common error constructors
func IndexOutOfBounds(index int64, length int) *StandardError {
	return NewStandardError(CategoryBounds, CodeIndexOutOfBounds,
		fmt.Sprintf("index %d out of bounds for length %d", index, length),
		map[string]interface{}{"index": index, "length": length})
}

func DivisionByZero(operator string) *StandardError {
	return NewStandardError(CategoryArithmetic, CodeDivisionByZero,
		fmt.Sprintf("division by zero in '%s'", operator),
		map[string]interface{}{"operator": operator})
}

func NilDereference(operation string) *StandardError {
	return NewStandardError(CategoryMemory, CodeNilDereference,
		fmt.Sprintf("nil dereference in %s", operation),
		map[string]interface{}{"operation": operation})
}

func IntegerOverflow(operator string) *StandardError {
	return NewStandardError(CategoryArithmetic, CodeIntegerOverflow,
		fmt.Sprintf("integer overflow in '%s'", operator),
		map[string]interface{}{"operator": operator})
}

// Cancelled reports an evaluation stopped by its context, e.g. a deadline.
func Cancelled(cause error) *StandardError {
	return NewStandardError(CategorySystem, CodeCancelled,
		fmt.Sprintf("evaluation cancelled: %v", cause),
		map[string]interface{}{"cause": cause.Error()})
}

func CallDepthExceeded(limit int) *StandardError {
	return NewStandardError(CategorySystem, CodeCallDepthExceeded,
		fmt.Sprintf("maximum call depth of %d exceeded", limit),
		map[string]interface{}{"limit": limit})
}

func InvalidArgument(function, details string) *StandardError {
	return NewStandardError(CategorySystem, CodeInvalidArgument,
		fmt.Sprintf("%s: %s", function, details),
		map[string]interface{}{"function": function})
}

func UndefinedName(name string) *StandardError {
	return NewStandardError(CategorySemantic, CodeUndefinedName,
		fmt.Sprintf("undefined symbol '%s'", name),
		map[string]interface{}{"name": name})
}

func DuplicateName(name string, previous position.Position) *StandardError {
	msg := fmt.Sprintf("symbol '%s' is already defined in this scope", name)
	if previous.IsValid() {
		msg = fmt.Sprintf("symbol '%s' is already defined at %s", name, previous)
	}
	return NewStandardError(CategorySemantic, CodeDuplicateName, msg,
		map[string]interface{}{"name": name, "previous": previous})
}

func ImmutableAssign(name string) *StandardError {
	return NewStandardError(CategorySemantic, CodeImmutableAssign,
		fmt.Sprintf("cannot assign to immutable variable '%s'", name),
		map[string]interface{}{"name": name})
}

func TypeMismatch(context, expected, actual string) *StandardError {
	return NewStandardError(CategoryType, CodeTypeMismatch,
		fmt.Sprintf("%s: expected %s, got %s", context, expected, actual),
		map[string]interface{}{"expected": expected, "actual": actual})
}

func InvalidOperation(operator, left, right string) *StandardError {
	msg := fmt.Sprintf("operator '%s' is not defined for %s and %s", operator, left, right)
	if right == "" {
		msg = fmt.Sprintf("operator '%s' is not defined for %s", operator, left)
	}
	return NewStandardError(CategoryType, CodeInvalidOperation, msg,
		map[string]interface{}{"operator": operator})
}

func ArityMismatch(function string, want, got int) *StandardError {
	return NewStandardError(CategorySemantic, CodeArity,
		fmt.Sprintf("%s expects %d argument(s), got %d", function, want, got),
		map[string]interface{}{"function": function, "want": want, "got": got})
}

func UnknownType(name string) *StandardError {
	return NewStandardError(CategorySemantic, CodeUnknownType,
		fmt.Sprintf("unknown type '%s'", name),
		map[string]interface{}{"name": name})
}

func UnknownField(structName, field string) *StandardError {
	return NewStandardError(CategorySemantic, CodeUnknownField,
		fmt.Sprintf("struct '%s' has no field '%s'", structName, field),
		map[string]interface{}{"struct": structName, "field": field})
}

func MissingField(structName, field string) *StandardError {
	return NewStandardError(CategorySemantic, CodeMissingField,
		fmt.Sprintf("missing field '%s' in %s literal", field, structName),
		map[string]interface{}{"struct": structName, "field": field})
}

func DuplicateField(structName, field string) *StandardError {
	return NewStandardError(CategorySemantic, CodeDuplicateField,
		fmt.Sprintf("field '%s' given more than once in %s literal", field, structName),
		map[string]interface{}{"struct": structName, "field": field})
}

func InvalidTransfer(keyword, outside string) *StandardError {
	return NewStandardError(CategorySemantic, CodeInvalidTransfer,
		fmt.Sprintf("%s outside of a %s", keyword, outside),
		map[string]interface{}{"keyword": keyword})
}

func MissingReturn(function, returnType string) *StandardError {
	return NewStandardError(CategorySemantic, CodeMissingReturn,
		fmt.Sprintf("function '%s' must return a value of type %s", function, returnType),
		map[string]interface{}{"function": function})
}

func NotCallable(name string) *StandardError {
	return NewStandardError(CategorySemantic, CodeNotCallable,
		fmt.Sprintf("'%s' is not a function", name),
		map[string]interface{}{"name": name})
}
