package runtime

import "fmt"

// ErrorKind mirrors the built-in Error constructor hierarchy.
type ErrorKind int

const (
	GenericError ErrorKind = iota
	EvalError
	RangeError
	ReferenceError
	SyntaxError
	TypeError
	URIError
	// Throw carries an arbitrary thrown value in Error.Value.
	Throw
)

var errorKindNames = [...]string{
	GenericError:   "Error",
	EvalError:      "EvalError",
	RangeError:     "RangeError",
	ReferenceError: "ReferenceError",
	SyntaxError:    "SyntaxError",
	TypeError:      "TypeError",
	URIError:       "URIError",
	Throw:          "Throw",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "Error"
}

// Error is the failure result of every object-model and built-in operation.
// Effects performed before the failure are not rolled back.
type Error struct {
	Kind    ErrorKind
	Message string
	// Value is the thrown value when Kind is Throw.
	Value Value
}

func (e *Error) Error() string {
	if e.Kind == Throw {
		return "Uncaught " + e.Value.String()
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return newError(kind, format, args...)
}

func NewTypeError(format string, args ...any) *Error {
	return newError(TypeError, format, args...)
}

func NewRangeError(format string, args ...any) *Error {
	return newError(RangeError, format, args...)
}

func NewReferenceError(format string, args ...any) *Error {
	return newError(ReferenceError, format, args...)
}

func NewSyntaxError(format string, args ...any) *Error {
	return newError(SyntaxError, format, args...)
}

func NewURIError(format string, args ...any) *Error {
	return newError(URIError, format, args...)
}

// ThrowValue wraps a JS value thrown by script code.
func ThrowValue(v Value) *Error {
	return &Error{Kind: Throw, Value: v}
}
