// Package errors defines the closed vocabulary of error kinds the safety
// envelope surfaces to a host, plus the DraconicError type that carries
// a source location and (optionally) a call stack for every runtime
// error it raises.
package errors

import (
	"fmt"
	"strings"
)

// Kind is one of the four contractually stable envelope error kinds, or
// the informational RuntimeTypeError for ordinary type mismatches.
type Kind string

const (
	// NumberTooHigh is raised when an integer result (or operand) falls
	// outside [-2^(bits-1), 2^(bits-1)-1].
	NumberTooHigh Kind = "NumberTooHigh"
	// IterableTooLong is raised when a container or string would exceed
	// MaxConstLen.
	IterableTooLong Kind = "IterableTooLong"
	// TooManyStatements is raised when the statement or loop-iteration
	// counter is exhausted.
	TooManyStatements Kind = "TooManyStatements"
	// FeatureNotAvailable is raised when a disabled syntactic form is
	// encountered.
	FeatureNotAvailable Kind = "FeatureNotAvailable"
	// RuntimeTypeError is an informational kind for ordinary runtime type
	// mismatches (e.g. indexing an integer). It is not part of the
	// contractually stable four-kind envelope vocabulary.
	RuntimeTypeError Kind = "RuntimeTypeError"
	// SyntaxErrorKind is raised by the lexer/parser, outside the envelope
	// proper but surfaced through the same error type for a uniform host
	// API.
	SyntaxErrorKind Kind = "SyntaxError"
)

// Location pinpoints the offending node in source.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.File == "" && l.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// StackFrame is one frame of a user-function call stack, recorded so a
// DraconicError can explain which nested call produced it.
type StackFrame struct {
	Function string
	Location Location
}

// DraconicError is the single error type every envelope violation and
// every syntax/runtime-type error produced by this module is reported as.
type DraconicError struct {
	Kind      Kind
	Message   string
	Location  Location
	CallStack []StackFrame
	cause     error
}

// New builds a DraconicError of the given kind at the given location.
func New(kind Kind, location Location, format string, args ...interface{}) *DraconicError {
	return &DraconicError{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}

// Error implements the error interface.
func (e *DraconicError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if loc := e.Location.String(); loc != "" {
		sb.WriteString(" (at ")
		sb.WriteString(loc)
		sb.WriteString(")")
	}
	for _, frame := range e.CallStack {
		sb.WriteString("\n  in ")
		sb.WriteString(frame.Function)
		if loc := frame.Location.String(); loc != "" {
			sb.WriteString(" (")
			sb.WriteString(loc)
			sb.WriteString(")")
		}
	}
	return sb.String()
}

// Unwrap exposes any wrapped cause so callers can use errors.As/errors.Is
// against it without string-matching the Kind.
func (e *DraconicError) Unwrap() error {
	return e.cause
}

// WithCause attaches an underlying error (e.g. a host callable's own
// error) without changing the Kind or Message already set.
func (e *DraconicError) WithCause(cause error) *DraconicError {
	e.cause = cause
	return e
}

// WithStack attaches a call stack, innermost frame first.
func (e *DraconicError) WithStack(stack []StackFrame) *DraconicError {
	e.CallStack = stack
	return e
}

// PushFrame prepends a stack frame as the error propagates out through a
// user-defined function call.
func (e *DraconicError) PushFrame(function string, loc Location) *DraconicError {
	e.CallStack = append([]StackFrame{{Function: function, Location: loc}}, e.CallStack...)
	return e
}

// Is reports whether err is a *DraconicError of the given kind, so callers
// can write `errors.Is(err, errors.NumberTooHigh)`-style checks via the
// package-level helper below instead of type-asserting everywhere.
func Is(err error, kind Kind) bool {
	de, ok := err.(*DraconicError)
	return ok && de.Kind == kind
}

// NumberTooHighf constructs a NumberTooHigh error.
func NumberTooHighf(loc Location, format string, args ...interface{}) *DraconicError {
	return New(NumberTooHigh, loc, format, args...)
}

// IterableTooLongf constructs an IterableTooLong error.
func IterableTooLongf(loc Location, format string, args ...interface{}) *DraconicError {
	return New(IterableTooLong, loc, format, args...)
}

// TooManyStatementsf constructs a TooManyStatements error.
func TooManyStatementsf(loc Location, format string, args ...interface{}) *DraconicError {
	return New(TooManyStatements, loc, format, args...)
}

// FeatureNotAvailablef constructs a FeatureNotAvailable error.
func FeatureNotAvailablef(loc Location, format string, args ...interface{}) *DraconicError {
	return New(FeatureNotAvailable, loc, format, args...)
}

// RuntimeTypeErrorf constructs an informational RuntimeTypeError.
func RuntimeTypeErrorf(loc Location, format string, args ...interface{}) *DraconicError {
	return New(RuntimeTypeError, loc, format, args...)
}

// SyntaxErrorf constructs a SyntaxError.
func SyntaxErrorf(loc Location, format string, args ...interface{}) *DraconicError {
	return New(SyntaxErrorKind, loc, format, args...)
}
