package syringe

import (
	"errors"
	"fmt"
	"reflect"
)

// Selection failures, raised by the constructor selection policy. They
// surface to callers as the cause of an InstantiationError.
var (
	// ErrNoConstructors means the type has no registered constructors at all
	ErrNoConstructors = errors.New("type has no registered constructors")

	// ErrMultipleAnnotated means more than one constructor carries the
	// injection annotation
	ErrMultipleAnnotated = errors.New("multiple constructors annotated")

	// ErrNotAnnotated means the sole constructor takes parameters but is
	// not annotated
	ErrNotAnnotated = errors.New("constructor should be annotated")

	// ErrNoAnnotated means the type declares several constructors and
	// none of them is annotated
	ErrNoAnnotated = errors.New("type has no constructor annotated")

	// ErrNotVisible means the sole zero-argument constructor is private
	// and unannotated
	ErrNotVisible = errors.New("constructor should be public or package-visible or annotated")
)

// InstantiationError is the single error kind reported by the injector.
// Type is always the originally requested type, never the generated
// concrete type, because generation is an implementation artifact
// invisible to the caller.
type InstantiationError struct {
	Type  reflect.Type
	Cause error
}

// Error implements the error interface
func (e *InstantiationError) Error() string {
	return fmt.Sprintf("object instantiation failed for type %s: %v", typeName(e.Type), e.Cause)
}

// Unwrap returns the underlying cause
func (e *InstantiationError) Unwrap() error {
	return e.Cause
}

// TooManyParametersError is a binding failure: more values were supplied
// than the resolved constructor declares parameters.
type TooManyParametersError struct {
	Expected int
	Received int
}

// Error implements the error interface
func (e *TooManyParametersError) Error() string {
	return fmt.Sprintf("too many parameters: expected %d, received %d", e.Expected, e.Received)
}

// UnexpectedParameterError is a binding failure: a supplied value's type
// matched no remaining constructor parameter.
type UnexpectedParameterError struct {
	Type reflect.Type
}

// Error implements the error interface
func (e *UnexpectedParameterError) Error() string {
	return fmt.Sprintf("unexpected parameter provided: %s", typeName(e.Type))
}

// NotFoundError is a lookup failure: no service is registered for the
// required type.
type NotFoundError struct {
	Type reflect.Type
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no service registered for type %s", typeName(e.Type))
}

// AmbiguousError is a lookup failure: several registered services
// satisfy the required type and none is an exact match.
type AmbiguousError struct {
	Type  reflect.Type
	Count int
}

// Error implements the error interface
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous lookup for type %s: %d services match", typeName(e.Type), e.Count)
}

// PanicError wraps a panic recovered from a constructor body. When the
// panic value is itself an error it is reported as the cause directly.
type PanicError struct {
	Value any
}

// Error implements the error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("constructor panicked: %v", e.Value)
}

// typeName formats a type for error messages, tolerating nil
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
