package models

import "fmt"

// ErrorType classifies scanner and generator errors
type ErrorType int

const (
	ErrorTypeAnnotationSyntax ErrorType = iota
	ErrorTypeValidation
	ErrorTypeGeneration
	ErrorTypeFileSystem
)

// BuildError is an error produced while scanning or generating, carrying
// the source position it refers to.
type BuildError struct {
	Type    ErrorType
	File    string
	Line    int
	Message string
	Cause   error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *BuildError) Unwrap() error {
	return e.Cause
}
