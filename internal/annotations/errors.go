package annotations

import "fmt"

// SyntaxError is a directive that could not be parsed
type SyntaxError struct {
	Msg  string
	Loc  SourceLocation
	Hint string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: syntax error: %s (%s)", e.Loc.File, e.Loc.Line, e.Msg, e.Hint)
}

// ValidationError is a directive parameter that failed schema validation
type ValidationError struct {
	Parameter string
	Expected  string
	Actual    string
	Loc       SourceLocation
	Hint      string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:%d: parameter '%s' validation failed: expected %s, got %s (%s)",
		e.Loc.File, e.Loc.Line, e.Parameter, e.Expected, e.Actual, e.Hint)
}

// SchemaError is a directive whose kind has no registered schema
type SchemaError struct {
	Msg string
	Loc SourceLocation
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s:%d: schema error: %s", e.Loc.File, e.Loc.Line, e.Msg)
}
