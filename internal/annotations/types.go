package annotations

import "fmt"

// AnnotationType represents the kind of syringe:: directive
type AnnotationType int

const (
	// ConstructorAnnotation marks a function as the injection
	// constructor for the type it produces
	ConstructorAnnotation AnnotationType = iota

	// ProviderAnnotation marks a function as a service provider for the
	// lookup registry
	ProviderAnnotation
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case ConstructorAnnotation:
		return "constructor"
	case ProviderAnnotation:
		return "provider"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts a directive keyword to an AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "constructor":
		return ConstructorAnnotation, nil
	case "provider":
		return ProviderAnnotation, nil
	default:
		return 0, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// SourceLocation is where an annotation appears in source code
type SourceLocation struct {
	File string
	Line int
}

// ParsedAnnotation is a fully parsed syringe:: directive with
// schema-validated parameters.
type ParsedAnnotation struct {
	Type       AnnotationType
	Target     string         // name of the annotated function
	Parameters map[string]any // typed parameter values
	Location   SourceLocation
	Raw        string // original comment text
}

// GetString returns a string parameter with an optional default
func (p *ParsedAnnotation) GetString(name string, defaultValue ...string) string {
	if v, ok := p.Parameters[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetBool returns a boolean parameter with an optional default
func (p *ParsedAnnotation) GetBool(name string, defaultValue ...bool) bool {
	if v, ok := p.Parameters[name]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// ParameterType describes the value type a parameter accepts
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
	IntType
)

// ParameterSpec defines one parameter accepted by an annotation kind
type ParameterSpec struct {
	Type         ParameterType
	Required     bool
	DefaultValue any
	Description  string
	Validator    func(v any) error
}

// AnnotationSchema defines the parameters an annotation kind accepts
type AnnotationSchema struct {
	Type        AnnotationType
	Description string
	Parameters  map[string]ParameterSpec
	Examples    []string
}
