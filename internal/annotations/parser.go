package annotations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// directive is the participle grammar root for a syringe:: comment:
//
//	//syringe::<kind> [-Param[=Value]]...
type directive struct {
	Kind string         `parser:"Comment Prefix @Ident"`
	Args []directiveArg `parser:"@@*"`
}

type directiveArg struct {
	Name  string  `parser:"Dash @Ident"`
	Value *string `parser:"(Equals @(String | Ident | Number))?"`
}

// Parser parses syringe:: directive comments against the schema
// registry.
type Parser struct {
	parser   *participle.Parser[directive]
	registry Registry
}

// NewParser creates a directive parser backed by the given schema
// registry. A nil registry skips schema validation.
func NewParser(registry Registry) *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Prefix", Pattern: `syringe::`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
		{Name: "Dash", Pattern: `-`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	return &Parser{
		parser: participle.MustBuild[directive](
			participle.Lexer(lex),
			participle.Elide("Whitespace"),
		),
		registry: registry,
	}
}

// IsDirective reports whether a comment line looks like a syringe::
// directive at all. Non-directive comments are skipped silently; a
// directive that fails to parse is an error.
func IsDirective(comment string) bool {
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	return strings.HasPrefix(text, "syringe::")
}

// ParseAnnotation parses a single directive comment and validates it
// against its schema.
func (p *Parser) ParseAnnotation(comment, target string, location SourceLocation) (*ParsedAnnotation, error) {
	dir, err := p.parser.ParseString(location.File, strings.TrimSpace(comment))
	if err != nil {
		return nil, &SyntaxError{
			Msg:  err.Error(),
			Loc:  location,
			Hint: "expected //syringe::<kind> [-Param[=Value]]...",
		}
	}

	annotationType, err := ParseAnnotationType(dir.Kind)
	if err != nil {
		return nil, &SyntaxError{
			Msg:  err.Error(),
			Loc:  location,
			Hint: "known kinds are: constructor, provider",
		}
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Target:     target,
		Parameters: make(map[string]any),
		Location:   location,
		Raw:        comment,
	}

	for _, arg := range dir.Args {
		if arg.Value == nil {
			// A bare -Flag means true for boolean parameters and the
			// declared default otherwise
			parsed.Parameters[arg.Name] = true
			continue
		}
		parsed.Parameters[arg.Name] = unquote(*arg.Value)
	}

	if p.registry != nil {
		if err := p.validate(parsed); err != nil {
			return nil, err
		}
	}
	return parsed, nil
}

// validate checks the parsed parameters against the kind's schema and
// converts values to their declared types.
func (p *Parser) validate(parsed *ParsedAnnotation) error {
	schema, err := p.registry.GetSchema(parsed.Type)
	if err != nil {
		return &SchemaError{Msg: err.Error(), Loc: parsed.Location}
	}

	for name, value := range parsed.Parameters {
		spec, exists := schema.Parameters[name]
		if !exists {
			return &ValidationError{
				Parameter: name,
				Expected:  fmt.Sprintf("a parameter of //syringe::%s", parsed.Type),
				Actual:    fmt.Sprintf("%v", value),
				Loc:       parsed.Location,
				Hint:      "remove the parameter or check its spelling",
			}
		}

		converted, err := convertValue(value, spec.Type)
		if err != nil {
			return &ValidationError{
				Parameter: name,
				Expected:  spec.Description,
				Actual:    fmt.Sprintf("%v", value),
				Loc:       parsed.Location,
				Hint:      err.Error(),
			}
		}
		parsed.Parameters[name] = converted

		if spec.Validator != nil {
			if err := spec.Validator(converted); err != nil {
				return &ValidationError{
					Parameter: name,
					Expected:  spec.Description,
					Actual:    fmt.Sprintf("%v", converted),
					Loc:       parsed.Location,
					Hint:      err.Error(),
				}
			}
		}
	}

	for name, spec := range schema.Parameters {
		if spec.Required {
			if _, exists := parsed.Parameters[name]; !exists {
				return &ValidationError{
					Parameter: name,
					Expected:  spec.Description,
					Actual:    "missing",
					Loc:       parsed.Location,
					Hint:      fmt.Sprintf("add -%s=<value>", name),
				}
			}
		}
	}
	return nil
}

// convertValue coerces a raw parameter value to its schema type
func convertValue(value any, paramType ParameterType) (any, error) {
	switch paramType {
	case StringType:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("expected a string value")
	case BoolType:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			return strconv.ParseBool(v)
		}
		return nil, fmt.Errorf("expected a boolean value")
	case IntType:
		if s, ok := value.(string); ok {
			return strconv.Atoi(s)
		}
		return nil, fmt.Errorf("expected an integer value")
	default:
		return value, nil
	}
}

// unquote strips surrounding double quotes from string token values
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`)
	}
	return s
}
