package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocation() SourceLocation {
	return SourceLocation{File: "service.go", Line: 10}
}

func TestParser_ConstructorDirective(t *testing.T) {
	parser := NewParser(DefaultRegistry())

	parsed, err := parser.ParseAnnotation("//syringe::constructor", "NewUserService", testLocation())
	require.NoError(t, err)
	assert.Equal(t, ConstructorAnnotation, parsed.Type)
	assert.Equal(t, "NewUserService", parsed.Target)
	assert.Empty(t, parsed.Parameters)
}

func TestParser_ConstructorDirectiveWithLeadingSpace(t *testing.T) {
	parser := NewParser(DefaultRegistry())

	parsed, err := parser.ParseAnnotation("// syringe::constructor", "NewUserService", testLocation())
	require.NoError(t, err)
	assert.Equal(t, ConstructorAnnotation, parsed.Type)
}

func TestParser_ProviderDirective(t *testing.T) {
	tests := []struct {
		name      string
		comment   string
		wantScope string
	}{
		{
			name:      "default scope",
			comment:   "//syringe::provider",
			wantScope: "Singleton",
		},
		{
			name:      "explicit singleton",
			comment:   "//syringe::provider -Scope=Singleton",
			wantScope: "Singleton",
		},
		{
			name:      "transient",
			comment:   "//syringe::provider -Scope=Transient",
			wantScope: "Transient",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser(DefaultRegistry())

			parsed, err := parser.ParseAnnotation(tt.comment, "ProvideConfig", testLocation())
			require.NoError(t, err)
			assert.Equal(t, ProviderAnnotation, parsed.Type)
			assert.Equal(t, tt.wantScope, parsed.GetString("Scope", "Singleton"))
		})
	}
}

func TestParser_InvalidScopeFails(t *testing.T) {
	parser := NewParser(DefaultRegistry())

	_, err := parser.ParseAnnotation("//syringe::provider -Scope=Global", "ProvideConfig", testLocation())
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Scope", validationErr.Parameter)
}

func TestParser_UnknownParameterFails(t *testing.T) {
	parser := NewParser(DefaultRegistry())

	_, err := parser.ParseAnnotation("//syringe::constructor -Lazy", "NewThing", testLocation())
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Lazy", validationErr.Parameter)
}

func TestParser_UnknownKindFails(t *testing.T) {
	parser := NewParser(DefaultRegistry())

	_, err := parser.ParseAnnotation("//syringe::component", "Thing", testLocation())
	var syntaxErr *SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestParser_MalformedDirectiveFails(t *testing.T) {
	parser := NewParser(DefaultRegistry())

	_, err := parser.ParseAnnotation("//syringe:: -Scope=Transient", "Thing", testLocation())
	assert.Error(t, err)
}

func TestIsDirective(t *testing.T) {
	tests := []struct {
		comment string
		want    bool
	}{
		{comment: "//syringe::constructor", want: true},
		{comment: "// syringe::provider -Scope=Transient", want: true},
		{comment: "// NewUserService builds a user service", want: false},
		{comment: "//nolint:errcheck", want: false},
		{comment: "", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDirective(tt.comment), tt.comment)
	}
}

func TestRegistry_DuplicateRegistrationFails(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(ConstructorAnnotation, ConstructorAnnotationSchema))
	assert.Error(t, registry.Register(ConstructorAnnotation, ConstructorAnnotationSchema))
}

func TestRegistry_SchemaTypeMismatchFails(t *testing.T) {
	registry := NewRegistry()
	assert.Error(t, registry.Register(ProviderAnnotation, ConstructorAnnotationSchema))
}
