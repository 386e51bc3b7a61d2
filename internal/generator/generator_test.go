package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/syringe/internal/models"
	"github.com/toyz/syringe/internal/parser"
)

func parseSource(t *testing.T, source string) *models.PackageMetadata {
	t.Helper()
	metadata, err := parser.NewParser().ParseSource("widgets.go", source)
	require.NoError(t, err)
	return metadata
}

func TestGenerateFile_Constructors(t *testing.T) {
	metadata := parseSource(t, `package widgets

type Widget struct{}

//syringe::constructor
func newWidget(size int) *Widget {
	return &Widget{}
}

func NewWidget() *Widget {
	return &Widget{}
}`)

	file, err := NewGenerator().GenerateFile(metadata)
	require.NoError(t, err)
	require.NotNil(t, file)

	assert.Equal(t, "widgets", file.PackageName)
	assert.Equal(t, "syringe_gen.go", file.FilePath)
	assert.Contains(t, file.Content, "// Code generated by syringe. DO NOT EDIT.")
	assert.Contains(t, file.Content, "package widgets")
	assert.Contains(t, file.Content, `"github.com/toyz/syringe/pkg/syringe"`)
	assert.Contains(t, file.Content, `syringe.MustRegisterConstructor(newWidget, syringe.WithName("newWidget"), syringe.Annotated())`)
	assert.Contains(t, file.Content, `syringe.MustRegisterConstructor(NewWidget, syringe.WithName("NewWidget"))`)
}

func TestGenerateFile_Providers(t *testing.T) {
	metadata := parseSource(t, `package widgets

//syringe::provider -Scope=Transient
func NewClock() int64 {
	return 0
}

//syringe::provider
func DefaultLimit() int {
	return 100
}`)

	file, err := NewGenerator().GenerateFile(metadata)
	require.NoError(t, err)
	require.NotNil(t, file)

	assert.Contains(t, file.Content, "syringe.MustRegisterProvider(NewClock, syringe.ScopeTransient)")
	assert.Contains(t, file.Content, "syringe.MustRegisterProvider(DefaultLimit, syringe.ScopeSingleton)")
}

func TestGenerateFile_EmptyPackage(t *testing.T) {
	metadata := parseSource(t, `package widgets

func helper() {}`)

	file, err := NewGenerator().GenerateFile(metadata)
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestGenerateFile_PolicyViolationFails(t *testing.T) {
	metadata := parseSource(t, `package widgets

type Widget struct{}

func NewWidget(name string) *Widget {
	return &Widget{}
}`)

	_, err := NewGenerator().GenerateFile(metadata)
	require.Error(t, err)

	var buildErr *models.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Contains(t, buildErr.Message, "should be annotated")
}

func TestGenerateFile_NilMetadata(t *testing.T) {
	_, err := NewGenerator().GenerateFile(nil)
	require.Error(t, err)
}

func TestGenerateFile_OutputIsDeterministic(t *testing.T) {
	source := `package widgets

type Widget struct{}

//syringe::constructor
func newWidget() *Widget {
	return &Widget{}
}

type Gadget struct{}

func NewGadget() *Gadget {
	return &Gadget{}
}`

	first, err := NewGenerator().GenerateFile(parseSource(t, source))
	require.NoError(t, err)
	second, err := NewGenerator().GenerateFile(parseSource(t, source))
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
}
