package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/syringe/internal/utils"
)

const widgetSource = `package widgets

type Widget struct{}

//syringe::constructor
func NewWidget(name string) *Widget {
	return &Widget{}
}
`

const brokenSource = `package widgets

type Widget struct{}

func NewWidget(name string) *Widget {
	return &Widget{}
}
`

func TestRunner_GeneratesRegistrationFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "widgets", "widgets.go"), widgetSource)

	runner := NewRunner(Config{
		Directories: []string{dir + "/..."},
	}, utils.NewQuietDiagnostics())
	require.NoError(t, runner.Run())

	generated := filepath.Join(dir, "widgets", "syringe_gen.go")
	require.FileExists(t, generated)

	content, err := os.ReadFile(generated)
	require.NoError(t, err)
	assert.Contains(t, string(content), `syringe.MustRegisterConstructor(NewWidget, syringe.WithName("NewWidget"), syringe.Annotated())`)
}

func TestRunner_CheckOnlyWritesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "widgets", "widgets.go"), widgetSource)

	runner := NewRunner(Config{
		Directories: []string{dir + "/..."},
		CheckOnly:   true,
	}, utils.NewQuietDiagnostics())
	require.NoError(t, runner.Run())

	assert.NoFileExists(t, filepath.Join(dir, "widgets", "syringe_gen.go"))
}

func TestRunner_PolicyViolationFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "widgets", "widgets.go"), brokenSource)

	runner := NewRunner(Config{
		Directories: []string{dir + "/..."},
	}, utils.NewQuietDiagnostics())

	err := runner.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
	assert.NoFileExists(t, filepath.Join(dir, "widgets", "syringe_gen.go"))
}

func TestRunner_NoPackagesFound(t *testing.T) {
	runner := NewRunner(Config{
		Directories: []string{t.TempDir() + "/..."},
	}, utils.NewQuietDiagnostics())

	err := runner.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Go packages found")
}
