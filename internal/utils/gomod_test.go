package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModuleName(t *testing.T) {
	dir := t.TempDir()
	goModPath := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(goModPath, []byte("module example.com/widgets\n\ngo 1.25\n"), 0644))

	name, err := NewGoModParser().ParseModuleName(goModPath)
	require.NoError(t, err)
	assert.Equal(t, "example.com/widgets", name)
}

func TestParseModuleName_NotGoMod(t *testing.T) {
	_, err := NewGoModParser().ParseModuleName("main.go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a go.mod file")
}

func TestParseModuleName_NoModuleDeclaration(t *testing.T) {
	dir := t.TempDir()
	goModPath := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(goModPath, []byte("go 1.25\n"), 0644))

	_, err := NewGoModParser().ParseModuleName(goModPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no module declaration")
}

func TestFindGoModFile_WalksUp(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "internal", "widgets")
	require.NoError(t, os.MkdirAll(nested, 0755))
	goModPath := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(goModPath, []byte("module example.com/widgets\n"), 0644))

	found, err := NewGoModParser().FindGoModFile(nested)
	require.NoError(t, err)
	assert.Equal(t, goModPath, found)
}

func TestFindGoModFile_NotFound(t *testing.T) {
	_, err := NewGoModParser().FindGoModFile(t.TempDir())
	require.Error(t, err)
}
