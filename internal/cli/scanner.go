package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/syringe/internal/generator"
)

// DirectoryScanner expands directory arguments into the list of package
// directories to scan. Supports Go-style "./..." patterns for recursive
// scanning.
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories resolves the provided directory arguments into
// directories that contain Go files.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	var packageDirs []string
	seen := make(map[string]bool)

	for _, rootDir := range rootDirs {
		if strings.HasSuffix(rootDir, "/...") {
			baseDir := strings.TrimSuffix(rootDir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
			dirs, err := s.walk(baseDir)
			if err != nil {
				return nil, fmt.Errorf("failed to scan %s: %w", rootDir, err)
			}
			for _, dir := range dirs {
				if !seen[dir] {
					seen[dir] = true
					packageDirs = append(packageDirs, dir)
				}
			}
			continue
		}

		cleanPath := filepath.Clean(rootDir)
		hasGo, err := containsGoFiles(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", rootDir, err)
		}
		if hasGo && !seen[cleanPath] {
			seen[cleanPath] = true
			packageDirs = append(packageDirs, cleanPath)
		}
	}

	return packageDirs, nil
}

// walk collects every subdirectory containing Go files, skipping
// hidden directories, vendor and testdata.
func (s *DirectoryScanner) walk(baseDir string) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(baseDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}

		name := entry.Name()
		if path != baseDir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
			return filepath.SkipDir
		}

		hasGo, err := containsGoFiles(path)
		if err != nil {
			return err
		}
		if hasGo {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

// containsGoFiles reports whether a directory has at least one
// non-test, non-generated Go source file.
func containsGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") || name == generator.GeneratedFileName {
			continue
		}
		return true, nil
	}
	return false, nil
}
