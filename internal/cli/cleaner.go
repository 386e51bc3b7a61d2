package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/syringe/internal/generator"
)

// Cleaner removes generated registration files
type Cleaner struct{}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// CleanGeneratedFiles removes every syringe_gen.go under the specified
// directories and returns the paths it removed.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	var removed []string

	for _, dir := range directories {
		if strings.HasSuffix(dir, "/...") {
			baseDir := strings.TrimSuffix(dir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
			if err := c.cleanRecursively(baseDir, &removed); err != nil {
				return removed, fmt.Errorf("failed to clean directory %s: %w", dir, err)
			}
			continue
		}
		if err := c.cleanSingleDirectory(dir, &removed); err != nil {
			return removed, fmt.Errorf("failed to clean directory %s: %w", dir, err)
		}
	}

	return removed, nil
}

func (c *Cleaner) cleanRecursively(baseDir string, removed *[]string) error {
	return filepath.WalkDir(baseDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			// Skip directories that vanished or cannot be accessed
			return nil
		}
		if entry.IsDir() {
			// Errors in one directory should not stop the sweep
			_ = c.cleanSingleDirectory(path, removed)
		}
		return nil
	})
}

func (c *Cleaner) cleanSingleDirectory(dir string, removed *[]string) error {
	target := filepath.Join(dir, generator.GeneratedFileName)

	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to check file %s: %w", target, err)
	}

	if err := os.Remove(target); err != nil {
		return fmt.Errorf("failed to remove file %s: %w", target, err)
	}

	*removed = append(*removed, target)
	return nil
}
