package cli

import (
	"fmt"
	"os"

	"github.com/toyz/syringe/internal/generator"
	"github.com/toyz/syringe/internal/models"
	"github.com/toyz/syringe/internal/parser"
	"github.com/toyz/syringe/internal/utils"
)

// Runner orchestrates the scan, check and generate phases across the
// requested directories.
type Runner struct {
	config      Config
	scanner     *DirectoryScanner
	parser      *parser.Parser
	generator   *generator.Generator
	resolver    *ModuleResolver
	diagnostics *utils.DiagnosticSystem
}

// NewRunner creates a runner for the given configuration
func NewRunner(config Config, diagnostics *utils.DiagnosticSystem) *Runner {
	return &Runner{
		config:      config,
		scanner:     NewDirectoryScanner(),
		parser:      parser.NewParser(),
		generator:   generator.NewGenerator(),
		resolver:    NewModuleResolver(),
		diagnostics: diagnostics,
	}
}

// Run executes the configured operation over every package directory.
// In check mode it only validates; otherwise it writes a registration
// file into each package that declares constructors or providers.
func (r *Runner) Run() error {
	moduleName, err := r.resolver.ResolveModuleName(r.config.ModuleName)
	if err != nil {
		// The module name is informational for diagnostics; generation
		// itself only needs package-local identifiers.
		r.diagnostics.Verbose("module name unresolved: %v", err)
		moduleName = ""
	}
	if moduleName != "" {
		r.diagnostics.Verbose("module: %s", moduleName)
	}

	packageDirs, err := r.scanner.ScanDirectories(r.config.Directories)
	if err != nil {
		return err
	}
	if len(packageDirs) == 0 {
		return fmt.Errorf("no Go packages found in %v", r.config.Directories)
	}

	r.diagnostics.PhaseHeader("Scanning")
	var generated, checked int
	var failures int

	for _, dir := range packageDirs {
		metadata, err := r.parser.ParseDirectory(dir)
		if err != nil {
			if reported := r.reportBuildError(err); reported {
				failures++
				continue
			}
			return err
		}

		if len(metadata.Types) == 0 && len(metadata.Providers) == 0 {
			r.diagnostics.Verbose("no directives in %s", dir)
			continue
		}
		r.diagnostics.PhaseItem("%s (%d types, %d providers)", dir, len(metadata.Types), len(metadata.Providers))

		if errs := parser.Check(metadata); len(errs) > 0 {
			for _, buildErr := range errs {
				r.diagnostics.BuildError(buildErr.File, buildErr.Line, buildErr.Message)
			}
			failures += len(errs)
			continue
		}
		checked++

		if r.config.CheckOnly {
			continue
		}

		file, err := r.generator.GenerateFile(metadata)
		if err != nil {
			if reported := r.reportBuildError(err); reported {
				failures++
				continue
			}
			return err
		}
		if file == nil {
			continue
		}

		r.diagnostics.PhaseProgress("Writing %s", file.FilePath)
		if err := os.WriteFile(file.FilePath, []byte(file.Content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.FilePath, err)
		}
		generated++
	}

	if failures > 0 {
		return fmt.Errorf("%d validation error(s)", failures)
	}

	if r.config.CheckOnly {
		r.diagnostics.Success("%d package(s) validated", checked)
	} else {
		r.diagnostics.Complete()
		r.diagnostics.Verbose("%d file(s) written", generated)
	}
	return nil
}

// reportBuildError routes BuildErrors through the file:line diagnostic
// channel; anything else is left to the caller.
func (r *Runner) reportBuildError(err error) bool {
	if buildErr, ok := err.(*models.BuildError); ok {
		r.diagnostics.BuildError(buildErr.File, buildErr.Line, buildErr.Message)
		return true
	}
	return false
}
