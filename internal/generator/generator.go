package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/toyz/syringe/internal/models"
	"github.com/toyz/syringe/internal/parser"
)

// GeneratedFileName is the name of the registration file written into
// each scanned package.
const GeneratedFileName = "syringe_gen.go"

const runtimePackage = "github.com/toyz/syringe/pkg/syringe"

// Generator emits the per-package registration file that wires
// discovered constructors and providers into the runtime table.
type Generator struct{}

// NewGenerator creates a new code generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateFile produces the registration file for a scanned package.
// Packages with no constructors and no providers yield nil, meaning
// nothing should be written.
func (g *Generator) GenerateFile(metadata *models.PackageMetadata) (*models.GeneratedFile, error) {
	if metadata == nil {
		return nil, fmt.Errorf("metadata cannot be nil")
	}
	if len(metadata.Types) == 0 && len(metadata.Providers) == 0 {
		return nil, nil
	}

	if errs := parser.Check(metadata); len(errs) > 0 {
		return nil, errs[0]
	}

	content, err := g.render(metadata)
	if err != nil {
		return nil, err
	}

	return &models.GeneratedFile{
		PackageName: metadata.PackageName,
		FilePath:    filepath.Join(metadata.PackagePath, GeneratedFileName),
		Content:     content,
	}, nil
}

func (g *Generator) render(metadata *models.PackageMetadata) (string, error) {
	var b strings.Builder

	b.WriteString("// Code generated by syringe. DO NOT EDIT.\n")
	b.WriteString("// This file was automatically generated and should not be modified manually.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", metadata.PackageName)
	fmt.Fprintf(&b, "import (\n\t%q\n)\n\n", runtimePackage)

	b.WriteString("func init() {\n")
	for _, t := range metadata.Types {
		for _, ctor := range t.Constructors {
			// WithName pins the declared source name so visibility does
			// not depend on what the runtime recovers from the pointer.
			if ctor.Annotated {
				fmt.Fprintf(&b, "\tsyringe.MustRegisterConstructor(%s, syringe.WithName(%q), syringe.Annotated())\n", ctor.FuncName, ctor.FuncName)
			} else {
				fmt.Fprintf(&b, "\tsyringe.MustRegisterConstructor(%s, syringe.WithName(%q))\n", ctor.FuncName, ctor.FuncName)
			}
		}
	}
	for _, provider := range metadata.Providers {
		scope, err := scopeConstant(provider.Scope)
		if err != nil {
			return "", &models.BuildError{
				Type:    models.ErrorTypeValidation,
				File:    provider.FileName,
				Line:    provider.Line,
				Message: err.Error(),
			}
		}
		fmt.Fprintf(&b, "\tsyringe.MustRegisterProvider(%s, %s)\n", provider.FuncName, scope)
	}
	b.WriteString("}\n")

	// goimports fixes formatting and catches anything unparseable we
	// may have emitted
	formatted, err := imports.Process(GeneratedFileName, []byte(b.String()), nil)
	if err != nil {
		return "", fmt.Errorf("failed to format generated code: %w", err)
	}
	return string(formatted), nil
}

func scopeConstant(scope string) (string, error) {
	switch scope {
	case "", "Singleton":
		return "syringe.ScopeSingleton", nil
	case "Transient":
		return "syringe.ScopeTransient", nil
	default:
		return "", fmt.Errorf("unknown provider scope %q", scope)
	}
}
