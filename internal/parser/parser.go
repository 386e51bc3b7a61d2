package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"github.com/toyz/syringe/internal/annotations"
	"github.com/toyz/syringe/internal/models"
)

// Parser scans Go source for syringe:: directives and builds package
// metadata: every struct type, its candidate constructors, and the
// annotated provider functions.
type Parser struct {
	fileSet     *token.FileSet
	annotations *annotations.Parser
}

// NewParser creates a source scanner backed by the default annotation
// schema registry
func NewParser() *Parser {
	return &Parser{
		fileSet:     token.NewFileSet(),
		annotations: annotations.NewParser(annotations.DefaultRegistry()),
	}
}

// ParseSource parses source code from a string, for tests
func (p *Parser) ParseSource(filename, source string) (*models.PackageMetadata, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	metadata := &models.PackageMetadata{
		PackageName: file.Name.Name,
		PackagePath: "./",
	}

	files := map[string]*ast.File{filename: file}
	if err := p.collect(files, metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}

// ParseDirectory scans all Go files of the package in the given
// directory
func (p *Parser) ParseDirectory(path string) (*models.PackageMetadata, error) {
	pkgs, err := parser.ParseDir(p.fileSet, path, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory %s: %w", path, err)
	}

	// Test packages live alongside the package under scan; skip them
	for name := range pkgs {
		if strings.HasSuffix(name, "_test") {
			delete(pkgs, name)
		}
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages found in directory %s", path)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found in directory %s", path)
	}

	var metadata *models.PackageMetadata
	for name, pkg := range pkgs {
		metadata = &models.PackageMetadata{
			PackageName: name,
			PackagePath: path,
		}
		if err := p.collect(pkg.Files, metadata); err != nil {
			return nil, err
		}
	}
	return metadata, nil
}

// collect walks the files twice: first all struct type declarations, so
// constructor discovery can match result types in any file order, then
// the function declarations.
func (p *Parser) collect(files map[string]*ast.File, metadata *models.PackageMetadata) error {
	typeIndex := make(map[string]*models.TypeMetadata)

	fileNames := make([]string, 0, len(files))
	for fileName := range files {
		fileNames = append(fileNames, fileName)
	}
	sort.Strings(fileNames)

	for _, fileName := range fileNames {
		file := files[fileName]
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if _, ok := typeSpec.Type.(*ast.StructType); !ok {
					continue
				}
				name := typeSpec.Name.Name
				typeIndex[name] = &models.TypeMetadata{
					Name:     name,
					FileName: fileName,
					Line:     p.fileSet.Position(typeSpec.Pos()).Line,
				}
			}
		}
	}

	for _, fileName := range fileNames {
		if err := p.collectFuncs(fileName, files[fileName], typeIndex, metadata); err != nil {
			return err
		}
	}

	for _, t := range typeIndex {
		if len(t.Constructors) > 0 {
			metadata.Types = append(metadata.Types, *t)
		}
	}

	// Map iteration order leaks into the generated file otherwise
	sort.Slice(metadata.Types, func(i, j int) bool {
		return metadata.Types[i].Name < metadata.Types[j].Name
	})
	sort.Slice(metadata.Providers, func(i, j int) bool {
		return metadata.Providers[i].FuncName < metadata.Providers[j].FuncName
	})
	return nil
}

// collectFuncs inspects top-level functions for constructor shapes and
// syringe:: directives
func (p *Parser) collectFuncs(fileName string, file *ast.File, typeIndex map[string]*models.TypeMetadata, metadata *models.PackageMetadata) error {
	for _, decl := range file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Recv != nil {
			continue
		}

		directive, err := p.directiveOf(funcDecl, fileName)
		if err != nil {
			return err
		}

		if directive != nil && directive.Type == annotations.ProviderAnnotation {
			provider, err := p.providerOf(funcDecl, fileName, directive)
			if err != nil {
				return err
			}
			metadata.Providers = append(metadata.Providers, *provider)
			continue
		}

		target, pointer, returnsErr, ok := constructedType(funcDecl)
		if !ok {
			if directive != nil {
				return &models.BuildError{
					Type:    models.ErrorTypeValidation,
					File:    fileName,
					Line:    p.fileSet.Position(funcDecl.Pos()).Line,
					Message: fmt.Sprintf("//syringe::constructor on %s, which is not a constructor shape (want func(...) T or func(...) (T, error))", funcDecl.Name.Name),
				}
			}
			continue
		}

		t, declared := typeIndex[target]
		if !declared {
			if directive != nil {
				return &models.BuildError{
					Type:    models.ErrorTypeValidation,
					File:    fileName,
					Line:    p.fileSet.Position(funcDecl.Pos()).Line,
					Message: fmt.Sprintf("//syringe::constructor on %s, but type %s is not declared in this package", funcDecl.Name.Name, target),
				}
			}
			continue
		}

		t.Pointer = pointer
		t.Constructors = append(t.Constructors, models.ConstructorMetadata{
			FuncName:   funcDecl.Name.Name,
			Params:     paramTypes(funcDecl),
			ReturnsErr: returnsErr,
			Annotated:  directive != nil,
			Exported:   funcDecl.Name.IsExported(),
			FileName:   fileName,
			Line:       p.fileSet.Position(funcDecl.Pos()).Line,
		})
	}
	return nil
}

// directiveOf parses the syringe:: directive in a function's doc
// comment, if any. Multiple directives on one function are rejected.
func (p *Parser) directiveOf(funcDecl *ast.FuncDecl, fileName string) (*annotations.ParsedAnnotation, error) {
	if funcDecl.Doc == nil {
		return nil, nil
	}

	var found *annotations.ParsedAnnotation
	for _, comment := range funcDecl.Doc.List {
		if !annotations.IsDirective(comment.Text) {
			continue
		}

		location := annotations.SourceLocation{
			File: fileName,
			Line: p.fileSet.Position(comment.Pos()).Line,
		}
		parsed, err := p.annotations.ParseAnnotation(comment.Text, funcDecl.Name.Name, location)
		if err != nil {
			return nil, &models.BuildError{
				Type:    models.ErrorTypeAnnotationSyntax,
				File:    fileName,
				Line:    location.Line,
				Message: err.Error(),
				Cause:   err,
			}
		}
		if found != nil {
			return nil, &models.BuildError{
				Type:    models.ErrorTypeValidation,
				File:    fileName,
				Line:    location.Line,
				Message: fmt.Sprintf("function %s carries more than one syringe:: directive", funcDecl.Name.Name),
			}
		}
		found = parsed
	}
	return found, nil
}

// providerOf validates a //syringe::provider function shape
func (p *Parser) providerOf(funcDecl *ast.FuncDecl, fileName string, directive *annotations.ParsedAnnotation) (*models.ProviderMetadata, error) {
	line := p.fileSet.Position(funcDecl.Pos()).Line

	if funcDecl.Type.Params != nil && len(funcDecl.Type.Params.List) > 0 {
		return nil, &models.BuildError{
			Type:    models.ErrorTypeValidation,
			File:    fileName,
			Line:    line,
			Message: fmt.Sprintf("provider %s must take no parameters", funcDecl.Name.Name),
		}
	}

	results := funcDecl.Type.Results
	if results == nil || len(results.List) == 0 || len(results.List) > 2 {
		return nil, &models.BuildError{
			Type:    models.ErrorTypeValidation,
			File:    fileName,
			Line:    line,
			Message: fmt.Sprintf("provider %s must return a value or a value and an error", funcDecl.Name.Name),
		}
	}

	returnsErr := false
	if len(results.List) == 2 {
		if types.ExprString(results.List[1].Type) != "error" {
			return nil, &models.BuildError{
				Type:    models.ErrorTypeValidation,
				File:    fileName,
				Line:    line,
				Message: fmt.Sprintf("provider %s second result must be error", funcDecl.Name.Name),
			}
		}
		returnsErr = true
	}

	return &models.ProviderMetadata{
		FuncName:   funcDecl.Name.Name,
		ResultType: types.ExprString(results.List[0].Type),
		ReturnsErr: returnsErr,
		Scope:      directive.GetString("Scope", "Singleton"),
		FileName:   fileName,
		Line:       line,
	}, nil
}

// constructedType extracts the type a function constructs: the first
// result must be T or *T and an optional second result must be error.
func constructedType(funcDecl *ast.FuncDecl) (name string, pointer bool, returnsErr bool, ok bool) {
	results := funcDecl.Type.Results
	if results == nil || len(results.List) == 0 || len(results.List) > 2 {
		return "", false, false, false
	}

	if len(results.List) == 2 {
		if types.ExprString(results.List[1].Type) != "error" {
			return "", false, false, false
		}
		returnsErr = true
	}

	expr := results.List[0].Type
	if star, isStar := expr.(*ast.StarExpr); isStar {
		pointer = true
		expr = star.X
	}
	switch result := expr.(type) {
	case *ast.Ident:
		return result.Name, pointer, returnsErr, true
	case *ast.SelectorExpr:
		// A qualified result like time.Timer is a valid constructor
		// shape; it resolves against the package's type index, where it
		// always misses and reports the type as undeclared.
		return types.ExprString(result), pointer, returnsErr, true
	default:
		return "", false, false, false
	}
}

// paramTypes renders a function's parameter type expressions in order,
// one entry per declared name
func paramTypes(funcDecl *ast.FuncDecl) []string {
	var params []string
	if funcDecl.Type.Params == nil {
		return params
	}
	for _, field := range funcDecl.Type.Params.List {
		typeExpr := types.ExprString(field.Type)
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			params = append(params, typeExpr)
		}
	}
	return params
}
