package models

// PackageMetadata is everything the scanner learned about one package:
// the types with candidate constructors and the provider functions.
type PackageMetadata struct {
	PackageName string // declared package name
	PackagePath string // directory the package was scanned from
	Types       []TypeMetadata
	Providers   []ProviderMetadata
}

// TypeMetadata is a struct type together with its candidate
// constructors, in declaration order.
type TypeMetadata struct {
	Name         string // type name as declared
	Pointer      bool   // whether constructors produce *Name rather than Name
	FileName     string // file declaring the type
	Line         int    // line of the type declaration
	Constructors []ConstructorMetadata
}

// ConstructorMetadata is one candidate constructor discovered for a type
type ConstructorMetadata struct {
	FuncName   string   // function name as declared
	Params     []string // parameter type expressions, in order
	ReturnsErr bool     // whether the constructor also returns an error
	Annotated  bool     // carries //syringe::constructor
	Exported   bool     // name starts with an upper-case letter
	FileName   string
	Line       int
}

// ProviderMetadata is a function annotated as a service provider
type ProviderMetadata struct {
	FuncName   string
	ResultType string // type expression of the provided value
	ReturnsErr bool
	Scope      string // Singleton or Transient
	FileName   string
	Line       int
}

// GeneratedFile is a rendered registration file ready to be written
// into its package directory
type GeneratedFile struct {
	PackageName string
	FilePath    string
	Content     string
}
