package syringe

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Visibility represents the accessibility of a constructor function.
type Visibility int

const (
	// VisibilityPublic is an exported constructor function.
	VisibilityPublic Visibility = iota

	// VisibilityPackage is an unexported constructor function, reachable
	// only from its declaring package.
	VisibilityPackage

	// VisibilityPrivate is a constructor with no addressable name: an
	// anonymous function or a method value.
	VisibilityPrivate
)

// String returns the string representation of the visibility level
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPackage:
		return "package"
	case VisibilityPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// CandidateInfo is the non-reflective view of a candidate constructor.
// The selection policy operates purely on these, so it can be shared
// between the runtime resolver and static tooling.
type CandidateInfo struct {
	// Name is the constructor function name (without package path)
	Name string

	// Arity is the number of declared parameters
	Arity int

	// Visibility is the accessibility level of the constructor
	Visibility Visibility

	// Annotated reports whether the constructor carries the injection
	// annotation
	Annotated bool
}

// Candidate is a constructor registered for a concrete type: a function
// of the form func(P1..Pn) T or func(P1..Pn) (T, error).
type Candidate struct {
	name       string
	visibility Visibility
	annotated  bool
	fn         reflect.Value
	params     []reflect.Type
	result     reflect.Type
	hasErrOut  bool
}

// ServiceLookup resolves a required type to a concrete value. It stands
// in for the broader dependency registry; the binder consults it for
// every parameter that no supplied value matched.
type ServiceLookup interface {
	// Get returns a single value assignable to t, or fails with a
	// NotFoundError or AmbiguousError.
	Get(t reflect.Type) (any, error)
}

// TypeGenerator maps a requested type to the concrete type to
// instantiate. Implementations may return the input unchanged or
// substitute a generated subtype.
type TypeGenerator interface {
	Generate(t reflect.Type) (reflect.Type, error)
}

// GeneratorFunc adapts a plain function to the TypeGenerator interface.
type GeneratorFunc func(t reflect.Type) (reflect.Type, error)

// Generate implements TypeGenerator
func (f GeneratorFunc) Generate(t reflect.Type) (reflect.Type, error) {
	return f(t)
}

// IdentityGenerator returns a TypeGenerator that instantiates exactly
// the requested type.
func IdentityGenerator() TypeGenerator {
	return GeneratorFunc(func(t reflect.Type) (reflect.Type, error) {
		return t, nil
	})
}

// Inspector lists the candidate constructors declared for a type. The
// default implementation is the registration-backed Table; tests and
// tooling may substitute synthetic inspectors.
type Inspector interface {
	Constructors(t reflect.Type) ([]Candidate, error)
}

// Descriptor is the resolved constructor descriptor for a concrete
// type: the single candidate chosen by the selection policy. Descriptors
// are immutable and safe to share across callers.
type Descriptor struct {
	concrete  reflect.Type
	candidate Candidate
}

// ConcreteType returns the type this descriptor instantiates
func (d *Descriptor) ConcreteType() reflect.Type {
	return d.concrete
}

// Constructor returns the chosen candidate constructor
func (d *Descriptor) Constructor() Candidate {
	return d.candidate
}

// ResolutionCache memoizes resolved constructor descriptors per
// concrete type with compute-once semantics: concurrent misses for the
// same type converge to a single stored outcome, and a stored failure
// is re-raised on every subsequent lookup without being retried.
type ResolutionCache interface {
	GetOrCompute(t reflect.Type, compute func() (*Descriptor, error)) (*Descriptor, error)
	Put(t reflect.Type, d *Descriptor)
	Clear()
}

// Info returns the non-reflective descriptor of the candidate
func (c Candidate) Info() CandidateInfo {
	return CandidateInfo{
		Name:       c.name,
		Arity:      len(c.params),
		Visibility: c.visibility,
		Annotated:  c.annotated,
	}
}

// Params returns the ordered parameter types of the constructor
func (c Candidate) Params() []reflect.Type {
	return append([]reflect.Type(nil), c.params...)
}

// Result returns the type the constructor produces
func (c Candidate) Result() reflect.Type {
	return c.result
}

// CandidateOption configures a candidate at construction time
type CandidateOption func(*candidateConfig)

type candidateConfig struct {
	annotated bool
	name      string
	hasName   bool
}

// Annotated marks the constructor as carrying the injection annotation.
// It is the registration-time equivalent of a //syringe::constructor
// directive on the function.
func Annotated() CandidateOption {
	return func(c *candidateConfig) {
		c.annotated = true
	}
}

// WithName overrides the constructor name derived from the function
// pointer. Generated registration code uses this so visibility matches
// the declared source name even across inlining.
func WithName(name string) CandidateOption {
	return func(c *candidateConfig) {
		c.name = name
		c.hasName = true
	}
}

// NewCandidate builds a Candidate from a constructor function. The
// function must take no variadic parameters and return either a single
// value or a value and an error.
func NewCandidate(fn any, opts ...CandidateOption) (Candidate, error) {
	cfg := candidateConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return Candidate{}, fmt.Errorf("constructor must be a function, got %T", fn)
	}

	t := v.Type()
	if t.IsVariadic() {
		return Candidate{}, fmt.Errorf("constructor %s must not be variadic", t)
	}

	switch t.NumOut() {
	case 1:
		if t.Out(0) == errorType {
			return Candidate{}, fmt.Errorf("constructor %s must produce a value, not just an error", t)
		}
	case 2:
		if t.Out(1) != errorType {
			return Candidate{}, fmt.Errorf("constructor %s second result must be error, got %s", t, t.Out(1))
		}
	default:
		return Candidate{}, fmt.Errorf("constructor %s must return a value or a value and an error", t)
	}

	params := make([]reflect.Type, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		params[i] = t.In(i)
	}

	name := cfg.name
	if !cfg.hasName {
		name = funcName(v)
	}

	return Candidate{
		name:       name,
		visibility: visibilityOf(name),
		annotated:  cfg.annotated,
		fn:         v,
		params:     params,
		result:     t.Out(0),
		hasErrOut:  t.NumOut() == 2,
	}, nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// funcName resolves the declared name of a function value, stripped of
// its package path. Anonymous functions and method values come back
// empty so they fall into the private visibility bucket.
func funcName(v reflect.Value) string {
	pc := runtime.FuncForPC(v.Pointer())
	if pc == nil {
		return ""
	}

	name := pc.Name()
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	// Method values carry a -fm suffix; closures are named funcN
	if strings.HasSuffix(name, "-fm") {
		return ""
	}
	if strings.HasPrefix(name, "func") {
		rest := strings.TrimPrefix(name, "func")
		if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
			return ""
		}
	}
	return name
}

// visibilityOf maps a constructor name to its accessibility level
func visibilityOf(name string) Visibility {
	if name == "" {
		return VisibilityPrivate
	}
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return VisibilityPublic
	}
	return VisibilityPackage
}
