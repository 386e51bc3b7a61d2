package syringe

import (
	"fmt"
	"reflect"
)

// Injector composes the type generator, the resolution cache, the
// constructor table and the parameter binder into the public
// instantiation entry point.
type Injector struct {
	lookup    ServiceLookup
	generator TypeGenerator
	inspector Inspector
	cache     ResolutionCache
}

// Option configures an Injector
type Option func(*Injector)

// WithTypeGenerator installs a type generator that may substitute a
// generated concrete subtype for requested types
func WithTypeGenerator(g TypeGenerator) Option {
	return func(in *Injector) {
		in.generator = g
	}
}

// WithInspector installs the constructor source used during resolution
func WithInspector(i Inspector) Option {
	return func(in *Injector) {
		in.inspector = i
	}
}

// WithCache installs an externally managed resolution cache, letting
// several injectors share resolved descriptors across runs
func WithCache(c ResolutionCache) Option {
	return func(in *Injector) {
		in.cache = c
	}
}

// NewInjector creates an injector backed by the given service lookup.
// Without options it resolves constructors from the DefaultTable,
// instantiates exactly the requested type, and memoizes resolutions in
// a private cache.
func NewInjector(lookup ServiceLookup, opts ...Option) *Injector {
	in := &Injector{
		lookup:    lookup,
		generator: IdentityGenerator(),
		inspector: DefaultTable,
		cache:     NewResolutionCache(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Lookup returns the service lookup this injector binds parameters from
func (in *Injector) Lookup() ServiceLookup {
	return in.lookup
}

// Scoped derives an injector that resolves and caches like the
// receiver but binds unmatched parameters from the given lookup.
// Useful for request scopes layered over an application injector.
func (in *Injector) Scoped(lookup ServiceLookup, opts ...Option) *Injector {
	derived := &Injector{
		lookup:    lookup,
		generator: in.generator,
		inspector: in.inspector,
		cache:     in.cache,
	}
	for _, opt := range opts {
		opt(derived)
	}
	return derived
}

// NewInstance constructs an instance of the requested type. Supplied
// values bind to constructor parameters by type compatibility; whatever
// they leave unbound is filled from the service lookup. Construction is
// attempted exactly once, and any failure is reported as an
// InstantiationError naming the requested type.
func (in *Injector) NewInstance(requested reflect.Type, supplied ...any) (any, error) {
	concrete, err := in.generator.Generate(requested)
	if err != nil {
		return nil, &InstantiationError{Type: requested, Cause: err}
	}

	desc, err := in.cache.GetOrCompute(concrete, func() (*Descriptor, error) {
		return in.resolve(concrete)
	})
	if err != nil {
		return nil, &InstantiationError{Type: requested, Cause: err}
	}

	args, err := bindArguments(desc.candidate.params, supplied, in.lookup)
	if err != nil {
		return nil, &InstantiationError{Type: requested, Cause: err}
	}

	instance, err := construct(desc.candidate, args)
	if err != nil {
		return nil, &InstantiationError{Type: requested, Cause: err}
	}
	return instance, nil
}

// resolve runs the selection policy over the type's candidate set
func (in *Injector) resolve(concrete reflect.Type) (*Descriptor, error) {
	candidates, err := in.inspector.Constructors(concrete)
	if err != nil {
		return nil, err
	}

	infos := make([]CandidateInfo, len(candidates))
	for i, c := range candidates {
		infos[i] = c.Info()
	}

	idx, err := Select(infos)
	if err != nil {
		return nil, err
	}

	return &Descriptor{concrete: concrete, candidate: candidates[idx]}, nil
}

// construct invokes the chosen constructor. A panic in the constructor
// body is recovered here, exactly once; a panic value that is itself an
// error becomes the cause directly.
func construct(c Candidate, args []reflect.Value) (instance any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if cause, ok := r.(error); ok {
				err = cause
				return
			}
			err = &PanicError{Value: r}
		}
	}()

	results := c.fn.Call(args)
	if c.hasErrOut && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	return results[0].Interface(), nil
}

// New is the generic entry point: it instantiates T through the
// injector and type-asserts the result.
func New[T any](in *Injector, supplied ...any) (T, error) {
	var zero T
	requested := reflect.TypeOf((*T)(nil)).Elem()

	instance, err := in.NewInstance(requested, supplied...)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, &InstantiationError{
			Type:  requested,
			Cause: fmt.Errorf("constructed %T is not assignable to %s", instance, requested),
		}
	}
	return typed, nil
}

// MustNew is like New but panics on error
func MustNew[T any](in *Injector, supplied ...any) T {
	instance, err := New[T](in, supplied...)
	if err != nil {
		panic(err)
	}
	return instance
}
