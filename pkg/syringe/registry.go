package syringe

import (
	"fmt"
	"reflect"
	"sync"
)

// ProviderScope controls how often a provider function runs.
type ProviderScope int

const (
	// ScopeSingleton runs the provider once and caches its value
	ScopeSingleton ProviderScope = iota

	// ScopeTransient runs the provider on every lookup
	ScopeTransient
)

// String returns the string representation of the scope
func (s ProviderScope) String() string {
	switch s {
	case ScopeSingleton:
		return "singleton"
	case ScopeTransient:
		return "transient"
	default:
		return "unknown"
	}
}

type serviceEntry struct {
	serviceType reflect.Type
	instance    reflect.Value
	provider    reflect.Value
	providerErr bool
	isInstance  bool
	scope       ProviderScope

	once      sync.Once
	cached    reflect.Value
	cachedErr error
}

// Registry is the in-memory ServiceLookup: instances and provider
// functions keyed by service type. Lookup prefers an exact type match;
// otherwise a single assignable entry satisfies interface requests, and
// several assignable entries fail as ambiguous.
type Registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*serviceEntry
}

// NewRegistry creates an empty service registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[reflect.Type]*serviceEntry),
	}
}

// DefaultRegistry is the registry that generated code and the default
// injector share.
var DefaultRegistry = NewRegistry()

// RegisterInstance registers the value with DefaultRegistry
func RegisterInstance(value any) error {
	return DefaultRegistry.RegisterInstance(value)
}

// RegisterProvider registers the provider with DefaultRegistry
func RegisterProvider(fn any, scope ProviderScope) error {
	return DefaultRegistry.RegisterProvider(fn, scope)
}

// MustRegisterProvider registers the provider with DefaultRegistry and
// panics on a malformed function, for generated init blocks
func MustRegisterProvider(fn any, scope ProviderScope) {
	if err := DefaultRegistry.RegisterProvider(fn, scope); err != nil {
		panic(err)
	}
}

// RegisterInstance registers a pre-built value under its dynamic type
func (r *Registry) RegisterInstance(value any) error {
	if value == nil {
		return fmt.Errorf("cannot register a nil instance")
	}

	v := reflect.ValueOf(value)
	return r.put(&serviceEntry{
		serviceType: v.Type(),
		instance:    v,
		isInstance:  true,
	})
}

// RegisterProvider registers a provider function of the form func() T
// or func() (T, error) under its result type.
func (r *Registry) RegisterProvider(fn any, scope ProviderScope) error {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return fmt.Errorf("provider must be a function, got %T", fn)
	}

	t := v.Type()
	if t.NumIn() != 0 {
		return fmt.Errorf("provider %s must take no parameters", t)
	}
	switch t.NumOut() {
	case 1:
		if t.Out(0) == errorType {
			return fmt.Errorf("provider %s must produce a value, not just an error", t)
		}
	case 2:
		if t.Out(1) != errorType {
			return fmt.Errorf("provider %s second result must be error, got %s", t, t.Out(1))
		}
	default:
		return fmt.Errorf("provider %s must return a value or a value and an error", t)
	}

	return r.put(&serviceEntry{
		serviceType: t.Out(0),
		provider:    v,
		providerErr: t.NumOut() == 2,
		scope:       scope,
	})
}

// RegisterAs registers a value or provider result under an explicit
// service type, typically an interface the value implements.
func RegisterAs[T any](r *Registry, value T) error {
	serviceType := reflect.TypeOf((*T)(nil)).Elem()
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return fmt.Errorf("cannot register a nil instance as %s", serviceType)
	}
	return r.put(&serviceEntry{
		serviceType: serviceType,
		instance:    v,
		isInstance:  true,
	})
}

func (r *Registry) put(entry *serviceEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[entry.serviceType]; exists {
		return fmt.Errorf("service already registered for type %s", entry.serviceType)
	}
	r.entries[entry.serviceType] = entry
	return nil
}

// Get implements ServiceLookup
func (r *Registry) Get(t reflect.Type) (any, error) {
	r.mu.RLock()
	entry, ok := r.entries[t]
	if !ok {
		var matches []*serviceEntry
		for _, e := range r.entries {
			if e.serviceType.AssignableTo(t) {
				matches = append(matches, e)
			}
		}
		switch len(matches) {
		case 0:
			r.mu.RUnlock()
			return nil, &NotFoundError{Type: t}
		case 1:
			entry = matches[0]
		default:
			r.mu.RUnlock()
			return nil, &AmbiguousError{Type: t, Count: len(matches)}
		}
	}
	r.mu.RUnlock()

	return entry.produce()
}

// Forget removes the entry registered for t, if any
func (r *Registry) Forget(t reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, t)
}

// Clear removes every registered service
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[reflect.Type]*serviceEntry)
}

func (e *serviceEntry) produce() (any, error) {
	if e.isInstance {
		return e.instance.Interface(), nil
	}

	if e.scope == ScopeSingleton {
		e.once.Do(func() {
			e.cached, e.cachedErr = e.call()
		})
		if e.cachedErr != nil {
			return nil, e.cachedErr
		}
		return e.cached.Interface(), nil
	}

	v, err := e.call()
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (e *serviceEntry) call() (reflect.Value, error) {
	results := e.provider.Call(nil)
	if e.providerErr && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}
	return results[0], nil
}
