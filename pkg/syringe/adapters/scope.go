package adapters

import (
	"errors"
	"reflect"

	"github.com/google/uuid"

	"github.com/toyz/syringe/pkg/syringe"
)

// RequestInfo describes the request a scoped injector was created for.
// It is registered into every request scope so constructors can take it
// as a parameter.
type RequestInfo struct {
	ID     string
	Method string
	Path   string
}

// NewRequestInfo creates request metadata with a fresh request ID
func NewRequestInfo(method, path string) RequestInfo {
	return RequestInfo{
		ID:     uuid.NewString(),
		Method: method,
		Path:   path,
	}
}

// Scope is a service lookup layered over a parent: request-local
// registrations win, everything else falls through.
type Scope struct {
	registry *syringe.Registry
	parent   syringe.ServiceLookup
}

// NewScope creates a request scope over the given parent lookup. A nil
// parent makes the scope self-contained.
func NewScope(parent syringe.ServiceLookup) *Scope {
	return &Scope{
		registry: syringe.NewRegistry(),
		parent:   parent,
	}
}

// Registry exposes the request-local registry for scoped registrations
func (s *Scope) Registry() *syringe.Registry {
	return s.registry
}

// Get implements syringe.ServiceLookup. Only a local miss falls through
// to the parent; local failures such as ambiguity are final.
func (s *Scope) Get(t reflect.Type) (any, error) {
	value, err := s.registry.Get(t)
	if err == nil {
		return value, nil
	}

	var notFound *syringe.NotFoundError
	if errors.As(err, &notFound) && s.parent != nil {
		return s.parent.Get(t)
	}
	return nil, err
}
