package syringe

import (
	"fmt"
	"reflect"
	"sync"
)

// Table is the registration-backed Inspector: an ordered candidate
// constructor set per concrete type. Generated syringe_gen.go files and
// manual setup code both register through it.
type Table struct {
	mu           sync.RWMutex
	constructors map[reflect.Type][]Candidate
}

// NewTable creates an empty constructor table
func NewTable() *Table {
	return &Table{
		constructors: make(map[reflect.Type][]Candidate),
	}
}

// DefaultTable is the global constructor table used by injectors that
// are not given an explicit Inspector.
var DefaultTable = NewTable()

// RegisterConstructor adds a constructor function for the type it
// produces. Registration order is preserved; the selection policy runs
// over the full set on first instantiation of the type.
func (t *Table) RegisterConstructor(fn any, opts ...CandidateOption) error {
	cand, err := NewCandidate(fn, opts...)
	if err != nil {
		return fmt.Errorf("failed to register constructor: %w", err)
	}

	key := cand.Result()
	t.mu.Lock()
	t.constructors[key] = append(t.constructors[key], cand)
	t.mu.Unlock()
	return nil
}

// MustRegisterConstructor is like RegisterConstructor but panics on
// error. Generated registration code uses this form.
func (t *Table) MustRegisterConstructor(fn any, opts ...CandidateOption) {
	if err := t.RegisterConstructor(fn, opts...); err != nil {
		panic(err)
	}
}

// Constructors implements Inspector
func (t *Table) Constructors(key reflect.Type) ([]Candidate, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cands, ok := t.constructors[key]
	if !ok {
		return nil, nil
	}
	return append([]Candidate(nil), cands...), nil
}

// Clear removes every registered constructor. Callers holding a
// resolution cache over this table should clear that too.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.constructors = make(map[reflect.Type][]Candidate)
}

// RegisterConstructor registers a constructor with the default table
func RegisterConstructor(fn any, opts ...CandidateOption) error {
	return DefaultTable.RegisterConstructor(fn, opts...)
}

// MustRegisterConstructor registers a constructor with the default
// table, panicking on error
func MustRegisterConstructor(fn any, opts ...CandidateOption) {
	DefaultTable.MustRegisterConstructor(fn, opts...)
}
