package syringe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gadget struct{ ready bool }

// NewGadget is a package-level constructor so the table can derive its
// name and visibility from the function pointer.
func NewGadget() *gadget { return &gadget{ready: true} }

func newGadget() *gadget { return &gadget{} }

func TestNewCandidate_DerivesNameAndVisibility(t *testing.T) {
	cand, err := NewCandidate(NewGadget)
	require.NoError(t, err)
	assert.Equal(t, "NewGadget", cand.Info().Name)
	assert.Equal(t, VisibilityPublic, cand.Info().Visibility)
	assert.Equal(t, 0, cand.Info().Arity)
	assert.False(t, cand.Info().Annotated)

	cand, err = NewCandidate(newGadget)
	require.NoError(t, err)
	assert.Equal(t, "newGadget", cand.Info().Name)
	assert.Equal(t, VisibilityPackage, cand.Info().Visibility)
}

func TestNewCandidate_AnonymousFunctionIsPrivate(t *testing.T) {
	cand, err := NewCandidate(func() *gadget { return nil })
	require.NoError(t, err)
	assert.Equal(t, VisibilityPrivate, cand.Info().Visibility)
}

type gadgetFactory struct{}

func (gadgetFactory) Make() *gadget { return &gadget{} }

func TestNewCandidate_MethodValueIsPrivate(t *testing.T) {
	// Bound method values have no declared package-level name, even when
	// the method itself is exported.
	cand, err := NewCandidate(gadgetFactory{}.Make)
	require.NoError(t, err)
	assert.Equal(t, "", cand.Info().Name)
	assert.Equal(t, VisibilityPrivate, cand.Info().Visibility)
}

func TestNewCandidate_Validation(t *testing.T) {
	tests := []struct {
		name string
		fn   any
	}{
		{name: "not a function", fn: "nope"},
		{name: "nil function", fn: nil},
		{name: "no results", fn: func() {}},
		{name: "error only", fn: func() error { return nil }},
		{name: "three results", fn: func() (*gadget, *gadget, error) { return nil, nil, nil }},
		{name: "second result not error", fn: func() (*gadget, string) { return nil, "" }},
		{name: "variadic", fn: func(parts ...string) *gadget { return nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCandidate(tt.fn)
			assert.Error(t, err)
		})
	}
}

func TestNewCandidate_ErrorReturningConstructor(t *testing.T) {
	cand, err := NewCandidate(func(label string) (*gadget, error) {
		return &gadget{}, nil
	}, WithName("NewGadgetChecked"))
	require.NoError(t, err)
	assert.Equal(t, 1, cand.Info().Arity)
	assert.Equal(t, typeOf[*gadget](), cand.Result())
	assert.Equal(t, typeOf[string](), cand.Params()[0])
}

func TestTable_RegisterAndInspect(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.RegisterConstructor(NewGadget))
	require.NoError(t, table.RegisterConstructor(newGadget, Annotated()))

	cands, err := table.Constructors(typeOf[*gadget]())
	require.NoError(t, err)
	require.Len(t, cands, 2)

	// Registration order is preserved
	assert.Equal(t, "NewGadget", cands[0].Info().Name)
	assert.Equal(t, "newGadget", cands[1].Info().Name)
	assert.True(t, cands[1].Info().Annotated)
}

func TestTable_UnknownTypeHasNoCandidates(t *testing.T) {
	table := NewTable()

	cands, err := table.Constructors(typeOf[*gadget]())
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestTable_Clear(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.RegisterConstructor(NewGadget))

	table.Clear()

	cands, err := table.Constructors(typeOf[*gadget]())
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestTable_MustRegisterConstructorPanics(t *testing.T) {
	table := NewTable()
	assert.Panics(t, func() {
		table.MustRegisterConstructor("not a function")
	})
}
