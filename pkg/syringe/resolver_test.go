package syringe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelect_SingleAnnotatedWins(t *testing.T) {
	candidates := []CandidateInfo{
		{Name: "newWidget", Arity: 1, Visibility: VisibilityPackage},
		{Name: "NewWidget", Arity: 2, Visibility: VisibilityPublic, Annotated: true},
		{Name: "NewDefaultWidget", Arity: 0, Visibility: VisibilityPublic},
	}

	idx, err := Select(candidates)
	assert.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestSelect_AnnotatedWinsRegardlessOfVisibility(t *testing.T) {
	candidates := []CandidateInfo{
		{Name: "", Arity: 3, Visibility: VisibilityPrivate, Annotated: true},
		{Name: "NewWidget", Arity: 0, Visibility: VisibilityPublic},
	}

	idx, err := Select(candidates)
	assert.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestSelect_MultipleAnnotatedFails(t *testing.T) {
	candidates := []CandidateInfo{
		{Name: "NewWidget", Arity: 1, Visibility: VisibilityPublic, Annotated: true},
		{Name: "NewWidgetFromConfig", Arity: 2, Visibility: VisibilityPublic, Annotated: true},
	}

	_, err := Select(candidates)
	assert.ErrorIs(t, err, ErrMultipleAnnotated)
}

func TestSelect_SoleZeroArgConstructor(t *testing.T) {
	tests := []struct {
		name       string
		visibility Visibility
		wantErr    error
	}{
		{
			name:       "public zero-arg is selected",
			visibility: VisibilityPublic,
		},
		{
			name:       "package-visible zero-arg is selected",
			visibility: VisibilityPackage,
		},
		{
			name:       "private zero-arg fails",
			visibility: VisibilityPrivate,
			wantErr:    ErrNotVisible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := []CandidateInfo{
				{Name: "ctor", Arity: 0, Visibility: tt.visibility},
			}

			idx, err := Select(candidates)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 0, idx)
		})
	}
}

func TestSelect_SoleConstructorWithParamsMustBeAnnotated(t *testing.T) {
	candidates := []CandidateInfo{
		{Name: "NewWidget", Arity: 2, Visibility: VisibilityPublic},
	}

	_, err := Select(candidates)
	assert.ErrorIs(t, err, ErrNotAnnotated)
}

func TestSelect_MultipleUnannotatedFails(t *testing.T) {
	candidates := []CandidateInfo{
		{Name: "NewWidget", Arity: 0, Visibility: VisibilityPublic},
		{Name: "NewWidgetFromConfig", Arity: 1, Visibility: VisibilityPublic},
	}

	_, err := Select(candidates)
	assert.ErrorIs(t, err, ErrNoAnnotated)
}

func TestSelect_EmptyCandidateSet(t *testing.T) {
	_, err := Select(nil)
	assert.ErrorIs(t, err, ErrNoConstructors)
}

func TestSelect_IsDeterministic(t *testing.T) {
	candidates := []CandidateInfo{
		{Name: "newWidget", Arity: 1, Visibility: VisibilityPackage},
		{Name: "NewWidget", Arity: 2, Visibility: VisibilityPublic, Annotated: true},
	}

	first, err := Select(candidates)
	assert.NoError(t, err)
	for i := 0; i < 100; i++ {
		idx, err := Select(candidates)
		assert.NoError(t, err)
		assert.Equal(t, first, idx)
	}
}
