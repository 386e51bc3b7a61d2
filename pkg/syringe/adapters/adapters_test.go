package adapters

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/syringe/pkg/syringe"
)

type greeting struct {
	Prefix string
}

type greetHandler struct {
	info     RequestInfo
	greeting *greeting
}

func newGreetHandler(info RequestInfo, g *greeting) *greetHandler {
	return &greetHandler{info: info, greeting: g}
}

func (h *greetHandler) Message() string {
	return h.greeting.Prefix + " " + h.info.Path
}

// newBaseInjector builds an application-level injector with the
// greeting service registered and the handler constructor annotated.
func newBaseInjector(t *testing.T) *syringe.Injector {
	t.Helper()

	table := syringe.NewTable()
	table.MustRegisterConstructor(newGreetHandler, syringe.Annotated())

	registry := syringe.NewRegistry()
	require.NoError(t, registry.RegisterInstance(&greeting{Prefix: "hello"}))

	return syringe.NewInjector(registry, syringe.WithInspector(table))
}

func TestScope_LocalWinsOverParent(t *testing.T) {
	parent := syringe.NewRegistry()
	require.NoError(t, parent.RegisterInstance(&greeting{Prefix: "parent"}))

	scope := NewScope(parent)
	require.NoError(t, scope.Registry().RegisterInstance(&greeting{Prefix: "local"}))

	value, err := scope.Get(reflect.TypeOf(&greeting{}))
	require.NoError(t, err)
	assert.Equal(t, "local", value.(*greeting).Prefix)
}

func TestScope_MissFallsThroughToParent(t *testing.T) {
	parent := syringe.NewRegistry()
	require.NoError(t, parent.RegisterInstance(&greeting{Prefix: "parent"}))

	scope := NewScope(parent)
	value, err := scope.Get(reflect.TypeOf(&greeting{}))
	require.NoError(t, err)
	assert.Equal(t, "parent", value.(*greeting).Prefix)
}

func TestScope_MissWithoutParent(t *testing.T) {
	scope := NewScope(nil)

	_, err := scope.Get(reflect.TypeOf(&greeting{}))
	require.Error(t, err)

	var notFound *syringe.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestNewRequestInfo_UniqueIDs(t *testing.T) {
	first := NewRequestInfo("GET", "/a")
	second := NewRequestInfo("GET", "/a")

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "GET", first.Method)
	assert.Equal(t, "/a", first.Path)
}
