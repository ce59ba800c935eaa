package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name, desc, out string
}

func (s stubTool) Name() string        { return s.name }
func (s stubTool) Description() string { return s.desc }
func (s stubTool) Execute(ctx context.Context, input string) (string, error) {
	return s.out + input, nil
}

func TestRegistry_Describe(t *testing.T) {
	r := NewRegistry(
		stubTool{name: "alpha", desc: "first tool"},
		stubTool{name: "beta", desc: "second tool"},
	)

	assert.Equal(t, "alpha: first tool\nbeta: second tool", r.Describe())
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Empty(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "", r.Describe())
	assert.Empty(t, r.List())
	assert.Nil(t, r.Get("anything"))
}

func TestRegistry_DuplicateOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Store(
		stubTool{name: "alpha", desc: "old", out: "old:"},
		stubTool{name: "beta", desc: "b"},
		stubTool{name: "alpha", desc: "new", out: "new:"},
	)

	require.Equal(t, 2, r.Len())
	assert.Equal(t, "alpha: new\nbeta: b", r.Describe())

	out, err := r.Get("alpha").Execute(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "new:x", out)
}

func TestRegistry_ListIsACopy(t *testing.T) {
	r := NewRegistry(stubTool{name: "alpha"})
	list := r.List()
	list[0] = stubTool{name: "mutated"}
	assert.Equal(t, "alpha", r.List()[0].Name())
}

func TestBuiltin(t *testing.T) {
	r, closer, err := Builtin([]string{"reverse_string", "basic_calculator", "filesystem"}, Options{Workspace: t.TempDir()})
	require.NoError(t, err)
	defer closer.Close()

	var names []string
	for _, tool := range r.List() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{"reverse_string", "basic_calculator", "filesystem"}, names)

	_, _, err = Builtin([]string{"teleport"}, Options{})
	assert.ErrorContains(t, err, `unknown tool "teleport"`)
}

func TestField(t *testing.T) {
	assert.Equal(t, "golang", field("  golang ", "query"))
	assert.Equal(t, "golang", field(`{"query": "golang"}`, "query"))
	assert.Equal(t, `{"other": 1}`, field(`{"other": 1}`, "query"))
}
