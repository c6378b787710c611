package registry

import (
	"context"
	"testing"

	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goodNode keeps its typed fields in step with its declared sockets.
type goodNode struct {
	shader.Base
	In struct {
		Fac *shader.Socket
	}
	Out struct {
		Value *shader.Socket
	}
}

func newGoodNode(alloc *shader.Allocator, name string) shader.Node {
	n := &goodNode{}
	n.Init(alloc, n, "good", name)
	n.In.Fac = n.Inputs().AddFloat("Fac", 0.5)
	n.Out.Value = n.Outputs().AddFloat("Value", 0)
	return n
}

// driftNode declares a socket its In struct does not expose, and exposes a
// field with no socket behind it.
type driftNode struct {
	shader.Base
	In struct {
		Fac   *shader.Socket
		Color *shader.Socket
	}
}

func newDriftNode(alloc *shader.Allocator, name string) shader.Node {
	n := &driftNode{}
	n.Init(alloc, n, "drift", name)
	n.In.Fac = n.Inputs().AddFloat("Factor", 0.5)
	return n
}

type testModule struct {
	entries []Entry
}

func (m testModule) Register(r *Registry) {
	for _, e := range m.entries {
		r.Register(e)
	}
}

func TestRegistry_CreateAndLookup(t *testing.T) {
	r := New()
	testModule{entries: []Entry{
		{Kind: "good", CodeName: "Good", EngineType: 7, New: newGoodNode},
	}}.Register(r)

	e, ok := r.Lookup("good")
	require.True(t, ok)
	assert.Equal(t, uint32(7), e.EngineType)

	n, err := r.Create("good", shader.NewAllocator(), "g")
	require.NoError(t, err)
	assert.Equal(t, shader.Kind("good"), n.Kind())
	assert.Equal(t, "g", n.Name())

	_, err = r.Create("missing", shader.NewAllocator(), "m")
	require.ErrorIs(t, err, shader.ErrUnknownKind)
	assert.Contains(t, err.Error(), `node "m" (missing)`)

	assert.Equal(t, []shader.Kind{"good"}, r.Kinds())
}

func TestRegistry_RegisterTwicePanics(t *testing.T) {
	r := New()
	r.Register(Entry{Kind: "good", CodeName: "Good", New: newGoodNode})
	assert.Panics(t, func() {
		r.Register(Entry{Kind: "good", CodeName: "Good", New: newGoodNode})
	})
	assert.Panics(t, func() {
		r.Register(Entry{Kind: "empty", CodeName: "Empty"})
	})
}

func TestValidateRegistry(t *testing.T) {
	t.Run("consistent kinds pass", func(t *testing.T) {
		r := New()
		r.Register(Entry{Kind: "good", CodeName: "Good", New: newGoodNode})
		assert.NoError(t, r.ValidateRegistry(context.Background()))
	})

	t.Run("drift is reported", func(t *testing.T) {
		r := New()
		r.Register(Entry{Kind: "drift", CodeName: "Drift", New: newDriftNode})
		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Go field In.Fac has no declared socket")
		assert.Contains(t, err.Error(), "Go field In.Color has no declared socket")
		assert.Contains(t, err.Error(), "declared input socket 'Factor' is not found in Go struct")
	})

	t.Run("kind mismatch and missing code name", func(t *testing.T) {
		r := New()
		r.Register(Entry{Kind: "alias", New: newGoodNode})
		r.Register(Entry{Kind: "good", New: newGoodNode})
		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kind 'alias': constructor builds a 'good' node")
		assert.Contains(t, err.Error(), "kind 'good': missing code name")
	})
}
