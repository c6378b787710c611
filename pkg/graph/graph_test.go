package graph_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/shadergrid/internal/testutil"
	"github.com/specialistvlad/shadergrid/pkg/engine"
	"github.com/specialistvlad/shadergrid/pkg/graph"
	"github.com/specialistvlad/shadergrid/pkg/nodes"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var target = engine.Target{Scene: 1, Shader: 7}

func names(ns []shader.Node) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Name()
	}
	return out
}

func TestCommit_EmissionIntoOutput(t *testing.T) {
	sh, emit, out := testutil.EmissionShader(t)
	rec := engine.NewRecorder()

	require.NoError(t, sh.Commit(context.Background(), rec, target))

	want := []engine.Call{
		{Op: engine.OpAllocateNode, Node: 1, Kind: nodes.KindEmission},
		{Op: engine.OpSetSocketVec, Node: 1, Name: "Color", Value: "0.8 0.8 0.8 1"},
		{Op: engine.OpSetSocketFloat, Node: 1, Name: "Strength", Value: "1"},
		{Op: engine.OpAllocateNode, Node: 2, Kind: nodes.KindOutput},
		{Op: engine.OpConnect, Node: 1, Name: "Emission", ToNode: 2, ToName: "Surface"},
	}
	if diff := cmp.Diff(want, rec.Calls()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	assert.Zero(t, rec.Count(engine.OpSetEnum))

	id, ok := emit.EngineID()
	require.True(t, ok)
	assert.Equal(t, uint32(1), id)
	id, ok = out.EngineID()
	require.True(t, ok)
	assert.Equal(t, uint32(2), id)
}

func TestPlan_LayeredOrder(t *testing.T) {
	l := testutil.LayeredShader(t)

	order, err := l.Shader.Plan()
	require.NoError(t, err)
	assert.Equal(t, []string{"noise", "weight", "mix", "emit", "diffuse", "blend", "output"}, names(order))
}

func TestCommit_LayeredHooksAndLinks(t *testing.T) {
	l := testutil.LayeredShader(t)
	rec := engine.NewRecorder()

	require.NoError(t, l.Shader.Commit(context.Background(), rec, target))

	assert.Equal(t, 7, rec.Count(engine.OpAllocateNode))
	assert.Equal(t, 7, rec.Count(engine.OpConnect))
	assert.Equal(t, 1, rec.Count(engine.OpSetEnum))
	assert.Equal(t, 1, rec.Count(engine.OpSetMemberBool))

	// Every connect happens after both of its endpoints were allocated.
	allocated := map[uint32]bool{}
	for _, c := range rec.Calls() {
		switch c.Op {
		case engine.OpAllocateNode:
			allocated[c.Node] = true
		case engine.OpConnect:
			assert.True(t, allocated[c.Node], "source of %s not allocated", c)
			assert.True(t, allocated[c.ToNode], "target of %s not allocated", c)
		}
	}

	// Connected inputs never receive a literal.
	for _, c := range rec.Calls() {
		if c.Op == engine.OpSetSocketVec || c.Op == engine.OpSetSocketFloat {
			mixID, _ := l.Mix.EngineID()
			if c.Node == mixID {
				assert.Equal(t, "Color2", c.Name)
			}
		}
	}
}

func TestCommit_Deterministic(t *testing.T) {
	first := engine.NewRecorder()
	require.NoError(t, testutil.LayeredShader(t).Shader.Commit(context.Background(), first, target))

	second := engine.NewRecorder()
	require.NoError(t, testutil.LayeredShader(t).Shader.Commit(context.Background(), second, target))

	if diff := cmp.Diff(first.Calls(), second.Calls()); diff != "" {
		t.Errorf("commits differ (-first +second):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		rec := engine.NewRecorder()
		sh := testutil.CyclicShader(t)

		err := sh.Commit(context.Background(), rec, target)
		require.ErrorIs(t, err, shader.ErrCyclicGraph)
		assert.Contains(t, err.Error(), `"a" -> "b" -> "c" -> "a"`)
		assert.Empty(t, rec.Calls(), "no engine call before validation passes")
	})

	t.Run("layered chain is not a cycle", func(t *testing.T) {
		sh := graph.New("chain")
		a := nodes.NewMix(sh.Alloc(), "a")
		b := nodes.NewMix(sh.Alloc(), "b")
		c := nodes.NewMix(sh.Alloc(), "c")
		emit := nodes.NewEmission(sh.Alloc(), "emit")
		out := nodes.NewOutput(sh.Alloc(), "output")
		require.NoError(t, b.In.Color1.Connect(a.Out.Color))
		require.NoError(t, c.In.Color1.Connect(b.Out.Color))
		require.NoError(t, c.In.Color2.Connect(a.Out.Color))
		require.NoError(t, emit.In.Color.Connect(c.Out.Color))
		require.NoError(t, out.In.Surface.Connect(emit.Out.Emission))
		sh.Add(out)

		assert.NoError(t, sh.Validate())
	})

	t.Run("missing surface", func(t *testing.T) {
		sh := graph.New("bare")
		sh.Add(nodes.NewOutput(sh.Alloc(), "output"))

		err := sh.Validate()
		require.ErrorIs(t, err, shader.ErrMissingRequiredInput)
		var serr *shader.Error
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, "Surface", serr.Socket)
		assert.Equal(t, "output", serr.Node)
	})

	t.Run("no output", func(t *testing.T) {
		sh := graph.New("headless")
		sh.Add(nodes.NewEmission(sh.Alloc(), "emit"))
		assert.ErrorIs(t, sh.Validate(), shader.ErrTerminalSink)
	})

	t.Run("two outputs", func(t *testing.T) {
		sh, _, _ := testutil.EmissionShader(t)
		sh.Add(nodes.NewOutput(sh.Alloc(), "second"))
		err := sh.Validate()
		require.ErrorIs(t, err, shader.ErrTerminalSink)
		assert.Contains(t, err.Error(), `"second"`)
	})

	t.Run("unset optional inputs are fine", func(t *testing.T) {
		sh := graph.New("sky")
		diffuse := nodes.NewDiffuseBSDF(sh.Alloc(), "diffuse")
		out := nodes.NewOutput(sh.Alloc(), "output")
		require.NoError(t, out.In.Surface.Connect(diffuse.Out.BSDF))
		sh.Add(out)
		assert.NoError(t, sh.Validate())
	})
}

func TestPlan_SkipsUnreachableNodes(t *testing.T) {
	sh, _, _ := testutil.EmissionShader(t)
	stray := nodes.NewNoiseTexture(sh.Alloc(), "stray")
	sh.Add(stray)

	assert.Len(t, sh.Nodes(), 3)
	order, err := sh.Plan()
	require.NoError(t, err)
	assert.Equal(t, []string{"emit", "output"}, names(order))
}

func TestNodes_FollowsConnections(t *testing.T) {
	l := testutil.LayeredShader(t)
	sh := graph.New("partial")
	sh.Add(l.Output)

	assert.Len(t, sh.Nodes(), 7)
	assert.Len(t, sh.Connections(), 7)
}

func TestCommit_EngineRejection(t *testing.T) {
	refused := errors.New("socket refused")
	rec := engine.NewRecorder()
	rec.FailOn = func(c engine.Call) error {
		if c.Op == engine.OpConnect {
			return refused
		}
		return nil
	}
	sh, emit, out := testutil.EmissionShader(t)

	err := sh.Commit(context.Background(), rec, target)
	require.ErrorIs(t, err, shader.ErrEngineRejected)
	require.ErrorIs(t, err, refused)

	var serr *shader.Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "output", serr.Node)
	assert.Equal(t, "Surface", serr.Socket)

	// Calls up to the failure were made and nothing is sealed.
	assert.Equal(t, 5, len(rec.Calls()))
	assert.False(t, emit.Sealed())
	assert.NoError(t, out.In.Surface.Disconnect())
}

func TestCommit_RejectedHook(t *testing.T) {
	rec := engine.NewRecorder()
	rec.FailOn = func(c engine.Call) error {
		if c.Op == engine.OpSetEnum {
			return errors.New("unknown enum")
		}
		return nil
	}
	l := testutil.LayeredShader(t)

	err := l.Shader.Commit(context.Background(), rec, target)
	require.ErrorIs(t, err, shader.ErrEngineRejected)
	var serr *shader.Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "mix", serr.Node)
	assert.Equal(t, "type", serr.Attr)
}

func TestCommit_SealsConnections(t *testing.T) {
	sh, emit, out := testutil.EmissionShader(t)
	require.NoError(t, sh.Commit(context.Background(), engine.NewRecorder(), target))

	assert.True(t, emit.Sealed())
	assert.True(t, out.Sealed())
	assert.ErrorIs(t, out.In.Surface.Disconnect(), shader.ErrSealed)

	other := nodes.NewEmission(sh.Alloc(), "other")
	assert.ErrorIs(t, out.In.Surface.Reconnect(other.Out.Emission), shader.ErrSealed)

	// Values stay editable.
	assert.NoError(t, emit.In.Strength.SetValue(shader.Float(3)))
}
