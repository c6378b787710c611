package shader

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTypes = []SocketType{TypeFloat, TypeInt, TypeString, TypeColor, TypeVector, TypeFloat4, TypeClosure}

func TestSocket_ConnectSameType(t *testing.T) {
	t.Parallel()
	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			alloc := NewAllocator()
			a := newFixture(alloc, "a", typ)
			b := newFixture(alloc, "b", typ)

			require.NoError(t, b.in.Connect(a.out))

			assert.Same(t, a.out, b.in.Source())
			assert.Contains(t, a.out.Targets(), b.in)
			assert.True(t, b.in.Connected())
		})
	}
}

func TestSocket_ConnectTypeMismatch(t *testing.T) {
	t.Parallel()
	for _, from := range allTypes {
		for _, to := range allTypes {
			if from == to {
				continue
			}
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				alloc := NewAllocator()
				a := newFixture(alloc, "a", from)
				b := newFixture(alloc, "b", to)

				err := b.in.Connect(a.out)
				require.ErrorIs(t, err, ErrTypeMismatch)
				assert.Nil(t, b.in.Source())
				assert.Empty(t, a.out.Targets())
			})
		}
	}
}

func TestSocket_AlreadyConnected(t *testing.T) {
	t.Parallel()
	alloc := NewAllocator()
	a := newFixture(alloc, "a", TypeFloat)
	b := newFixture(alloc, "b", TypeFloat)
	c := newFixture(alloc, "c", TypeFloat)
	require.NoError(t, c.in.Connect(a.out))

	err := c.in.Connect(b.out)
	require.ErrorIs(t, err, ErrAlreadyConnected)
	assert.ErrorContains(t, err, `node "c" (fixture)`)
	assert.ErrorContains(t, err, `socket "In"`)

	t.Run("reconnect replaces source", func(t *testing.T) {
		require.NoError(t, c.in.Reconnect(b.out))
		assert.Same(t, b.out, c.in.Source())
		assert.Empty(t, a.out.Targets())
		assert.Equal(t, []*Socket{c.in}, b.out.Targets())
	})
}

func TestSocket_OutputFansOut(t *testing.T) {
	t.Parallel()
	alloc := NewAllocator()
	a := newFixture(alloc, "a", TypeColor)
	b := newFixture(alloc, "b", TypeColor)
	c := newFixture(alloc, "c", TypeColor)

	require.NoError(t, b.in.Connect(a.out))
	require.NoError(t, c.in.Connect(a.out))
	assert.Equal(t, []*Socket{b.in, c.in}, a.out.Targets())
}

func TestSocket_Direction(t *testing.T) {
	t.Parallel()
	alloc := NewAllocator()
	a := newFixture(alloc, "a", TypeFloat)
	b := newFixture(alloc, "b", TypeFloat)

	require.ErrorIs(t, b.out.Connect(a.out), ErrDirection)
	require.ErrorIs(t, b.in.Connect(a.in), ErrDirection)
	require.ErrorIs(t, b.in.Connect(nil), ErrUnresolvedReference)
}

func TestSocket_Disconnect(t *testing.T) {
	t.Parallel()
	alloc := NewAllocator()
	a := newFixture(alloc, "a", TypeFloat)
	b := newFixture(alloc, "b", TypeFloat)
	require.NoError(t, b.in.Connect(a.out))

	require.NoError(t, b.in.Disconnect())
	assert.Nil(t, b.in.Source())
	assert.Empty(t, a.out.Targets())

	// Disconnecting twice is a no-op.
	require.NoError(t, b.in.Disconnect())
}

func TestSocket_Sealed(t *testing.T) {
	t.Parallel()
	alloc := NewAllocator()
	a := newFixture(alloc, "a", TypeFloat)
	b := newFixture(alloc, "b", TypeFloat)
	c := newFixture(alloc, "c", TypeFloat)
	require.NoError(t, b.in.Connect(a.out))
	b.Common().Seal()

	require.ErrorIs(t, b.in.Reconnect(c.out), ErrSealed)
	require.ErrorIs(t, b.in.Disconnect(), ErrSealed)
	assert.Same(t, a.out, b.in.Source())
}

func TestSocket_SetValue(t *testing.T) {
	t.Parallel()
	alloc := NewAllocator()

	t.Run("matching shape", func(t *testing.T) {
		n := newFixture(alloc, "f", TypeFloat)
		require.NoError(t, n.in.SetValue(Float(2)))
		v, ok := n.in.Value()
		require.True(t, ok)
		assert.Equal(t, float32(2), v.AsFloat())
	})

	t.Run("vec4 values are retagged", func(t *testing.T) {
		n := newFixture(alloc, "c", TypeColor)
		require.NoError(t, n.in.SetValue(Float4(mgl32.Vec4{1, 2, 3, 4})))
		v, _ := n.in.Value()
		assert.Equal(t, TypeColor, v.Type())
		assert.Equal(t, mgl32.Vec4{1, 2, 3, 4}, v.AsVec4())
	})

	t.Run("shape mismatch", func(t *testing.T) {
		n := newFixture(alloc, "i", TypeInt)
		err := n.in.SetValue(Float(1.5))
		require.ErrorIs(t, err, ErrTypeMismatch)
		v, _ := n.in.Value()
		assert.Equal(t, int32(3), v.AsInt(), "value must be unchanged")
	})

	t.Run("closure has no value", func(t *testing.T) {
		n := newFixture(alloc, "cl", TypeClosure)
		require.ErrorIs(t, n.in.SetValue(Float(1)), ErrTypeMismatch)
		_, ok := n.in.Value()
		assert.False(t, ok)
	})
}

func TestSockets_Collection(t *testing.T) {
	t.Parallel()
	alloc := NewAllocator()
	n := &fixture{}
	n.Init(alloc, n, "fixture", "")
	n.Inputs().AddFloat("Fac", 0.5)
	n.Inputs().AddColor("Color1", mgl32.Vec4{0, 0, 0, 1})
	opt := n.Inputs().AddOptional("Soft Normal", TypeVector)

	assert.Equal(t, "fixture", n.Name(), "empty name defaults to the kind")
	assert.Equal(t, 3, n.Inputs().Len())

	names := []string{}
	for _, s := range n.Inputs().All() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"Fac", "Color1", "Soft Normal"}, names)

	s, ok := n.Inputs().Lookup("soft_normal")
	require.True(t, ok)
	assert.Same(t, opt, s)
	assert.True(t, s.Optional())
	assert.False(t, s.HasValue())

	_, ok = n.Inputs().Lookup("missing")
	assert.False(t, ok)

	assert.Panics(t, func() { n.Inputs().AddFloat("Fac", 1) })
}
