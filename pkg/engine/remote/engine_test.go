package remote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/pkg/engine"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/specialistvlad/shadergrid/pkg/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitted struct {
	event   string
	payload map[string]any
}

// fakeConn acknowledges every event from a goroutine, the way the socket.io
// client delivers acknowledgements.
type fakeConn struct {
	mu      sync.Mutex
	events  []emitted
	respond func(ev string, payload map[string]any) []any
	emitErr error
}

func (c *fakeConn) Emit(ev string, args ...any) error {
	if c.emitErr != nil {
		return c.emitErr
	}
	payload, _ := args[0].(map[string]any)
	ack := args[len(args)-1].(func([]any, error))

	c.mu.Lock()
	c.events = append(c.events, emitted{event: ev, payload: payload})
	c.mu.Unlock()

	if c.respond == nil {
		return nil
	}
	go ack(c.respond(ev, payload), nil)
	return nil
}

func okWithID(id float64) func(string, map[string]any) []any {
	return func(string, map[string]any) []any {
		return []any{map[string]any{"ok": true, "id": id}}
	}
}

func TestEngine_AllocateNode(t *testing.T) {
	t.Parallel()
	conn := &fakeConn{respond: okWithID(7)}
	e := New(conn, WithNodeTypes(func(kind shader.Kind) (uint32, bool) { return 12, kind == "emission" }))
	target := engine.Target{Scene: 1, Shader: 2}

	ref, err := e.AllocateNode(context.Background(), target, "emission")
	require.NoError(t, err)
	assert.Equal(t, engine.NodeRef{Target: target, ID: 7}, ref)

	require.Len(t, conn.events, 1)
	assert.Equal(t, "allocate_node", conn.events[0].event)
	assert.Equal(t, map[string]any{"scene": uint32(1), "shader": uint32(2), "kind": "emission", "type": uint32(12)}, conn.events[0].payload)
}

func TestEngine_Payloads(t *testing.T) {
	t.Parallel()
	conn := &fakeConn{respond: okWithID(0)}
	e := New(conn)
	ctx := context.Background()
	node := engine.NodeRef{Target: engine.Target{Scene: 0, Shader: 1}, ID: 3}

	require.NoError(t, e.SetSocketVec(ctx, node, "Color", mgl32.Vec4{0.8, 0.8, 0.8, 1}))
	require.NoError(t, e.SetEnum(ctx, node, "mix", "type", "Add"))
	require.NoError(t, e.SetMemberVec(ctx, node, "rhino_physical_sky_texture", "SunColor", mgl32.Vec3{1, 1, 0}))
	require.NoError(t, e.SetMemberImage(ctx, node, "environment_texture", "builtin-data", "sky.png",
		&texture.Image{Float: []float32{1, 0, 0, 1}, Width: 1, Height: 1, Depth: 1, Channels: 4}))
	require.NoError(t, e.Connect(ctx, engine.NodeRef{Target: node.Target, ID: 1}, "Emission", node, "Surface"))

	require.Len(t, conn.events, 5)
	assert.Equal(t, "set_socket_vec", conn.events[0].event)
	assert.Equal(t, []float32{0.8, 0.8, 0.8, 1}, conn.events[0].payload["value"])
	assert.Equal(t, uint32(3), conn.events[0].payload["node"])

	assert.Equal(t, "Add", conn.events[1].payload["value"])
	assert.Equal(t, []float32{1, 1, 0}, conn.events[2].payload["value"])
	assert.Equal(t, []float32{1, 0, 0, 1}, conn.events[3].payload["pixels"])
	assert.Equal(t, "sky.png", conn.events[3].payload["buffer"])

	assert.Equal(t, "connect", conn.events[4].event)
	assert.Equal(t, uint32(1), conn.events[4].payload["from"])
	assert.Equal(t, "Surface", conn.events[4].payload["to_socket"])
}

func TestEngine_Rejection(t *testing.T) {
	t.Parallel()
	conn := &fakeConn{respond: func(string, map[string]any) []any {
		return []any{map[string]any{"ok": false, "error": "unknown socket 'Colour'"}}
	}}
	err := New(conn).SetSocketFloat(context.Background(), engine.NodeRef{}, "Colour", 1)
	require.Error(t, err)
	assert.EqualError(t, err, "set_socket_float: unknown socket 'Colour'")
}

func TestEngine_Timeout(t *testing.T) {
	t.Parallel()
	conn := &fakeConn{}
	err := New(conn, WithTimeout(20*time.Millisecond)).SetSocketInt(context.Background(), engine.NodeRef{}, "Seed", 1)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestEngine_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(&fakeConn{}).SetSocketString(ctx, engine.NodeRef{}, "Name", "x")
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_EmitError(t *testing.T) {
	t.Parallel()
	boom := errors.New("not connected")
	_, err := New(&fakeConn{emitErr: boom}).AllocateNode(context.Background(), engine.Target{}, "output")
	require.ErrorIs(t, err, boom)
}

func TestDecodeReply(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		args      []any
		expectID  uint32
		expectErr string
	}{
		{name: "ok", args: []any{map[string]any{"ok": true, "id": float64(4)}}, expectID: 4},
		{name: "empty", args: nil, expectErr: "empty acknowledgement"},
		{name: "wrong type", args: []any{"yes"}, expectErr: "unexpected acknowledgement string"},
		{name: "rejected without message", args: []any{map[string]any{"ok": false}}, expectErr: "call rejected"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := decodeReply(tc.args)
			if tc.expectErr != "" {
				assert.EqualError(t, r.err, tc.expectErr)
				return
			}
			require.NoError(t, r.err)
			assert.Equal(t, tc.expectID, r.id)
		})
	}
}
