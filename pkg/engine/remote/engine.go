package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/internal/ctxlog"
	"github.com/specialistvlad/shadergrid/pkg/engine"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/specialistvlad/shadergrid/pkg/texture"
)

// DefaultTimeout bounds the wait for a single acknowledgement.
const DefaultTimeout = 10 * time.Second

// ErrTimeout is returned when an acknowledgement does not arrive in time.
var ErrTimeout = errors.New("timed out waiting for acknowledgement")

// Conn is the part of a socket.io client the engine uses. The last argument
// passed to Emit is the acknowledgement callback.
type Conn interface {
	Emit(ev string, args ...any) error
}

// NodeTypes resolves a node kind to the engine's numeric node type.
type NodeTypes func(kind shader.Kind) (uint32, bool)

// Engine implements engine.Engine over a socket.io connection.
type Engine struct {
	conn      Conn
	timeout   time.Duration
	nodeTypes NodeTypes
}

var _ engine.Engine = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithNodeTypes makes allocate_node carry the numeric node type next to the
// kind tag.
func WithNodeTypes(f NodeTypes) Option {
	return func(e *Engine) { e.nodeTypes = f }
}

// New wraps an established connection.
func New(conn Conn, opts ...Option) *Engine {
	e := &Engine{conn: conn, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type reply struct {
	id  uint32
	err error
}

// call emits op with payload and waits for the acknowledgement.
func (e *Engine) call(ctx context.Context, op engine.Op, payload map[string]any) (uint32, error) {
	logger := ctxlog.FromContext(ctx)
	done := make(chan reply, 1)

	ack := func(args []any, err error) {
		if err != nil {
			done <- reply{err: err}
			return
		}
		done <- decodeReply(args)
	}

	logger.Debug("Emitting engine call.", "op", op)
	if err := e.conn.Emit(string(op), payload, ack); err != nil {
		return 0, fmt.Errorf("%s: emit failed: %w", op, err)
	}

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()
	select {
	case r := <-done:
		if r.err != nil {
			return 0, fmt.Errorf("%s: %w", op, r.err)
		}
		return r.id, nil
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	case <-timer.C:
		return 0, fmt.Errorf("%s: %w after %v", op, ErrTimeout, e.timeout)
	}
}

func decodeReply(args []any) reply {
	if len(args) == 0 {
		return reply{err: errors.New("empty acknowledgement")}
	}
	m, ok := args[0].(map[string]any)
	if !ok {
		return reply{err: fmt.Errorf("unexpected acknowledgement %T", args[0])}
	}
	if okVal, _ := m["ok"].(bool); !okVal {
		msg, _ := m["error"].(string)
		if msg == "" {
			msg = "call rejected"
		}
		return reply{err: errors.New(msg)}
	}
	var id uint32
	switch v := m["id"].(type) {
	case float64:
		id = uint32(v)
	case int:
		id = uint32(v)
	case int64:
		id = uint32(v)
	case uint32:
		id = v
	}
	return reply{id: id}
}

func nodePayload(node engine.NodeRef, extra map[string]any) map[string]any {
	p := map[string]any{"scene": node.Scene, "shader": node.Shader, "node": node.ID}
	for k, v := range extra {
		p[k] = v
	}
	return p
}

func (e *Engine) AllocateNode(ctx context.Context, target engine.Target, kind shader.Kind) (engine.NodeRef, error) {
	payload := map[string]any{"scene": target.Scene, "shader": target.Shader, "kind": string(kind)}
	if e.nodeTypes != nil {
		if t, ok := e.nodeTypes(kind); ok {
			payload["type"] = t
		}
	}
	id, err := e.call(ctx, engine.OpAllocateNode, payload)
	if err != nil {
		return engine.NodeRef{}, err
	}
	return engine.NodeRef{Target: target, ID: id}, nil
}

func (e *Engine) SetEnum(ctx context.Context, node engine.NodeRef, kind shader.Kind, attr, value string) error {
	_, err := e.call(ctx, engine.OpSetEnum, nodePayload(node, map[string]any{"kind": string(kind), "name": attr, "value": value}))
	return err
}

func (e *Engine) member(ctx context.Context, op engine.Op, node engine.NodeRef, kind shader.Kind, attr string, value any) error {
	_, err := e.call(ctx, op, nodePayload(node, map[string]any{"kind": string(kind), "name": attr, "value": value}))
	return err
}

func (e *Engine) SetMemberBool(ctx context.Context, node engine.NodeRef, kind shader.Kind, attr string, v bool) error {
	return e.member(ctx, engine.OpSetMemberBool, node, kind, attr, v)
}

func (e *Engine) SetMemberInt(ctx context.Context, node engine.NodeRef, kind shader.Kind, attr string, v int32) error {
	return e.member(ctx, engine.OpSetMemberInt, node, kind, attr, v)
}

func (e *Engine) SetMemberFloat(ctx context.Context, node engine.NodeRef, kind shader.Kind, attr string, v float32) error {
	return e.member(ctx, engine.OpSetMemberFloat, node, kind, attr, v)
}

func (e *Engine) SetMemberVec(ctx context.Context, node engine.NodeRef, kind shader.Kind, attr string, v mgl32.Vec3) error {
	return e.member(ctx, engine.OpSetMemberVec, node, kind, attr, []float32{v[0], v[1], v[2]})
}

func (e *Engine) SetMemberString(ctx context.Context, node engine.NodeRef, kind shader.Kind, attr, v string) error {
	return e.member(ctx, engine.OpSetMemberString, node, kind, attr, v)
}

func (e *Engine) SetMemberImage(ctx context.Context, node engine.NodeRef, kind shader.Kind, attr, bufferName string, img *texture.Image) error {
	extra := map[string]any{
		"kind":     string(kind),
		"name":     attr,
		"buffer":   bufferName,
		"width":    img.Width,
		"height":   img.Height,
		"depth":    img.Depth,
		"channels": img.Channels,
	}
	if img.IsFloat() {
		extra["pixels"] = img.Float
	} else {
		extra["bytes"] = img.Bytes
	}
	_, err := e.call(ctx, engine.OpSetMemberImage, nodePayload(node, extra))
	return err
}

func (e *Engine) socket(ctx context.Context, op engine.Op, node engine.NodeRef, socket string, value any) error {
	_, err := e.call(ctx, op, nodePayload(node, map[string]any{"socket": socket, "value": value}))
	return err
}

func (e *Engine) SetSocketFloat(ctx context.Context, node engine.NodeRef, socket string, v float32) error {
	return e.socket(ctx, engine.OpSetSocketFloat, node, socket, v)
}

func (e *Engine) SetSocketInt(ctx context.Context, node engine.NodeRef, socket string, v int32) error {
	return e.socket(ctx, engine.OpSetSocketInt, node, socket, v)
}

func (e *Engine) SetSocketString(ctx context.Context, node engine.NodeRef, socket, v string) error {
	return e.socket(ctx, engine.OpSetSocketString, node, socket, v)
}

func (e *Engine) SetSocketVec(ctx context.Context, node engine.NodeRef, socket string, v mgl32.Vec4) error {
	return e.socket(ctx, engine.OpSetSocketVec, node, socket, []float32{v[0], v[1], v[2], v[3]})
}

func (e *Engine) Connect(ctx context.Context, from engine.NodeRef, fromSocket string, to engine.NodeRef, toSocket string) error {
	_, err := e.call(ctx, engine.OpConnect, map[string]any{
		"scene":       to.Scene,
		"shader":      to.Shader,
		"from":        from.ID,
		"from_socket": fromSocket,
		"to":          to.ID,
		"to_socket":   toSocket,
	})
	return err
}
