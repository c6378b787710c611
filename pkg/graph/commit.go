package graph

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/specialistvlad/shadergrid/internal/ctxlog"
	"github.com/specialistvlad/shadergrid/pkg/engine"
	"github.com/specialistvlad/shadergrid/pkg/shader"
)

// Commit validates the shader and pushes it to eng. Structural errors are
// returned before any engine call. Each node is allocated, then receives its
// enums, its direct members, the literals of its unconnected inputs and
// finally the connections feeding it. An engine failure stops the commit
// where it happened; nothing is rolled back. After a successful commit the
// committed nodes' connections are sealed.
func (s *Shader) Commit(ctx context.Context, eng engine.Engine, target engine.Target) error {
	ctx, logger := ctxlog.With(ctx, "shader", s.Name, "commit_id", uuid.NewString())

	order, err := s.Plan()
	if err != nil {
		logger.Debug("Shader failed validation.", "error", err)
		return err
	}
	logger.Debug("Shader validated.", "nodes", len(order))

	refs := make(map[shader.ID]engine.NodeRef, len(order))
	for _, n := range order {
		ref, err := eng.AllocateNode(ctx, target, n.Kind())
		if err != nil {
			return rejected(n, "", err, "allocate node")
		}
		n.Common().BindEngineID(ref.ID)
		refs[n.ID()] = ref

		b := engine.Bind(eng, ref, n)
		if err := n.SetEnums(ctx, b); err != nil {
			return rejected(n, "", err, "set enums")
		}
		if err := n.SetDirectMembers(ctx, b); err != nil {
			return rejected(n, "", err, "set direct members")
		}

		pushed := 0
		for _, in := range n.Inputs().All() {
			if in.Connected() {
				continue
			}
			ok, err := engine.PushSocket(ctx, eng, ref, in)
			if err != nil {
				return err
			}
			if ok {
				pushed++
			}
		}

		links := 0
		for _, in := range n.Inputs().All() {
			src := in.Source()
			if src == nil {
				continue
			}
			if err := eng.Connect(ctx, refs[src.Node().ID()], src.Name(), ref, in.Name()); err != nil {
				return rejected(n, in.Name(), err, "connect from %q of node %q", src.Name(), src.Node().Name())
			}
			links++
		}
		logger.Debug("Node committed.", "node", n.Name(), "kind", n.Kind(), "engine_id", ref.ID, "sockets", pushed, "links", links)
	}

	for _, n := range order {
		n.Common().Seal()
	}
	logger.Info("Shader committed.", "nodes", len(order), "scene", target.Scene, "engine_shader", target.Shader)
	return nil
}

// rejected classifies err as an engine rejection unless a hook already did.
func rejected(n shader.Node, socket string, err error, format string, args ...any) error {
	if errors.Is(err, shader.ErrEngineRejected) {
		return err
	}
	return shader.NewError(shader.ErrEngineRejected, n, socket, err, format, args...)
}
