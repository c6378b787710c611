package engine

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/specialistvlad/shadergrid/pkg/texture"
)

// Binding adapts an Engine to the per-node shader.EnumSetter and
// shader.MemberSetter hooks, filling in the node identity and kind and
// classifying failures as shader.ErrEngineRejected.
type Binding struct {
	eng  Engine
	ref  NodeRef
	node shader.Node
}

var (
	_ shader.EnumSetter   = (*Binding)(nil)
	_ shader.MemberSetter = (*Binding)(nil)
)

// Bind returns the setters for node n committed as ref.
func Bind(eng Engine, ref NodeRef, n shader.Node) *Binding {
	return &Binding{eng: eng, ref: ref, node: n}
}

func (b *Binding) reject(attr string, err error) error {
	if err == nil {
		return nil
	}
	e := shader.NewError(shader.ErrEngineRejected, b.node, "", err, "")
	e.Attr = attr
	return e
}

func (b *Binding) SetEnum(ctx context.Context, attr, value string) error {
	return b.reject(attr, b.eng.SetEnum(ctx, b.ref, b.node.Kind(), attr, value))
}

func (b *Binding) SetMemberBool(ctx context.Context, attr string, v bool) error {
	return b.reject(attr, b.eng.SetMemberBool(ctx, b.ref, b.node.Kind(), attr, v))
}

func (b *Binding) SetMemberInt(ctx context.Context, attr string, v int32) error {
	return b.reject(attr, b.eng.SetMemberInt(ctx, b.ref, b.node.Kind(), attr, v))
}

func (b *Binding) SetMemberFloat(ctx context.Context, attr string, v float32) error {
	return b.reject(attr, b.eng.SetMemberFloat(ctx, b.ref, b.node.Kind(), attr, v))
}

func (b *Binding) SetMemberVec(ctx context.Context, attr string, v mgl32.Vec3) error {
	return b.reject(attr, b.eng.SetMemberVec(ctx, b.ref, b.node.Kind(), attr, v))
}

func (b *Binding) SetMemberString(ctx context.Context, attr, v string) error {
	return b.reject(attr, b.eng.SetMemberString(ctx, b.ref, b.node.Kind(), attr, v))
}

func (b *Binding) SetMemberImage(ctx context.Context, attr, bufferName string, img *texture.Image) error {
	return b.reject(attr, b.eng.SetMemberImage(ctx, b.ref, b.node.Kind(), attr, bufferName, img))
}
