// Package engine defines the boundary between a shader graph and the
// external rendering engine it is committed to. Every call is keyed by
// opaque numeric identities the engine hands out.
package engine

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/specialistvlad/shadergrid/pkg/texture"
)

// Target identifies the engine-side shader a graph is committed into.
type Target struct {
	Scene  uint32
	Shader uint32
}

// NodeRef is an engine-assigned node identity within a target.
type NodeRef struct {
	Target
	ID uint32
}

func (r NodeRef) String() string {
	return fmt.Sprintf("%d/%d/%d", r.Scene, r.Shader, r.ID)
}

// Engine is the commit interface. Implementations report failures as plain
// errors; callers classify them as shader.ErrEngineRejected.
type Engine interface {
	AllocateNode(ctx context.Context, target Target, kind shader.Kind) (NodeRef, error)

	SetEnum(ctx context.Context, node NodeRef, kind shader.Kind, attr, value string) error

	SetMemberBool(ctx context.Context, node NodeRef, kind shader.Kind, attr string, v bool) error
	SetMemberInt(ctx context.Context, node NodeRef, kind shader.Kind, attr string, v int32) error
	SetMemberFloat(ctx context.Context, node NodeRef, kind shader.Kind, attr string, v float32) error
	SetMemberVec(ctx context.Context, node NodeRef, kind shader.Kind, attr string, v mgl32.Vec3) error
	SetMemberString(ctx context.Context, node NodeRef, kind shader.Kind, attr, v string) error
	SetMemberImage(ctx context.Context, node NodeRef, kind shader.Kind, attr, bufferName string, img *texture.Image) error

	SetSocketFloat(ctx context.Context, node NodeRef, socket string, v float32) error
	SetSocketInt(ctx context.Context, node NodeRef, socket string, v int32) error
	SetSocketString(ctx context.Context, node NodeRef, socket, v string) error
	SetSocketVec(ctx context.Context, node NodeRef, socket string, v mgl32.Vec4) error

	Connect(ctx context.Context, from NodeRef, fromSocket string, to NodeRef, toSocket string) error
}

// Op names an engine call.
type Op string

const (
	OpAllocateNode    Op = "allocate_node"
	OpSetEnum         Op = "set_enum"
	OpSetMemberBool   Op = "set_member_bool"
	OpSetMemberInt    Op = "set_member_int"
	OpSetMemberFloat  Op = "set_member_float"
	OpSetMemberVec    Op = "set_member_vec"
	OpSetMemberString Op = "set_member_string"
	OpSetMemberImage  Op = "set_member_image"
	OpSetSocketFloat  Op = "set_socket_float"
	OpSetSocketInt    Op = "set_socket_int"
	OpSetSocketString Op = "set_socket_string"
	OpSetSocketVec    Op = "set_socket_vec"
	OpConnect         Op = "connect"
)

// PushSocket sends the literal of an input socket. Closure sockets and
// unset sockets are skipped and reported as not pushed.
func PushSocket(ctx context.Context, eng Engine, node NodeRef, s *shader.Socket) (bool, error) {
	v, ok := s.Value()
	if !ok || !s.Type().HasValue() {
		return false, nil
	}
	var err error
	switch s.Type() {
	case shader.TypeFloat:
		err = eng.SetSocketFloat(ctx, node, s.Name(), v.AsFloat())
	case shader.TypeInt:
		err = eng.SetSocketInt(ctx, node, s.Name(), v.AsInt())
	case shader.TypeString:
		err = eng.SetSocketString(ctx, node, s.Name(), v.AsString())
	case shader.TypeColor, shader.TypeVector, shader.TypeFloat4:
		err = eng.SetSocketVec(ctx, node, s.Name(), v.AsVec4())
	}
	if err != nil {
		return true, shader.NewError(shader.ErrEngineRejected, s.Node(), s.Name(), err, "set socket value")
	}
	return true, nil
}
