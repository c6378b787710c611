package shader

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/pkg/texture"
)

// Node is implemented by every node kind. Kinds embed Base, which supplies
// identity, socket collections and no-op hooks, and override only the hooks
// they need.
type Node interface {
	ID() ID
	Name() string
	Kind() Kind
	Inputs() *Sockets
	Outputs() *Sockets
	Common() *Base

	// SetEnums pushes enum-valued attributes.
	SetEnums(ctx context.Context, enums EnumSetter) error
	// SetDirectMembers pushes attributes that are not modelled as sockets.
	SetDirectMembers(ctx context.Context, members MemberSetter) error
	// ParseAttributes reads the non-socket attributes of a markup element.
	ParseAttributes(attrs Attributes) error
	// EmitAttributes returns the non-socket attributes for markup output.
	EmitAttributes() Attributes
	// EmitCode returns Go statements that restore the non-socket state on
	// the variable varName.
	EmitCode(varName string) []string
}

// Terminal is implemented by the node kind that acts as the graph's sink.
type Terminal interface {
	Node
	Terminal()
}

// EnumSetter receives enum-valued attributes during commit.
type EnumSetter interface {
	SetEnum(ctx context.Context, attr, value string) error
}

// MemberSetter receives non-socket members during commit.
type MemberSetter interface {
	SetMemberBool(ctx context.Context, attr string, v bool) error
	SetMemberInt(ctx context.Context, attr string, v int32) error
	SetMemberFloat(ctx context.Context, attr string, v float32) error
	SetMemberVec(ctx context.Context, attr string, v mgl32.Vec3) error
	SetMemberString(ctx context.Context, attr, v string) error
	SetMemberImage(ctx context.Context, attr, bufferName string, img *texture.Image) error
}

// Base carries the state shared by all node kinds.
type Base struct {
	id      ID
	name    string
	kind    Kind
	inputs  *Sockets
	outputs *Sockets

	engineID uint32
	bound    bool
	sealed   bool
}

// Init must be called by every kind constructor before sockets are added.
// self is the embedding node, used as the owner of its sockets.
func (b *Base) Init(alloc *Allocator, self Node, kind Kind, name string) {
	if name == "" {
		name = string(kind)
	}
	b.id = alloc.Next()
	b.name = name
	b.kind = kind
	b.inputs = newSockets(self, Input)
	b.outputs = newSockets(self, Output)
}

func (b *Base) ID() ID            { return b.id }
func (b *Base) Name() string      { return b.name }
func (b *Base) Kind() Kind        { return b.kind }
func (b *Base) Inputs() *Sockets  { return b.inputs }
func (b *Base) Outputs() *Sockets { return b.outputs }
func (b *Base) Common() *Base     { return b }

// SetName renames the node. Names need not be unique.
func (b *Base) SetName(name string) { b.name = name }

// BindEngineID records the identity the engine assigned during commit.
func (b *Base) BindEngineID(id uint32) {
	b.engineID = id
	b.bound = true
}

// EngineID returns the engine-assigned identity, if the node was committed.
func (b *Base) EngineID() (uint32, bool) { return b.engineID, b.bound }

// Seal freezes the node's connections.
func (b *Base) Seal() { b.sealed = true }

// Sealed reports whether the node was sealed by a successful commit.
func (b *Base) Sealed() bool { return b.sealed }

func (b *Base) String() string {
	return fmt.Sprintf("%s %q (#%d)", b.kind, b.name, b.id)
}

func (b *Base) SetEnums(context.Context, EnumSetter) error           { return nil }
func (b *Base) SetDirectMembers(context.Context, MemberSetter) error { return nil }
func (b *Base) ParseAttributes(Attributes) error                     { return nil }
func (b *Base) EmitAttributes() Attributes                           { return nil }
func (b *Base) EmitCode(string) []string                             { return nil }
