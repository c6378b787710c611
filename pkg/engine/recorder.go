package engine

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/specialistvlad/shadergrid/pkg/texture"
)

// Call is one recorded engine call. Values are rendered as markup text so
// traces compare and print easily.
type Call struct {
	Op     Op
	Node   uint32
	Kind   shader.Kind
	Name   string
	Value  string
	ToNode uint32
	ToName string
}

func (c Call) String() string {
	switch c.Op {
	case OpAllocateNode:
		return fmt.Sprintf("%s %s -> %d", c.Op, c.Kind, c.Node)
	case OpConnect:
		return fmt.Sprintf("%s %d.%s -> %d.%s", c.Op, c.Node, c.Name, c.ToNode, c.ToName)
	default:
		return fmt.Sprintf("%s %d %s=%s", c.Op, c.Node, c.Name, c.Value)
	}
}

// Recorder is an in-process Engine that allocates sequential node ids per
// target and records every call. It backs tests and dry runs.
type Recorder struct {
	// FailOn, when set, is consulted after a call is recorded; a non-nil
	// result is returned as the call's error.
	FailOn func(Call) error

	mu    sync.Mutex
	calls []Call
	next  map[Target]uint32
}

var _ Engine = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Calls returns a copy of the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls and node ids.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.next = nil
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	fail := r.FailOn
	r.mu.Unlock()
	if fail != nil {
		return fail(c)
	}
	return nil
}

func (r *Recorder) AllocateNode(_ context.Context, target Target, kind shader.Kind) (NodeRef, error) {
	r.mu.Lock()
	if r.next == nil {
		r.next = make(map[Target]uint32)
	}
	r.next[target]++
	ref := NodeRef{Target: target, ID: r.next[target]}
	r.mu.Unlock()
	return ref, r.record(Call{Op: OpAllocateNode, Node: ref.ID, Kind: kind})
}

func (r *Recorder) SetEnum(_ context.Context, node NodeRef, kind shader.Kind, attr, value string) error {
	return r.record(Call{Op: OpSetEnum, Node: node.ID, Kind: kind, Name: attr, Value: value})
}

func (r *Recorder) SetMemberBool(_ context.Context, node NodeRef, kind shader.Kind, attr string, v bool) error {
	return r.record(Call{Op: OpSetMemberBool, Node: node.ID, Kind: kind, Name: attr, Value: strconv.FormatBool(v)})
}

func (r *Recorder) SetMemberInt(_ context.Context, node NodeRef, kind shader.Kind, attr string, v int32) error {
	return r.record(Call{Op: OpSetMemberInt, Node: node.ID, Kind: kind, Name: attr, Value: strconv.Itoa(int(v))})
}

func (r *Recorder) SetMemberFloat(_ context.Context, node NodeRef, kind shader.Kind, attr string, v float32) error {
	return r.record(Call{Op: OpSetMemberFloat, Node: node.ID, Kind: kind, Name: attr, Value: shader.FormatFloat(v)})
}

func (r *Recorder) SetMemberVec(_ context.Context, node NodeRef, kind shader.Kind, attr string, v mgl32.Vec3) error {
	return r.record(Call{Op: OpSetMemberVec, Node: node.ID, Kind: kind, Name: attr, Value: shader.FormatVec3(v)})
}

func (r *Recorder) SetMemberString(_ context.Context, node NodeRef, kind shader.Kind, attr, v string) error {
	return r.record(Call{Op: OpSetMemberString, Node: node.ID, Kind: kind, Name: attr, Value: v})
}

func (r *Recorder) SetMemberImage(_ context.Context, node NodeRef, kind shader.Kind, attr, bufferName string, img *texture.Image) error {
	value := fmt.Sprintf("%s %dx%dx%d", bufferName, img.Width, img.Height, img.Channels)
	return r.record(Call{Op: OpSetMemberImage, Node: node.ID, Kind: kind, Name: attr, Value: value})
}

func (r *Recorder) SetSocketFloat(_ context.Context, node NodeRef, socket string, v float32) error {
	return r.record(Call{Op: OpSetSocketFloat, Node: node.ID, Name: socket, Value: shader.FormatFloat(v)})
}

func (r *Recorder) SetSocketInt(_ context.Context, node NodeRef, socket string, v int32) error {
	return r.record(Call{Op: OpSetSocketInt, Node: node.ID, Name: socket, Value: strconv.Itoa(int(v))})
}

func (r *Recorder) SetSocketString(_ context.Context, node NodeRef, socket, v string) error {
	return r.record(Call{Op: OpSetSocketString, Node: node.ID, Name: socket, Value: v})
}

func (r *Recorder) SetSocketVec(_ context.Context, node NodeRef, socket string, v mgl32.Vec4) error {
	return r.record(Call{Op: OpSetSocketVec, Node: node.ID, Name: socket, Value: shader.FormatVec4(v)})
}

func (r *Recorder) Connect(_ context.Context, from NodeRef, fromSocket string, to NodeRef, toSocket string) error {
	return r.record(Call{Op: OpConnect, Node: from.ID, Name: fromSocket, ToNode: to.ID, ToName: toSocket})
}
