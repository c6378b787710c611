package shader

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// SocketType is the closed set of value types a socket can carry.
type SocketType int

const (
	TypeFloat SocketType = iota
	TypeInt
	TypeString
	TypeColor
	TypeVector
	TypeFloat4
	TypeClosure
)

var socketTypeNames = [...]string{
	TypeFloat:   "float",
	TypeInt:     "int",
	TypeString:  "string",
	TypeColor:   "color",
	TypeVector:  "vector",
	TypeFloat4:  "float4",
	TypeClosure: "closure",
}

func (t SocketType) String() string {
	if t < 0 || int(t) >= len(socketTypeNames) {
		return fmt.Sprintf("SocketType(%d)", int(t))
	}
	return socketTypeNames[t]
}

// shape groups socket types by the kind of literal they hold.
type shape int

const (
	shapeNone shape = iota
	shapeScalarFloat
	shapeScalarInt
	shapeText
	shapeVec4
)

func (t SocketType) shape() shape {
	switch t {
	case TypeFloat:
		return shapeScalarFloat
	case TypeInt:
		return shapeScalarInt
	case TypeString:
		return shapeText
	case TypeColor, TypeVector, TypeFloat4:
		return shapeVec4
	default:
		return shapeNone
	}
}

// HasValue reports whether sockets of this type carry a literal value.
// Closure sockets only ever carry a connection.
func (t SocketType) HasValue() bool {
	return t.shape() != shapeNone
}

// Direction tells inputs from outputs.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Kind is the node-kind tag, identical to the element/block name used by the
// markup dialects (e.g. "mix", "environment_texture").
type Kind string

// ID is the construction-time identity of a node. IDs are assigned by an
// Allocator and never reused within it.
type ID uint64

// Allocator hands out monotonically increasing node IDs. The zero value is
// ready to use and starts at 1.
type Allocator struct {
	last atomic.Uint64
}

// NewAllocator returns an allocator whose first ID is 1.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns a fresh ID.
func (a *Allocator) Next() ID {
	return ID(a.last.Add(1))
}

// MarkupName converts a socket or attribute name to the lower-case,
// underscore separated form used by the markup dialects.
func MarkupName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}
