package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Sockets is the ordered, name-unique collection of a node's inputs or
// outputs. Insertion order drives serialization and commit order.
type Sockets struct {
	dir   Direction
	owner Node
	list  []*Socket
	index map[string]*Socket
}

func newSockets(owner Node, dir Direction) *Sockets {
	return &Sockets{dir: dir, owner: owner, index: map[string]*Socket{}}
}

// Direction returns whether the collection holds inputs or outputs.
func (c *Sockets) Direction() Direction { return c.dir }

// Len returns the number of sockets.
func (c *Sockets) Len() int { return len(c.list) }

// All returns the sockets in insertion order.
func (c *Sockets) All() []*Socket {
	out := make([]*Socket, len(c.list))
	copy(out, c.list)
	return out
}

// Get returns the socket with the exact name.
func (c *Sockets) Get(name string) (*Socket, bool) {
	s, ok := c.index[name]
	return s, ok
}

// Lookup finds a socket by its markup name, ignoring case and treating
// spaces and underscores alike.
func (c *Sockets) Lookup(name string) (*Socket, bool) {
	if s, ok := c.index[name]; ok {
		return s, true
	}
	want := MarkupName(name)
	for _, s := range c.list {
		if strings.EqualFold(s.MarkupName(), want) {
			return s, true
		}
	}
	return nil, false
}

// add panics on a duplicate name: socket shapes are fixed by node
// constructors, so a clash is a programming error.
func (c *Sockets) add(name string, typ SocketType, optional bool) *Socket {
	if _, exists := c.index[name]; exists {
		panic(fmt.Sprintf("shader: duplicate %s socket %q on %s", c.dir, name, c.owner.Kind()))
	}
	s := &Socket{name: name, typ: typ, dir: c.dir, owner: c.owner, optional: optional}
	c.list = append(c.list, s)
	c.index[name] = s
	return s
}

func (c *Sockets) addValue(name string, v Value) *Socket {
	s := c.add(name, v.typ, false)
	if c.dir == Input {
		s.value, s.set = v, true
	}
	return s
}

// AddFloat adds a float socket. Inputs start at def.
func (c *Sockets) AddFloat(name string, def float32) *Socket { return c.addValue(name, Float(def)) }

// AddInt adds an int socket. Inputs start at def.
func (c *Sockets) AddInt(name string, def int32) *Socket { return c.addValue(name, Int(def)) }

// AddString adds a text socket. Inputs start at def.
func (c *Sockets) AddString(name string, def string) *Socket { return c.addValue(name, String(def)) }

// AddColor adds a color socket. Inputs start at def.
func (c *Sockets) AddColor(name string, def mgl32.Vec4) *Socket {
	return c.addValue(name, Vec4Value(TypeColor, def))
}

// AddVector adds a vector socket. Inputs start at def.
func (c *Sockets) AddVector(name string, def mgl32.Vec4) *Socket {
	return c.addValue(name, Vec4Value(TypeVector, def))
}

// AddFloat4 adds a float4 socket. Inputs start at def.
func (c *Sockets) AddFloat4(name string, def mgl32.Vec4) *Socket {
	return c.addValue(name, Vec4Value(TypeFloat4, def))
}

// AddClosure adds a closure socket. Closure inputs added this way are
// required and must be connected before commit.
func (c *Sockets) AddClosure(name string) *Socket { return c.add(name, TypeClosure, false) }

// AddOptional adds an optional socket of any type that starts unset.
func (c *Sockets) AddOptional(name string, typ SocketType) *Socket { return c.add(name, typ, true) }
