package shader

import "github.com/go-gl/mathgl/mgl32"

// fixture is a minimal node kind used by the package tests.
type fixture struct {
	Base
	in  *Socket
	out *Socket
}

func newFixture(alloc *Allocator, name string, typ SocketType) *fixture {
	n := &fixture{}
	n.Init(alloc, n, "fixture", name)
	switch typ {
	case TypeFloat:
		n.in = n.Inputs().AddFloat("In", 0.5)
		n.out = n.Outputs().AddFloat("Out", 0)
	case TypeInt:
		n.in = n.Inputs().AddInt("In", 3)
		n.out = n.Outputs().AddInt("Out", 0)
	case TypeString:
		n.in = n.Inputs().AddString("In", "abc")
		n.out = n.Outputs().AddString("Out", "")
	case TypeColor:
		n.in = n.Inputs().AddColor("In", mgl32.Vec4{0, 0, 0, 1})
		n.out = n.Outputs().AddColor("Out", mgl32.Vec4{})
	case TypeVector:
		n.in = n.Inputs().AddVector("In", mgl32.Vec4{})
		n.out = n.Outputs().AddVector("Out", mgl32.Vec4{})
	case TypeFloat4:
		n.in = n.Inputs().AddFloat4("In", mgl32.Vec4{})
		n.out = n.Outputs().AddFloat4("Out", mgl32.Vec4{})
	case TypeClosure:
		n.in = n.Inputs().AddClosure("In")
		n.out = n.Outputs().AddClosure("Out")
	}
	return n
}
