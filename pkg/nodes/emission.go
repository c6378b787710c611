package nodes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/pkg/shader"
)

// Emission emits light of a color and strength.
type Emission struct {
	shader.Base
	In struct {
		Color    *shader.Socket
		Strength *shader.Socket
	}
	Out struct {
		Emission *shader.Socket
	}
}

func NewEmission(alloc *shader.Allocator, name string) *Emission {
	n := &Emission{}
	n.Init(alloc, n, KindEmission, name)
	n.In.Color = n.Inputs().AddColor("Color", mgl32.Vec4{0.8, 0.8, 0.8, 1})
	n.In.Strength = n.Inputs().AddFloat("Strength", 1)
	n.Out.Emission = n.Outputs().AddClosure("Emission")
	return n
}
