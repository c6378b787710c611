package nodes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/pkg/shader"
)

// CombineRGB builds a color from three channels.
type CombineRGB struct {
	shader.Base
	In struct {
		R *shader.Socket
		G *shader.Socket
		B *shader.Socket
	}
	Out struct {
		Image *shader.Socket
	}
}

func NewCombineRGB(alloc *shader.Allocator, name string) *CombineRGB {
	n := &CombineRGB{}
	n.Init(alloc, n, KindCombineRGB, name)
	n.In.R = n.Inputs().AddFloat("R", 0)
	n.In.G = n.Inputs().AddFloat("G", 0)
	n.In.B = n.Inputs().AddFloat("B", 0)
	n.Out.Image = n.Outputs().AddColor("Image", mgl32.Vec4{})
	return n
}
