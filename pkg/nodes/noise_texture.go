package nodes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/pkg/shader"
)

// NoiseTexture is procedural Perlin noise. An unconnected, unset Vector input
// makes the engine use the default texture coordinates.
type NoiseTexture struct {
	shader.Base
	In struct {
		Vector     *shader.Socket
		Scale      *shader.Socket
		Detail     *shader.Socket
		Distortion *shader.Socket
	}
	Out struct {
		Color *shader.Socket
		Fac   *shader.Socket
	}
}

func NewNoiseTexture(alloc *shader.Allocator, name string) *NoiseTexture {
	n := &NoiseTexture{}
	n.Init(alloc, n, KindNoiseTexture, name)
	n.In.Vector = n.Inputs().AddOptional("Vector", shader.TypeVector)
	n.In.Scale = n.Inputs().AddFloat("Scale", 1)
	n.In.Detail = n.Inputs().AddFloat("Detail", 2)
	n.In.Distortion = n.Inputs().AddFloat("Distortion", 0)
	n.Out.Color = n.Outputs().AddColor("Color", mgl32.Vec4{})
	n.Out.Fac = n.Outputs().AddFloat("Fac", 0)
	return n
}
