package nodes

import "github.com/specialistvlad/shadergrid/pkg/shader"

// LayerWeight outputs fresnel and facing weights for layering shaders.
type LayerWeight struct {
	shader.Base
	In struct {
		Blend  *shader.Socket
		Normal *shader.Socket
	}
	Out struct {
		Fresnel *shader.Socket
		Facing  *shader.Socket
	}
}

func NewLayerWeight(alloc *shader.Allocator, name string) *LayerWeight {
	n := &LayerWeight{}
	n.Init(alloc, n, KindLayerWeight, name)
	n.In.Blend = n.Inputs().AddFloat("Blend", 0.5)
	n.In.Normal = n.Inputs().AddOptional("Normal", shader.TypeVector)
	n.Out.Fresnel = n.Outputs().AddFloat("Fresnel", 0)
	n.Out.Facing = n.Outputs().AddFloat("Facing", 0)
	return n
}
