package nodes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/pkg/shader"
)

// Background is the world background closure.
type Background struct {
	shader.Base
	In struct {
		Color    *shader.Socket
		Strength *shader.Socket
	}
	Out struct {
		Background *shader.Socket
	}
}

func NewBackground(alloc *shader.Allocator, name string) *Background {
	n := &Background{}
	n.Init(alloc, n, KindBackground, name)
	n.In.Color = n.Inputs().AddColor("Color", mgl32.Vec4{0.8, 0.8, 0.8, 1})
	n.In.Strength = n.Inputs().AddFloat("Strength", 1)
	n.Out.Background = n.Outputs().AddClosure("Background")
	return n
}

// DiffuseBSDF is a Lambertian/Oren-Nayar diffuse surface.
type DiffuseBSDF struct {
	shader.Base
	In struct {
		Color     *shader.Socket
		Roughness *shader.Socket
		Normal    *shader.Socket
	}
	Out struct {
		BSDF *shader.Socket
	}
}

func NewDiffuseBSDF(alloc *shader.Allocator, name string) *DiffuseBSDF {
	n := &DiffuseBSDF{}
	n.Init(alloc, n, KindDiffuseBSDF, name)
	n.In.Color = n.Inputs().AddColor("Color", mgl32.Vec4{0.8, 0.8, 0.8, 1})
	n.In.Roughness = n.Inputs().AddFloat("Roughness", 0)
	n.In.Normal = n.Inputs().AddOptional("Normal", shader.TypeVector)
	n.Out.BSDF = n.Outputs().AddClosure("BSDF")
	return n
}

// MixClosure blends two closures by Fac. Unconnected closures contribute
// nothing.
type MixClosure struct {
	shader.Base
	In struct {
		Fac      *shader.Socket
		Closure1 *shader.Socket
		Closure2 *shader.Socket
	}
	Out struct {
		Closure *shader.Socket
	}
}

func NewMixClosure(alloc *shader.Allocator, name string) *MixClosure {
	n := &MixClosure{}
	n.Init(alloc, n, KindMixClosure, name)
	n.In.Fac = n.Inputs().AddFloat("Fac", 0.5)
	n.In.Closure1 = n.Inputs().AddOptional("Closure1", shader.TypeClosure)
	n.In.Closure2 = n.Inputs().AddOptional("Closure2", shader.TypeClosure)
	n.Out.Closure = n.Outputs().AddClosure("Closure")
	return n
}

// AddClosure sums two closures.
type AddClosure struct {
	shader.Base
	In struct {
		Closure1 *shader.Socket
		Closure2 *shader.Socket
	}
	Out struct {
		Closure *shader.Socket
	}
}

func NewAddClosure(alloc *shader.Allocator, name string) *AddClosure {
	n := &AddClosure{}
	n.Init(alloc, n, KindAddClosure, name)
	n.In.Closure1 = n.Inputs().AddOptional("Closure1", shader.TypeClosure)
	n.In.Closure2 = n.Inputs().AddOptional("Closure2", shader.TypeClosure)
	n.Out.Closure = n.Outputs().AddClosure("Closure")
	return n
}
