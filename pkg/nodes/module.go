package nodes

import (
	"github.com/specialistvlad/shadergrid/pkg/registry"
	"github.com/specialistvlad/shadergrid/pkg/shader"
)

// Node-kind tags, as used by markup element and block names.
const (
	KindBackground         shader.Kind = "background"
	KindOutput             shader.Kind = "output"
	KindDiffuseBSDF        shader.Kind = "diffuse_bsdf"
	KindEmission           shader.Kind = "emission"
	KindMixClosure         shader.Kind = "mix_closure"
	KindAddClosure         shader.Kind = "add_closure"
	KindMix                shader.Kind = "mix"
	KindEnvironmentTexture shader.Kind = "environment_texture"
	KindPhysicalSky        shader.Kind = "rhino_physical_sky_texture"
	KindNoiseTexture       shader.Kind = "noise_texture"
	KindLayerWeight        shader.Kind = "layer_weight"
	KindCombineRGB         shader.Kind = "combine_rgb"
)

// Module registers every kind in this package.
type Module struct{}

func (m *Module) Register(r *registry.Registry) {
	r.Register(registry.Entry{Kind: KindBackground, CodeName: "Background", EngineType: 0,
		New: func(a *shader.Allocator, name string) shader.Node { return NewBackground(a, name) }})
	r.Register(registry.Entry{Kind: KindOutput, CodeName: "Output", EngineType: 1,
		New: func(a *shader.Allocator, name string) shader.Node { return NewOutput(a, name) }})
	r.Register(registry.Entry{Kind: KindDiffuseBSDF, CodeName: "DiffuseBSDF", EngineType: 2,
		New: func(a *shader.Allocator, name string) shader.Node { return NewDiffuseBSDF(a, name) }})
	r.Register(registry.Entry{Kind: KindEmission, CodeName: "Emission", EngineType: 12,
		New: func(a *shader.Allocator, name string) shader.Node { return NewEmission(a, name) }})
	r.Register(registry.Entry{Kind: KindMixClosure, CodeName: "MixClosure", EngineType: 19,
		New: func(a *shader.Allocator, name string) shader.Node { return NewMixClosure(a, name) }})
	r.Register(registry.Entry{Kind: KindAddClosure, CodeName: "AddClosure", EngineType: 20,
		New: func(a *shader.Allocator, name string) shader.Node { return NewAddClosure(a, name) }})
	r.Register(registry.Entry{Kind: KindMix, CodeName: "Mix", EngineType: 22,
		New: func(a *shader.Allocator, name string) shader.Node { return NewMix(a, name) }})
	r.Register(registry.Entry{Kind: KindEnvironmentTexture, CodeName: "EnvironmentTexture", EngineType: 30,
		New: func(a *shader.Allocator, name string) shader.Node { return NewEnvironmentTexture(a, name) }})
	r.Register(registry.Entry{Kind: KindPhysicalSky, CodeName: "PhysicalSky", EngineType: 32,
		New: func(a *shader.Allocator, name string) shader.Node { return NewPhysicalSky(a, name) }})
	r.Register(registry.Entry{Kind: KindNoiseTexture, CodeName: "NoiseTexture", EngineType: 34,
		New: func(a *shader.Allocator, name string) shader.Node { return NewNoiseTexture(a, name) }})
	r.Register(registry.Entry{Kind: KindLayerWeight, CodeName: "LayerWeight", EngineType: 44,
		New: func(a *shader.Allocator, name string) shader.Node { return NewLayerWeight(a, name) }})
	r.Register(registry.Entry{Kind: KindCombineRGB, CodeName: "CombineRGB", EngineType: 52,
		New: func(a *shader.Allocator, name string) shader.Node { return NewCombineRGB(a, name) }})
}

// NewRegistry returns a registry holding every kind in this package.
func NewRegistry() *registry.Registry {
	r := registry.New()
	(&Module{}).Register(r)
	return r
}
