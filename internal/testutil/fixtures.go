// Package testutil holds fixtures and helpers shared by the package tests.
package testutil

import (
	"testing"

	"github.com/specialistvlad/shadergrid/pkg/graph"
	"github.com/specialistvlad/shadergrid/pkg/nodes"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/stretchr/testify/require"
)

// EmissionShader builds Emission(Color=(0.8,0.8,0.8,1), Strength=1) feeding
// Output.Surface.
func EmissionShader(t testing.TB) (*graph.Shader, *nodes.Emission, *nodes.Output) {
	t.Helper()
	sh := graph.New("glow")
	emit := nodes.NewEmission(sh.Alloc(), "emit")
	out := nodes.NewOutput(sh.Alloc(), "output")
	require.NoError(t, emit.In.Color.SetValue(shader.Color(0.8, 0.8, 0.8, 1)))
	require.NoError(t, emit.In.Strength.SetValue(shader.Float(1)))
	require.NoError(t, out.In.Surface.Connect(emit.Out.Emission))
	sh.Add(emit, out)
	return sh, emit, out
}

// Layered is a multi-level shader exercising enums, members and fan-out.
type Layered struct {
	Shader  *graph.Shader
	Noise   *nodes.NoiseTexture
	Weight  *nodes.LayerWeight
	Mix     *nodes.Mix
	Emit    *nodes.Emission
	Diffuse *nodes.DiffuseBSDF
	Blend   *nodes.MixClosure
	Output  *nodes.Output
}

// LayeredShader builds
//
//	noise.Color -> mix.Color1, weight.Fresnel -> mix.Fac,
//	mix.Color -> emit.Color, mix.Color -> diffuse.Color,
//	emit/diffuse -> blend -> output.Surface.
//
// Nodes are created in an order that differs from commit order.
func LayeredShader(t testing.TB) *Layered {
	t.Helper()
	sh := graph.New("layered")
	l := &Layered{Shader: sh}
	l.Output = nodes.NewOutput(sh.Alloc(), "output")
	l.Blend = nodes.NewMixClosure(sh.Alloc(), "blend")
	l.Emit = nodes.NewEmission(sh.Alloc(), "emit")
	l.Diffuse = nodes.NewDiffuseBSDF(sh.Alloc(), "diffuse")
	l.Mix = nodes.NewMix(sh.Alloc(), "mix")
	l.Noise = nodes.NewNoiseTexture(sh.Alloc(), "noise")
	l.Weight = nodes.NewLayerWeight(sh.Alloc(), "weight")

	l.Mix.BlendType = nodes.BlendMultiply
	l.Mix.UseClamp = true
	require.NoError(t, l.Noise.In.Scale.SetValue(shader.Float(4)))
	require.NoError(t, l.Emit.In.Strength.SetValue(shader.Float(2.5)))

	require.NoError(t, l.Mix.In.Color1.Connect(l.Noise.Out.Color))
	require.NoError(t, l.Mix.In.Fac.Connect(l.Weight.Out.Fresnel))
	require.NoError(t, l.Emit.In.Color.Connect(l.Mix.Out.Color))
	require.NoError(t, l.Diffuse.In.Color.Connect(l.Mix.Out.Color))
	require.NoError(t, l.Blend.In.Closure1.Connect(l.Emit.Out.Emission))
	require.NoError(t, l.Blend.In.Closure2.Connect(l.Diffuse.Out.BSDF))
	require.NoError(t, l.Output.In.Surface.Connect(l.Blend.Out.Closure))

	sh.Add(l.Output, l.Blend, l.Emit, l.Diffuse, l.Mix, l.Noise, l.Weight)
	return l
}

// CyclicShader builds three Mix nodes chained a -> b -> c -> a through
// Color1, with c feeding an Emission into the Output.
func CyclicShader(t testing.TB) *graph.Shader {
	t.Helper()
	sh := graph.New("loop")
	a := nodes.NewMix(sh.Alloc(), "a")
	b := nodes.NewMix(sh.Alloc(), "b")
	c := nodes.NewMix(sh.Alloc(), "c")
	emit := nodes.NewEmission(sh.Alloc(), "emit")
	out := nodes.NewOutput(sh.Alloc(), "output")
	require.NoError(t, b.In.Color1.Connect(a.Out.Color))
	require.NoError(t, c.In.Color1.Connect(b.Out.Color))
	require.NoError(t, a.In.Color1.Connect(c.Out.Color))
	require.NoError(t, emit.In.Color.Connect(c.Out.Color))
	require.NoError(t, out.In.Surface.Connect(emit.Out.Emission))
	sh.Add(out)
	return sh
}
