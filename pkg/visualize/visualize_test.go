package visualize_test

import (
	"context"
	"testing"

	"github.com/specialistvlad/shadergrid/internal/testutil"
	"github.com/specialistvlad/shadergrid/pkg/visualize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDOT(t *testing.T) {
	sh, _, _ := testutil.EmissionShader(t)

	dot := visualize.ToDOT(sh, visualize.Options{})

	assert.Contains(t, dot, `digraph "glow" {`)
	assert.Contains(t, dot, `n1 [label="emit\n(emission)"];`)
	assert.Contains(t, dot, `n2 [label="output\n(output)", shape=doubleoctagon, fillcolor=lightgrey];`)
	assert.Contains(t, dot, `n1 -> n2 [taillabel="Emission", headlabel="Surface"];`)
	assert.NotContains(t, dot, "Strength")
}

func TestToDOT_Values(t *testing.T) {
	sh, _, _ := testutil.EmissionShader(t)

	dot := visualize.ToDOT(sh, visualize.Options{Values: true})

	assert.Contains(t, dot, `Strength: 1`)
	assert.Contains(t, dot, `Color: 0.8 0.8 0.8 1`)
}

func TestRenderSVG(t *testing.T) {
	l := testutil.LayeredShader(t)

	svg, err := visualize.RenderSVG(context.Background(), visualize.ToDOT(l.Shader, visualize.Options{}))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "weight")
}

func TestRenderSVG_BadDOT(t *testing.T) {
	_, err := visualize.RenderSVG(context.Background(), "digraph {")
	assert.Error(t, err)
}
