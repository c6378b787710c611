package hclfmt_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/shadergrid/internal/testutil"
	"github.com/specialistvlad/shadergrid/pkg/engine"
	"github.com/specialistvlad/shadergrid/pkg/markup"
	"github.com/specialistvlad/shadergrid/pkg/markup/hclfmt"
	"github.com/specialistvlad/shadergrid/pkg/nodes"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const glow = `
name = "glow"

emission "emit" {
  color    = [1, 0.5, 0.25]
  strength = 2
}

output "output" {}

connect {
  from = "emit.emission"
  to   = "output.surface"
}
`

func TestDecode_BuildAndCommit(t *testing.T) {
	doc, err := hclfmt.Decode("glow.hcl", []byte(glow))
	require.NoError(t, err)
	assert.Equal(t, "glow", doc.Name)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, nodes.KindEmission, doc.Nodes[0].Kind)
	assert.Equal(t, "emit", doc.Nodes[0].Name)
	require.Len(t, doc.Connections, 1)
	assert.Equal(t, "emit.emission -> output.surface", doc.Connections[0].String())

	sh, err := markup.Build(context.Background(), doc, nodes.NewRegistry())
	require.NoError(t, err)

	rec := engine.NewRecorder()
	require.NoError(t, sh.Commit(context.Background(), rec, engine.Target{}))
	want := []engine.Call{
		{Op: engine.OpAllocateNode, Node: 1, Kind: nodes.KindEmission},
		{Op: engine.OpSetSocketVec, Node: 1, Name: "Color", Value: "1 0.5 0.25 1"},
		{Op: engine.OpSetSocketFloat, Node: 1, Name: "Strength", Value: "2"},
		{Op: engine.OpAllocateNode, Node: 2, Kind: nodes.KindOutput},
		{Op: engine.OpConnect, Node: 1, Name: "Emission", ToNode: 2, ToName: "Surface"},
	}
	if diff := cmp.Diff(want, rec.Calls()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_NameFromFile(t *testing.T) {
	doc, err := hclfmt.Decode("shaders/matte.hcl", []byte(`output "out" {}`))
	require.NoError(t, err)
	assert.Equal(t, "matte", doc.Name)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "syntax", src: `emission "emit" {`},
		{name: "missing label", src: `emission { strength = 1 }`},
		{name: "two labels", src: `emission "a" "b" {}`},
		{name: "nested block", src: "emission \"a\" {\n  inner {}\n}"},
		{name: "connect without to", src: "connect {\n  from = \"a.b\"\n}"},
		{name: "connect with bad reference", src: "connect {\n  from = \"a\"\n  to = \"b.c\"\n}"},
		{name: "unknown top-level attribute", src: `colour = "red"`},
		{name: "variable reference", src: "emission \"a\" {\n  strength = var.x\n}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := hclfmt.Decode("bad.hcl", []byte(tc.src))
			require.ErrorIs(t, err, shader.ErrParse)
		})
	}
}

func TestEncode(t *testing.T) {
	sh, _, _ := testutil.EmissionShader(t)

	out := string(hclfmt.Encode(markup.FromShader(sh)))

	assert.Contains(t, out, `name = "glow"`)
	assert.Contains(t, out, `emission "emit" {`)
	assert.Contains(t, out, `[0.8, 0.8, 0.8, 1]`)
	assert.Contains(t, out, `output "output" {`)
	assert.Contains(t, out, `"emit.emission"`)
	assert.Contains(t, out, `"output.surface"`)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	l := testutil.LayeredShader(t)
	want := markup.FromShader(l.Shader)

	path := filepath.Join(t.TempDir(), "layered.hcl")
	require.NoError(t, os.WriteFile(path, hclfmt.Encode(want), 0o644))
	got, err := hclfmt.DecodeFile(path)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, testutil.AttrText); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFile_Missing(t *testing.T) {
	_, err := hclfmt.DecodeFile(filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
}
