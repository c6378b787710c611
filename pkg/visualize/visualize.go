// Package visualize renders shader graphs as Graphviz diagrams.
package visualize

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/specialistvlad/shadergrid/pkg/graph"
	"github.com/specialistvlad/shadergrid/pkg/shader"
)

// Options configures DOT output.
type Options struct {
	// Values lists the literal of every unconnected input in node labels.
	Values bool
}

// ToDOT converts sh to Graphviz DOT. Data flows left to right; each edge is
// labelled with its output and input socket names. Nodes are keyed by ID so
// duplicate names stay distinct.
func ToDOT(sh *graph.Shader, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", sh.Name)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range sh.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", label(n, opts.Values))}
		if _, ok := n.(shader.Terminal); ok {
			attrs = append(attrs, "shape=doubleoctagon", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range sh.Connections() {
		fmt.Fprintf(&buf, "  n%d -> n%d [taillabel=%q, headlabel=%q];\n",
			c.From.Node().ID(), c.To.Node().ID(), c.From.Name(), c.To.Name())
	}
	buf.WriteString("}\n")
	return buf.String()
}

func label(n shader.Node, values bool) string {
	lines := []string{n.Name(), "(" + string(n.Kind()) + ")"}
	if values {
		for _, in := range n.Inputs().All() {
			if v, ok := in.Value(); ok && !in.Connected() {
				lines = append(lines, fmt.Sprintf("%s: %s", in.Name(), v))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
