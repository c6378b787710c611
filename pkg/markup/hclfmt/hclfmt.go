// Package hclfmt reads and writes shaders as HCL:
//
//	name = "glow"
//
//	emission "emit" {
//	  color    = [0.8, 0.8, 0.8, 1]
//	  strength = 1
//	}
//
//	output "output" {}
//
//	connect {
//	  from = "emit.emission"
//	  to   = "output.surface"
//	}
//
// Each labelled block declares a node of the block type's kind. Attributes
// set input sockets by markup name or kind-specific settings.
package hclfmt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/shadergrid/pkg/markup"
	"github.com/specialistvlad/shadergrid/pkg/nodeid"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Extension is the file extension of the dialect.
const Extension = ".hcl"

const connectBlockType = "connect"

// connectBlock is the body of a connect block.
type connectBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

// DecodeFile reads and decodes the file at path.
func DecodeFile(path string) (*markup.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(path, src)
}

// Decode parses src. filename is used in diagnostics and, without its
// extension, as the shader name when the source does not set one.
func Decode(filename string, src []byte) (*markup.Document, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, parseError(diags, "failed to parse %s", filename)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, parseError(nil, "unexpected body type in %s", filename)
	}

	doc := &markup.Document{Name: baseName(filename)}
	for name, attr := range body.Attributes {
		if name != "name" {
			return nil, parseError(nil, "%s: unexpected top-level attribute %q", attr.SrcRange, name)
		}
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, parseError(diags, "%s: invalid shader name", attr.SrcRange)
		}
		s, err := convert.Convert(v, cty.String)
		if err != nil || s.IsNull() {
			return nil, parseError(err, "%s: shader name must be a string", attr.SrcRange)
		}
		doc.Name = s.AsString()
	}

	for _, block := range body.Blocks {
		if block.Type == connectBlockType {
			c, err := decodeConnect(block)
			if err != nil {
				return nil, err
			}
			doc.Connections = append(doc.Connections, *c)
			continue
		}
		n, err := decodeNode(block)
		if err != nil {
			return nil, err
		}
		doc.Nodes = append(doc.Nodes, *n)
	}
	return doc, nil
}

func decodeNode(block *hclsyntax.Block) (*markup.NodeDecl, error) {
	if len(block.Labels) != 1 {
		return nil, parseError(nil, "%s: %s block needs exactly one name label", block.DefRange(), block.Type)
	}
	if len(block.Body.Blocks) > 0 {
		return nil, parseError(nil, "%s: node %q cannot contain nested blocks", block.DefRange(), block.Labels[0])
	}
	attrs := make(shader.Attributes, len(block.Body.Attributes))
	for name, attr := range block.Body.Attributes {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, parseError(diags, "%s: invalid value for %q", attr.SrcRange, name)
		}
		attrs[name] = v
	}
	return &markup.NodeDecl{Kind: shader.Kind(block.Type), Name: block.Labels[0], Attrs: attrs}, nil
}

func decodeConnect(block *hclsyntax.Block) (*markup.ConnDecl, error) {
	if len(block.Labels) != 0 {
		return nil, parseError(nil, "%s: connect blocks take no labels", block.DefRange())
	}
	var raw connectBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &raw); diags.HasErrors() {
		return nil, parseError(diags, "%s: invalid connect block", block.DefRange())
	}
	from, err := nodeid.Parse(raw.From)
	if err != nil {
		return nil, parseError(err, "%s: invalid from", block.DefRange())
	}
	to, err := nodeid.Parse(raw.To)
	if err != nil {
		return nil, parseError(err, "%s: invalid to", block.DefRange())
	}
	return &markup.ConnDecl{From: *from, To: *to}, nil
}

// Encode writes doc as HCL. Attributes are sorted by name.
func Encode(doc *markup.Document) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	if doc.Name != "" {
		root.SetAttributeValue("name", cty.StringVal(doc.Name))
		root.AppendNewline()
	}
	for _, n := range doc.Nodes {
		block := root.AppendNewBlock(string(n.Kind), []string{n.Name})
		for _, name := range n.Attrs.Names() {
			block.Body().SetAttributeValue(name, n.Attrs[name])
		}
		root.AppendNewline()
	}
	for i, c := range doc.Connections {
		if i > 0 {
			root.AppendNewline()
		}
		block := root.AppendNewBlock(connectBlockType, nil)
		block.Body().SetAttributeValue("from", cty.StringVal(c.From.String()))
		block.Body().SetAttributeValue("to", cty.StringVal(c.To.String()))
	}
	return f.Bytes()
}

func baseName(filename string) string {
	if filename == "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}

func parseError(cause error, format string, args ...any) error {
	return &shader.Error{Err: shader.ErrParse, Detail: fmt.Sprintf(format, args...), Cause: cause}
}
