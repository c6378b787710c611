// Package markup converts between shader graphs and Document, the
// dialect-neutral form that the hclfmt and xmlfmt packages read and write.
package markup

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/shadergrid/internal/ctxlog"
	"github.com/specialistvlad/shadergrid/pkg/graph"
	"github.com/specialistvlad/shadergrid/pkg/nodeid"
	"github.com/specialistvlad/shadergrid/pkg/registry"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/specialistvlad/shadergrid/pkg/texture"
)

// Document is a parsed shader: node declarations in file order followed by
// connections in file order.
type Document struct {
	Name        string
	Nodes       []NodeDecl
	Connections []ConnDecl
}

// NodeDecl declares one node.
type NodeDecl struct {
	Kind  shader.Kind
	Name  string
	Attrs shader.Attributes
}

// ConnDecl links an output socket to an input socket, both by markup name.
type ConnDecl struct {
	From nodeid.Address
	To   nodeid.Address
}

func (c ConnDecl) String() string {
	return fmt.Sprintf("%s -> %s", c.From.String(), c.To.String())
}

// Option configures Build.
type Option func(*options)

type options struct {
	loader texture.Loader
}

// WithTextureLoader sets the loader used for nodes that reference image
// files. A nil loader disables texture loading.
func WithTextureLoader(l texture.Loader) Option {
	return func(o *options) { o.loader = l }
}

// textureLoader is implemented by nodes that pull pixels from files.
type textureLoader interface {
	LoadTextures(ctx context.Context, loader texture.Loader) error
}

// Build instantiates doc in two phases: every node is created and its
// attributes applied, then the connections are made in document order.
// The first failure aborts the build.
func Build(ctx context.Context, doc *Document, reg *registry.Registry, opts ...Option) (*graph.Shader, error) {
	o := options{loader: texture.FileLoader{}}
	for _, opt := range opts {
		opt(&o)
	}
	ctx, logger := ctxlog.With(ctx, "shader", doc.Name)

	sh := graph.New(doc.Name)
	byName := make(map[string]shader.Node, len(doc.Nodes))
	for _, decl := range doc.Nodes {
		if strings.TrimSpace(decl.Name) == "" {
			return nil, &shader.Error{Err: shader.ErrParse, Kind: decl.Kind, Detail: "node has no name"}
		}
		if prev, dup := byName[decl.Name]; dup {
			return nil, shader.NewError(shader.ErrParse, prev, "", nil, "duplicate node name")
		}
		n, err := reg.Create(decl.Kind, sh.Alloc(), decl.Name)
		if err != nil {
			return nil, err
		}
		if err := shader.ParseNode(n, decl.Attrs); err != nil {
			return nil, err
		}
		if tl, ok := n.(textureLoader); ok && o.loader != nil {
			if err := tl.LoadTextures(ctx, o.loader); err != nil {
				return nil, err
			}
		}
		byName[decl.Name] = n
		sh.Add(n)
	}

	for _, c := range doc.Connections {
		from, err := resolve(byName, c.From, shader.Output)
		if err != nil {
			return nil, err
		}
		to, err := resolve(byName, c.To, shader.Input)
		if err != nil {
			return nil, err
		}
		if err := to.Connect(from); err != nil {
			return nil, err
		}
	}
	logger.Debug("Shader built from markup.", "nodes", len(doc.Nodes), "connections", len(doc.Connections))
	return sh, nil
}

func resolve(byName map[string]shader.Node, addr nodeid.Address, dir shader.Direction) (*shader.Socket, error) {
	n, ok := byName[addr.Node]
	if !ok {
		return nil, shader.NewError(shader.ErrUnresolvedReference, nil, addr.Socket, nil, "no node named %q", addr.Node)
	}
	sockets := n.Inputs()
	if dir == shader.Output {
		sockets = n.Outputs()
	}
	s, ok := sockets.Lookup(addr.Socket)
	if !ok {
		return nil, shader.NewError(shader.ErrUnresolvedReference, n, addr.Socket, nil, "no %s socket named %q", dir, addr.Socket)
	}
	return s, nil
}

// FromShader extracts a Document from sh. Nodes appear in ID order with
// their literal inputs and kind attributes; connections follow consumer
// order. Nodes sharing a name are written as name_ID.
func FromShader(sh *graph.Shader) *Document {
	nodes := sh.Nodes()
	names := uniqueNames(nodes)

	doc := &Document{Name: sh.Name}
	for _, n := range nodes {
		doc.Nodes = append(doc.Nodes, NodeDecl{
			Kind:  n.Kind(),
			Name:  names[n.ID()],
			Attrs: shader.EmitNode(n),
		})
	}
	for _, c := range sh.Connections() {
		doc.Connections = append(doc.Connections, ConnDecl{
			From: nodeid.Address{Node: names[c.From.Node().ID()], Socket: c.From.MarkupName()},
			To:   nodeid.Address{Node: names[c.To.Node().ID()], Socket: c.To.MarkupName()},
		})
	}
	return doc
}

// uniqueNames keeps names used once and suffixes shared ones with the node
// ID, adding further suffixes until the result clashes with no other name.
func uniqueNames(nodes []shader.Node) map[shader.ID]string {
	count := make(map[string]int, len(nodes))
	for _, n := range nodes {
		count[n.Name()]++
	}
	taken := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if count[n.Name()] == 1 {
			taken[n.Name()] = true
		}
	}

	names := make(map[shader.ID]string, len(nodes))
	for _, n := range nodes {
		name := n.Name()
		if count[name] > 1 {
			name = fmt.Sprintf("%s_%d", name, n.ID())
			for taken[name] {
				name = fmt.Sprintf("%s_%d", name, n.ID())
			}
			taken[name] = true
		}
		names[n.ID()] = name
	}
	return names
}
