package graph

import (
	"sort"

	"github.com/specialistvlad/shadergrid/pkg/shader"
)

// Shader is a named node graph under construction.
type Shader struct {
	Name  string
	alloc *shader.Allocator
	nodes []shader.Node
	added map[shader.ID]bool
}

// New returns an empty Shader with its own allocator.
func New(name string) *Shader {
	return &Shader{Name: name, alloc: shader.NewAllocator(), added: make(map[shader.ID]bool)}
}

// Alloc is the allocator node constructors for this shader should use.
func (s *Shader) Alloc() *shader.Allocator { return s.alloc }

// Add registers nodes. Adding a node twice is a no-op.
func (s *Shader) Add(nodes ...shader.Node) {
	for _, n := range nodes {
		if n == nil || s.added[n.ID()] {
			continue
		}
		s.added[n.ID()] = true
		s.nodes = append(s.nodes, n)
	}
}

// Nodes returns the added nodes together with every node connected to them,
// directly or transitively in either direction, sorted by ID.
func (s *Shader) Nodes() []shader.Node {
	seen := make(map[shader.ID]bool)
	var out []shader.Node
	queue := append([]shader.Node(nil), s.nodes...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if seen[n.ID()] {
			continue
		}
		seen[n.ID()] = true
		out = append(out, n)
		for _, in := range n.Inputs().All() {
			if src := in.Source(); src != nil {
				queue = append(queue, src.Node())
			}
		}
		for _, o := range n.Outputs().All() {
			for _, t := range o.Targets() {
				queue = append(queue, t.Node())
			}
		}
	}
	sortByID(out)
	return out
}

// Connections returns every link between the shader's nodes, ordered by
// consumer ID and then by input order.
func (s *Shader) Connections() []Connection {
	var out []Connection
	for _, n := range s.Nodes() {
		for _, in := range n.Inputs().All() {
			if src := in.Source(); src != nil {
				out = append(out, Connection{From: src, To: in})
			}
		}
	}
	return out
}

// Connection is a producer output feeding a consumer input.
type Connection struct {
	From *shader.Socket
	To   *shader.Socket
}

func sortByID(nodes []shader.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
}
