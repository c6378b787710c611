package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/shadergrid/pkg/shader"
)

// Module is the interface that all node catalogues implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Constructor builds a node of one kind with its documented defaults.
type Constructor func(alloc *shader.Allocator, name string) shader.Node

// Entry describes one registered node kind.
type Entry struct {
	Kind shader.Kind
	// CodeName is the Go identifier stem of the kind: generated code calls
	// New<CodeName> and names variables after it.
	CodeName string
	// EngineType is the engine's numeric node-type id.
	EngineType uint32
	New        Constructor
}

// Registry holds the node kinds known to a single application instance.
type Registry struct {
	entries map[shader.Kind]*Entry
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[shader.Kind]*Entry)}
}

// Register adds a kind. Registering a kind twice is a programming error
// and panics.
func (r *Registry) Register(e Entry) {
	if _, exists := r.entries[e.Kind]; exists {
		panic(fmt.Sprintf("registry: node kind '%s' registered twice", e.Kind))
	}
	if e.New == nil {
		panic(fmt.Sprintf("registry: node kind '%s' has no constructor", e.Kind))
	}
	slog.Debug("Registering node kind.", "kind", e.Kind, "code_name", e.CodeName)
	r.entries[e.Kind] = &e
}

// Lookup returns the entry for kind.
func (r *Registry) Lookup(kind shader.Kind) (*Entry, bool) {
	e, ok := r.entries[kind]
	return e, ok
}

// Create constructs a node of the given kind.
func (r *Registry) Create(kind shader.Kind, alloc *shader.Allocator, name string) (shader.Node, error) {
	e, ok := r.entries[kind]
	if !ok {
		return nil, &shader.Error{Err: shader.ErrUnknownKind, Node: name, Kind: kind}
	}
	return e.New(alloc, name), nil
}

// Kinds returns all registered kinds sorted by name.
func (r *Registry) Kinds() []shader.Kind {
	kinds := make([]shader.Kind, 0, len(r.entries))
	for k := range r.entries {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
