package nodes

import (
	"fmt"
	"strings"
)

// enumTable names the members of an integer enum. names[i] is the engine and
// markup name of value i; idents[i] is its Go constant.
type enumTable struct {
	typeName string
	names    []string
	idents   []string
}

func (t enumTable) name(v int) string {
	if v < 0 || v >= len(t.names) {
		return fmt.Sprintf("%s(%d)", t.typeName, v)
	}
	return t.names[v]
}

func (t enumTable) ident(v int) string {
	if v < 0 || v >= len(t.idents) {
		return fmt.Sprintf("nodes.%s(%d)", t.typeName, v)
	}
	return "nodes." + t.idents[v]
}

// parse matches s case-insensitively, treating spaces and underscores alike.
func (t enumTable) parse(s string) (int, error) {
	norm := func(x string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(x), "_", " "))
	}
	want := norm(s)
	for i, n := range t.names {
		if norm(n) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", t.typeName, s)
}
