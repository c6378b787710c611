package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// Address is the structured form of a socket endpoint reference.
type Address struct {
	Node   string
	Socket string
}

// socketRegex matches a socket name in markup form.
var socketRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// isValidNodeName checks for undesirable but technically valid names.
func isValidNodeName(name string) bool {
	if name == "." || name == ".." || name == "-" {
		return false
	}
	return strings.TrimSpace(name) != ""
}

// Parse reads a dot-separated reference, `node.socket`.
func Parse(raw string) (*Address, error) {
	return parse(raw, ".")
}

// ParseFields reads a space-separated reference, `node socket`.
func ParseFields(raw string) (*Address, error) {
	return parse(strings.TrimSpace(raw), " ")
}

func parse(raw, sep string) (*Address, error) {
	if raw == "" {
		return nil, fmt.Errorf("reference cannot be empty")
	}
	i := strings.LastIndex(raw, sep)
	if i < 0 {
		return nil, fmt.Errorf("reference %q must have the form node%ssocket", raw, sep)
	}
	node, socket := strings.TrimSpace(raw[:i]), raw[i+len(sep):]
	if !isValidNodeName(node) {
		return nil, fmt.Errorf("invalid node name in reference %q", raw)
	}
	if !socketRegex.MatchString(socket) {
		return nil, fmt.Errorf("invalid socket name %q in reference %q", socket, raw)
	}
	return &Address{Node: node, Socket: socket}, nil
}

// String serializes the Address in its dot-separated form.
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	return a.Node + "." + a.Socket
}

// Fields serializes the Address in its space-separated form.
func (a *Address) Fields() string {
	if a == nil {
		return ""
	}
	return a.Node + " " + a.Socket
}

// Equal compares two addresses; socket names compare case-insensitively.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Node == other.Node && strings.EqualFold(a.Socket, other.Socket)
}
