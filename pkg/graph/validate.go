package graph

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/shadergrid/pkg/shader"
)

// Terminal returns the shader's single terminal node.
func (s *Shader) Terminal() (shader.Terminal, error) {
	var found []shader.Terminal
	for _, n := range s.Nodes() {
		if t, ok := n.(shader.Terminal); ok {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return nil, shader.NewError(shader.ErrTerminalSink, nil, "", nil, "shader %q has no output node", s.Name)
	default:
		names := make([]string, len(found))
		for i, t := range found {
			names[i] = fmt.Sprintf("%q", t.Name())
		}
		return nil, shader.NewError(shader.ErrTerminalSink, found[1], "", nil,
			"shader %q has %d output nodes: %s", s.Name, len(found), strings.Join(names, ", "))
	}
}

// Validate runs every structural check without touching an engine.
func (s *Shader) Validate() error {
	_, err := s.Plan()
	return err
}

// Plan validates the subgraph reachable from the terminal and returns it in
// commit order: producers before consumers, ties broken by ascending ID.
func (s *Shader) Plan() ([]shader.Node, error) {
	term, err := s.Terminal()
	if err != nil {
		return nil, err
	}
	reachable, err := upstream(term)
	if err != nil {
		return nil, err
	}
	if err := checkRequired(reachable); err != nil {
		return nil, err
	}
	return topoOrder(reachable), nil
}

// upstream walks inputs depth-first from root, marking nodes visiting while
// on the stack and visited once finished. Meeting a visiting node is a
// cycle.
func upstream(root shader.Node) ([]shader.Node, error) {
	const (
		visiting = 1
		visited  = 2
	)
	state := make(map[shader.ID]int)
	var (
		stack []shader.Node
		out   []shader.Node
	)

	var visit func(n shader.Node) error
	visit = func(n shader.Node) error {
		switch state[n.ID()] {
		case visited:
			return nil
		case visiting:
			return cycleError(stack, n)
		}
		state[n.ID()] = visiting
		stack = append(stack, n)

		for _, in := range n.Inputs().All() {
			if src := in.Source(); src != nil {
				if err := visit(src.Node()); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[n.ID()] = visited
		out = append(out, n)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	sortByID(out)
	return out, nil
}

// cycleError names the nodes on the cycle, in data-flow order.
func cycleError(stack []shader.Node, again shader.Node) error {
	start := 0
	for i, n := range stack {
		if n.ID() == again.ID() {
			start = i
			break
		}
	}
	loop := stack[start:]
	names := make([]string, 0, len(loop)+1)
	for i := len(loop) - 1; i >= 0; i-- {
		names = append(names, fmt.Sprintf("%q", loop[i].Name()))
	}
	names = append(names, fmt.Sprintf("%q", loop[len(loop)-1].Name()))
	return shader.NewError(shader.ErrCyclicGraph, again, "", nil, "cycle %s", strings.Join(names, " -> "))
}

// checkRequired reports the first non-optional input, in ID then socket
// order, that is neither connected nor holding a value.
func checkRequired(nodes []shader.Node) error {
	for _, n := range nodes {
		for _, in := range n.Inputs().All() {
			if in.Optional() || in.Connected() || in.HasValue() {
				continue
			}
			detail := "must be connected or hold a value"
			if in.Type() == shader.TypeClosure {
				detail = "closure input must be connected"
			}
			return shader.NewError(shader.ErrMissingRequiredInput, n, in.Name(), nil, "%s", detail)
		}
	}
	return nil
}

// topoOrder is Kahn's algorithm over nodes, always releasing the ready node
// with the smallest ID.
func topoOrder(nodes []shader.Node) []shader.Node {
	member := make(map[shader.ID]bool, len(nodes))
	for _, n := range nodes {
		member[n.ID()] = true
	}
	indegree := make(map[shader.ID]int, len(nodes))
	for _, n := range nodes {
		for _, in := range n.Inputs().All() {
			if src := in.Source(); src != nil && member[src.Node().ID()] {
				indegree[n.ID()]++
			}
		}
	}

	var ready []shader.Node
	for _, n := range nodes {
		if indegree[n.ID()] == 0 {
			ready = append(ready, n)
		}
	}

	order := make([]shader.Node, 0, len(nodes))
	for len(ready) > 0 {
		sortByID(ready)
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)
		for _, out := range n.Outputs().All() {
			for _, t := range out.Targets() {
				consumer := t.Node()
				if !member[consumer.ID()] {
					continue
				}
				indegree[consumer.ID()]--
				if indegree[consumer.ID()] == 0 {
					ready = append(ready, consumer)
				}
			}
		}
	}
	return order
}
