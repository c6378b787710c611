package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/specialistvlad/shadergrid/internal/ctxlog"
	"github.com/specialistvlad/shadergrid/pkg/shader"
)

var socketPtrType = reflect.TypeOf((*shader.Socket)(nil))

// ValidateRegistry performs a strict parity check between each kind's typed
// socket fields (the exported In and Out structs) and the sockets the
// constructor actually declares. It also checks that the constructed node
// reports the registered kind and that kind-specific attributes never
// shadow socket names.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, kind := range r.Kinds() {
		e := r.entries[kind]
		n := e.New(shader.NewAllocator(), "")
		if n.Kind() != kind {
			errs = append(errs, fmt.Sprintf("kind '%s': constructor builds a '%s' node", kind, n.Kind()))
			continue
		}
		if e.CodeName == "" {
			errs = append(errs, fmt.Sprintf("kind '%s': missing code name", kind))
		}

		errs = append(errs, checkSockets(kind, n, "In", n.Inputs())...)
		errs = append(errs, checkSockets(kind, n, "Out", n.Outputs())...)

		for name := range n.EmitAttributes() {
			if _, clash := n.Inputs().Lookup(name); clash {
				errs = append(errs, fmt.Sprintf("kind '%s': attribute '%s' shadows an input socket", kind, name))
			}
		}
		logger.Debug("Node kind validated.", "kind", kind, "inputs", n.Inputs().Len(), "outputs", n.Outputs().Len())
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func checkSockets(kind shader.Kind, n shader.Node, field string, sockets *shader.Sockets) []string {
	var errs []string

	v := reflect.ValueOf(n)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return []string{fmt.Sprintf("kind '%s': node is not a struct", kind)}
	}
	group := v.FieldByName(field)
	if !group.IsValid() {
		if sockets.Len() > 0 {
			errs = append(errs, fmt.Sprintf("kind '%s': declares %d %s sockets but has no '%s' field", kind, sockets.Len(), sockets.Direction(), field))
		}
		return errs
	}

	goSockets := make(map[string]*shader.Socket)
	for i := 0; i < group.NumField(); i++ {
		f := group.Type().Field(i)
		if !f.IsExported() || f.Type != socketPtrType {
			continue
		}
		name := f.Name
		if tag := f.Tag.Get("socket"); tag != "" {
			name = tag
		}
		s, _ := group.Field(i).Interface().(*shader.Socket)
		goSockets[name] = s
	}

	for name, s := range goSockets {
		declared, ok := sockets.Get(name)
		if !ok {
			errs = append(errs, fmt.Sprintf("kind '%s': Go field %s.%s has no declared socket", kind, field, name))
			continue
		}
		if s != declared {
			errs = append(errs, fmt.Sprintf("kind '%s': Go field %s.%s does not point at the declared socket", kind, field, name))
		}
	}
	for _, s := range sockets.All() {
		if _, ok := goSockets[s.Name()]; !ok {
			errs = append(errs, fmt.Sprintf("kind '%s': declared %s socket '%s' is not found in Go struct", kind, s.Direction(), s.Name()))
		}
	}
	return errs
}
