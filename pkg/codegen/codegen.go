// Package codegen writes Go source that rebuilds a shader graph through the
// nodes package constructors.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"math"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/pkg/graph"
	"github.com/specialistvlad/shadergrid/pkg/registry"
	"github.com/specialistvlad/shadergrid/pkg/shader"
)

// Options controls the generated file.
type Options struct {
	Package string
	Func    string
}

const (
	DefaultPackage = "shaders"
	DefaultFunc    = "Build"

	modulePath = "github.com/specialistvlad/shadergrid"
)

func (o Options) withDefaults() Options {
	if o.Package == "" {
		o.Package = DefaultPackage
	}
	if o.Func == "" {
		o.Func = DefaultFunc
	}
	return o
}

// VarName is the generated variable for n: the lower-camel code name
// followed by the node ID, e.g. emission1.
func VarName(codeName string, id shader.ID) string {
	r, size := utf8.DecodeRuneInString(codeName)
	return string(unicode.ToLower(r)) + codeName[size:] + fmt.Sprint(id)
}

// Generate returns formatted Go source declaring a function that rebuilds
// sh. Inputs still at their constructor defaults are not written.
func Generate(sh *graph.Shader, reg *registry.Registry, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if !token.IsIdentifier(opts.Package) {
		return nil, fmt.Errorf("invalid package name %q", opts.Package)
	}
	if !token.IsIdentifier(opts.Func) {
		return nil, fmt.Errorf("invalid function name %q", opts.Func)
	}

	g := &generator{}
	nodes := sh.Nodes()
	vars := make(map[shader.ID]string, len(nodes))
	body := &g.body
	fmt.Fprintf(body, "sh := graph.New(%q)\n\n", sh.Name)

	for _, n := range nodes {
		entry, ok := reg.Lookup(n.Kind())
		if !ok {
			return nil, &shader.Error{Err: shader.ErrUnknownKind, Node: n.Name(), Kind: n.Kind()}
		}
		v := VarName(entry.CodeName, n.ID())
		vars[n.ID()] = v
		fmt.Fprintf(body, "%s := nodes.New%s(sh.Alloc(), %q)\n", v, entry.CodeName, n.Name())

		stmts, err := g.inputStatements(n, entry, v)
		if err != nil {
			return nil, err
		}
		for _, s := range n.EmitCode(v) {
			if strings.Contains(s, "mgl32.") {
				g.mgl32 = true
			}
			stmts = append(stmts, s)
		}
		for _, s := range stmts {
			body.WriteString(s)
			body.WriteByte('\n')
		}
		body.WriteByte('\n')
	}

	var links []string
	for _, c := range sh.Connections() {
		to, err := socketExpr(c.To, vars)
		if err != nil {
			return nil, err
		}
		from, err := socketExpr(c.From, vars)
		if err != nil {
			return nil, err
		}
		links = append(links, fmt.Sprintf("%s.Connect(%s)", to, from))
	}
	g.writeJoin(body, links)

	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, vars[n.ID()])
	}
	fmt.Fprintf(body, "sh.Add(%s)\nreturn sh, nil\n", strings.Join(names, ", "))

	src := body.String()
	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by shadergrid codegen. DO NOT EDIT.\n\npackage %s\n\n", opts.Package)
	out.WriteString("import (\n")
	if g.errors {
		out.WriteString("\"errors\"\n\n")
	}
	if g.mgl32 {
		out.WriteString("\"github.com/go-gl/mathgl/mgl32\"\n")
	}
	fmt.Fprintf(&out, "%q\n", modulePath+"/pkg/graph")
	fmt.Fprintf(&out, "%q\n", modulePath+"/pkg/nodes")
	if g.shader {
		fmt.Fprintf(&out, "%q\n", modulePath+"/pkg/shader")
	}
	out.WriteString(")\n\n")
	fmt.Fprintf(&out, "// %s rebuilds the %q shader.\n", opts.Func, sh.Name)
	fmt.Fprintf(&out, "func %s() (*graph.Shader, error) {\n%s}\n", opts.Func, src)

	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated source does not parse: %w", err)
	}
	return formatted, nil
}

// generator accumulates the function body and the imports it needs.
type generator struct {
	body   bytes.Buffer
	errors bool
	mgl32  bool
	shader bool
}

// inputStatements sets the inputs of n that differ from a freshly
// constructed node of the same kind.
func (g *generator) inputStatements(n shader.Node, entry *registry.Entry, v string) ([]string, error) {
	fresh := entry.New(shader.NewAllocator(), n.Name())
	var sets, stmts []string
	for _, in := range n.Inputs().All() {
		if !in.Type().HasValue() {
			continue
		}
		def, ok := fresh.Inputs().Get(in.Name())
		if !ok {
			return nil, fmt.Errorf("kind %s: input %q missing from a fresh node", n.Kind(), in.Name())
		}
		cur, set := in.Value()
		old, wasSet := def.Value()
		field, err := fieldName(n, "In", in)
		if err != nil {
			return nil, err
		}
		switch {
		case !set && wasSet:
			stmts = append(stmts, fmt.Sprintf("%s.In.%s.Unset()", v, field))
		case set && (!wasSet || !cur.Equal(old)):
			lit, err := literal(cur)
			if err != nil {
				return nil, shader.NewError(shader.ErrParse, n, in.Name(), err, "cannot generate literal")
			}
			g.shader = true
			if strings.Contains(lit, "mgl32.") {
				g.mgl32 = true
			}
			sets = append(sets, fmt.Sprintf("%s.In.%s.SetValue(%s)", v, field, lit))
		}
	}
	var buf bytes.Buffer
	g.writeJoin(&buf, sets)
	if buf.Len() > 0 {
		stmts = append([]string{strings.TrimSuffix(buf.String(), "\n")}, stmts...)
	}
	return stmts, nil
}

// writeJoin writes calls as one errors.Join checked for failure.
func (g *generator) writeJoin(buf *bytes.Buffer, calls []string) {
	if len(calls) == 0 {
		return
	}
	g.errors = true
	buf.WriteString("if err := errors.Join(\n")
	for _, c := range calls {
		buf.WriteString(c)
		buf.WriteString(",\n")
	}
	buf.WriteString("); err != nil {\nreturn nil, err\n}\n")
}

func socketExpr(s *shader.Socket, vars map[shader.ID]string) (string, error) {
	group := "In"
	if s.Direction() == shader.Output {
		group = "Out"
	}
	field, err := fieldName(s.Node(), group, s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.%s.%s", vars[s.Node().ID()], group, field), nil
}

// fieldName finds the exported field of n's In or Out struct that holds s.
func fieldName(n shader.Node, group string, s *shader.Socket) (string, error) {
	rv := reflect.ValueOf(n)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		if g := rv.FieldByName(group); g.IsValid() && g.Kind() == reflect.Struct {
			for i := 0; i < g.NumField(); i++ {
				if !g.Type().Field(i).IsExported() {
					continue
				}
				if p, ok := g.Field(i).Interface().(*shader.Socket); ok && p == s {
					return g.Type().Field(i).Name, nil
				}
			}
		}
	}
	return "", fmt.Errorf("kind %s: no %s field holds socket %q", n.Kind(), group, s.Name())
}

func literal(v shader.Value) (string, error) {
	switch v.Type() {
	case shader.TypeFloat:
		f, err := floatLit(v.AsFloat())
		return "shader.Float(" + f + ")", err
	case shader.TypeInt:
		return fmt.Sprintf("shader.Int(%d)", v.AsInt()), nil
	case shader.TypeString:
		return fmt.Sprintf("shader.String(%q)", v.AsString()), nil
	case shader.TypeColor:
		vec := v.AsVec4()
		args, err := floats(vec[:]...)
		return "shader.Color(" + args + ")", err
	case shader.TypeVector:
		vec := v.AsVec4()
		if vec[3] == 0 {
			args, err := floats(vec[:3]...)
			return "shader.Vector(" + args + ")", err
		}
		args, err := vec4(vec)
		return "shader.Vec4Value(shader.TypeVector, " + args + ")", err
	case shader.TypeFloat4:
		args, err := vec4(v.AsVec4())
		return "shader.Float4(" + args + ")", err
	default:
		return "", fmt.Errorf("%s values have no literal", v.Type())
	}
}

func vec4(v mgl32.Vec4) (string, error) {
	args, err := floats(v[:]...)
	return "mgl32.Vec4{" + args + "}", err
}

func floats(fs ...float32) (string, error) {
	parts := make([]string, len(fs))
	for i, f := range fs {
		s, err := floatLit(f)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

func floatLit(f float32) (string, error) {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return "", fmt.Errorf("non-finite value %v", f)
	}
	return shader.FormatFloat(f), nil
}
