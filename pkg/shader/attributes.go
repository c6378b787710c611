package shader

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Attributes is the dialect-neutral attribute set of a markup element.
// Text dialects supply cty strings; typed dialects supply numbers, bools and
// tuples. The accessors accept both.
type Attributes map[string]cty.Value

// Get looks an attribute up by exact name, then by markup name ignoring
// case. Among keys that only differ in case the first in sorted order wins;
// ParseNode rejects such sets before reading them.
func (a Attributes) Get(name string) (cty.Value, bool) {
	if v, ok := a[name]; ok {
		return v, true
	}
	want := MarkupName(name)
	for _, k := range a.Names() {
		if strings.EqualFold(MarkupName(k), want) {
			return a[k], true
		}
	}
	return cty.NilVal, false
}

// CheckDistinct reports the first pair of keys, in sorted order, that name
// the same attribute once case, spaces and underscores are normalised.
func (a Attributes) CheckDistinct() (string, string, bool) {
	seen := make(map[string]string, len(a))
	for _, k := range a.Names() {
		norm := strings.ToLower(MarkupName(k))
		if prev, dup := seen[norm]; dup {
			return prev, k, false
		}
		seen[norm] = k
	}
	return "", "", true
}

// Names returns the attribute names sorted.
func (a Attributes) Names() []string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// String reads a text attribute. Numbers and bools are converted.
func (a Attributes) String(name string) (string, bool, error) {
	v, ok := a.Get(name)
	if !ok {
		return "", false, nil
	}
	s, err := toString(v)
	return s, true, err
}

// Bool reads a boolean attribute.
func (a Attributes) Bool(name string) (bool, bool, error) {
	v, ok := a.Get(name)
	if !ok {
		return false, false, nil
	}
	b, err := toBool(v)
	return b, true, err
}

// Int reads an integer attribute.
func (a Attributes) Int(name string) (int32, bool, error) {
	v, ok := a.Get(name)
	if !ok {
		return 0, false, nil
	}
	i, err := toInt(v)
	return i, true, err
}

// Float reads a float attribute.
func (a Attributes) Float(name string) (float32, bool, error) {
	v, ok := a.Get(name)
	if !ok {
		return 0, false, nil
	}
	f, err := toFloat(v)
	return f, true, err
}

// Vec3 reads a three component attribute.
func (a Attributes) Vec3(name string) (mgl32.Vec3, bool, error) {
	v, ok := a.Get(name)
	if !ok {
		return mgl32.Vec3{}, false, nil
	}
	fs, err := toFloats(v)
	if err != nil {
		return mgl32.Vec3{}, true, err
	}
	if len(fs) != 3 {
		return mgl32.Vec3{}, true, fmt.Errorf("expected 3 components, got %d", len(fs))
	}
	return mgl32.Vec3{fs[0], fs[1], fs[2]}, true, nil
}

// ParseNode applies attrs to n: matching input sockets first, in socket
// order, then the kind's own attributes. Attributes that match nothing are
// ignored and missing ones keep the constructor defaults. Two keys naming
// the same attribute in different case are a parse error.
func ParseNode(n Node, attrs Attributes) error {
	if first, second, ok := attrs.CheckDistinct(); !ok {
		return AttrError(n, second, fmt.Errorf("conflicts with attribute %q", first))
	}
	for _, s := range n.Inputs().list {
		if !s.typ.HasValue() {
			continue
		}
		raw, ok := attrs.Get(s.MarkupName())
		if !ok {
			continue
		}
		cur, _ := s.Value()
		v, err := ValueFromCty(s.typ, raw, cur)
		if err != nil {
			e := AttrError(n, s.MarkupName(), err)
			e.Socket = s.name
			return e
		}
		if err := s.SetValue(v); err != nil {
			return err
		}
	}
	return n.ParseAttributes(attrs)
}

// EmitNode returns the attributes describing n: every input socket holding a
// literal, followed by the kind's own attributes.
func EmitNode(n Node) Attributes {
	attrs := Attributes{}
	for _, s := range n.Inputs().list {
		if v, ok := s.Value(); ok && s.typ.HasValue() {
			attrs[s.MarkupName()] = v.Cty()
		}
	}
	for k, v := range n.EmitAttributes() {
		attrs[k] = v
	}
	return attrs
}

// ValueFromCty converts an attribute to a literal for a socket of type typ.
// A three component vector keeps the fourth component of current.
func ValueFromCty(typ SocketType, v cty.Value, current Value) (Value, error) {
	switch typ.shape() {
	case shapeScalarFloat:
		f, err := toFloat(v)
		return Float(f), err
	case shapeScalarInt:
		i, err := toInt(v)
		return Int(i), err
	case shapeText:
		s, err := toString(v)
		return String(s), err
	case shapeVec4:
		fs, err := toFloats(v)
		if err != nil {
			return Value{}, err
		}
		out := current.v
		switch len(fs) {
		case 3:
			out = mgl32.Vec4{fs[0], fs[1], fs[2], out[3]}
		case 4:
			out = mgl32.Vec4{fs[0], fs[1], fs[2], fs[3]}
		default:
			return Value{}, fmt.Errorf("expected 3 or 4 components, got %d", len(fs))
		}
		return Vec4Value(typ, out), nil
	default:
		return Value{}, fmt.Errorf("%s sockets carry no literal", typ)
	}
}

// Cty converts the literal to an attribute value.
func (v Value) Cty() cty.Value {
	switch v.typ.shape() {
	case shapeScalarFloat:
		return FloatVal(v.f)
	case shapeScalarInt:
		return cty.NumberIntVal(int64(v.i))
	case shapeText:
		return cty.StringVal(v.s)
	case shapeVec4:
		return cty.TupleVal([]cty.Value{FloatVal(v.v[0]), FloatVal(v.v[1]), FloatVal(v.v[2]), FloatVal(v.v[3])})
	default:
		return cty.NullVal(cty.DynamicPseudoType)
	}
}

// FloatVal converts f to a cty number holding its shortest decimal form, so
// that 0.8 is written as 0.8 rather than as its float64 widening. Non-finite
// values become strings.
func FloatVal(f float32) cty.Value {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return cty.StringVal(FormatFloat(f))
	}
	v, err := cty.ParseNumberVal(FormatFloat(f))
	if err != nil {
		return cty.NumberFloatVal(float64(f))
	}
	return v
}

// Vec3Val converts v to a three element tuple.
func Vec3Val(v mgl32.Vec3) cty.Value {
	return cty.TupleVal([]cty.Value{FloatVal(v[0]), FloatVal(v[1]), FloatVal(v[2])})
}

// AttrText renders an attribute value as markup text: numbers in
// locale-invariant fixed-point, vectors space separated.
func AttrText(v cty.Value) (string, error) {
	if v.IsNull() || !v.IsKnown() {
		return "", fmt.Errorf("value is not set")
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	case ty == cty.Bool:
		return strconv.FormatBool(v.True()), nil
	case ty.IsTupleType() || ty.IsListType():
		parts := make([]string, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			s, err := AttrText(ev)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " "), nil
	default:
		return "", fmt.Errorf("unsupported attribute type %s", ty.FriendlyName())
	}
}

func checkKnown(v cty.Value) error {
	if v.IsNull() {
		return fmt.Errorf("value is null")
	}
	if !v.IsWhollyKnown() {
		return fmt.Errorf("value is unknown")
	}
	return nil
}

func toString(v cty.Value) (string, error) {
	if err := checkKnown(v); err != nil {
		return "", err
	}
	sv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("expected text, got %s", v.Type().FriendlyName())
	}
	return sv.AsString(), nil
}

func toBool(v cty.Value) (bool, error) {
	if err := checkKnown(v); err != nil {
		return false, err
	}
	if v.Type() == cty.String {
		b, err := strconv.ParseBool(strings.TrimSpace(v.AsString()))
		if err != nil {
			return false, fmt.Errorf("invalid boolean %q", v.AsString())
		}
		return b, nil
	}
	var b bool
	if err := gocty.FromCtyValue(v, &b); err != nil {
		return false, fmt.Errorf("expected bool, got %s", v.Type().FriendlyName())
	}
	return b, nil
}

func toInt(v cty.Value) (int32, error) {
	if err := checkKnown(v); err != nil {
		return 0, err
	}
	if v.Type() == cty.String {
		i, err := strconv.ParseInt(strings.TrimSpace(v.AsString()), 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q", v.AsString())
		}
		return int32(i), nil
	}
	var i int32
	if err := gocty.FromCtyValue(v, &i); err != nil {
		return 0, fmt.Errorf("expected integer: %w", err)
	}
	return i, nil
}

func toFloat(v cty.Value) (float32, error) {
	if err := checkKnown(v); err != nil {
		return 0, err
	}
	if v.Type() == cty.String {
		return parseFloat32(v.AsString())
	}
	if v.Type() != cty.Number {
		return 0, fmt.Errorf("expected number, got %s", v.Type().FriendlyName())
	}
	f, _ := v.AsBigFloat().Float32()
	if math.IsInf(float64(f), 0) {
		return 0, fmt.Errorf("number %s is out of float32 range", v.AsBigFloat().Text('g', 10))
	}
	return f, nil
}

// parseFloat32 parses finite float32 text. Values that overflow float32 are
// rejected rather than rounded to infinity.
func parseFloat32(text string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 32)
	switch {
	case errors.Is(err, strconv.ErrRange):
		return 0, fmt.Errorf("number %q is out of float32 range", text)
	case err != nil, math.IsInf(f, 0), math.IsNaN(f):
		return 0, fmt.Errorf("invalid number %q", text)
	}
	return float32(f), nil
}

func toFloats(v cty.Value) ([]float32, error) {
	if err := checkKnown(v); err != nil {
		return nil, err
	}
	if v.Type() == cty.String {
		fields := strings.Fields(strings.ReplaceAll(v.AsString(), ",", " "))
		out := make([]float32, len(fields))
		for i, field := range fields {
			f, err := parseFloat32(field)
			if err != nil {
				return nil, fmt.Errorf("component %d: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	}
	lv, err := convert.Convert(v, cty.List(cty.Number))
	if err != nil {
		return nil, fmt.Errorf("expected a list of numbers, got %s", v.Type().FriendlyName())
	}
	out := make([]float32, 0, lv.LengthInt())
	for it := lv.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		f, err := toFloat(ev)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", len(out), err)
		}
		out = append(out, f)
	}
	return out, nil
}
