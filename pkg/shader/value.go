package shader

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// Value is a literal socket value. Exactly one of the payload fields is
// meaningful, selected by the value's type.
type Value struct {
	typ SocketType
	f   float32
	i   int32
	s   string
	v   mgl32.Vec4
}

// Float returns a float literal.
func Float(f float32) Value { return Value{typ: TypeFloat, f: f} }

// Int returns an int literal.
func Int(i int32) Value { return Value{typ: TypeInt, i: i} }

// String returns a text literal.
func String(s string) Value { return Value{typ: TypeString, s: s} }

// Color returns an RGBA color literal.
func Color(r, g, b, a float32) Value { return Value{typ: TypeColor, v: mgl32.Vec4{r, g, b, a}} }

// Vector returns a vector literal. The fourth component is zero.
func Vector(x, y, z float32) Value { return Value{typ: TypeVector, v: mgl32.Vec4{x, y, z, 0}} }

// Float4 returns a generic four component literal.
func Float4(v mgl32.Vec4) Value { return Value{typ: TypeFloat4, v: v} }

// Vec4Value returns a four component literal tagged with typ, which must be
// one of TypeColor, TypeVector or TypeFloat4.
func Vec4Value(typ SocketType, v mgl32.Vec4) Value { return Value{typ: typ, v: v} }

// Type returns the value's tag.
func (v Value) Type() SocketType { return v.typ }

// AsFloat returns the scalar of a float value.
func (v Value) AsFloat() float32 { return v.f }

// AsInt returns the scalar of an int value.
func (v Value) AsInt() int32 { return v.i }

// AsString returns the text of a string value.
func (v Value) AsString() string { return v.s }

// AsVec4 returns the components of a color, vector or float4 value.
func (v Value) AsVec4() mgl32.Vec4 { return v.v }

// Equal compares type tags and payloads.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ.shape() {
	case shapeScalarFloat:
		return v.f == o.f
	case shapeScalarInt:
		return v.i == o.i
	case shapeText:
		return v.s == o.s
	case shapeVec4:
		return v.v == o.v
	default:
		return true
	}
}

// retag converts v to socket type t when both share a shape.
func (v Value) retag(t SocketType) (Value, bool) {
	if v.typ.shape() != t.shape() || t.shape() == shapeNone {
		return Value{}, false
	}
	v.typ = t
	return v, true
}

func (v Value) String() string {
	switch v.typ.shape() {
	case shapeScalarFloat:
		return FormatFloat(v.f)
	case shapeScalarInt:
		return strconv.FormatInt(int64(v.i), 10)
	case shapeText:
		return v.s
	case shapeVec4:
		return FormatVec4(v.v)
	default:
		return fmt.Sprintf("<%s>", v.typ)
	}
}

// FormatFloat renders f as the shortest locale-invariant decimal that parses
// back to the same float32.
func FormatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

// FormatVec4 renders the four components separated by single spaces.
func FormatVec4(v mgl32.Vec4) string {
	return FormatFloat(v[0]) + " " + FormatFloat(v[1]) + " " + FormatFloat(v[2]) + " " + FormatFloat(v[3])
}

// FormatVec3 renders the three components separated by single spaces.
func FormatVec3(v mgl32.Vec3) string {
	return FormatFloat(v[0]) + " " + FormatFloat(v[1]) + " " + FormatFloat(v[2])
}
