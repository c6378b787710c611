package nodes

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/zclconf/go-cty/cty"
)

// PhysicalSky is a procedural atmospheric sky. Its parameters are engine
// members rather than sockets.
type PhysicalSky struct {
	shader.Base
	In struct {
		UVW *shader.Socket
	}
	Out struct {
		Color *shader.Socket
	}

	SunDirection       mgl32.Vec3
	AtmosphericDensity float32
	RayleighScattering float32
	MieScattering      float32
	ShowSun            bool
	SunBrightness      float32
	SunSize            float32
	SunColor           mgl32.Vec3
	InverseWavelengths mgl32.Vec3
	Exposure           float32
}

func NewPhysicalSky(alloc *shader.Allocator, name string) *PhysicalSky {
	n := &PhysicalSky{}
	n.Init(alloc, n, KindPhysicalSky, name)
	n.In.UVW = n.Inputs().AddOptional("UVW", shader.TypeVector)
	n.Out.Color = n.Outputs().AddColor("Color", mgl32.Vec4{})
	return n
}

// skyMember binds one member to its engine name, markup attribute and field.
type skyMember struct {
	engine string
	attr   string
	field  string
	vec    func(n *PhysicalSky) *mgl32.Vec3
	float  func(n *PhysicalSky) *float32
	flag   func(n *PhysicalSky) *bool
}

var skyMembers = []skyMember{
	{engine: "SunDirection", attr: "sun_direction", field: "SunDirection", vec: func(n *PhysicalSky) *mgl32.Vec3 { return &n.SunDirection }},
	{engine: "AtmosphericDensity", attr: "atmospheric_density", field: "AtmosphericDensity", float: func(n *PhysicalSky) *float32 { return &n.AtmosphericDensity }},
	{engine: "RayleighScattering", attr: "rayleigh_scattering", field: "RayleighScattering", float: func(n *PhysicalSky) *float32 { return &n.RayleighScattering }},
	{engine: "MieScattering", attr: "mie_scattering", field: "MieScattering", float: func(n *PhysicalSky) *float32 { return &n.MieScattering }},
	{engine: "ShowSun", attr: "show_sun", field: "ShowSun", flag: func(n *PhysicalSky) *bool { return &n.ShowSun }},
	{engine: "SunBrightness", attr: "sun_brightness", field: "SunBrightness", float: func(n *PhysicalSky) *float32 { return &n.SunBrightness }},
	{engine: "SunSize", attr: "sun_size", field: "SunSize", float: func(n *PhysicalSky) *float32 { return &n.SunSize }},
	{engine: "SunColor", attr: "sun_color", field: "SunColor", vec: func(n *PhysicalSky) *mgl32.Vec3 { return &n.SunColor }},
	{engine: "InverseWavelengths", attr: "inverse_wavelengths", field: "InverseWavelengths", vec: func(n *PhysicalSky) *mgl32.Vec3 { return &n.InverseWavelengths }},
	{engine: "Exposure", attr: "exposure", field: "Exposure", float: func(n *PhysicalSky) *float32 { return &n.Exposure }},
}

func (n *PhysicalSky) SetDirectMembers(ctx context.Context, members shader.MemberSetter) error {
	for _, m := range skyMembers {
		var err error
		switch {
		case m.vec != nil:
			err = members.SetMemberVec(ctx, m.engine, *m.vec(n))
		case m.float != nil:
			err = members.SetMemberFloat(ctx, m.engine, *m.float(n))
		case m.flag != nil:
			err = members.SetMemberBool(ctx, m.engine, *m.flag(n))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (n *PhysicalSky) ParseAttributes(attrs shader.Attributes) error {
	for _, m := range skyMembers {
		var (
			ok  bool
			err error
		)
		switch {
		case m.vec != nil:
			var v mgl32.Vec3
			if v, ok, err = attrs.Vec3(m.attr); ok && err == nil {
				*m.vec(n) = v
			}
		case m.float != nil:
			var f float32
			if f, ok, err = attrs.Float(m.attr); ok && err == nil {
				*m.float(n) = f
			}
		case m.flag != nil:
			var b bool
			if b, ok, err = attrs.Bool(m.attr); ok && err == nil {
				*m.flag(n) = b
			}
		}
		if err != nil {
			return shader.AttrError(n, m.attr, err)
		}
	}
	return nil
}

func (n *PhysicalSky) EmitAttributes() shader.Attributes {
	attrs := shader.Attributes{}
	for _, m := range skyMembers {
		switch {
		case m.vec != nil:
			attrs[m.attr] = shader.Vec3Val(*m.vec(n))
		case m.float != nil:
			attrs[m.attr] = shader.FloatVal(*m.float(n))
		case m.flag != nil:
			attrs[m.attr] = cty.BoolVal(*m.flag(n))
		}
	}
	return attrs
}

func (n *PhysicalSky) EmitCode(v string) []string {
	stmts := make([]string, 0, len(skyMembers))
	for _, m := range skyMembers {
		switch {
		case m.vec != nil:
			x := *m.vec(n)
			stmts = append(stmts, fmt.Sprintf("%s.%s = mgl32.Vec3{%s, %s, %s}", v, m.field,
				shader.FormatFloat(x[0]), shader.FormatFloat(x[1]), shader.FormatFloat(x[2])))
		case m.float != nil:
			stmts = append(stmts, fmt.Sprintf("%s.%s = %s", v, m.field, shader.FormatFloat(*m.float(n))))
		case m.flag != nil:
			stmts = append(stmts, fmt.Sprintf("%s.%s = %t", v, m.field, *m.flag(n)))
		}
	}
	return stmts
}
