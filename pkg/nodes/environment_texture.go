package nodes

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/specialistvlad/shadergrid/internal/ctxlog"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/specialistvlad/shadergrid/pkg/texture"
	"github.com/zclconf/go-cty/cty"
)

// EnvironmentProjection maps directions onto the environment image.
type EnvironmentProjection int

const (
	ProjectionEquirectangular EnvironmentProjection = iota
	ProjectionMirrorBall
	ProjectionWallpaper
)

var projections = enumTable{
	typeName: "EnvironmentProjection",
	names:    []string{"Equirectangular", "Mirror Ball", "Wallpaper"},
	idents:   []string{"ProjectionEquirectangular", "ProjectionMirrorBall", "ProjectionWallpaper"},
}

func (p EnvironmentProjection) String() string   { return projections.name(int(p)) }
func (p EnvironmentProjection) GoString() string { return projections.ident(int(p)) }

// TextureColorSpace tells the engine whether pixels are color data.
type TextureColorSpace int

const (
	ColorSpaceColor TextureColorSpace = iota
	ColorSpaceNone
)

var colorSpaces = enumTable{
	typeName: "TextureColorSpace",
	names:    []string{"Color", "None"},
	idents:   []string{"ColorSpaceColor", "ColorSpaceNone"},
}

func (c TextureColorSpace) String() string   { return colorSpaces.name(int(c)) }
func (c TextureColorSpace) GoString() string { return colorSpaces.ident(int(c)) }

// Interpolation is the texture sampling filter.
type Interpolation int

const (
	InterpolationLinear Interpolation = iota
	InterpolationClosest
	InterpolationCubic
	InterpolationSmart
)

var interpolations = enumTable{
	typeName: "Interpolation",
	names:    []string{"Linear", "Closest", "Cubic", "Smart"},
	idents:   []string{"InterpolationLinear", "InterpolationClosest", "InterpolationCubic", "InterpolationSmart"},
}

func (i Interpolation) String() string   { return interpolations.name(int(i)) }
func (i Interpolation) GoString() string { return interpolations.ident(int(i)) }

// EnvironmentTexture samples an environment image. The pixels are pushed as
// an image member when Image is set; Filename doubles as the buffer name.
type EnvironmentTexture struct {
	shader.Base
	In struct {
		Vector *shader.Socket
	}
	Out struct {
		Color *shader.Socket
		Alpha *shader.Socket
	}

	Projection    EnvironmentProjection
	ColorSpace    TextureColorSpace
	IsLinear      bool
	Interpolation Interpolation
	Filename      string
	Image         *texture.Image
}

func NewEnvironmentTexture(alloc *shader.Allocator, name string) *EnvironmentTexture {
	n := &EnvironmentTexture{}
	n.Init(alloc, n, KindEnvironmentTexture, name)
	n.ColorSpace = ColorSpaceNone
	n.In.Vector = n.Inputs().AddOptional("Vector", shader.TypeVector)
	n.Out.Color = n.Outputs().AddColor("Color", mgl32.Vec4{})
	n.Out.Alpha = n.Outputs().AddFloat("Alpha", 0)
	return n
}

func (n *EnvironmentTexture) SetEnums(ctx context.Context, enums shader.EnumSetter) error {
	if err := enums.SetEnum(ctx, "projection", n.Projection.String()); err != nil {
		return err
	}
	return enums.SetEnum(ctx, "color_space", n.ColorSpace.String())
}

func (n *EnvironmentTexture) SetDirectMembers(ctx context.Context, members shader.MemberSetter) error {
	if err := members.SetMemberBool(ctx, "is_linear", n.IsLinear); err != nil {
		return err
	}
	if err := members.SetMemberInt(ctx, "interpolation", int32(n.Interpolation)); err != nil {
		return err
	}
	if n.Image == nil {
		return nil
	}
	return members.SetMemberImage(ctx, "builtin-data", n.bufferName(), n.Image)
}

func (n *EnvironmentTexture) bufferName() string {
	if n.Filename != "" {
		return n.Filename
	}
	return fmt.Sprintf("%s-%d", n.Kind(), n.ID())
}

// LoadTextures loads Filename through loader unless an image is already
// attached. A missing file is logged and skipped, leaving the node without
// pixels.
func (n *EnvironmentTexture) LoadTextures(ctx context.Context, loader texture.Loader) error {
	if n.Filename == "" || n.Image != nil {
		return nil
	}
	img, err := loader.Load(ctx, n.Filename)
	if errors.Is(err, texture.ErrNotFound) {
		ctxlog.FromContext(ctx).Warn("Environment texture not found, continuing without pixels.", "node", n.Name(), "src", n.Filename)
		return nil
	}
	if err != nil {
		return shader.AttrError(n, "src", err)
	}
	n.Image = img
	return nil
}

func (n *EnvironmentTexture) ParseAttributes(attrs shader.Attributes) error {
	if s, ok, err := attrs.String("projection"); err != nil {
		return shader.AttrError(n, "projection", err)
	} else if ok {
		v, err := projections.parse(s)
		if err != nil {
			return shader.AttrError(n, "projection", err)
		}
		n.Projection = EnvironmentProjection(v)
	}
	if s, ok, err := attrs.String("color_space"); err != nil {
		return shader.AttrError(n, "color_space", err)
	} else if ok {
		v, err := colorSpaces.parse(s)
		if err != nil {
			return shader.AttrError(n, "color_space", err)
		}
		n.ColorSpace = TextureColorSpace(v)
	}
	if b, ok, err := attrs.Bool("is_linear"); err != nil {
		return shader.AttrError(n, "is_linear", err)
	} else if ok {
		n.IsLinear = b
	}
	if s, ok, err := attrs.String("interpolation"); err != nil {
		return shader.AttrError(n, "interpolation", err)
	} else if ok {
		v, err := parseInterpolation(s)
		if err != nil {
			return shader.AttrError(n, "interpolation", err)
		}
		n.Interpolation = v
	}
	if s, ok, err := attrs.String("src"); err != nil {
		return shader.AttrError(n, "src", err)
	} else if ok {
		n.Filename = s
	}
	return nil
}

// parseInterpolation accepts a name or the engine's integer value.
func parseInterpolation(s string) (Interpolation, error) {
	if i, err := strconv.Atoi(s); err == nil {
		if i < 0 || i >= len(interpolations.names) {
			return 0, fmt.Errorf("interpolation %d out of range", i)
		}
		return Interpolation(i), nil
	}
	v, err := interpolations.parse(s)
	return Interpolation(v), err
}

func (n *EnvironmentTexture) EmitAttributes() shader.Attributes {
	attrs := shader.Attributes{
		"projection":    cty.StringVal(n.Projection.String()),
		"color_space":   cty.StringVal(n.ColorSpace.String()),
		"is_linear":     cty.BoolVal(n.IsLinear),
		"interpolation": cty.StringVal(n.Interpolation.String()),
	}
	if n.Filename != "" {
		attrs["src"] = cty.StringVal(n.Filename)
	}
	return attrs
}

func (n *EnvironmentTexture) EmitCode(v string) []string {
	stmts := []string{
		fmt.Sprintf("%s.Projection = %#v", v, n.Projection),
		fmt.Sprintf("%s.ColorSpace = %#v", v, n.ColorSpace),
		fmt.Sprintf("%s.IsLinear = %t", v, n.IsLinear),
		fmt.Sprintf("%s.Interpolation = %#v", v, n.Interpolation),
	}
	if n.Filename != "" {
		stmts = append(stmts, fmt.Sprintf("%s.Filename = %q", v, n.Filename))
	}
	return stmts
}
