package dclayer

import (
	"fmt"
	"image/color"
)

// Material is the closed set of quad kinds produced by the renderer.
type Material uint8

const (
	MaterialInvalid Material = iota
	MaterialSolidColor
	MaterialTexture
	MaterialYUVVideo
	MaterialStreamVideo
	MaterialRenderPass
	MaterialTiledContent
	MaterialDebugBorder
	MaterialSurface
)

var materialNames = [...]string{
	MaterialInvalid:      "invalid",
	MaterialSolidColor:   "solid_color",
	MaterialTexture:      "texture",
	MaterialYUVVideo:     "yuv_video",
	MaterialStreamVideo:  "stream_video",
	MaterialRenderPass:   "render_pass",
	MaterialTiledContent: "tiled_content",
	MaterialDebugBorder:  "debug_border",
	MaterialSurface:      "surface",
}

// String returns the material name.
func (m Material) String() string {
	if int(m) < len(materialNames) {
		return materialNames[m]
	}
	return fmt.Sprintf("Material(%d)", m)
}

// BlendMode is the blend function used to composite a quad.
type BlendMode uint8

const (
	BlendSrcOver BlendMode = iota
	BlendSrc
	BlendMultiply
	BlendScreen
	BlendPlus
	BlendDstIn
	BlendDstOut
)

var blendNames = [...]string{
	BlendSrcOver:  "src_over",
	BlendSrc:      "src",
	BlendMultiply: "multiply",
	BlendScreen:   "screen",
	BlendPlus:     "plus",
	BlendDstIn:    "dst_in",
	BlendDstOut:   "dst_out",
}

// String returns the blend mode name.
func (b BlendMode) String() string {
	if int(b) < len(blendNames) {
		return blendNames[b]
	}
	return fmt.Sprintf("BlendMode(%d)", b)
}

// ColorSpace tags the encoding of a quad's content. It is carried through to
// the overlay descriptor untouched.
type ColorSpace uint8

const (
	ColorSpaceUnknown ColorSpace = iota
	ColorSpaceSRGB
	ColorSpaceBT601
	ColorSpaceBT709
	ColorSpaceBT2020
)

// EdgeMask selects which quad edges are anti-aliased.
type EdgeMask uint8

const (
	EdgeLeft EdgeMask = 1 << iota
	EdgeTop
	EdgeRight
	EdgeBottom

	EdgeNone EdgeMask = 0
	EdgeAll           = EdgeLeft | EdgeTop | EdgeRight | EdgeBottom
)

// Content is the material-specific payload of a Quad.
//
// The set of implementations is closed: SolidColorContent, TextureContent,
// YUVVideoContent, StreamVideoContent, RenderPassContent, TiledContent,
// DebugBorderContent and SurfaceContent.
type Content interface {
	Material() Material
	content()
}

// SolidColorContent fills the quad with a single color.
type SolidColorContent struct {
	Color                color.RGBA
	ForceAntiAliasingOff bool
}

// TextureContent draws a single texture.
type TextureContent struct {
	Resource ResourceID
	// UVRect is the normalized source rect for Quad.Rect.
	UVRect          Rect
	Premultiplied   bool
	BackgroundColor color.RGBA
	YFlipped        bool
}

// YUVVideoContent draws a planar video frame.
type YUVVideoContent struct {
	// Planes holds Y, U, V (or Y, UV) and an optional alpha plane.
	Planes []ResourceID
	// TexCoordRect is the Y/A plane source rect for Quad.Rect.
	TexCoordRect   Rect
	ColorSpace     ColorSpace
	RequireOverlay bool
}

// StreamVideoContent draws a single externally produced video texture.
type StreamVideoContent struct {
	Resource   ResourceID
	ColorSpace ColorSpace
}

// RenderPassContent embeds the output of another render pass.
type RenderPassContent struct {
	Pass PassID
	// Mask is an optional mask texture; zero means none.
	Mask ResourceID
	// TexCoordRect is the source rect within the pass output.
	TexCoordRect Rect
}

// TiledContent draws one tile of rasterized layer content.
type TiledContent struct {
	Resource ResourceID
}

// DebugBorderContent outlines a layer for debugging.
type DebugBorderContent struct {
	Color color.RGBA
	Width float64
}

// SurfaceContent references an embedded compositor surface.
type SurfaceContent struct {
	Surface string
}

func (SolidColorContent) Material() Material  { return MaterialSolidColor }
func (TextureContent) Material() Material     { return MaterialTexture }
func (YUVVideoContent) Material() Material    { return MaterialYUVVideo }
func (StreamVideoContent) Material() Material { return MaterialStreamVideo }
func (RenderPassContent) Material() Material  { return MaterialRenderPass }
func (TiledContent) Material() Material       { return MaterialTiledContent }
func (DebugBorderContent) Material() Material { return MaterialDebugBorder }
func (SurfaceContent) Material() Material     { return MaterialSurface }

func (SolidColorContent) content()  {}
func (TextureContent) content()     {}
func (YUVVideoContent) content()    {}
func (StreamVideoContent) content() {}
func (RenderPassContent) content()  {}
func (TiledContent) content()       {}
func (DebugBorderContent) content() {}
func (SurfaceContent) content()     {}

// Quad is one drawable primitive of a render pass. Quads are consumed
// read-only.
type Quad struct {
	// Rect is the quad's geometry in quad space.
	Rect Rect
	// VisibleRect is the part of Rect that is not occluded by the renderer's
	// own culling. An empty VisibleRect means all of Rect.
	VisibleRect Rect
	// Transform maps quad space into target space.
	Transform Transform

	IsClipped bool
	// ClipRect is in target space and only applies when IsClipped is set.
	ClipRect Rect

	Opacity   float64
	BlendMode BlendMode
	// ContentsOpaque is the content's own claim that every pixel has
	// alpha 1. Solid-color quads derive it from their color instead.
	ContentsOpaque bool
	EdgeAA         EdgeMask

	Content Content
}

// Material returns the quad's kind, or MaterialInvalid without content.
func (q *Quad) Material() Material {
	if q.Content == nil {
		return MaterialInvalid
	}
	return q.Content.Material()
}

// QuadToTarget returns the quad's transform, treating the zero value as the
// identity.
func (q *Quad) QuadToTarget() Transform {
	if q.Transform == (Transform{}) {
		return Identity()
	}
	return q.Transform
}

// Visible returns the visible part of the quad in quad space.
func (q *Quad) Visible() Rect {
	if q.VisibleRect.IsEmpty() {
		return q.Rect
	}
	return q.VisibleRect.Intersect(q.Rect)
}

// TargetRect returns the visible part of the quad mapped to target space
// and clipped by the quad's clip rect.
func (q *Quad) TargetRect() Rect {
	r := q.QuadToTarget().MapRect(q.Visible())
	if q.IsClipped {
		r = r.Intersect(q.ClipRect)
	}
	return r
}

// opacityEpsilon is the smallest opacity that still produces a visible
// contribution.
const opacityEpsilon = 1.0 / 512

// IsOpaque reports whether the quad replaces every pixel it covers.
func (q *Quad) IsOpaque() bool {
	if q.Opacity < 1 {
		return false
	}
	if q.BlendMode != BlendSrcOver && q.BlendMode != BlendSrc {
		return false
	}
	return q.contentOpaque()
}

// contentOpaque reports whether the content itself has alpha 1 everywhere,
// ignoring opacity and blending.
func (q *Quad) contentOpaque() bool {
	if c, ok := q.Content.(SolidColorContent); ok {
		return c.Color.A == 0xff
	}
	return q.ContentsOpaque
}

// IsInvisible reports whether the quad contributes nothing to the output.
func (q *Quad) IsInvisible() bool {
	if q.Opacity < opacityEpsilon {
		return true
	}
	if c, ok := q.Content.(SolidColorContent); ok {
		alpha := float64(c.Color.A) / 255 * q.Opacity
		return q.BlendMode == BlendSrcOver && alpha < opacityEpsilon
	}
	return false
}
