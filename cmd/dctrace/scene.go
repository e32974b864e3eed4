package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/dclayer"
)

// errNoFrames is returned for scenes without frames.
var errNoFrames = errors.New("scene has no frames")

// sceneFile is the on-disk JSON layout.
type sceneFile struct {
	Display   rectJSON       `json:"display"`
	Resources []resourceJSON `json:"resources"`
	Frames    []frameJSON    `json:"frames"`
}

type rectJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r rectJSON) rect() dclayer.Rect {
	return dclayer.NewRect(r.X, r.Y, r.W, r.H)
}

type resourceJSON struct {
	ID       uint32 `json:"id"`
	Format   string `json:"format"`
	Hardware bool   `json:"hardware"`
	Readback bool   `json:"readback"`
}

type frameJSON struct {
	// Clear resets the overlay state before the frame.
	Clear   bool       `json:"clear"`
	Display *rectJSON  `json:"display"`
	Passes  []passJSON `json:"passes"`
}

type passJSON struct {
	ID      uint64       `json:"id"`
	Root    bool         `json:"root"`
	Output  rectJSON     `json:"output"`
	Damage  rectJSON     `json:"damage"`
	Filters []filterJSON `json:"filters"`
	Quads   []quadJSON   `json:"quads"`

	// Backdrop lists backdrop filters.
	Backdrop []filterJSON `json:"backdrop"`
}

type filterJSON struct {
	Kind   string  `json:"kind"`
	Amount float64 `json:"amount"`
}

type quadJSON struct {
	Kind    string     `json:"kind"`
	Rect    rectJSON   `json:"rect"`
	Visible *rectJSON  `json:"visible"`
	Clip    *rectJSON  `json:"clip"`
	Opacity *float64   `json:"opacity"`
	Blend   string     `json:"blend"`
	Opaque  bool       `json:"opaque"`
	Color   *[4]uint8  `json:"color"`
	UV      *rectJSON  `json:"uv"`
	Pass    uint64     `json:"pass"`
	Res     []uint32   `json:"resources"`
	Xform   *[]float64 `json:"transform"`

	// Rotate is a rotation in degrees about the origin, applied before
	// Translate.
	Rotate    float64    `json:"rotate"`
	Translate [2]float64 `json:"translate"`
}

// scene is a decoded scene file.
type scene struct {
	display  dclayer.Rect
	textures *dclayer.TextureTable
	frames   []sceneFrame
}

type sceneFrame struct {
	clear   bool
	display dclayer.Rect
	passes  []*dclayer.RenderPass
}

var formats = map[string]gputypes.TextureFormat{
	"bgra8": gputypes.TextureFormatBGRA8Unorm,
	"rgba8": gputypes.TextureFormatRGBA8Unorm,
	"r8":    gputypes.TextureFormatR8Unorm,
	"depth": gputypes.TextureFormatDepth24PlusStencil8,
}

var blendModes = map[string]dclayer.BlendMode{
	"":         dclayer.BlendSrcOver,
	"src_over": dclayer.BlendSrcOver,
	"src":      dclayer.BlendSrc,
	"multiply": dclayer.BlendMultiply,
	"screen":   dclayer.BlendScreen,
	"plus":     dclayer.BlendPlus,
	"dst_in":   dclayer.BlendDstIn,
	"dst_out":  dclayer.BlendDstOut,
}

// decodeScene reads a JSON scene.
func decodeScene(r io.Reader) (*scene, error) {
	var f sceneFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if len(f.Frames) == 0 {
		return nil, errNoFrames
	}

	s := &scene{
		display:  f.Display.rect(),
		textures: dclayer.NewTextureTable(),
	}
	for _, res := range f.Resources {
		format, ok := formats[res.Format]
		if !ok {
			return nil, fmt.Errorf("resource %d: unknown format %q", res.ID, res.Format)
		}
		s.textures.Register(dclayer.ResourceID(res.ID), dclayer.TextureInfo{
			Format:           format,
			HardwareBacked:   res.Hardware,
			RequiresReadback: res.Readback,
		})
	}

	for i, fj := range f.Frames {
		fr := sceneFrame{clear: fj.Clear, display: s.display}
		if fj.Display != nil {
			fr.display = fj.Display.rect()
		}
		for _, pj := range fj.Passes {
			pass, err := pj.pass()
			if err != nil {
				return nil, fmt.Errorf("frame %d: pass %d: %w", i, pj.ID, err)
			}
			fr.passes = append(fr.passes, pass)
		}
		s.frames = append(s.frames, fr)
	}
	return s, nil
}

func (pj passJSON) pass() (*dclayer.RenderPass, error) {
	p := &dclayer.RenderPass{
		ID:         dclayer.PassID(pj.ID),
		IsRoot:     pj.Root,
		OutputRect: pj.Output.rect(),
		Damage:     pj.Damage.rect(),
	}
	var err error
	if p.Filters, err = decodeFilters(pj.Filters); err != nil {
		return nil, err
	}
	if p.BackdropFilters, err = decodeFilters(pj.Backdrop); err != nil {
		return nil, err
	}
	for i, qj := range pj.Quads {
		q, err := qj.quad()
		if err != nil {
			return nil, fmt.Errorf("quad %d: %w", i, err)
		}
		p.Quads = append(p.Quads, q)
	}
	return p, nil
}

func decodeFilters(fs []filterJSON) (dclayer.Filters, error) {
	var out dclayer.Filters
	for _, f := range fs {
		kind, ok := parseFilterKind(f.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown filter %q", f.Kind)
		}
		out = append(out, dclayer.FilterOperation{Kind: kind, Amount: f.Amount})
	}
	return out, nil
}

func parseFilterKind(name string) (dclayer.FilterKind, bool) {
	for k := dclayer.FilterGrayscale; k <= dclayer.FilterReference; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

func (qj quadJSON) quad() (dclayer.Quad, error) {
	q := dclayer.Quad{
		Rect:           qj.Rect.rect(),
		Opacity:        1,
		ContentsOpaque: qj.Opaque,
		EdgeAA:         dclayer.EdgeNone,
	}
	if qj.Opacity != nil {
		q.Opacity = *qj.Opacity
	}
	if qj.Visible != nil {
		q.VisibleRect = qj.Visible.rect()
	}
	if qj.Clip != nil {
		q.IsClipped = true
		q.ClipRect = qj.Clip.rect()
	}
	blend, ok := blendModes[qj.Blend]
	if !ok {
		return q, fmt.Errorf("unknown blend mode %q", qj.Blend)
	}
	q.BlendMode = blend

	xform, err := qj.transform()
	if err != nil {
		return q, err
	}
	q.Transform = xform

	content, err := qj.content()
	if err != nil {
		return q, err
	}
	q.Content = content
	return q, nil
}

func (qj quadJSON) transform() (dclayer.Transform, error) {
	if qj.Xform != nil {
		m := *qj.Xform
		if len(m) != 9 {
			return dclayer.Transform{}, fmt.Errorf("transform has %d elements, want 9", len(m))
		}
		var mat f64.Mat3
		copy(mat[:], m)
		// The zero Transform means identity to dclayer; a literal zero
		// matrix is degenerate.
		if mat == (f64.Mat3{}) {
			return dclayer.Transform{}, errors.New("transform is all zero")
		}
		return dclayer.TransformFromMat3(mat), nil
	}
	t := dclayer.Translate(qj.Translate[0], qj.Translate[1])
	if qj.Rotate != 0 {
		t = t.Multiply(dclayer.Rotate(qj.Rotate * math.Pi / 180))
	}
	return t, nil
}

func (qj quadJSON) resource(i int) dclayer.ResourceID {
	if i < len(qj.Res) {
		return dclayer.ResourceID(qj.Res[i])
	}
	return 0
}

func (qj quadJSON) content() (dclayer.Content, error) {
	var uv dclayer.Rect
	if qj.UV != nil {
		uv = qj.UV.rect()
	}
	switch qj.Kind {
	case "solid_color":
		c := color.RGBA{A: 0xff}
		if qj.Color != nil {
			c = color.RGBA{R: qj.Color[0], G: qj.Color[1], B: qj.Color[2], A: qj.Color[3]}
		}
		return dclayer.SolidColorContent{Color: c}, nil
	case "texture":
		return dclayer.TextureContent{Resource: qj.resource(0), UVRect: uv}, nil
	case "yuv_video":
		planes := make([]dclayer.ResourceID, len(qj.Res))
		for i := range qj.Res {
			planes[i] = qj.resource(i)
		}
		return dclayer.YUVVideoContent{Planes: planes, TexCoordRect: uv, ColorSpace: dclayer.ColorSpaceBT709}, nil
	case "stream_video":
		return dclayer.StreamVideoContent{Resource: qj.resource(0)}, nil
	case "render_pass":
		return dclayer.RenderPassContent{Pass: dclayer.PassID(qj.Pass), Mask: qj.resource(0), TexCoordRect: uv}, nil
	case "tiled_content":
		return dclayer.TiledContent{Resource: qj.resource(0)}, nil
	case "debug_border":
		return dclayer.DebugBorderContent{Width: 1}, nil
	case "surface":
		return dclayer.SurfaceContent{}, nil
	default:
		return nil, fmt.Errorf("unknown quad kind %q", qj.Kind)
	}
}
