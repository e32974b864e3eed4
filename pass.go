package dclayer

import "fmt"

// PassID identifies a render pass within a frame.
type PassID uint64

// FilterKind is the closed set of render pass filter operations.
type FilterKind uint8

const (
	FilterGrayscale FilterKind = iota
	FilterSepia
	FilterSaturate
	FilterHueRotate
	FilterInvert
	FilterBrightness
	FilterContrast
	FilterOpacity
	FilterBlur
	FilterDropShadow
	FilterReference
)

var filterNames = [...]string{
	FilterGrayscale:  "grayscale",
	FilterSepia:      "sepia",
	FilterSaturate:   "saturate",
	FilterHueRotate:  "hue_rotate",
	FilterInvert:     "invert",
	FilterBrightness: "brightness",
	FilterContrast:   "contrast",
	FilterOpacity:    "opacity",
	FilterBlur:       "blur",
	FilterDropShadow: "drop_shadow",
	FilterReference:  "reference",
}

// String returns the filter name.
func (k FilterKind) String() string {
	if int(k) < len(filterNames) {
		return filterNames[k]
	}
	return fmt.Sprintf("FilterKind(%d)", k)
}

// IsColorMatrix reports whether the filter maps each pixel independently
// through a color matrix.
func (k FilterKind) IsColorMatrix() bool {
	return k <= FilterOpacity
}

// FilterOperation is one entry of a pass filter chain.
type FilterOperation struct {
	Kind   FilterKind
	Amount float64
}

// Filters is an ordered filter chain.
type Filters []FilterOperation

// IsSimple reports whether the chain is empty or only holds color-matrix
// filters. Simple chains can be applied by the hardware compositor.
func (f Filters) IsSimple() bool {
	for _, op := range f {
		if !op.Kind.IsColorMatrix() {
			return false
		}
	}
	return true
}

// RenderPass is an ordered quad list representing one composited surface.
// Quads are in draw order: Quads[0] is drawn first and every later quad is
// visually in front of all earlier ones.
type RenderPass struct {
	ID     PassID
	IsRoot bool
	// OutputRect is the pass's output area in its own target space.
	OutputRect Rect
	// Damage is the renderer's damage for this pass before overlay
	// processing.
	Damage Rect

	Filters         Filters
	BackdropFilters Filters

	Quads []Quad
}

// rootIndex returns the index of the root pass: the first pass flagged
// IsRoot, or the last non-nil pass when none is flagged. It returns -1 when
// there is no such pass and reports how many passes claim to be the root.
func rootIndex(passes []*RenderPass) (index, flagged int) {
	index = -1
	for i, p := range passes {
		if p != nil && p.IsRoot {
			if flagged == 0 {
				index = i
			}
			flagged++
		}
	}
	if flagged == 0 {
		for i := len(passes) - 1; i >= 0; i-- {
			if passes[i] != nil {
				return i, 0
			}
		}
	}
	return index, flagged
}

// PassContext is the read-only view of a frame a classifier needs to
// evaluate one quad.
type PassContext struct {
	Pass    *RenderPass
	Display Rect
	passes  map[PassID]*RenderPass
}

// NewPassContext builds the context for quads of pass within the given
// frame. passes may include pass itself.
func NewPassContext(pass *RenderPass, passes []*RenderPass, display Rect) PassContext {
	m := make(map[PassID]*RenderPass, len(passes))
	for _, p := range passes {
		if p != nil {
			m[p.ID] = p
		}
	}
	return PassContext{Pass: pass, Display: display, passes: m}
}

// LookupPass returns the pass with the given id.
func (pc PassContext) LookupPass(id PassID) (*RenderPass, bool) {
	p, ok := pc.passes[id]
	return p, ok
}
