package dclayer

import "github.com/gogpu/gputypes"

// ResourceID identifies a GPU texture owned by the external resource
// provider. The zero value means "no resource".
type ResourceID uint32

// ResourceProvider answers whether a texture can be scanned out directly by
// the hardware compositor.
//
// Implementations must be deterministic for the duration of a frame.
type ResourceProvider interface {
	IsOverlayEligible(id ResourceID) bool
}

// ResourceProviderFunc adapts a function to the ResourceProvider interface.
type ResourceProviderFunc func(id ResourceID) bool

// IsOverlayEligible calls f(id).
func (f ResourceProviderFunc) IsOverlayEligible(id ResourceID) bool {
	return f(id)
}

// TextureInfo describes a texture registered in a TextureTable.
type TextureInfo struct {
	// Format is the texture's pixel format.
	Format gputypes.TextureFormat

	// HardwareBacked is true for textures allocated as a single
	// compositor-visible image (swap chain buffer, decoder output).
	HardwareBacked bool

	// RequiresReadback is true for textures that the platform can only
	// present after a CPU copy, such as multi-plane composites.
	RequiresReadback bool
}

// defaultScanoutFormats are the formats accepted by TextureTable when no
// explicit format set is given. Video planes use R8Unorm per plane.
var defaultScanoutFormats = []gputypes.TextureFormat{
	gputypes.TextureFormatBGRA8Unorm,
	gputypes.TextureFormatRGBA8Unorm,
	gputypes.TextureFormatR8Unorm,
}

// TextureTable is a ResourceProvider backed by a map of texture
// descriptions. A texture is overlay-eligible when it is hardware-backed,
// needs no readback, and has a scanout-capable format.
//
// TextureTable is not safe for concurrent mutation; register textures
// before handing the table to a Processor.
type TextureTable struct {
	textures map[ResourceID]TextureInfo
	formats  map[gputypes.TextureFormat]struct{}
}

// NewTextureTable creates an empty table accepting the given scanout
// formats. With no formats, BGRA8, RGBA8 and R8 are accepted.
func NewTextureTable(formats ...gputypes.TextureFormat) *TextureTable {
	if len(formats) == 0 {
		formats = defaultScanoutFormats
	}
	t := &TextureTable{
		textures: make(map[ResourceID]TextureInfo),
		formats:  make(map[gputypes.TextureFormat]struct{}, len(formats)),
	}
	for _, f := range formats {
		t.formats[f] = struct{}{}
	}
	return t
}

// Register adds or replaces the description of a texture.
func (t *TextureTable) Register(id ResourceID, info TextureInfo) {
	t.textures[id] = info
}

// Remove forgets a texture. Unknown textures are never eligible.
func (t *TextureTable) Remove(id ResourceID) {
	delete(t.textures, id)
}

// Lookup returns the description of a texture.
func (t *TextureTable) Lookup(id ResourceID) (TextureInfo, bool) {
	info, ok := t.textures[id]
	return info, ok
}

// Len returns the number of registered textures.
func (t *TextureTable) Len() int {
	return len(t.textures)
}

// IsOverlayEligible implements ResourceProvider.
func (t *TextureTable) IsOverlayEligible(id ResourceID) bool {
	info, ok := t.textures[id]
	if !ok || !info.HardwareBacked || info.RequiresReadback {
		return false
	}
	_, ok = t.formats[info.Format]
	return ok
}

var _ ResourceProvider = (*TextureTable)(nil)
