package dclayer

import (
	"image/color"

	"github.com/gogpu/gputypes"
)

const (
	videoY ResourceID = iota + 1
	videoU
	videoV
	uiTexture
	readbackTexture
	softwareTexture
)

var (
	testDisplay = NewRect(0, 0, 256, 256)
	testDamage  = NewRect(1, 1, 10, 10)
	white       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func newTestTextures() *TextureTable {
	t := NewTextureTable()
	for _, id := range []ResourceID{videoY, videoU, videoV} {
		t.Register(id, TextureInfo{Format: gputypes.TextureFormatR8Unorm, HardwareBacked: true})
	}
	t.Register(uiTexture, TextureInfo{Format: gputypes.TextureFormatBGRA8Unorm, HardwareBacked: true})
	t.Register(readbackTexture, TextureInfo{
		Format:           gputypes.TextureFormatBGRA8Unorm,
		HardwareBacked:   true,
		RequiresReadback: true,
	})
	t.Register(softwareTexture, TextureInfo{Format: gputypes.TextureFormatBGRA8Unorm})
	return t
}

// videoQuad is an opaque overlay-eligible video frame.
func videoQuad(r Rect) Quad {
	return Quad{
		Rect:           r,
		Opacity:        1,
		ContentsOpaque: true,
		Content:        YUVVideoContent{Planes: []ResourceID{videoY, videoU, videoV}},
	}
}

// uiQuad is opaque rasterized content, never itself a candidate.
func uiQuad(r Rect) Quad {
	return Quad{
		Rect:           r,
		Opacity:        1,
		ContentsOpaque: true,
		Content:        TiledContent{Resource: uiTexture},
	}
}

func clipped(q Quad, clip Rect) Quad {
	q.IsClipped = true
	q.ClipRect = clip
	return q
}

func rootPass(damage Rect, quads ...Quad) *RenderPass {
	return &RenderPass{
		ID:         1,
		IsRoot:     true,
		OutputRect: testDisplay,
		Damage:     damage,
		Quads:      quads,
	}
}

// resultLog records results in evaluation order.
type resultLog struct {
	results []Result
}

func (l *resultLog) RecordResult(r Result) {
	l.results = append(l.results, r)
}

func (l *resultLog) count(r Result) int {
	n := 0
	for _, got := range l.results {
		if got == r {
			n++
		}
	}
	return n
}
