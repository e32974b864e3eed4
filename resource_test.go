package dclayer

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestTextureTableEligibility(t *testing.T) {
	table := newTestTextures()
	tests := []struct {
		name string
		id   ResourceID
		want bool
	}{
		{"video plane", videoY, true},
		{"ui texture", uiTexture, true},
		{"needs readback", readbackTexture, false},
		{"software", softwareTexture, false},
		{"unknown", 42, false},
		{"zero", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.IsOverlayEligible(tt.id); got != tt.want {
				t.Errorf("IsOverlayEligible(%d) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestTextureTableFormats(t *testing.T) {
	table := NewTextureTable(gputypes.TextureFormatRGBA8Unorm)
	table.Register(1, TextureInfo{Format: gputypes.TextureFormatRGBA8Unorm, HardwareBacked: true})
	table.Register(2, TextureInfo{Format: gputypes.TextureFormatBGRA8Unorm, HardwareBacked: true})

	if !table.IsOverlayEligible(1) {
		t.Error("RGBA8 texture should be eligible")
	}
	if table.IsOverlayEligible(2) {
		t.Error("BGRA8 texture should not be eligible with an RGBA8-only table")
	}
}

func TestTextureTableRegisterRemove(t *testing.T) {
	table := NewTextureTable()
	info := TextureInfo{Format: gputypes.TextureFormatBGRA8Unorm, HardwareBacked: true}
	table.Register(7, info)

	if got, ok := table.Lookup(7); !ok || got != info {
		t.Errorf("Lookup(7) = %+v, %v", got, ok)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}

	table.Remove(7)
	if table.IsOverlayEligible(7) {
		t.Error("removed texture should not be eligible")
	}
	if _, ok := table.Lookup(7); ok {
		t.Error("removed texture should not be found")
	}
}

func TestResourceProviderFunc(t *testing.T) {
	var asked []ResourceID
	p := NewProcessor(ResourceProviderFunc(func(id ResourceID) bool {
		asked = append(asked, id)
		return true
	}))
	frame := processRoot(p, testDamage, videoQuad(testDisplay))
	if !frame.Promoted() {
		t.Error("video should be promoted when every texture is eligible")
	}
	if len(asked) != 3 {
		t.Errorf("asked about %v, want the three video planes", asked)
	}
}
