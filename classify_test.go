package dclayer

import (
	"image/color"
	"math"
	"reflect"
	"testing"
)

func classifyOne(t *testing.T, c Classifier, q Quad, passes ...*RenderPass) (Candidate, Result) {
	t.Helper()
	root := rootPass(Rect{}, q)
	return c.Classify(&root.Quads[0], NewPassContext(root, append(passes, root), testDisplay))
}

func TestClassifyResults(t *testing.T) {
	c := Classifier{Resources: newTestTextures()}
	rotated := videoQuad(testDisplay)
	rotated.Transform = Rotate(15 * math.Pi / 180)

	multiply := videoQuad(testDisplay)
	multiply.BlendMode = BlendMultiply

	srcTranslucent := videoQuad(testDisplay)
	srcTranslucent.BlendMode = BlendSrc
	srcTranslucent.Opacity = 0.5

	srcOpaque := videoQuad(testDisplay)
	srcOpaque.BlendMode = BlendSrc

	translucent := videoQuad(testDisplay)
	translucent.Opacity = 0.5

	translucentTexture := Quad{Rect: testDisplay, Opacity: 0.5, Content: TextureContent{Resource: uiTexture}}
	translucentColor := Quad{Rect: testDisplay, Opacity: 0.5, Content: SolidColorContent{Color: white}}
	clearColor := Quad{Rect: testDisplay, Opacity: 0.5, Content: SolidColorContent{Color: color.RGBA{A: 0x80}}}

	tests := []struct {
		name string
		quad Quad
		want Result
	}{
		{"video", videoQuad(testDisplay), ResultSuccess},
		{"texture", Quad{Rect: testDisplay, Opacity: 1, Content: TextureContent{Resource: uiTexture}}, ResultSuccess},
		{"stream video", Quad{Rect: testDisplay, Opacity: 1, Content: StreamVideoContent{Resource: uiTexture}}, ResultSuccess},
		{"solid color", Quad{Rect: testDisplay, Opacity: 1, Content: SolidColorContent{Color: white}}, ResultSuccess},
		{"translucent source-over", translucent, ResultSuccess},
		{"translucent opaque color", translucentColor, ResultSuccess},
		{"translucent non-opaque texture", translucentTexture, ResultQuadBlendMode},
		{"translucent non-opaque color", clearColor, ResultQuadBlendMode},
		{"src blend opaque", srcOpaque, ResultSuccess},
		{"tiled content", uiQuad(testDisplay), ResultUnsupportedQuad},
		{"debug border", Quad{Rect: testDisplay, Opacity: 1, Content: DebugBorderContent{}}, ResultUnsupportedQuad},
		{"surface", Quad{Rect: testDisplay, Opacity: 1, Content: SurfaceContent{}}, ResultUnsupportedQuad},
		{"no content", Quad{Rect: testDisplay, Opacity: 1}, ResultUnsupportedQuad},
		{"video without planes", Quad{Rect: testDisplay, Opacity: 1, Content: YUVVideoContent{}}, ResultUnsupportedQuad},
		{"multiply blend", multiply, ResultQuadBlendMode},
		{"src blend translucent", srcTranslucent, ResultQuadBlendMode},
		{"software texture", Quad{Rect: testDisplay, Opacity: 1, Content: TextureContent{Resource: softwareTexture}}, ResultTextureNotCandidate},
		{"readback texture", Quad{Rect: testDisplay, Opacity: 1, Content: TextureContent{Resource: readbackTexture}}, ResultTextureNotCandidate},
		{"unknown texture", Quad{Rect: testDisplay, Opacity: 1, Content: TextureContent{Resource: 99}}, ResultTextureNotCandidate},
		{"rotated", rotated, ResultComplexTransform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := classifyOne(t, c, tt.quad)
			if got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	c := Classifier{Resources: newTestTextures()}

	// Every check fails: the material check wins.
	q := uiQuad(testDisplay)
	q.BlendMode = BlendMultiply
	q.Transform = Rotate(1)
	if _, got := classifyOne(t, c, q); got != ResultUnsupportedQuad {
		t.Errorf("all failing: Classify() = %v, want %v", got, ResultUnsupportedQuad)
	}

	// Blend, texture and transform fail: blend wins.
	q = Quad{Rect: testDisplay, Opacity: 1, BlendMode: BlendScreen,
		Transform: Rotate(1), Content: TextureContent{Resource: softwareTexture}}
	if _, got := classifyOne(t, c, q); got != ResultQuadBlendMode {
		t.Errorf("blend+texture+transform: Classify() = %v, want %v", got, ResultQuadBlendMode)
	}

	// Texture and transform fail: texture wins.
	q.BlendMode = BlendSrcOver
	if _, got := classifyOne(t, c, q); got != ResultTextureNotCandidate {
		t.Errorf("texture+transform: Classify() = %v, want %v", got, ResultTextureNotCandidate)
	}

	// Only the transform fails.
	q.Content = TextureContent{Resource: uiTexture}
	if _, got := classifyOne(t, c, q); got != ResultComplexTransform {
		t.Errorf("transform: Classify() = %v, want %v", got, ResultComplexTransform)
	}

	// Translucent source-over over non-opaque content fails before the
	// texture and transform checks.
	q.Opacity = 0.5
	q.Content = TextureContent{Resource: softwareTexture}
	if _, got := classifyOne(t, c, q); got != ResultQuadBlendMode {
		t.Errorf("translucent non-opaque: Classify() = %v, want %v", got, ResultQuadBlendMode)
	}
}

func TestClassifyComplexTransformsAllowed(t *testing.T) {
	c := Classifier{Resources: newTestTextures(), AllowComplexTransforms: true}
	q := videoQuad(NewRect(0, 0, 100, 100))
	q.Transform = Translate(128, 128).Multiply(Rotate(math.Pi / 4))

	cand, got := classifyOne(t, c, q)
	if got != ResultSuccess {
		t.Fatalf("Classify() = %v, want %v", got, ResultSuccess)
	}
	if cand.BoundsRect.IsEmpty() || !testDisplay.ContainsRect(cand.BoundsRect) {
		t.Errorf("BoundsRect = %v, want non-empty and inside display", cand.BoundsRect)
	}
}

func TestClassifyCandidate(t *testing.T) {
	c := Classifier{Resources: newTestTextures()}
	q := videoQuad(NewRect(0, 0, 256, 128))
	q.VisibleRect = NewRect(128, 0, 128, 128)
	q.Transform = Translate(100, 10)
	q.EdgeAA = EdgeAll
	q.Content = YUVVideoContent{
		Planes:       []ResourceID{videoY, videoU, videoV},
		TexCoordRect: NewRect(0, 0, 1, 1),
		ColorSpace:   ColorSpaceBT709,
	}

	cand, got := classifyOne(t, c, q)
	if got != ResultSuccess {
		t.Fatalf("Classify() = %v, want %v", got, ResultSuccess)
	}
	if cand.Material != MaterialYUVVideo {
		t.Errorf("Material = %v, want %v", cand.Material, MaterialYUVVideo)
	}
	if want := []ResourceID{videoY, videoU, videoV}; !reflect.DeepEqual(cand.Resources, want) {
		t.Errorf("Resources = %v, want %v", cand.Resources, want)
	}
	// Right half of the quad samples the right half of the frame.
	if want := NewRect(0.5, 0, 0.5, 1); cand.ContentRect != want {
		t.Errorf("ContentRect = %v, want %v", cand.ContentRect, want)
	}
	// Visible rect (128..256) moved to 228..356 and clipped to the display.
	if want := NewRect(228, 10, 28, 128); cand.BoundsRect != want {
		t.Errorf("BoundsRect = %v, want %v", cand.BoundsRect, want)
	}
	if cand.ColorSpace != ColorSpaceBT709 {
		t.Errorf("ColorSpace = %v, want BT709", cand.ColorSpace)
	}
	if cand.EdgeAAMask != EdgeAll {
		t.Errorf("EdgeAAMask = %v, want %v", cand.EdgeAAMask, EdgeAll)
	}
}

func TestClassifyFlippedTextureCrop(t *testing.T) {
	c := Classifier{Resources: newTestTextures()}
	q := Quad{
		Rect:        NewRect(0, 0, 128, 128),
		VisibleRect: NewRect(0, 0, 128, 32),
		Opacity:     1,
		Content:     TextureContent{Resource: uiTexture, YFlipped: true},
	}
	cand, got := classifyOne(t, c, q)
	if got != ResultSuccess {
		t.Fatalf("Classify() = %v, want %v", got, ResultSuccess)
	}
	if !cand.YFlipped {
		t.Error("YFlipped should be carried to the candidate")
	}
	// The top quarter of a bottom-up texture is its last quarter.
	if want := NewRect(0, 0.75, 1, 0.25); cand.ContentRect != want {
		t.Errorf("ContentRect = %v, want %v", cand.ContentRect, want)
	}
}

func TestClassifySolidColor(t *testing.T) {
	c := Classifier{}
	q := Quad{
		Rect:    NewRect(0, 0, 10, 10),
		Opacity: 1,
		EdgeAA:  EdgeAll,
		Content: SolidColorContent{Color: white, ForceAntiAliasingOff: true},
	}
	cand, got := classifyOne(t, c, q)
	if got != ResultSuccess {
		t.Fatalf("Classify() = %v, want %v", got, ResultSuccess)
	}
	if cand.BackgroundColor != white {
		t.Errorf("BackgroundColor = %v, want %v", cand.BackgroundColor, white)
	}
	if cand.EdgeAAMask != EdgeNone {
		t.Errorf("EdgeAAMask = %v, want none", cand.EdgeAAMask)
	}
	if len(cand.Resources) != 0 {
		t.Errorf("Resources = %v, want none", cand.Resources)
	}
}

func TestClassifyRenderPassQuad(t *testing.T) {
	c := Classifier{Resources: newTestTextures()}
	child := &RenderPass{ID: 7, OutputRect: NewRect(0, 0, 64, 64)}
	q := Quad{Rect: NewRect(0, 0, 64, 64), Opacity: 1, Content: RenderPassContent{Pass: 7}}

	tests := []struct {
		name     string
		filters  Filters
		backdrop Filters
		want     Result
	}{
		{"no filters", nil, nil, ResultSuccess},
		{"color matrix filters", Filters{{Kind: FilterGrayscale, Amount: 1}, {Kind: FilterOpacity, Amount: 0.5}}, nil, ResultSuccess},
		{"blur", Filters{{Kind: FilterBlur, Amount: 4}}, nil, ResultUnsupportedQuad},
		{"backdrop filter", nil, Filters{{Kind: FilterBrightness, Amount: 2}}, ResultUnsupportedQuad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			child.Filters = tt.filters
			child.BackdropFilters = tt.backdrop
			cand, got := classifyOne(t, c, q, child)
			if got != tt.want {
				t.Fatalf("Classify() = %v, want %v", got, tt.want)
			}
			if got == ResultSuccess && cand.RenderPass != child {
				t.Errorf("RenderPass = %p, want %p", cand.RenderPass, child)
			}
		})
	}

	t.Run("missing pass", func(t *testing.T) {
		missing := Quad{Rect: NewRect(0, 0, 64, 64), Opacity: 1, Content: RenderPassContent{Pass: 99}}
		if _, got := classifyOne(t, c, missing); got != ResultUnsupportedQuad {
			t.Errorf("Classify() = %v, want %v", got, ResultUnsupportedQuad)
		}
	})

	t.Run("ineligible mask", func(t *testing.T) {
		child.Filters, child.BackdropFilters = nil, nil
		masked := Quad{Rect: NewRect(0, 0, 64, 64), Opacity: 1, Content: RenderPassContent{Pass: 7, Mask: softwareTexture}}
		if _, got := classifyOne(t, c, masked, child); got != ResultTextureNotCandidate {
			t.Errorf("Classify() = %v, want %v", got, ResultTextureNotCandidate)
		}
	})
}

func TestClassifyDeterministic(t *testing.T) {
	c := Classifier{Resources: newTestTextures()}
	quads := []Quad{
		videoQuad(testDisplay),
		uiQuad(testDisplay),
		{Rect: testDisplay, Opacity: 1, Content: TextureContent{Resource: readbackTexture}},
	}
	for i, q := range quads {
		c1, r1 := classifyOne(t, c, q)
		c2, r2 := classifyOne(t, c, q)
		if r1 != r2 || !reflect.DeepEqual(c1, c2) {
			t.Errorf("quad %d: Classify() not deterministic: %v/%v", i, r1, r2)
		}
	}
}
