// Package dclayer decides which quads of a compositor frame can bypass the
// framebuffer and be handed to the platform's hardware compositor as
// separate planes.
//
// # Overview
//
// A frame is a list of render passes, ordered leaf to root. Each pass holds
// quads in draw order: later quads are drawn over earlier ones. For the
// root pass, a Processor looks for the frontmost quad that
//
//   - passes classification (supported material, plain source-over blending,
//     overlay-eligible textures, axis-aligned transform), and
//   - is not covered by opaque quads drawn after it.
//
// If nothing is drawn over the quad it becomes an overlay, a plane placed
// above the framebuffer. Otherwise it becomes an underlay: a plane placed
// below the framebuffer, visible through a transparent hole the renderer
// leaves in the pass. At most one quad per pass is promoted.
//
// The Processor also tracks the previous frame's underlay and occlusion
// state so the damage rect it reports covers exactly what must be redrawn.
//
// # Usage
//
//	textures := dclayer.NewTextureTable()
//	textures.Register(videoY, dclayer.TextureInfo{
//	    Format:         gputypes.TextureFormatR8Unorm,
//	    HardwareBacked: true,
//	})
//
//	p := dclayer.NewProcessor(textures)
//	frame := p.Process(passes, display)
//	for i, o := range frame.Overlays.Overlays {
//	    state := frame.Overlays.SharedState(i)
//	    schedulePlane(o, state) // platform-specific
//	}
//	redraw(frame.Damage)
//
// On resize or context loss, call ClearOverlayState before the next frame.
//
// # Failure Model
//
// Nothing in this package fails. A quad that is rejected is drawn
// conventionally, which is always correct. Rejections are reported as
// [Result] values through a [ResultRecorder]; see the telemetry package.
//
// # Thread Safety
//
// A Processor is NOT thread-safe. Use one Processor per output surface from
// a single goroutine. SetLogger and Logger are safe for concurrent use.
package dclayer
