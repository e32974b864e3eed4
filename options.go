package dclayer

// Option configures a Processor during creation.
// Use functional options to customize promotion policy.
//
// Example:
//
//	// Default policy: overlays and opaque underlays, axis-aligned only
//	p := dclayer.NewProcessor(textures)
//
//	// Allow rotated video and disable underlays
//	p := dclayer.NewProcessor(textures,
//	    dclayer.WithComplexTransforms(true),
//	    dclayer.WithUnderlays(false))
type Option func(*processorOptions)

// processorOptions holds optional configuration for Processor creation.
type processorOptions struct {
	underlays            bool
	complexTransforms    bool
	transparentUnderlays bool
	recorder             ResultRecorder
}

// defaultOptions returns the default processor options.
func defaultOptions() processorOptions {
	return processorOptions{
		underlays: true,
		recorder:  nopRecorder{},
	}
}

// WithUnderlays enables or disables underlay promotion. When disabled, a
// candidate with any visible content drawn over it is rejected as
// occluded. Enabled by default.
func WithUnderlays(enabled bool) Option {
	return func(o *processorOptions) {
		o.underlays = enabled
	}
}

// WithComplexTransforms admits quads whose transform rotates, skews or
// projects them. Disabled by default: such quads are rejected with
// ResultComplexTransform.
func WithComplexTransforms(enabled bool) Option {
	return func(o *processorOptions) {
		o.complexTransforms = enabled
	}
}

// WithTransparentUnderlays admits non-opaque quads as underlays.
// Disabled by default: such quads are rejected with ResultTransparent.
func WithTransparentUnderlays(enabled bool) Option {
	return func(o *processorOptions) {
		o.transparentUnderlays = enabled
	}
}

// WithRecorder sets the sink that receives one Result per evaluated quad.
// Pass nil to discard results.
//
// Example:
//
//	hist := telemetry.NewHistogram()
//	p := dclayer.NewProcessor(textures, dclayer.WithRecorder(hist))
func WithRecorder(r ResultRecorder) Option {
	return func(o *processorOptions) {
		if r == nil {
			r = nopRecorder{}
		}
		o.recorder = r
	}
}
