package dclayer

import "fmt"

// Result is the outcome of evaluating one quad for promotion.
//
// The ordinal values are stable and are persisted by telemetry consumers.
// New values may only be appended before NumResults; reordering or removing
// a value is a breaking change.
type Result uint8

const (
	ResultSuccess Result = iota
	ResultUnsupportedQuad
	ResultQuadBlendMode
	ResultTextureNotCandidate
	ResultOccluded
	ResultComplexTransform
	ResultTransparent
	ResultNonRoot
	ResultTooManyOverlays

	// NumResults is the number of defined results.
	NumResults
)

var resultNames = [NumResults]string{
	ResultSuccess:             "success",
	ResultUnsupportedQuad:     "unsupported_quad",
	ResultQuadBlendMode:       "quad_blend_mode",
	ResultTextureNotCandidate: "texture_not_candidate",
	ResultOccluded:            "occluded",
	ResultComplexTransform:    "complex_transform",
	ResultTransparent:         "transparent",
	ResultNonRoot:             "non_root",
	ResultTooManyOverlays:     "too_many_overlays",
}

// String returns the stable name of the result.
func (r Result) String() string {
	if r < NumResults {
		return resultNames[r]
	}
	return fmt.Sprintf("Result(%d)", r)
}

// Valid reports whether r is a defined result.
func (r Result) Valid() bool {
	return r < NumResults
}

// ParseResult returns the result with the given stable name.
func ParseResult(name string) (Result, bool) {
	for i, n := range resultNames {
		if n == name {
			return Result(i), true
		}
	}
	return 0, false
}

// ResultRecorder receives one Result per evaluated quad, in evaluation
// order. Recorders are called synchronously from Process.
type ResultRecorder interface {
	RecordResult(r Result)
}

type nopRecorder struct{}

func (nopRecorder) RecordResult(Result) {}
