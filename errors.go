package golfsvg

import "fmt"

// DegenerateGeometryError reports an input path that reduced below the
// minimum point count during normalization. It is fatal for that single
// path only; sibling paths in a batch are unaffected.
type DegenerateGeometryError struct {
	Category Category
	Points   int // surviving point count
	Min      int // required minimum
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("golfsvg: degenerate geometry for %q: %d points after cleanup, need at least %d",
		e.Category, e.Points, e.Min)
}

// WarningCode classifies non-fatal repair diagnostics. Warnings never stop
// a path from being emitted; they flag it for manual follow-up.
type WarningCode int

const (
	// WarnSkippedCorner marks a sharp corner left unfilleted because an
	// adjacent segment was below the minimum segment length.
	WarnSkippedCorner WarningCode = iota

	// WarnUnresolvedIntersection marks a self-intersection or clearance
	// violation that survived the bounded fillet-reduction retries.
	WarnUnresolvedIntersection

	// WarnInsetInstability marks a shape whose simulated inward offset
	// could not be certified stable after the corrective widening pass.
	WarnInsetInstability
)

// String returns the short name of the warning code.
func (c WarningCode) String() string {
	switch c {
	case WarnSkippedCorner:
		return "skipped-corner"
	case WarnUnresolvedIntersection:
		return "unresolved-intersection"
	case WarnInsetInstability:
		return "inset-instability"
	default:
		return fmt.Sprintf("warning(%d)", int(c))
	}
}

// VertexRange identifies a contiguous run of vertices on the normalized
// ring, inclusive on both ends. On closed rings the range may wrap.
type VertexRange struct {
	First, Last int
}

func (r VertexRange) String() string {
	return fmt.Sprintf("[%d..%d]", r.First, r.Last)
}

// Warning is a non-fatal diagnostic attached to a repair result.
type Warning struct {
	Code   WarningCode
	Detail string
	Range  VertexRange
}

func (w Warning) String() string {
	if w.Detail == "" {
		return fmt.Sprintf("%s %s", w.Code, w.Range)
	}
	return fmt.Sprintf("%s %s: %s", w.Code, w.Range, w.Detail)
}
