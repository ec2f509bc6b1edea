package golfsvg

import "math"

// Category classifies a feature (e.g. "golf.bunker", "golf.fairway") and
// selects which repair thresholds apply. Values follow the OSM style-table
// convention of "key.value" tags.
type Category string

// Common categories from the OPCD style tables. Any other string is a
// valid Category; unknown categories fall back to the default policy.
const (
	CategoryBunker   Category = "golf.bunker"
	CategoryFairway  Category = "golf.fairway"
	CategoryGreen    Category = "golf.green"
	CategoryTee      Category = "golf.tee"
	CategoryRough    Category = "golf.rough"
	CategoryCartpath Category = "golf.cartpath"
	CategoryWater    Category = "natural.water"
)

// Mode selects the smoothing strategy for a category.
type Mode int

const (
	// ModeFillet replaces only sharp corners with tangent arcs.
	ModeFillet Mode = iota

	// ModeAutoSmooth converts every segment to a cubic with
	// Inkscape-style auto-smooth handles.
	ModeAutoSmooth
)

// String returns the config-file name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAutoSmooth:
		return "autosmooth"
	default:
		return "fillet"
	}
}

// Policy holds the repair parameters for one category. Policies are plain
// values: load them once, pass them explicitly, never mutate them during
// a run.
type Policy struct {
	// Mode selects fillet-only or full auto-smooth repair.
	Mode Mode

	// Epsilon is the distance under which consecutive points are
	// considered duplicates during normalization.
	Epsilon float64

	// Flatness is the maximum perpendicular deviation allowed when
	// collapsing near-collinear runs. Points that deviate more are
	// deliberate detail and kept.
	Flatness float64

	// SharpAngle is the interior angle in degrees below which a corner
	// counts as sharp and gets filleted.
	SharpAngle float64

	// FilletRadius is the distance consumed along each adjacent segment
	// by a fillet (the curve endpoints sit this far from the original
	// vertex). It is always capped at half of each adjacent segment so
	// neighboring fillets cannot overlap.
	FilletRadius float64

	// RadiusScale, when > 0, makes the fillet distance proportional to
	// the shorter adjacent segment instead of fixed: radius =
	// RadiusScale * shorter segment length, still capped at half.
	RadiusScale float64

	// MinSegment is the segment-length floor below which a sharp corner
	// is skipped (flagged, not filleted) to avoid near-zero-length curves.
	MinSegment float64

	// MinClearance is the minimum allowed distance between non-adjacent
	// segments of the same path (or two paths of the same category).
	// Bunkers need a larger clearance than fairway outlines.
	MinClearance float64

	// InsetMargin is the inward offset distance the downstream mesh tool
	// will apply; the stability pre-check simulates it.
	InsetMargin float64

	// WidenMargin is the outward push applied to an offending vertex
	// range during the single corrective widening pass.
	WidenMargin float64

	// MinArea is the minimum signed area the inset polygon must retain
	// to count as stable.
	MinArea float64

	// FlattenTolerance is the chord tolerance used when flattening curve
	// segments for intersection and inset analysis.
	FlattenTolerance float64

	// SmoothTightness scales auto-smooth handle lengths (1/3 of the
	// adjacent segment times this factor). The upstream toolchain
	// shipped with 0.5.
	SmoothTightness float64
}

// DefaultPolicy returns the baseline policy used when a category has no
// explicit entry in the table.
func DefaultPolicy() Policy {
	return Policy{
		Mode:             ModeFillet,
		Epsilon:          1e-6,
		Flatness:         0.05,
		SharpAngle:       60,
		FilletRadius:     5,
		RadiusScale:      0,
		MinSegment:       0.5,
		MinClearance:     0.25,
		InsetMargin:      0.5,
		WidenMargin:      0.5,
		MinArea:          1.0,
		FlattenTolerance: 0.1,
		SmoothTightness:  0.5,
	}
}

// sharpAngleRad returns the sharpness threshold in radians.
func (p Policy) sharpAngleRad() float64 {
	return p.SharpAngle * math.Pi / 180
}

// filletDistance returns the policy fillet distance for a corner whose
// shorter adjacent segment has the given length.
func (p Policy) filletDistance(shorter float64) float64 {
	d := p.FilletRadius
	if p.RadiusScale > 0 {
		d = p.RadiusScale * shorter
	}
	return math.Min(d, shorter/2)
}

// clearanceExemptionSpan returns the along-path separation below which a
// clearance finding between two segments counts as corner-local rather
// than a material pinch. The chords of a replacement arc and its trimmed
// flanks legitimately pass within MinClearance of each other, and they
// keep doing so after the emitted outline has been flattened back to
// plain vertices. The span covers the longest arc a fillet can produce
// under this policy plus a clearance of slack on each side.
func (p Policy) clearanceExemptionSpan() float64 {
	theta := p.sharpAngleRad()
	arc := p.FilletRadius * math.Tan(theta/2) * (math.Pi - theta)
	return arc + 2*p.MinClearance
}

// PolicyTable maps categories to their repair policies. It is built once
// (typically from the style file) and treated as immutable afterwards.
type PolicyTable map[Category]Policy

// DefaultPolicyTable returns a table with tuned entries for the common
// golf-course categories. Bunkers carry the largest clearance and inset
// margin because their insets fail most often downstream.
func DefaultPolicyTable() PolicyTable {
	base := DefaultPolicy()

	bunker := base
	bunker.MinClearance = 1.0
	bunker.InsetMargin = 1.5
	bunker.MinArea = 4.0

	green := base
	green.SharpAngle = 75
	green.FilletRadius = 8

	cartpath := base
	cartpath.Mode = ModeAutoSmooth

	return PolicyTable{
		CategoryBunker:   bunker,
		CategoryFairway:  base,
		CategoryGreen:    green,
		CategoryTee:      base,
		CategoryRough:    base,
		CategoryCartpath: cartpath,
		CategoryWater:    base,
	}
}

// Get returns the policy for a category, falling back to DefaultPolicy
// for unknown categories.
func (t PolicyTable) Get(c Category) Policy {
	if p, ok := t[c]; ok {
		return p
	}
	return DefaultPolicy()
}
