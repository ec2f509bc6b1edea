package golfsvg

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// maxIntersectionRetries bounds the fillet-reduction loop when the
// detector keeps finding intersections. After the last retry the path
// is flagged unresolved and passed through, never silently dropped.
const maxIntersectionRetries = 3

// Feature is one source outline handed over by the OSM extraction
// stage: a category label and an ordered point list already projected
// into canvas coordinates.
type Feature struct {
	Category Category
	Points   []Point
	Closed   bool
}

// Status is the per-path verdict of the repair pipeline.
type Status int

const (
	// StatusClean means all stages passed without findings.
	StatusClean Status = iota

	// StatusWarning means the path is usable but carries diagnostics
	// (skipped corners, unresolved intersections).
	StatusWarning

	// StatusUnstable means the inset pre-check failed even after the
	// corrective widening pass; manual follow-up required.
	StatusUnstable

	// StatusRejected means the input was degenerate and no geometry
	// was produced. Result.Err holds the *DegenerateGeometryError.
	StatusRejected
)

// String returns the short name of the status.
func (s Status) String() string {
	switch s {
	case StatusWarning:
		return "warning"
	case StatusUnstable:
		return "unstable"
	case StatusRejected:
		return "rejected"
	default:
		return "clean"
	}
}

// Result is the outcome of repairing one feature. Shape and Path are
// nil only when Err is set; flagged paths still carry best-effort
// geometry since downstream human review is part of the workflow.
type Result struct {
	Feature  Feature
	Ring     *Ring
	Shape    *Shape
	Path     *Path
	Fillets  []Fillet
	Status   Status
	Reason   string
	Range    VertexRange
	Warnings []Warning
	Attempts int // shape builds consumed by the intersection retry loop
	Inset    InsetResult
	Err      error
}

// Repair runs the four-stage pipeline on one feature: normalize,
// fillet (or auto-smooth), self-intersection detection with bounded
// fillet-reduction retries, and the inset stability pre-check with a
// single corrective widening pass.
//
// Repair never panics or aborts a batch: degenerate inputs come back as
// StatusRejected with Err set, everything else as best-effort geometry
// plus diagnostics.
func Repair(f Feature, pol Policy) Result {
	log := Logger()
	res := Result{Feature: f}

	ring, err := Normalize(f.Category, f.Points, f.Closed, pol)
	if err != nil {
		res.Status = StatusRejected
		res.Reason = err.Error()
		res.Err = err
		log.Info("repair: rejected", "category", string(f.Category), "err", err)
		return res
	}
	res.Ring = ring

	shape, warnings := resolveIntersections(ring, pol, &res)
	res.Warnings = append(res.Warnings, warnings...)

	res.Inset = InsetCheck(shape, pol)
	if res.Inset.Verdict == InsetNeedsWidening {
		widened := Widen(ring, res.Inset.Range, pol.WidenMargin)
		reShape, reWarn := resolveIntersections(widened, pol, &res)
		recheck := InsetCheck(reShape, pol)
		if recheck.Verdict == InsetStable {
			log.Info("repair: widening pass stabilized inset",
				"category", string(f.Category), "range", res.Inset.Range.String())
			res.Ring = widened
			res.Warnings = append(res.Warnings, reWarn...)
			shape = reShape
			res.Inset = recheck
		} else {
			// The verdict describes the widened rebuild; surface its
			// geometry and diagnostics, not the pre-widening state.
			res.Ring = widened
			res.Warnings = append(res.Warnings, reWarn...)
			shape = reShape
			recheck.Verdict = InsetUnstable
			res.Inset = recheck
			res.Warnings = append(res.Warnings, Warning{
				Code:   WarnInsetInstability,
				Detail: "inset collapses after widening pass",
				Range:  res.Inset.Range,
			})
			log.Warn("repair: inset unstable",
				"category", string(f.Category), "range", res.Inset.Range.String())
		}
	}

	res.Shape = shape
	res.Path = shape.Path()
	res.Status, res.Reason, res.Range = summarize(res.Warnings, res.Inset)
	return res
}

// resolveIntersections builds the smoothed shape and re-invokes the
// smoothing engine with reduced radii on offending vertices until the
// detector is satisfied or retries are exhausted.
func resolveIntersections(ring *Ring, pol Policy, res *Result) (*Shape, []Warning) {
	log := Logger()
	var scale map[int]float64
	var warnings []Warning

	for attempt := 0; ; attempt++ {
		shape, fillets, buildWarn := buildShape(ring, pol, scale)
		res.Attempts++
		records := SelfIntersections(shape, pol)
		if len(records) == 0 {
			res.Fillets = fillets
			return shape, append(warnings, buildWarn...)
		}
		if attempt >= maxIntersectionRetries {
			vr := recordRange(records)
			warnings = append(warnings, buildWarn...)
			warnings = append(warnings, Warning{
				Code:   WarnUnresolvedIntersection,
				Detail: records[0].Kind.String(),
				Range:  vr,
			})
			log.Warn("repair: intersections unresolved after retries",
				"category", string(ring.Category),
				"records", len(records), "range", vr.String())
			res.Fillets = fillets
			return shape, warnings
		}
		if scale == nil {
			scale = make(map[int]float64)
		}
		for _, rec := range records {
			reduceVertex(scale, rec.VertA, len(ring.Points), ring.Closed)
			reduceVertex(scale, rec.VertB, len(ring.Points), ring.Closed)
		}
		log.Debug("repair: retrying with reduced radii",
			"category", string(ring.Category),
			"attempt", attempt+1, "records", len(records))
	}
}

// buildShape dispatches to the smoothing engine selected by the policy.
func buildShape(ring *Ring, pol Policy, scale map[int]float64) (*Shape, []Fillet, []Warning) {
	if pol.Mode == ModeAutoSmooth {
		return autoSmooth(ring, pol, scale), nil, nil
	}
	return filletCorners(ring, pol, scale)
}

// reduceVertex halves the smoothing budget of a vertex and its two
// neighbors. Line pieces are owned by their start vertex, so the
// neighbor on each side may be the actual offending corner.
func reduceVertex(scale map[int]float64, v, n int, closed bool) {
	for _, i := range []int{v - 1, v, v + 1} {
		if closed {
			i = (i + n) % n
		} else if i < 0 || i >= n {
			continue
		}
		if s, ok := scale[i]; ok {
			scale[i] = s * 0.5
		} else {
			scale[i] = 0.5
		}
	}
}

// summarize folds warnings and the inset verdict into the path status.
func summarize(warnings []Warning, inset InsetResult) (Status, string, VertexRange) {
	if inset.Verdict == InsetUnstable {
		return StatusUnstable, "inset instability", inset.Range
	}
	for _, w := range warnings {
		if w.Code == WarnUnresolvedIntersection {
			return StatusWarning, w.String(), w.Range
		}
	}
	if len(warnings) > 0 {
		return StatusWarning, warnings[0].String(), warnings[0].Range
	}
	return StatusClean, "", VertexRange{}
}

// recordRange returns the vertex range spanned by intersection records.
func recordRange(records []IntersectionRecord) VertexRange {
	var idx []int
	for _, rec := range records {
		idx = append(idx, rec.VertA, rec.VertB)
	}
	return indexRange(idx)
}

// RepairAll repairs every feature, fanning the work out across up to
// GOMAXPROCS workers. Features are independent and the policy table is
// read-only, so no locking is needed. Per-path failures are recorded in
// the corresponding Result and never abort siblings; the returned error
// is non-nil only when ctx is canceled before all work completes.
func RepairAll(ctx context.Context, feats []Feature, table PolicyTable) ([]Result, error) {
	results := make([]Result, len(feats))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range feats {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Repair(f, table.Get(f.Category))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// CategoryOverlaps tests all repaired shapes of the same category
// against each other for crossings and clearance violations, the
// cross-path counterpart of SelfIntersections. Keys are categories with
// at least one finding.
func CategoryOverlaps(results []Result, table PolicyTable) map[Category][]IntersectionRecord {
	byCat := make(map[Category][]*Shape)
	for _, r := range results {
		if r.Shape != nil {
			byCat[r.Feature.Category] = append(byCat[r.Feature.Category], r.Shape)
		}
	}
	out := make(map[Category][]IntersectionRecord)
	for cat, shapes := range byCat {
		pol := table.Get(cat)
		for i := 0; i < len(shapes); i++ {
			for j := i + 1; j < len(shapes); j++ {
				if recs := CrossIntersections(shapes[i], shapes[j], pol); len(recs) > 0 {
					out[cat] = append(out[cat], recs...)
				}
			}
		}
	}
	return out
}
