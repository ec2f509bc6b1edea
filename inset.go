package golfsvg

// InsetVerdict is the outcome of the inset stability pre-check.
type InsetVerdict int

const (
	// InsetStable means the simulated inward offset is a simple polygon
	// with area above the policy minimum.
	InsetStable InsetVerdict = iota

	// InsetNeedsWidening means the offset collapsed or self-intersected;
	// the offending vertex range should be widened and re-checked.
	InsetNeedsWidening

	// InsetUnstable is the final verdict after the corrective widening
	// pass also failed. Surfaced to the caller for manual handling.
	InsetUnstable
)

// String returns the short name of the verdict.
func (v InsetVerdict) String() string {
	switch v {
	case InsetNeedsWidening:
		return "needs-widening"
	case InsetUnstable:
		return "unstable"
	default:
		return "stable"
	}
}

// InsetResult is the per-path verdict of the inset stability pre-check,
// with the offending vertex range when the check fails.
type InsetResult struct {
	Verdict InsetVerdict
	Range   VertexRange
	Area    float64 // signed area of the offset polygon
	Records []IntersectionRecord
}

// InsetCheck simulates the downstream mesh tool's inward offset of the
// shape by Policy.InsetMargin and verifies the result is still a simple
// polygon with signed area of at least Policy.MinArea. The offset uses
// the miter construction: each edge is translated along its interior
// normal and neighboring edge lines are re-intersected.
//
// Open shapes are not inset downstream and always report stable. A
// failing check reports InsetNeedsWidening with the vertex range
// responsible; the pipeline applies one corrective widening pass before
// giving a final InsetUnstable verdict.
func InsetCheck(s *Shape, pol Policy) InsetResult {
	if !s.Closed {
		return InsetResult{Verdict: InsetStable}
	}
	pts, owner := s.flattenIndexed(pol.FlattenTolerance)
	if len(pts) > 1 && pts[0].Near(pts[len(pts)-1], 1e-12) {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return InsetResult{Verdict: InsetNeedsWidening, Range: ownerRange(owner)}
	}

	off := insetPolygon(pts, pol.InsetMargin)
	area := signedArea(off)
	records := crossingsOnly(off, true)

	if area >= pol.MinArea && len(records) == 0 {
		return InsetResult{Verdict: InsetStable, Area: area}
	}

	implicated := invertedEdges(pts, off)
	for _, rec := range records {
		implicated = append(implicated, owner[rec.SegA%len(owner)], owner[rec.SegB%len(owner)])
	}
	vr := indexRange(implicated)
	if len(implicated) == 0 {
		vr = ownerRange(owner)
	}
	Logger().Debug("inset: offset failed",
		"category", string(s.Category), "area", area,
		"crossings", len(records), "range", vr.String())
	return InsetResult{
		Verdict: InsetNeedsWidening,
		Range:   vr,
		Area:    area,
		Records: records,
	}
}

// insetPolygon offsets a CCW polygon inward by margin using miter
// joints: each edge line moves along its interior (left) normal and
// consecutive offset lines are intersected. Parallel neighbors fall
// back to the translated vertex.
func insetPolygon(pts []Point, margin float64) []Point {
	n := len(pts)
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		prev := pts[(i-1+n)%n]
		cur := pts[i]
		next := pts[(i+1)%n]

		nIn := cur.Sub(prev).Normalize().Perp()  // interior normal of incoming edge
		nOut := next.Sub(cur).Normalize().Perp() // interior normal of outgoing edge

		// Offset edge lines.
		a0 := prev.Add(nIn.Mul(margin))
		a1 := cur.Add(nIn.Mul(margin))
		b0 := cur.Add(nOut.Mul(margin))
		b1 := next.Add(nOut.Mul(margin))

		if pt, ok := intersectLines(a0, a1, b0, b1); ok {
			out[i] = pt
		} else {
			out[i] = cur.Add(nIn.Add(nOut).Normalize().Mul(margin))
		}
	}
	return out
}

// intersectLines returns the intersection of the infinite lines through
// (p1,p2) and (p3,p4). ok is false for parallel or degenerate lines.
func intersectLines(p1, p2, p3, p4 Point) (Point, bool) {
	r := p2.Sub(p1)
	s := p4.Sub(p3)
	denom := r.Cross(s)
	if denom == 0 {
		return Point{}, false
	}
	t := p3.Sub(p1).Cross(s) / denom
	return p1.Add(r.Mul(t)), true
}

// invertedEdges returns the indices of edges whose offset image runs
// opposite to the original edge, the local signature of a collapsed
// (too thin) region.
func invertedEdges(pts, off []Point) []int {
	n := len(pts)
	var out []int
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		d0 := pts[j].Sub(pts[i])
		d1 := off[j].Sub(off[i])
		if d0.Dot(d1) < 0 {
			out = append(out, i, j)
		}
	}
	return out
}

// Widen pushes the vertices in the given range outward along their
// bisector normals by margin, returning a new ring. This is the single
// corrective pass applied when the inset pre-check fails: the same
// outset trick the upstream toolchain applied to broken bunker shapes.
func Widen(r *Ring, vr VertexRange, margin float64) *Ring {
	out := r.Clone()
	n := len(out.Points)
	for i := vr.First; i <= vr.Last && i < n; i++ {
		prev := out.Points[(i-1+n)%n]
		cur := out.Points[i]
		next := out.Points[(i+1)%n]
		inward := cur.Sub(prev).Normalize().Perp().
			Add(next.Sub(cur).Normalize().Perp()).Normalize()
		out.Points[i] = cur.Sub(inward.Mul(margin))
	}
	return out
}

// indexRange returns the smallest VertexRange covering the given
// indices.
func indexRange(idx []int) VertexRange {
	if len(idx) == 0 {
		return VertexRange{}
	}
	vr := VertexRange{First: idx[0], Last: idx[0]}
	for _, v := range idx[1:] {
		if v < vr.First {
			vr.First = v
		}
		if v > vr.Last {
			vr.Last = v
		}
	}
	return vr
}

// ownerRange returns the full vertex range of an owner map.
func ownerRange(owner []int) VertexRange {
	return VertexRange{First: 0, Last: maxOwner(owner)}
}
