package golfsvg

import "math"

// Fillet records a corner replacement: the original vertex, the tangent
// points where the curve meets the two adjacent segments, and the cubic
// control points approximating the tangent arc.
type Fillet struct {
	Vertex       int     // ring vertex index that was replaced
	Corner       Point   // original corner position
	Start, End   Point   // tangent points on the incoming/outgoing segments
	Ctrl1, Ctrl2 Point   // cubic control points
	Radius       float64 // arc radius
	Trim         float64 // distance consumed along each adjacent segment
}

// FilletCorners replaces every sharp corner of the ring with a tangent
// arc, emitted as a cubic Bezier approximation. A corner is sharp when
// its interior angle is below Policy.SharpAngle. The distance consumed
// along each adjacent segment never exceeds half that segment's length,
// so neighboring fillets cannot overlap and processing order is
// irrelevant. Corners whose adjacent segments are below
// Policy.MinSegment are skipped and flagged with a WarnSkippedCorner
// warning instead of producing a degenerate curve.
//
// The result is deterministic: identical ring and policy always produce
// an identical shape.
func FilletCorners(r *Ring, pol Policy) (*Shape, []Fillet, []Warning) {
	return filletCorners(r, pol, nil)
}

// filletCorners is the engine behind FilletCorners. scale optionally
// shrinks the fillet distance of specific vertices; the intersection
// retry loop uses it to relax offending corners without touching the
// rest of the ring.
func filletCorners(r *Ring, pol Policy, scale map[int]float64) (*Shape, []Fillet, []Warning) {
	n := len(r.Points)
	threshold := pol.sharpAngleRad()

	fillets := make([]*Fillet, n)
	var records []Fillet
	var warnings []Warning

	for i := 0; i < n; i++ {
		if !r.interiorVertex(i) {
			continue
		}
		angle := r.InteriorAngle(i)
		if angle >= threshold {
			continue
		}

		v := r.Points[i]
		prev := r.Points[r.prev(i)]
		next := r.Points[r.next(i)]
		lenIn := v.Distance(prev)
		lenOut := v.Distance(next)
		shorter := math.Min(lenIn, lenOut)

		if shorter < pol.MinSegment || angle < 1e-3 {
			warnings = append(warnings, Warning{
				Code:   WarnSkippedCorner,
				Detail: "adjacent segment below minimum length",
				Range:  VertexRange{First: i, Last: i},
			})
			Logger().Debug("fillet: skipping corner",
				"category", string(r.Category), "vertex", i,
				"angle", angle, "shorter", shorter)
			continue
		}

		trim := pol.filletDistance(shorter)
		if s, ok := scale[i]; ok {
			trim *= s
		}
		if trim <= 0 {
			continue
		}

		u := prev.Sub(v).Normalize() // toward previous vertex
		w := next.Sub(v).Normalize() // toward next vertex
		start := v.Add(u.Mul(trim))
		end := v.Add(w.Mul(trim))
		radius := trim * math.Tan(angle/2)
		sweep := math.Pi - angle

		// Travel runs prev -> start -> arc -> end -> next, so the arc
		// tangent at start is -u and at end is w.
		cubic := arcToCubic(start, end, u.Mul(-1), w, radius, sweep)

		f := &Fillet{
			Vertex: i,
			Corner: v,
			Start:  start,
			End:    end,
			Ctrl1:  cubic.P1,
			Ctrl2:  cubic.P2,
			Radius: radius,
			Trim:   trim,
		}
		fillets[i] = f
		records = append(records, *f)
	}

	return assembleShape(r, fillets), records, warnings
}

// assembleShape stitches plain vertices and fillets into path order:
// the straight remainder of each segment followed by the replacement
// curve of the next vertex, if any.
func assembleShape(r *Ring, fillets []*Fillet) *Shape {
	n := len(r.Points)
	shape := &Shape{Category: r.Category, Closed: r.Closed}

	entry := func(i int) Point {
		if f := fillets[i]; f != nil {
			return f.Start
		}
		return r.Points[i]
	}
	exit := func(i int) Point {
		if f := fillets[i]; f != nil {
			return f.End
		}
		return r.Points[i]
	}

	appendCurve := func(i int) {
		if f := fillets[i]; f != nil {
			shape.Pieces = append(shape.Pieces, Piece{
				Cubic:  true,
				Start:  f.Start,
				End:    f.End,
				Ctrl1:  f.Ctrl1,
				Ctrl2:  f.Ctrl2,
				Vertex: i,
			})
		}
	}

	segs := r.NumSegments()
	for s := 0; s < segs; s++ {
		j := (s + 1) % n
		from, to := exit(s), entry(j)
		if !from.Near(to, 1e-12) {
			shape.Pieces = append(shape.Pieces, Piece{
				Start:  from,
				End:    to,
				Vertex: s,
			})
		}
		appendCurve(j)
	}
	return shape
}
