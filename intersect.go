package golfsvg

import "math"

// IntersectionKind distinguishes a true segment crossing from a
// clearance violation where two segments pass too close without
// touching.
type IntersectionKind int

const (
	KindCrossing IntersectionKind = iota
	KindClearance
)

// String returns the short name of the kind.
func (k IntersectionKind) String() string {
	if k == KindClearance {
		return "clearance"
	}
	return "crossing"
}

// IntersectionRecord reports a pair of non-adjacent flattened segments
// that cross or pass within the category's minimum clearance. VertA and
// VertB name the ring vertices owning the segments so the retry loop
// knows which corners to relax.
type IntersectionRecord struct {
	SegA, SegB   int
	VertA, VertB int
	At           Point   // crossing point, or midpoint of closest approach
	Kind         IntersectionKind
	Distance     float64 // closest distance, 0 for crossings
}

// SelfIntersections scans a repaired shape for segment-segment crossings
// and near-degenerate pinches. The shape is flattened at the policy's
// chord tolerance and all non-adjacent segment pairs are tested
// pairwise; O(n^2) but feature outlines are small. Pairs owned by the
// same or neighboring ring vertices are skipped, since chords of one
// fillet curve legitimately run close together. Clearance findings
// between segments whose along-path separation is within the policy's
// corner-local span are skipped for the same reason: a rounded corner
// stays a legitimate near-approach after its outline has been flattened
// back to plain ring vertices, where vertex adjacency no longer covers
// it. Crossings are never exempt.
//
// Clean shapes return an empty slice.
func SelfIntersections(s *Shape, pol Policy) []IntersectionRecord {
	pts, owner := s.flattenIndexed(pol.FlattenTolerance)
	if len(pts) < 4 {
		return nil
	}
	nseg := len(pts) - 1
	nverts := maxOwner(owner) + 1
	span := pol.clearanceExemptionSpan()
	cum := cumulativeLength(pts)

	var records []IntersectionRecord
	for i := 0; i < nseg; i++ {
		for j := i + 2; j < nseg; j++ {
			if s.Closed && i == 0 && j == nseg-1 {
				continue // first and last segments are adjacent
			}
			if ownersAdjacent(owner[i], owner[j], nverts, s.Closed) {
				continue
			}
			rec, ok := testPair(pts[i], pts[i+1], pts[j], pts[j+1], pol.MinClearance)
			if !ok {
				continue
			}
			if rec.Kind == KindClearance && pathGap(cum, i, j, s.Closed) < span {
				continue
			}
			rec.SegA, rec.SegB = i, j
			rec.VertA, rec.VertB = owner[i], owner[j]
			records = append(records, rec)
		}
	}
	return records
}

// CrossIntersections tests two shapes of the same category against each
// other for crossings and clearance violations. Adjacency does not apply
// across paths; every segment pair is tested.
func CrossIntersections(a, b *Shape, pol Policy) []IntersectionRecord {
	aPts, aOwner := a.flattenIndexed(pol.FlattenTolerance)
	bPts, bOwner := b.flattenIndexed(pol.FlattenTolerance)
	var records []IntersectionRecord
	for i := 0; i+1 < len(aPts); i++ {
		for j := 0; j+1 < len(bPts); j++ {
			rec, ok := testPair(aPts[i], aPts[i+1], bPts[j], bPts[j+1], pol.MinClearance)
			if !ok {
				continue
			}
			rec.SegA, rec.SegB = i, j
			rec.VertA, rec.VertB = aOwner[i], bOwner[j]
			records = append(records, rec)
		}
	}
	return records
}

// crossingsOnly reports segment crossings of a plain polyline ring,
// ignoring clearance. The inset pre-check uses it to decide whether the
// offset polygon is still simple.
func crossingsOnly(pts []Point, closed bool) []IntersectionRecord {
	n := len(pts)
	if n < 4 {
		return nil
	}
	nseg := n - 1
	if closed {
		nseg = n
	}
	at := func(i int) Point { return pts[i%n] }

	var records []IntersectionRecord
	for i := 0; i < nseg; i++ {
		for j := i + 2; j < nseg; j++ {
			if closed && i == 0 && j == nseg-1 {
				continue
			}
			pt, ok := segmentsCross(at(i), at(i+1), at(j), at(j+1))
			if !ok {
				continue
			}
			records = append(records, IntersectionRecord{
				SegA: i, SegB: j, VertA: i, VertB: j,
				At: pt, Kind: KindCrossing,
			})
		}
	}
	return records
}

// testPair tests one segment pair for crossing, then clearance.
func testPair(a0, a1, b0, b1 Point, clearance float64) (IntersectionRecord, bool) {
	if pt, ok := segmentsCross(a0, a1, b0, b1); ok {
		return IntersectionRecord{At: pt, Kind: KindCrossing}, true
	}
	if clearance > 0 {
		d, pa, pb := segmentDistance(a0, a1, b0, b1)
		if d < clearance {
			return IntersectionRecord{
				At:       pa.Lerp(pb, 0.5),
				Kind:     KindClearance,
				Distance: d,
			}, true
		}
	}
	return IntersectionRecord{}, false
}

// segmentsCross returns the intersection point of two segments when
// they properly cross. Touching endpoints and collinear overlap are not
// reported as crossings; the clearance test catches real pinches.
func segmentsCross(a0, a1, b0, b1 Point) (Point, bool) {
	r := a1.Sub(a0)
	s := b1.Sub(b0)
	denom := r.Cross(s)
	if denom == 0 {
		return Point{}, false // parallel or collinear
	}
	qp := b0.Sub(a0)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	const eps = 1e-12
	if t <= eps || t >= 1-eps || u <= eps || u >= 1-eps {
		return Point{}, false
	}
	return a0.Add(r.Mul(t)), true
}

// segmentDistance returns the minimum distance between two segments and
// the closest points on each.
func segmentDistance(a0, a1, b0, b1 Point) (float64, Point, Point) {
	best := math.Inf(1)
	var pa, pb Point
	consider := func(p, q0, q1 Point, pOnA bool) {
		q := closestOnSegment(p, q0, q1)
		if d := p.Distance(q); d < best {
			best = d
			if pOnA {
				pa, pb = p, q
			} else {
				pa, pb = q, p
			}
		}
	}
	consider(a0, b0, b1, true)
	consider(a1, b0, b1, true)
	consider(b0, a0, a1, false)
	consider(b1, a0, a1, false)
	return best, pa, pb
}

// closestOnSegment returns the point on segment ab closest to p.
func closestOnSegment(p, a, b Point) Point {
	ab := b.Sub(a)
	lenSq := ab.LengthSquared()
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Mul(t))
}

// cumulativeLength returns the arc length from the first point of a
// polyline to each of its points.
func cumulativeLength(pts []Point) []float64 {
	cum := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cum[i] = cum[i-1] + pts[i].Distance(pts[i-1])
	}
	return cum
}

// pathGap returns the along-path distance between the facing ends of
// segments i and j (i < j), taking the shorter way around for closed
// outlines.
func pathGap(cum []float64, i, j int, closed bool) float64 {
	forward := cum[j] - cum[i+1]
	if !closed {
		return forward
	}
	total := cum[len(cum)-1]
	backward := total - (cum[j+1] - cum[i])
	return math.Min(forward, backward)
}

// ownersAdjacent reports whether two ring vertices are the same or
// cyclic neighbors.
func ownersAdjacent(a, b, n int, closed bool) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	if d <= 1 {
		return true
	}
	return closed && d == n-1
}

func maxOwner(owner []int) int {
	m := 0
	for _, v := range owner {
		if v > m {
			m = v
		}
	}
	return m
}
