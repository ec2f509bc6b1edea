package golfsvg

// Normalize converts a raw node-ordered point sequence into a cleaned
// Ring ready for the repair stages:
//
//   - consecutive duplicates within Policy.Epsilon are removed, and a
//     closed input that repeats its first point drops the repetition
//   - near-collinear runs are collapsed when every removed point lies
//     within Policy.Flatness of the simplified chord
//   - closed rings are rewound to canonical counter-clockwise order
//     (positive shoelace area) so the inset direction is consistent
//
// Inputs that reduce below 3 points (closed) or 2 points (open) fail
// with a *DegenerateGeometryError.
func Normalize(category Category, raw []Point, closed bool, pol Policy) (*Ring, error) {
	pts := dedupe(raw, pol.Epsilon)

	if closed && len(pts) > 1 && pts[0].Near(pts[len(pts)-1], pol.Epsilon) {
		pts = pts[:len(pts)-1]
	}

	if pol.Flatness > 0 {
		pts = collapseCollinear(pts, closed, pol.Flatness)
	}

	min := 2
	if closed {
		min = 3
	}
	if len(pts) < min {
		return nil, &DegenerateGeometryError{Category: category, Points: len(pts), Min: min}
	}

	ring := &Ring{Category: category, Closed: closed, Points: pts}
	if closed && !ring.IsCCW() {
		ring.Reverse()
		Logger().Debug("normalize: rewound ring to CCW",
			"category", string(category), "points", len(pts))
	}
	return ring, nil
}

// dedupe removes consecutive points within eps of each other.
func dedupe(raw []Point, eps float64) []Point {
	out := make([]Point, 0, len(raw))
	for _, p := range raw {
		if len(out) > 0 && out[len(out)-1].Near(p, eps) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// collapseCollinear removes points whose perpendicular deviation from
// the simplified chord stays below tol, using recursive farthest-point
// splitting so the deviation bound holds for every removed point.
func collapseCollinear(pts []Point, closed bool, tol float64) []Point {
	if len(pts) < 3 {
		return pts
	}
	if !closed {
		return simplifyChord(pts, tol)
	}
	// Close the ring for simplification, then drop the repeated point.
	ring := make([]Point, len(pts)+1)
	copy(ring, pts)
	ring[len(pts)] = pts[0]
	out := simplifyChord(ring, tol)
	out = out[:len(out)-1]
	// The chord endpoints pin vertex 0 during simplification; test it
	// against its surviving neighbors so the result does not depend on
	// where the ring starts.
	if len(out) > 3 && distPointToSegment(out[0], out[len(out)-1], out[1]) <= tol {
		out = out[1:]
	}
	return out
}

// simplifyChord is the Ramer-Douglas-Peucker reduction: keep the point
// farthest from the chord if it deviates more than tol, recurse on both
// halves, otherwise keep only the endpoints.
func simplifyChord(pts []Point, tol float64) []Point {
	if len(pts) <= 2 {
		return pts
	}
	worst := 0
	worstD := 0.0
	a, b := pts[0], pts[len(pts)-1]
	for i := 1; i < len(pts)-1; i++ {
		d := distPointToSegment(pts[i], a, b)
		if d > worstD {
			worst = i
			worstD = d
		}
	}
	if worstD <= tol {
		return []Point{a, b}
	}
	left := simplifyChord(pts[:worst+1], tol)
	right := simplifyChord(pts[worst:], tol)
	return append(left, right[1:]...)
}

// distPointToSegment returns the distance from p to the segment ab.
func distPointToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.LengthSquared()
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(a.Add(ab.Mul(t)))
}
