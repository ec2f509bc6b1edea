package golfsvg

// AutoSmooth converts every segment of the ring into a cubic Bezier
// with auto-smooth node handles, mimicking Inkscape's "make segments
// curves" followed by "auto-smooth nodes". Each node's handles lie on a
// shared tangent derived from the angle bisector of its two adjacent
// segments; handle lengths are one third of the adjacent segment length
// scaled by Policy.SmoothTightness.
//
// This is the whole-outline alternative to FilletCorners, selected by
// Policy.Mode == ModeAutoSmooth (cart paths and other flowing outlines).
func AutoSmooth(r *Ring, pol Policy) *Shape {
	return autoSmooth(r, pol, nil)
}

// autoSmooth is the engine behind AutoSmooth. scale optionally reduces
// the handle tightness at specific vertices, used by the intersection
// retry loop.
func autoSmooth(r *Ring, pol Policy, scale map[int]float64) *Shape {
	n := len(r.Points)
	shape := &Shape{Category: r.Category, Closed: r.Closed}
	if n < 2 {
		return shape
	}

	tight := func(i int) float64 {
		t := pol.SmoothTightness
		if s, ok := scale[i]; ok {
			t *= s
		}
		return t
	}

	// back and front handles per node.
	back := make([]Point, n)
	front := make([]Point, n)
	for i := 0; i < n; i++ {
		if !r.Closed && (i == 0 || i == n-1) {
			// Endpoint handles are derived from the neighbor below.
			back[i], front[i] = r.Points[i], r.Points[i]
			continue
		}
		back[i], front[i] = smoothHandles(
			r.Points[r.prev(i)], r.Points[i], r.Points[r.next(i)], tight(i))
	}

	if !r.Closed && n > 2 {
		// Open-path endpoints borrow their neighbor's handles: the
		// first node reuses its successor's back handle, the last node
		// mirrors its predecessor's front handle.
		front[0] = back[1]
		back[n-1] = r.Points[n-1].Sub(front[n-2].Sub(r.Points[n-2]))
	}

	segs := r.NumSegments()
	for s := 0; s < segs; s++ {
		j := r.next(s)
		shape.Pieces = append(shape.Pieces, Piece{
			Cubic:  true,
			Start:  r.Points[s],
			End:    r.Points[j],
			Ctrl1:  front[s],
			Ctrl2:  back[j],
			Vertex: s,
		})
	}
	return shape
}

// smoothHandles computes the back and front control handles for an
// auto-smooth node at pi between pPrev and pNext. The shared tangent is
// perpendicular to the length-weighted bisector direction, flipped at
// reflex corners so it always points along the direction of travel.
func smoothHandles(pPrev, pi, pNext Point, tightness float64) (back, front Point) {
	vPrev := pi.Sub(pPrev)
	vNext := pNext.Sub(pi)
	lPrev := vPrev.Length()
	lNext := vNext.Length()
	if lPrev == 0 || lNext == 0 {
		return pi, pi // coincident nodes: retract handles
	}

	d := vNext.Mul(lPrev / lNext).Sub(vPrev)
	var tangent Point
	if d.LengthSquared() == 0 {
		// Straight-through node: the tangent is the travel direction.
		tangent = vNext.Mul(1 / lNext)
	} else {
		u := d.Normalize()
		if vPrev.Cross(vNext) < 0 {
			tangent = u.Perp() // reflex corner, rotate +90
		} else {
			tangent = u.Perp().Mul(-1) // rotate -90
		}
	}

	hPrev := lPrev / 3 * tightness
	hNext := lNext / 3 * tightness
	back = pi.Sub(tangent.Mul(hPrev))
	front = pi.Add(tangent.Mul(hNext))
	return back, front
}
