package golfsvg

import "math"

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner, Max the bottom-right.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points, normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// expand grows the rectangle to include pt.
func (r Rect) expand(pt Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, pt.X), Y: math.Min(r.Min.Y, pt.Y)},
		Max: Point{X: math.Max(r.Max.X, pt.X), Y: math.Max(r.Max.Y, pt.Y)},
	}
}

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval evaluates the line at parameter t (0 to 1).
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Length returns the length of the segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// Midpoint returns the midpoint of the segment.
func (l Line) Midpoint() Point {
	return l.P0.Lerp(l.P1, 0.5)
}

// Direction returns the unit direction vector from P0 to P1.
func (l Line) Direction() Point {
	return l.P1.Sub(l.P0).Normalize()
}

// -------------------------------------------------------------------
// CubicBez
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve with endpoints P0, P3
// and control points P1, P2.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	mt2 := mt * mt
	t2 := t * t
	return c.P0.Mul(mt2 * mt).
		Add(c.P1.Mul(3 * mt2 * t)).
		Add(c.P2.Mul(3 * mt * t2)).
		Add(c.P3.Mul(t2 * t))
}

// Subdivide splits the curve at t=0.5 using de Casteljau's algorithm.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)
	return CubicBez{c.P0, p01, p012, mid}, CubicBez{mid, p123, p23, c.P3}
}

// Tangent returns the (unnormalized) derivative at parameter t.
func (c CubicBez) Tangent(t float64) Point {
	mt := 1 - t
	d0 := c.P1.Sub(c.P0).Mul(3 * mt * mt)
	d1 := c.P2.Sub(c.P1).Mul(6 * mt * t)
	d2 := c.P3.Sub(c.P2).Mul(3 * t * t)
	return d0.Add(d1).Add(d2)
}

// flatness returns the maximum distance of the control points from
// the chord P0-P3, an upper bound on the curve's deviation from it.
func (c CubicBez) flatness() float64 {
	d1 := distPointToLine(c.P1, c.P0, c.P3)
	d2 := distPointToLine(c.P2, c.P0, c.P3)
	return math.Max(d1, d2)
}

// Flatten appends a polyline approximation of the curve to out,
// excluding the start point P0. Recursion depth is bounded; the
// tolerance is the maximum chord deviation.
func (c CubicBez) Flatten(tolerance float64, out []Point) []Point {
	return c.flattenRec(tolerance, 0, out)
}

func (c CubicBez) flattenRec(tolerance float64, depth int, out []Point) []Point {
	const maxDepth = 16
	if depth >= maxDepth || c.flatness() <= tolerance {
		return append(out, c.P3)
	}
	left, right := c.Subdivide()
	out = left.flattenRec(tolerance, depth+1, out)
	return right.flattenRec(tolerance, depth+1, out)
}

// BoundingBox returns a conservative bounding box using the
// control-polygon hull property.
func (c CubicBez) BoundingBox() Rect {
	return NewRect(c.P0, c.P3).expand(c.P1).expand(c.P2)
}

// distPointToLine returns the perpendicular distance from p to the
// infinite line through a and b. Degenerates to point distance when
// a and b coincide.
func distPointToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	length := ab.Length()
	if length == 0 {
		return p.Distance(a)
	}
	return math.Abs(ab.Cross(p.Sub(a))) / length
}

// arcToCubic converts a circular arc into a single cubic Bezier.
// The arc starts at from with unit tangent tanFrom, ends at to with
// unit tangent tanTo, and sweeps the angle sweep (radians, < pi).
// radius is the arc radius; the standard kappa construction is used.
func arcToCubic(from, to Point, tanFrom, tanTo Point, radius, sweep float64) CubicBez {
	// Handle length for a cubic approximating an arc of the given sweep.
	h := 4.0 / 3.0 * math.Tan(sweep/4) * radius
	return CubicBez{
		P0: from,
		P1: from.Add(tanFrom.Mul(h)),
		P2: to.Sub(tanTo.Mul(h)),
		P3: to,
	}
}
