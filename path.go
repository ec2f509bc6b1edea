package golfsvg

// PathElement represents a single element in an output path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a straight segment to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve carrying its two control points.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is the emitted form of a repaired outline: a sequence of straight
// and curved elements. It is what the SVG emission layer serializes.
type Path struct {
	elements []PathElement
	start    Point // starting point of current subpath
	current  Point // current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(pt Point) {
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a straight segment to a point.
func (p *Path) LineTo(pt Point) {
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve to pt with control points c1, c2.
func (p *Path) CubicTo(c1, c2, pt Point) {
	p.elements = append(p.elements, CubicTo{Control1: c1, Control2: c2, Point: pt})
	p.current = pt
}

// Close closes the current subpath back to its starting point.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Empty reports whether the path has no elements.
func (p *Path) Empty() bool {
	return len(p.elements) == 0
}

// Flatten converts the path to a polyline with the given chord tolerance.
// Subpath boundaries are not preserved; repair paths have one subpath.
func (p *Path) Flatten(tolerance float64) []Point {
	var out []Point
	var start Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			start = e.Point
			out = append(out, e.Point)
		case LineTo:
			out = append(out, e.Point)
		case CubicTo:
			var cur Point
			if len(out) > 0 {
				cur = out[len(out)-1]
			}
			c := CubicBez{P0: cur, P1: e.Control1, P2: e.Control2, P3: e.Point}
			out = c.Flatten(tolerance, out)
		case Close:
			if len(out) > 0 && out[len(out)-1] != start {
				out = append(out, start)
			}
		}
	}
	return out
}

// Reversed returns a copy of the path traversed in the opposite
// direction, flipping its winding. Cubic control points swap roles.
// Multipolygon inner rings are emitted reversed so holes cut correctly
// under either fill rule.
func (p *Path) Reversed() *Path {
	out := NewPath()
	var anchors []Point
	var segs []PathElement
	closed := false
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			anchors = append(anchors[:0], e.Point)
			segs = segs[:0]
			closed = false
		case LineTo:
			anchors = append(anchors, e.Point)
			segs = append(segs, e)
		case CubicTo:
			anchors = append(anchors, e.Point)
			segs = append(segs, e)
		case Close:
			closed = true
		}
	}
	if len(anchors) == 0 {
		return out
	}

	// emit walks segs[i] backward, ending at its original start point.
	emit := func(i int) {
		switch e := segs[i].(type) {
		case LineTo:
			out.LineTo(anchors[i])
		case CubicTo:
			out.CubicTo(e.Control2, e.Control1, anchors[i])
		}
	}

	if closed {
		out.MoveTo(anchors[0])
		if last := anchors[len(anchors)-1]; last != anchors[0] {
			out.LineTo(last) // the implicit closing segment, reversed
		}
		for i := len(segs) - 1; i > 0; i-- {
			emit(i)
		}
		// The first segment reversed becomes the closing segment; only
		// a curve needs explicit emission, Z covers a straight one.
		if c, ok := segs[0].(CubicTo); ok {
			out.CubicTo(c.Control2, c.Control1, anchors[0])
		}
		out.Close()
		return out
	}
	out.MoveTo(anchors[len(anchors)-1])
	for i := len(segs) - 1; i >= 0; i-- {
		emit(i)
	}
	return out
}

// SignedArea returns the signed area enclosed by the path using Green's
// theorem, exact for straight and cubic elements. Positive means
// counter-clockwise in the shoelace sense.
func (p *Path) SignedArea() float64 {
	var area float64
	var start, cur Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			start = e.Point
			cur = e.Point
		case LineTo:
			area += lineArea(cur, e.Point)
			cur = e.Point
		case CubicTo:
			area += cubicArea(cur, e.Control1, e.Control2, e.Point)
			cur = e.Point
		case Close:
			area += lineArea(cur, start)
			cur = start
		}
	}
	return area
}

// lineArea is the Green's theorem contribution of a straight segment.
func lineArea(p0, p1 Point) float64 {
	return 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
}

// cubicArea is the Green's theorem contribution of a cubic segment,
// from the closed-form integral of x dy - y dx over the curve.
func cubicArea(p0, p1, p2, p3 Point) float64 {
	a := p0.Cross(p1)
	b := p1.Cross(p2)
	c := p2.Cross(p3)
	d := p0.Cross(p2)
	e := p1.Cross(p3)
	f := p0.Cross(p3)
	return (6*a + 3*b + 6*c + 3*d + 3*e + f) / 20
}

// BoundingBox returns the bounding box of the path. Control points are
// included, which is conservative for cubic elements.
func (p *Path) BoundingBox() Rect {
	var bbox Rect
	first := true
	add := func(pt Point) {
		if first {
			bbox = Rect{Min: pt, Max: pt}
			first = false
			return
		}
		bbox = bbox.expand(pt)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	return bbox
}
