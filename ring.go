package golfsvg

// Ring is the working form of a path inside the repair pipeline: an
// ordered point sequence with its category and closed flag. For closed
// rings the first and last points are implicitly connected and the
// closing point is never stored twice.
type Ring struct {
	Category Category
	Closed   bool
	Points   []Point
}

// NumSegments returns the number of segments in the ring.
func (r *Ring) NumSegments() int {
	n := len(r.Points)
	if n < 2 {
		return 0
	}
	if r.Closed {
		return n
	}
	return n - 1
}

// Segment returns segment i. For closed rings segment n-1 wraps from the
// last point back to the first.
func (r *Ring) Segment(i int) Line {
	n := len(r.Points)
	return Line{P0: r.Points[i], P1: r.Points[(i+1)%n]}
}

// prev and next return the cyclic neighbor indices of vertex i.
func (r *Ring) prev(i int) int {
	n := len(r.Points)
	return (i - 1 + n) % n
}

func (r *Ring) next(i int) int {
	n := len(r.Points)
	return (i + 1) % n
}

// interiorVertex reports whether vertex i has two adjacent segments.
// On open rings the endpoints have only one and cannot be filleted.
func (r *Ring) interiorVertex(i int) bool {
	if r.Closed {
		return true
	}
	return i > 0 && i < len(r.Points)-1
}

// InteriorAngle returns the wedge angle at vertex i in radians, in
// [0, pi]. A small value is a sharp spike, pi is a straight-through
// vertex. Open-ring endpoints report pi.
func (r *Ring) InteriorAngle(i int) float64 {
	if !r.interiorVertex(i) {
		return wedgeAngle(Point{}, Point{})
	}
	v := r.Points[i]
	a := r.Points[r.prev(i)].Sub(v)
	b := r.Points[r.next(i)].Sub(v)
	return wedgeAngle(a, b)
}

// SignedArea returns the shoelace signed area of the ring. Positive is
// counter-clockwise in the shoelace sense. Open rings are treated as if
// closed by a final segment.
func (r *Ring) SignedArea() float64 {
	return signedArea(r.Points)
}

// IsCCW reports whether the ring winds counter-clockwise.
func (r *Ring) IsCCW() bool {
	return r.SignedArea() > 0
}

// Reverse reverses the point order in place, flipping the winding.
func (r *Ring) Reverse() {
	for i, j := 0, len(r.Points)-1; i < j; i, j = i+1, j-1 {
		r.Points[i], r.Points[j] = r.Points[j], r.Points[i]
	}
}

// Clone returns a deep copy of the ring.
func (r *Ring) Clone() *Ring {
	pts := make([]Point, len(r.Points))
	copy(pts, r.Points)
	return &Ring{Category: r.Category, Closed: r.Closed, Points: pts}
}

// BoundingBox returns the bounding box of the ring's points.
func (r *Ring) BoundingBox() Rect {
	if len(r.Points) == 0 {
		return Rect{}
	}
	bbox := Rect{Min: r.Points[0], Max: r.Points[0]}
	for _, p := range r.Points[1:] {
		bbox = bbox.expand(p)
	}
	return bbox
}

// signedArea computes the shoelace signed area of a point ring.
func signedArea(pts []Point) float64 {
	var area float64
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].Cross(pts[j])
	}
	return area / 2
}
