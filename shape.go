package golfsvg

// Piece is one span of a repaired outline: either a straight remainder
// of an original segment or a replacement curve. Vertex ties the piece
// back to the normalized ring (the segment's start vertex for lines,
// the replaced corner for curves) so diagnostics can name vertex ranges.
type Piece struct {
	Cubic        bool
	Start, End   Point
	Ctrl1, Ctrl2 Point // valid when Cubic
	Vertex       int
}

// Shape is a repaired outline: straight and curved pieces in path order.
// For closed shapes the last piece ends where the first begins.
type Shape struct {
	Category Category
	Closed   bool
	Pieces   []Piece
}

// Path converts the shape to its emitted element form.
func (s *Shape) Path() *Path {
	p := NewPath()
	if len(s.Pieces) == 0 {
		return p
	}
	p.MoveTo(s.Pieces[0].Start)
	for i, pc := range s.Pieces {
		last := i == len(s.Pieces)-1
		if pc.Cubic {
			p.CubicTo(pc.Ctrl1, pc.Ctrl2, pc.End)
		} else if !(s.Closed && last) {
			p.LineTo(pc.End)
		}
	}
	if s.Closed {
		p.Close()
	}
	return p
}

// SignedArea returns the signed area enclosed by the shape.
func (s *Shape) SignedArea() float64 {
	return s.Path().SignedArea()
}

// Flatten returns a polyline approximation of the shape with the given
// chord tolerance. For closed shapes the final point repeats the first.
func (s *Shape) Flatten(tolerance float64) []Point {
	pts, _ := s.flattenIndexed(tolerance)
	return pts
}

// flattenIndexed flattens the shape and reports, for each resulting
// segment i (pts[i] to pts[i+1]), the ring vertex that owns it. The
// owner map lets the detector skip pairs born from the same corner and
// lets retries name the vertices to relax.
func (s *Shape) flattenIndexed(tolerance float64) (pts []Point, owner []int) {
	if len(s.Pieces) == 0 {
		return nil, nil
	}
	pts = append(pts, s.Pieces[0].Start)
	for _, pc := range s.Pieces {
		before := len(pts)
		if pc.Cubic {
			c := CubicBez{P0: pc.Start, P1: pc.Ctrl1, P2: pc.Ctrl2, P3: pc.End}
			pts = c.Flatten(tolerance, pts)
		} else {
			pts = append(pts, pc.End)
		}
		for range pts[before:] {
			owner = append(owner, pc.Vertex)
		}
	}
	return pts, owner
}
