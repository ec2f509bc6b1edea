package golfsvg

// LineCap is the end-cap shape used when a stroked polyline is
// converted to a filled outline.
type LineCap int

const (
	// CapButt ends the outline flush with the endpoint.
	CapButt LineCap = iota

	// CapSquare extends the outline past the endpoint by half the
	// stroke width.
	CapSquare
)

// straightThreshold is the dot product of adjacent segment normals
// above which a joint is treated as straight and no miter is computed.
const straightThreshold = 0.999

// StrokeToPath converts an open polyline into the closed outline of its
// stroke: each segment is offset by half the width on both sides,
// joints are mitered by intersecting the offset lines, and the two
// sides are stitched into one closed ring. Cart paths and other
// stroke-rendered ways go through this before repair so the mesh tool
// receives filled shapes instead of zero-area lines.
//
// Returns nil when fewer than two points remain to stroke.
func StrokeToPath(points []Point, width float64, capStyle LineCap) []Point {
	if len(points) < 2 || width <= 0 {
		return nil
	}
	half := width / 2

	type side struct {
		f0, f1 Point // forward side of the segment
		r0, r1 Point // reverse side
		normal Point
	}
	segs := make([]side, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		dir := points[i+1].Sub(points[i]).Normalize()
		if dir == (Point{}) {
			continue // coincident points contribute no segment
		}
		n := dir.Perp()
		off := n.Mul(half)
		segs = append(segs, side{
			f0: points[i].Add(off), f1: points[i+1].Add(off),
			r0: points[i].Sub(off), r1: points[i+1].Sub(off),
			normal: n,
		})
	}
	if len(segs) == 0 {
		return nil
	}

	forward := make([]Point, 0, len(segs)+1)
	reverse := make([]Point, 0, len(segs)+1)

	startF, startR := segs[0].f0, segs[0].r0
	if capStyle == CapSquare {
		ext := points[0].Sub(points[1]).Normalize().Mul(half)
		startF = startF.Add(ext)
		startR = startR.Add(ext)
	}
	forward = append(forward, startF)
	reverse = append(reverse, startR)

	for i := 0; i+1 < len(segs); i++ {
		in, out := segs[i], segs[i+1]
		if in.normal.Dot(out.normal) >= straightThreshold {
			forward = append(forward, out.f0)
			reverse = append(reverse, out.r0)
			continue
		}
		fpt, fok := intersectLines(in.f0, in.f1, out.f0, out.f1)
		rpt, rok := intersectLines(in.r0, in.r1, out.r0, out.r1)
		if !fok || !rok {
			forward = append(forward, out.f0)
			reverse = append(reverse, out.r0)
			continue
		}
		forward = append(forward, fpt)
		reverse = append(reverse, rpt)
	}

	endF, endR := segs[len(segs)-1].f1, segs[len(segs)-1].r1
	if capStyle == CapSquare {
		last := len(points) - 1
		ext := points[last].Sub(points[last-1]).Normalize().Mul(half)
		endF = endF.Add(ext)
		endR = endR.Add(ext)
	}
	forward = append(forward, endF)
	reverse = append(reverse, endR)

	// Walk the forward side out and the reverse side back.
	outline := make([]Point, 0, len(forward)+len(reverse))
	outline = append(outline, forward...)
	for i := len(reverse) - 1; i >= 0; i-- {
		outline = append(outline, reverse[i])
	}
	return outline
}
