package golfsvg

import (
	"math"
	"testing"
)

func TestInsetPolygon_Square(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	off := insetPolygon(pts, 1)
	want := []Point{{1, 1}, {9, 1}, {9, 9}, {1, 9}}
	if len(off) != len(want) {
		t.Fatalf("got %d points, want %d", len(off), len(want))
	}
	for i := range want {
		if !pointsEqual(off[i], want[i], 1e-9) {
			t.Errorf("vertex %d = %v, want %v", i, off[i], want[i])
		}
	}
	if got := signedArea(off); math.Abs(got-64) > 1e-9 {
		t.Errorf("offset area = %v, want 64", got)
	}
}

func TestInsetCheck_StableSquare(t *testing.T) {
	s := lineShape(true, Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	res := InsetCheck(s, DefaultPolicy())
	if res.Verdict != InsetStable {
		t.Fatalf("Verdict = %v, want stable", res.Verdict)
	}
	if math.Abs(res.Area-81) > 1e-9 {
		t.Errorf("Area = %v, want 81", res.Area)
	}
}

func TestInsetCheck_OpenAlwaysStable(t *testing.T) {
	s := lineShape(false, Pt(0, 0), Pt(10, 0), Pt(10, 10))
	if res := InsetCheck(s, DefaultPolicy()); res.Verdict != InsetStable {
		t.Errorf("open shape Verdict = %v, want stable", res.Verdict)
	}
}

func TestInsetCheck_AreaFloor(t *testing.T) {
	// A 2x2 square insets to 1x1 with area 1, below the bunker floor.
	s := lineShape(true, Pt(0, 0), Pt(2, 0), Pt(2, 2), Pt(0, 2))
	pol := DefaultPolicy()
	pol.InsetMargin = 0.5
	pol.MinArea = 4
	res := InsetCheck(s, pol)
	if res.Verdict != InsetNeedsWidening {
		t.Fatalf("Verdict = %v, want needs-widening", res.Verdict)
	}
	if math.Abs(res.Area-1) > 1e-9 {
		t.Errorf("Area = %v, want 1", res.Area)
	}
}

func TestInsetCheck_HourglassCollapses(t *testing.T) {
	// Two lobes joined by a 1.6 unit waist; a 1.5 unit inward offset
	// crosses itself at the waist.
	s := lineShape(true,
		Pt(0, 0), Pt(40, 9.2), Pt(60, 9.2), Pt(100, 0),
		Pt(100, 20), Pt(60, 10.8), Pt(40, 10.8), Pt(0, 20),
	)
	pol := DefaultPolicy()
	pol.InsetMargin = 1.5
	pol.MinArea = 4
	res := InsetCheck(s, pol)
	if res.Verdict != InsetNeedsWidening {
		t.Fatalf("Verdict = %v, want needs-widening", res.Verdict)
	}
	if res.Range.Last <= res.Range.First {
		t.Errorf("empty offending range: %v", res.Range)
	}
}

func TestWiden_PushesOutward(t *testing.T) {
	r := closedRing(CategoryBunker, Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	before := r.SignedArea()
	out := Widen(r, VertexRange{First: 0, Last: 3}, 1)

	// The original ring is untouched.
	if r.Points[0] != Pt(0, 0) {
		t.Fatal("Widen mutated its input")
	}
	// Every corner moves diagonally outward by the margin.
	d := math.Sqrt2 / 2
	want := []Point{{-d, -d}, {10 + d, -d}, {10 + d, 10 + d}, {-d, 10 + d}}
	for i := range want {
		if !pointsEqual(out.Points[i], want[i], 1e-9) {
			t.Errorf("vertex %d = %v, want %v", i, out.Points[i], want[i])
		}
	}
	if out.SignedArea() <= before {
		t.Errorf("area did not grow: %v -> %v", before, out.SignedArea())
	}
}

func TestWiden_PartialRange(t *testing.T) {
	r := closedRing(CategoryBunker, Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	out := Widen(r, VertexRange{First: 1, Last: 2}, 1)
	if out.Points[0] != Pt(0, 0) || out.Points[3] != Pt(0, 10) {
		t.Error("vertices outside the range moved")
	}
	if out.Points[1] == r.Points[1] || out.Points[2] == r.Points[2] {
		t.Error("vertices inside the range did not move")
	}
}

func TestIndexRange(t *testing.T) {
	if vr := indexRange(nil); vr != (VertexRange{}) {
		t.Errorf("empty input gave %v", vr)
	}
	if vr := indexRange([]int{4, 1, 7, 3}); vr.First != 1 || vr.Last != 7 {
		t.Errorf("indexRange = %v, want 1..7", vr)
	}
}
