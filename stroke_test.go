package golfsvg

import "testing"

func checkOutline(t *testing.T, got, want []Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("outline has %d points, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !pointsEqual(got[i], want[i], 1e-9) {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStrokeToPath_SingleSegmentButt(t *testing.T) {
	got := StrokeToPath([]Point{{0, 0}, {10, 0}}, 2, CapButt)
	checkOutline(t, got, []Point{{0, 1}, {10, 1}, {10, -1}, {0, -1}})
}

func TestStrokeToPath_SingleSegmentSquare(t *testing.T) {
	got := StrokeToPath([]Point{{0, 0}, {10, 0}}, 2, CapSquare)
	checkOutline(t, got, []Point{{-1, 1}, {11, 1}, {11, -1}, {-1, -1}})
}

func TestStrokeToPath_MiterJoint(t *testing.T) {
	got := StrokeToPath([]Point{{0, 0}, {10, 0}, {10, 10}}, 2, CapButt)
	checkOutline(t, got, []Point{
		{0, 1}, {9, 1}, {9, 10},
		{11, 10}, {11, -1}, {0, -1},
	})
}

func TestStrokeToPath_StraightJoint(t *testing.T) {
	// Collinear joint needs no miter; both sides stay parallel.
	got := StrokeToPath([]Point{{0, 0}, {5, 0}, {10, 0}}, 2, CapButt)
	checkOutline(t, got, []Point{
		{0, 1}, {5, 1}, {10, 1},
		{10, -1}, {5, -1}, {0, -1},
	})
}

func TestStrokeToPath_Degenerate(t *testing.T) {
	if got := StrokeToPath([]Point{{0, 0}}, 2, CapButt); got != nil {
		t.Errorf("single point gave %v", got)
	}
	if got := StrokeToPath([]Point{{0, 0}, {10, 0}}, 0, CapButt); got != nil {
		t.Errorf("zero width gave %v", got)
	}
	if got := StrokeToPath([]Point{{1, 1}, {1, 1}, {1, 1}}, 2, CapButt); got != nil {
		t.Errorf("coincident points gave %v", got)
	}
}

func TestStrokeToPath_SkipsCoincidentRun(t *testing.T) {
	// A repeated point in the middle must not produce a zero-length
	// segment or NaN joints.
	got := StrokeToPath([]Point{{0, 0}, {5, 0}, {5, 0}, {10, 0}}, 2, CapButt)
	checkOutline(t, got, []Point{
		{0, 1}, {5, 1}, {10, 1},
		{10, -1}, {5, -1}, {0, -1},
	})
}
