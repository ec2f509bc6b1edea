package golfsvg

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func squareFeature(cat Category, x, y, side float64) Feature {
	return Feature{
		Category: cat,
		Closed:   true,
		Points: []Point{
			{x, y}, {x + side, y}, {x + side, y + side}, {x, y + side},
		},
	}
}

func TestRepair_CleanSquare(t *testing.T) {
	res := Repair(squareFeature(CategoryFairway, 0, 0, 100), DefaultPolicy())
	if res.Status != StatusClean {
		t.Fatalf("Status = %v (%s), want clean", res.Status, res.Reason)
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", res.Attempts)
	}
	if len(res.Fillets) != 0 {
		t.Errorf("square grew %d fillets", len(res.Fillets))
	}
	if res.Inset.Verdict != InsetStable {
		t.Errorf("Inset = %v, want stable", res.Inset.Verdict)
	}
	if res.Path == nil || !strings.HasPrefix(res.Path.D(), "M ") {
		t.Errorf("missing path: %v", res.Path)
	}
}

func TestRepair_RejectsDegenerate(t *testing.T) {
	f := Feature{Category: CategoryBunker, Closed: true, Points: []Point{{0, 0}, {1, 1}}}
	res := Repair(f, DefaultPolicy())
	if res.Status != StatusRejected {
		t.Fatalf("Status = %v, want rejected", res.Status)
	}
	var degenerate *DegenerateGeometryError
	if !errors.As(res.Err, &degenerate) {
		t.Fatalf("Err = %v, want DegenerateGeometryError", res.Err)
	}
	if res.Path != nil {
		t.Error("rejected feature still produced a path")
	}
}

func TestRepair_BoundedRetries(t *testing.T) {
	// The pinch cannot be fixed by shrinking fillets (there are none, the
	// sharpness threshold is zero), so the retry loop must exhaust its
	// budget and pass the path through with a warning.
	f := Feature{
		Category: CategoryFairway,
		Closed:   true,
		Points: []Point{
			{0, 0}, {10, 0}, {5, 4.9},
			{10, 10}, {0, 10}, {5, 5.1},
		},
	}
	pol := DefaultPolicy()
	pol.SharpAngle = 0
	pol.InsetMargin = 0
	pol.MinArea = 0
	res := Repair(f, pol)
	if res.Status != StatusWarning {
		t.Fatalf("Status = %v (%s), want warning", res.Status, res.Reason)
	}
	if res.Attempts != maxIntersectionRetries+1 {
		t.Errorf("Attempts = %d, want %d", res.Attempts, maxIntersectionRetries+1)
	}
	found := false
	for _, w := range res.Warnings {
		if w.Code == WarnUnresolvedIntersection {
			found = true
		}
	}
	if !found {
		t.Errorf("no unresolved-intersection warning in %v", res.Warnings)
	}
	if res.Path == nil {
		t.Error("flagged path was dropped instead of passed through")
	}
}

func TestRepair_HourglassUnstable(t *testing.T) {
	f := Feature{
		Category: CategoryBunker,
		Closed:   true,
		Points: []Point{
			{0, 0}, {40, 9.2}, {60, 9.2}, {100, 0},
			{100, 20}, {60, 10.8}, {40, 10.8}, {0, 20},
		},
	}
	res := Repair(f, DefaultPolicyTable().Get(CategoryBunker))
	if res.Status != StatusUnstable {
		t.Fatalf("Status = %v (%s), want unstable", res.Status, res.Reason)
	}
	if res.Inset.Verdict != InsetUnstable {
		t.Errorf("Inset = %v, want unstable", res.Inset.Verdict)
	}
	found := false
	for _, w := range res.Warnings {
		if w.Code == WarnInsetInstability {
			found = true
		}
	}
	if !found {
		t.Errorf("no inset-instability warning in %v", res.Warnings)
	}
	// The reported range must bracket the waist (vertices 1,2,5,6).
	if res.Range.First > 2 || res.Range.Last < 5 {
		t.Errorf("range %v does not bracket the waist", res.Range)
	}
	if res.Path == nil {
		t.Error("unstable path was dropped instead of passed through")
	}
}

func TestRepair_Idempotent(t *testing.T) {
	pol := DefaultPolicy()
	first := Repair(squareFeature(CategoryFairway, 0, 0, 100), pol)
	if first.Status != StatusClean {
		t.Fatalf("first pass not clean: %v", first.Reason)
	}
	again := Repair(Feature{
		Category: CategoryFairway,
		Closed:   true,
		Points:   first.Path.Flatten(pol.FlattenTolerance),
	}, pol)
	if again.Status != StatusClean {
		t.Fatalf("second pass not clean: %v", again.Reason)
	}
	if got, want := again.Path.D(), first.Path.D(); got != want {
		t.Errorf("second pass moved geometry:\n%s\n%s", got, want)
	}
}

func TestRepair_FilletedIdempotent(t *testing.T) {
	// A filleted spike must stay clean when its emitted outline is fed
	// back through the pipeline: the arc chords become plain ring
	// vertices, and the corner-local near-approaches between them and
	// the flanking legs must not demote the verdict.
	pol := DefaultPolicy()
	pol.InsetMargin = 0
	pol.MinArea = 0
	f := Feature{
		Category: CategoryFairway,
		Closed:   true,
		Points: []Point{
			{0, 0}, {100, 0}, {100, 100}, {52, 100},
			{50, 20}, {48, 100}, {0, 100},
		},
	}
	first := Repair(f, pol)
	if first.Status != StatusClean {
		t.Fatalf("first pass: %v (%s)", first.Status, first.Reason)
	}
	if len(first.Fillets) != 1 {
		t.Fatalf("first pass grew %d fillets, want 1", len(first.Fillets))
	}
	again := Repair(Feature{
		Category: CategoryFairway,
		Closed:   true,
		Points:   first.Path.Flatten(pol.FlattenTolerance),
	}, pol)
	if again.Status != StatusClean {
		t.Fatalf("second pass: %v (%s)", again.Status, again.Reason)
	}
	if len(again.Fillets) != 0 {
		t.Errorf("second pass grew %d fillets", len(again.Fillets))
	}
	if again.Attempts != 1 {
		t.Errorf("second pass Attempts = %d, want 1", again.Attempts)
	}
	if len(again.Warnings) != 0 {
		t.Errorf("second pass warnings: %v", again.Warnings)
	}
}

func TestRepair_ThinStripUnstable(t *testing.T) {
	// A 100x2 strip collapses under a 1.5 inset, and the single widening
	// pass (all four corners pushed out by 0.5 along their bisectors)
	// still leaves it too thin. The surfaced diagnostics must describe
	// the widened rebuild, not the first attempt.
	f := Feature{
		Category: CategoryBunker,
		Closed:   true,
		Points:   []Point{{0, 0}, {100, 0}, {100, 2}, {0, 2}},
	}
	pol := DefaultPolicy()
	pol.SharpAngle = 0
	pol.InsetMargin = 1.5
	res := Repair(f, pol)
	if res.Status != StatusUnstable {
		t.Fatalf("Status = %v (%s), want unstable", res.Status, res.Reason)
	}
	if res.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", res.Attempts)
	}
	if res.Range.First != 0 || res.Range.Last != 3 {
		t.Errorf("Range = %v, want 0..3", res.Range)
	}
	// The widened strip measures (100+2s) x (2+2s) with s = 0.5/sqrt(2),
	// so its inverted inset retains area -(100+2s-3)*(3-(2+2s)). The
	// first attempt's inset area was -97.
	s := 0.5 / math.Sqrt2
	want := -(100 + 2*s - 3) * (3 - (2 + 2*s))
	if math.Abs(res.Inset.Area-want) > 1e-6 {
		t.Errorf("Inset.Area = %v, want %v", res.Inset.Area, want)
	}
}

func TestRepairAll_IsolatesFailures(t *testing.T) {
	feats := []Feature{
		squareFeature(CategoryFairway, 0, 0, 100),
		{Category: CategoryBunker, Closed: true, Points: []Point{{0, 0}}},
		squareFeature(CategoryGreen, 200, 0, 50),
	}
	results, err := RepairAll(context.Background(), feats, DefaultPolicyTable())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Status != StatusClean || results[2].Status != StatusClean {
		t.Errorf("healthy siblings affected: %v / %v", results[0].Status, results[2].Status)
	}
	if results[1].Status != StatusRejected {
		t.Errorf("degenerate feature status = %v", results[1].Status)
	}
	// Input order is preserved.
	if results[0].Feature.Category != CategoryFairway ||
		results[2].Feature.Category != CategoryGreen {
		t.Error("result order does not match input order")
	}
}

func TestRepairAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RepairAll(ctx, []Feature{squareFeature(CategoryFairway, 0, 0, 10)}, DefaultPolicyTable())
	if err == nil {
		t.Fatal("canceled context did not surface an error")
	}
}

func TestCategoryOverlaps(t *testing.T) {
	feats := []Feature{
		squareFeature(CategoryBunker, 0, 0, 10),
		squareFeature(CategoryBunker, 5, 5, 10),
		squareFeature(CategoryFairway, 500, 500, 100),
	}
	results, err := RepairAll(context.Background(), feats, DefaultPolicyTable())
	if err != nil {
		t.Fatal(err)
	}
	overlaps := CategoryOverlaps(results, DefaultPolicyTable())
	if len(overlaps[CategoryBunker]) == 0 {
		t.Error("overlapping bunkers not reported")
	}
	if _, ok := overlaps[CategoryFairway]; ok {
		t.Error("lone fairway reported overlaps")
	}
}
