package golfsvg

import (
	"image/color"
	"testing"
)

func TestRenderPreview(t *testing.T) {
	res := Repair(squareFeature(CategoryGreen, 10, 10, 30), DefaultPolicy())
	if res.Status != StatusClean {
		t.Fatalf("fixture not clean: %v", res.Reason)
	}
	colors := map[Category]color.Color{
		CategoryGreen: color.RGBA{R: 0x20, G: 0xc0, B: 0x20, A: 0xff},
	}
	img := RenderPreview([]Result{res}, 50, 50, colors)

	// Inside the square gets the category color, outside stays white.
	r, g, b, _ := img.At(25, 25).RGBA()
	if !(g > r && g > b) {
		t.Errorf("interior pixel not green: %v %v %v", r, g, b)
	}
	r, g, b, _ = img.At(2, 2).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("exterior pixel not white: %v %v %v", r, g, b)
	}
}

func TestRenderPreview_SkipsRejected(t *testing.T) {
	rejected := Repair(Feature{
		Category: CategoryBunker,
		Closed:   true,
		Points:   []Point{{0, 0}},
	}, DefaultPolicy())
	img := RenderPreview([]Result{rejected}, 20, 20, nil)
	for _, xy := range [][2]int{{5, 5}, {10, 10}, {19, 19}} {
		r, g, b, _ := img.At(xy[0], xy[1]).RGBA()
		if r != 0xffff || g != 0xffff || b != 0xffff {
			t.Fatalf("rejected result painted pixel %v", xy)
		}
	}
}

func TestRenderPreview_DefaultColor(t *testing.T) {
	res := Repair(squareFeature(CategoryWater, 5, 5, 10), DefaultPolicy())
	img := RenderPreview([]Result{res}, 20, 20, nil)
	r, g, b, _ := img.At(10, 10).RGBA()
	if r == 0xffff && g == 0xffff && b == 0xffff {
		t.Error("uncolored category left no mark")
	}
	if r != g || g != b {
		t.Errorf("fallback color is not gray: %v %v %v", r, g, b)
	}
}
