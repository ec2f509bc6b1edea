package golfsvg

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
)

// RenderPreview rasterizes repaired shapes into an RGBA image for
// visual QA of the repair output before the mesh tool runs. Shapes are
// drawn in slice order with the per-category fill colors; categories
// missing from colors use a neutral gray. Rejected results (nil path)
// are skipped.
func RenderPreview(results []Result, width, height int, colors map[Category]color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	for _, res := range results {
		if res.Path == nil || res.Path.Empty() {
			continue
		}
		c, ok := colors[res.Feature.Category]
		if !ok {
			c = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
		}
		rasterizePath(img, res.Path, c)
	}
	return img
}

// rasterizePath fills one path onto dst.
func rasterizePath(dst *image.RGBA, p *Path, c color.Color) {
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over

	open := false
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(float32(e.Point.X), float32(e.Point.Y))
			open = true
		case LineTo:
			r.LineTo(float32(e.Point.X), float32(e.Point.Y))
		case CubicTo:
			r.CubeTo(
				float32(e.Control1.X), float32(e.Control1.Y),
				float32(e.Control2.X), float32(e.Control2.Y),
				float32(e.Point.X), float32(e.Point.Y))
		case Close:
			r.ClosePath()
			open = false
		}
	}
	if open {
		r.ClosePath()
	}
	r.Draw(dst, b, image.NewUniform(c), image.Point{})
}
