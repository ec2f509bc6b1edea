package golfsvg

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// D serializes the path as an SVG path data string with four decimal
// places, the precision the downstream mesh tool expects: M/L for
// points, C for curve segments with their control points, Z for closed
// subpaths.
func (p *Path) D() string {
	var sb strings.Builder
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			fmt.Fprintf(&sb, "M %.4f %.4f ", e.Point.X, e.Point.Y)
		case LineTo:
			fmt.Fprintf(&sb, "L %.4f %.4f ", e.Point.X, e.Point.Y)
		case CubicTo:
			fmt.Fprintf(&sb, "C %.4f %.4f %.4f %.4f %.4f %.4f ",
				e.Control1.X, e.Control1.Y,
				e.Control2.X, e.Control2.Y,
				e.Point.X, e.Point.Y)
		case Close:
			sb.WriteString("Z ")
		}
	}
	return strings.TrimSuffix(sb.String(), " ")
}

// Element is one SVG feature with its stacking order. Lower Z is
// written first and drawn underneath.
type Element struct {
	Z      int
	Markup string
}

// PathElementMarkup builds a <path> element for a repaired result.
// attrs carries the raw style attributes from the style table; the
// repair status is annotated with data attributes so flagged shapes can
// be found during manual review.
func PathElementMarkup(res Result, id string, attrs map[string]string) string {
	var sb strings.Builder
	sb.WriteString(`<path d="`)
	sb.WriteString(res.Path.D())
	sb.WriteString(`"`)
	for _, k := range sortedKeys(attrs) {
		fmt.Fprintf(&sb, " %s=%q", k, attrs[k])
	}
	fmt.Fprintf(&sb, " id=%q", id)
	if res.Status != StatusClean {
		fmt.Fprintf(&sb, " data-status=%q", res.Status.String())
		if res.Reason != "" {
			fmt.Fprintf(&sb, " data-reason=%q", res.Reason)
		}
	}
	sb.WriteString("/>")
	return sb.String()
}

// WriteSVG writes a complete SVG document: header with the given canvas
// size, all elements sorted by Z (stable, so same-Z elements keep input
// order), and the footer.
func WriteSVG(w io.Writer, width, height float64, elements []Element) error {
	sorted := make([]Element, len(elements))
	copy(sorted, elements)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Z < sorted[j].Z })

	if _, err := fmt.Fprintf(w,
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"+
			"<svg xmlns=\"http://www.w3.org/2000/svg\" "+
			"xmlns:xlink=\"http://www.w3.org/1999/xlink\" "+
			"width=\"%.0f\" height=\"%.4f\" viewBox=\"0 0 %.0f %.4f\" version=\"1.1\">\n",
		width, height, width, height); err != nil {
		return err
	}
	for _, el := range sorted {
		if _, err := io.WriteString(w, el.Markup+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</svg>\n")
	return err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
