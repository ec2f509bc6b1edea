package main

import (
	"context"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fairwaylabs/golfsvg"
	"github.com/fairwaylabs/golfsvg/internal/osm"
	"github.com/fairwaylabs/golfsvg/internal/style"
)

// sourceFeature pairs a repairable feature with its styling context.
// Multipolygon inner rings share the markup of their outer ring via
// the group index.
type sourceFeature struct {
	feature golfsvg.Feature
	entry   style.Entry
	id      string
	group   int  // features with the same group merge into one <path>
	inner   bool // multipolygon hole, emitted with reversed winding
}

func newConvertCmd() *cobra.Command {
	var output, preview string
	cmd := &cobra.Command{
		Use:   "convert [map.osm]",
		Short: "Repair and convert an OSM export to styled SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "map.osm"
			if len(args) == 1 {
				input = args[0]
			}
			return runConvert(cmd.Context(), input, output, preview)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "out.svg", "output SVG file")
	cmd.Flags().StringVar(&preview, "preview", "", "also write a PNG preview to this file")
	return cmd
}

func runConvert(ctx context.Context, input, output, preview string) error {
	sources, proj, table, err := extract(input)
	if err != nil {
		return err
	}

	feats := make([]golfsvg.Feature, len(sources))
	for i, s := range sources {
		feats[i] = s.feature
	}
	results, err := golfsvg.RepairAll(ctx, feats, table.Policies())
	if err != nil {
		return err
	}

	elements := buildElements(sources, results)
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	defer out.Close()
	if err := golfsvg.WriteSVG(out, proj.Width, proj.Height, elements); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	if preview != "" {
		if err := writePreview(preview, sources, results, proj); err != nil {
			return err
		}
	}

	fmt.Print(renderReport(sources, results, nil))
	return nil
}

// extract loads the style table and the OSM export and produces the
// repairable features: styled simple ways (stroke-to-path applied where
// configured) and multipolygon relation rings.
func extract(input string) ([]sourceFeature, osm.Projection, *style.Table, error) {
	table, err := style.Load(flagStyles)
	if err != nil {
		return nil, osm.Projection{}, nil, err
	}
	file, err := osm.Load(input)
	if err != nil {
		return nil, osm.Projection{}, nil, err
	}
	proj, err := file.NewProjection(flagWidth)
	if err != nil {
		return nil, osm.Projection{}, nil, err
	}

	var sources []sourceFeature
	group := 0

	for _, way := range file.Ways {
		entry, ok := table.Match(wayTags(way.Tags))
		if !ok {
			continue
		}
		pts, err := file.WayPoints(way, proj)
		if err != nil || len(pts) < 2 {
			continue
		}
		closed := way.Closed()

		if entry.StrokeToPath && !closed {
			width := entry.StrokeWidth
			if width <= 0 {
				width = 1
			}
			outline := golfsvg.StrokeToPath(pts, width, osmCap(entry.Attrs["stroke-linecap"]))
			if outline == nil {
				continue
			}
			pts = outline
			closed = true
			entry = strokeFillEntry(entry)
		}

		group++
		sources = append(sources, sourceFeature{
			feature: golfsvg.Feature{Category: entry.Category(), Points: pts, Closed: closed},
			entry:   entry,
			id:      fmt.Sprintf("way_%d_%s", way.ID, entry.Key),
			group:   group,
		})
	}

	for _, rel := range file.Relations {
		if !rel.IsMultipolygon() {
			continue
		}
		entry, ok := table.Match(wayTags(rel.Tags))
		if !ok {
			continue
		}
		rings := file.MultipolygonRings(rel, proj)
		if len(rings.Outer) == 0 {
			continue
		}
		group++
		id := fmt.Sprintf("rel_%d_%s", rel.ID, entry.Key)
		for i, ring := range append(rings.Outer, rings.Inner...) {
			sources = append(sources, sourceFeature{
				feature: golfsvg.Feature{Category: entry.Category(), Points: ring, Closed: true},
				entry:   entry,
				id:      id,
				group:   group,
				inner:   i >= len(rings.Outer),
			})
		}
	}

	return sources, proj, table, nil
}

// buildElements turns repair results into SVG elements, merging rings
// that share a group (multipolygons) into a single evenodd path.
func buildElements(sources []sourceFeature, results []golfsvg.Result) []golfsvg.Element {
	var elements []golfsvg.Element
	done := make(map[int]bool)

	for i, src := range sources {
		if done[src.group] || results[i].Err != nil {
			continue
		}
		done[src.group] = true

		members := []int{i}
		for j := i + 1; j < len(sources); j++ {
			if sources[j].group == src.group && results[j].Err == nil {
				members = append(members, j)
			}
		}

		if len(members) == 1 {
			elements = append(elements, golfsvg.Element{
				Z:      src.entry.ZOrder,
				Markup: golfsvg.PathElementMarkup(results[i], src.id, src.entry.Attrs),
			})
			continue
		}

		ds := make([]string, len(members))
		worst := results[members[0]]
		for k, j := range members {
			p := results[j].Path
			if sources[j].inner {
				p = p.Reversed() // holes wind opposite to their outer ring
			}
			ds[k] = p.D()
			if results[j].Status > worst.Status {
				worst = results[j]
			}
		}
		attrs := cloneAttrs(src.entry.Attrs)
		if _, ok := attrs["fill-rule"]; !ok {
			attrs["fill-rule"] = "evenodd"
		}
		elements = append(elements, golfsvg.Element{
			Z:      src.entry.ZOrder,
			Markup: mergedPathMarkup(strings.Join(ds, " "), worst, src.id, attrs),
		})
	}
	return elements
}

// mergedPathMarkup builds a <path> element from a pre-joined d string,
// used for multipolygons whose rings were repaired independently.
func mergedPathMarkup(d string, res golfsvg.Result, id string, attrs map[string]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<path d=%q`, d)
	for _, k := range sortedAttrKeys(attrs) {
		fmt.Fprintf(&sb, " %s=%q", k, attrs[k])
	}
	fmt.Fprintf(&sb, " id=%q", id)
	if res.Status != golfsvg.StatusClean {
		fmt.Fprintf(&sb, " data-status=%q", res.Status.String())
	}
	sb.WriteString("/>")
	return sb.String()
}

func writePreview(path string, sources []sourceFeature, results []golfsvg.Result, proj osm.Projection) error {
	colors := make(map[golfsvg.Category]color.Color)
	for _, src := range sources {
		if c, ok := parseHexColor(src.entry.Attrs["fill"]); ok {
			colors[src.feature.Category] = c
		}
	}
	img := golfsvg.RenderPreview(results, int(proj.Width), int(proj.Height)+1, colors)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// parseHexColor parses #rgb and #rrggbb colors.
func parseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	var r, g, b uint8
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, false
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, false
		}
	default:
		return color.RGBA{}, false
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, true
}

// strokeFillEntry rewrites a stroke-to-path entry's attributes: the
// outline is a filled shape now, so the stroke color becomes the fill
// and the stroke itself is removed.
func strokeFillEntry(e style.Entry) style.Entry {
	attrs := cloneAttrs(e.Attrs)
	fill := attrs["stroke"]
	if fill == "" {
		fill = "black"
	}
	attrs["fill"] = fill
	attrs["stroke"] = "none"
	attrs["stroke-width"] = "0"
	delete(attrs, "stroke-linecap")
	e.Attrs = attrs
	return e
}

func cloneAttrs(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func wayTags(tags []osm.Tag) []style.Tag {
	out := make([]style.Tag, len(tags))
	for i, t := range tags {
		out[i] = style.Tag{K: t.K, V: t.V}
	}
	return out
}

func osmCap(s string) golfsvg.LineCap {
	if strings.EqualFold(s, "square") {
		return golfsvg.CapSquare
	}
	return golfsvg.CapButt
}

func sortedAttrKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
