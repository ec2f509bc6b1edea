// Package style loads the styles.json table that drives both SVG
// styling and the per-category repair policies. The file format is the
// one shipped with the upstream OPCD toolchain: a JSON object keyed by
// "key.value" OSM tags, with // and # comment lines allowed.
package style

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fairwaylabs/golfsvg"
)

// Tag is an ordered OSM tag used for style matching.
type Tag struct {
	K, V string
}

// Entry is the resolved style for one category key.
type Entry struct {
	Key          string
	Attrs        map[string]string // remaining SVG attributes, e.g. fill, stroke
	StrokeToPath bool
	StrokeWidth  float64
	CornerRadius float64
	ZOrder       int
	Policy       golfsvg.Policy
}

// Category returns the entry key as a repair category.
func (e Entry) Category() golfsvg.Category {
	return golfsvg.Category(e.Key)
}

// Table is an immutable style lookup built once per run.
type Table struct {
	entries map[string]Entry
}

// Load reads and parses a styles.json file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("style: reading %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("style: parsing %s: %w", path, err)
	}
	return t, nil
}

// Parse parses styles.json content. Lines starting with // or # are
// comments and stripped before JSON decoding.
func Parse(data []byte) (*Table, error) {
	var clean strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		clean.WriteString(line)
		clean.WriteString("\n")
	}

	var raw map[string]map[string]any
	if err := json.Unmarshal([]byte(clean.String()), &raw); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	t := &Table{entries: make(map[string]Entry, len(raw))}
	for key, attrs := range raw {
		e, err := parseEntry(key, attrs)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		t.entries[key] = e
	}
	golfsvg.Logger().Info("style: loaded table", "entries", len(t.entries))
	return t, nil
}

// parseEntry pops the control keys off a style object; whatever remains
// passes through as SVG attributes.
func parseEntry(key string, attrs map[string]any) (Entry, error) {
	e := Entry{
		Key:    key,
		Attrs:  make(map[string]string),
		Policy: golfsvg.DefaultPolicy(),
	}

	for k, v := range attrs {
		switch k {
		case "stroke_to_path":
			e.StrokeToPath = asBool(v)
		case "corner_radius":
			r, err := asFloat(v)
			if err != nil {
				return e, fmt.Errorf("corner_radius: %w", err)
			}
			e.CornerRadius = r
			if r > 0 {
				e.Policy.FilletRadius = r
			}
		case "z-order":
			z, err := asFloat(v)
			if err != nil {
				golfsvg.Logger().Warn("style: invalid z-order, using 0", "key", key)
				continue
			}
			e.ZOrder = int(z)
		case "repair":
			obj, ok := v.(map[string]any)
			if !ok {
				return e, fmt.Errorf("repair: expected object, got %T", v)
			}
			if err := applyRepair(&e.Policy, obj); err != nil {
				return e, fmt.Errorf("repair: %w", err)
			}
		default:
			e.Attrs[k] = asString(v)
		}
	}

	if sw, ok := e.Attrs["stroke-width"]; ok {
		if w, err := strconv.ParseFloat(sw, 64); err == nil {
			e.StrokeWidth = w
		}
	}
	return e, nil
}

// applyRepair overrides policy fields from a repair object. Unknown
// keys are rejected so config typos fail loudly.
func applyRepair(pol *golfsvg.Policy, obj map[string]any) error {
	for k, v := range obj {
		if k == "mode" {
			switch asString(v) {
			case "fillet":
				pol.Mode = golfsvg.ModeFillet
			case "autosmooth":
				pol.Mode = golfsvg.ModeAutoSmooth
			default:
				return fmt.Errorf("unknown mode %q", asString(v))
			}
			continue
		}
		f, err := asFloat(v)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		switch k {
		case "epsilon":
			pol.Epsilon = f
		case "flatness":
			pol.Flatness = f
		case "sharp-angle":
			pol.SharpAngle = f
		case "fillet-radius":
			pol.FilletRadius = f
		case "radius-scale":
			pol.RadiusScale = f
		case "min-segment":
			pol.MinSegment = f
		case "min-clearance":
			pol.MinClearance = f
		case "inset-margin":
			pol.InsetMargin = f
		case "widen-margin":
			pol.WidenMargin = f
		case "min-area":
			pol.MinArea = f
		case "flatten-tolerance":
			pol.FlattenTolerance = f
		case "smooth-tightness":
			pol.SmoothTightness = f
		default:
			return fmt.Errorf("unknown key %q", k)
		}
	}
	return nil
}

// Match finds the style for a tagged feature: for each tag in order,
// "key.value" is tried first, then the bare key, mirroring the lookup
// of the upstream converter.
func (t *Table) Match(tags []Tag) (Entry, bool) {
	for _, tag := range tags {
		if e, ok := t.entries[tag.K+"."+tag.V]; ok {
			return e, true
		}
		if e, ok := t.entries[tag.K]; ok {
			return e, true
		}
	}
	return Entry{}, false
}

// Get returns the entry for an exact key.
func (t *Table) Get(key string) (Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Policies collects the repair policies of all entries into the table
// consumed by the repair pipeline.
func (t *Table) Policies() golfsvg.PolicyTable {
	out := make(golfsvg.PolicyTable, len(t.entries))
	for key, e := range t.entries {
		out[golfsvg.Category(key)] = e.Policy
	}
	return out
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(b, "true")
	default:
		return false
	}
}

func asFloat(v any) (float64, error) {
	switch f := v.(type) {
	case float64:
		return f, nil
	case string:
		return strconv.ParseFloat(f, 64)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}
