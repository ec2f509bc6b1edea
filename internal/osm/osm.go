// Package osm extracts golf-course geometry from OpenStreetMap XML
// exports and projects it into canvas coordinates. It is the input
// collaborator of the repair pipeline: the core never parses XML or
// touches lat/long itself.
package osm

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/fairwaylabs/golfsvg"
)

// Bounds is the <bounds/> element of an OSM export.
type Bounds struct {
	MinLat float64 `xml:"minlat,attr"`
	MaxLat float64 `xml:"maxlat,attr"`
	MinLon float64 `xml:"minlon,attr"`
	MaxLon float64 `xml:"maxlon,attr"`
}

// Node is a single OSM node with its position.
type Node struct {
	ID  int64   `xml:"id,attr"`
	Lat float64 `xml:"lat,attr"`
	Lon float64 `xml:"lon,attr"`
}

// Ref is a node reference inside a way.
type Ref struct {
	ID int64 `xml:"ref,attr"`
}

// Tag is a key/value tag on a way or relation.
type Tag struct {
	K string `xml:"k,attr"`
	V string `xml:"v,attr"`
}

// Way is an ordered node sequence. A way whose first and last node
// references match is a closed ring.
type Way struct {
	ID   int64 `xml:"id,attr"`
	Refs []Ref `xml:"nd"`
	Tags []Tag `xml:"tag"`
}

// Closed reports whether the way's first and last node references match.
func (w Way) Closed() bool {
	return len(w.Refs) > 2 && w.Refs[0].ID == w.Refs[len(w.Refs)-1].ID
}

// Member is one member of a relation.
type Member struct {
	Type string `xml:"type,attr"`
	Ref  int64  `xml:"ref,attr"`
	Role string `xml:"role,attr"`
}

// Relation groups ways, e.g. multipolygons with outer and inner rings.
type Relation struct {
	ID      int64    `xml:"id,attr"`
	Members []Member `xml:"member"`
	Tags    []Tag    `xml:"tag"`
}

// IsMultipolygon reports whether the relation is tagged type=multipolygon.
func (r Relation) IsMultipolygon() bool {
	for _, t := range r.Tags {
		if t.K == "type" && t.V == "multipolygon" {
			return true
		}
	}
	return false
}

// File is a decoded OSM export.
type File struct {
	XMLName   xml.Name   `xml:"osm"`
	Bounds    []Bounds   `xml:"bounds"`
	Nodes     []Node     `xml:"node"`
	Ways      []Way      `xml:"way"`
	Relations []Relation `xml:"relation"`

	nodeByID map[int64]Node
	wayByID  map[int64]Way
}

// Decode parses an OSM XML document and indexes its nodes and ways.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("osm: decoding XML: %w", err)
	}
	f.index()
	golfsvg.Logger().Info("osm: decoded export",
		"nodes", len(f.Nodes), "ways", len(f.Ways), "relations", len(f.Relations))
	return &f, nil
}

// Load reads and decodes an OSM export file.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("osm: opening %s: %w", path, err)
	}
	defer fh.Close()
	return Decode(fh)
}

func (f *File) index() {
	f.nodeByID = make(map[int64]Node, len(f.Nodes))
	for _, n := range f.Nodes {
		f.nodeByID[n.ID] = n
	}
	f.wayByID = make(map[int64]Way, len(f.Ways))
	for _, w := range f.Ways {
		f.wayByID[w.ID] = w
	}
}

// Way returns the way with the given ID.
func (f *File) Way(id int64) (Way, bool) {
	w, ok := f.wayByID[id]
	return w, ok
}

// Projection maps lon/lat onto an SVG canvas of the given pixel width.
// The height follows from the aspect ratio of the export bounds, with
// the latitude scale corrected by cos(average latitude) so shapes keep
// their proportions. Y grows downward (canvas convention).
type Projection struct {
	Width, Height  float64
	minLon, minLat float64
	xScale, yScale float64
}

// NewProjection builds the projection for the file's bounds. Exports
// carry exactly one <bounds/> element; anything else is an error.
func (f *File) NewProjection(width float64) (Projection, error) {
	if len(f.Bounds) != 1 {
		return Projection{}, fmt.Errorf("osm: expected exactly one bounds element, got %d", len(f.Bounds))
	}
	b := f.Bounds[0]
	if b.MaxLon <= b.MinLon || b.MaxLat <= b.MinLat {
		return Projection{}, fmt.Errorf("osm: degenerate bounds %+v", b)
	}
	xScale := width / (b.MaxLon - b.MinLon)
	avgLat := (b.MinLat + b.MaxLat) / 2
	yScale := xScale / math.Cos(avgLat*math.Pi/180)
	return Projection{
		Width:  width,
		Height: yScale * (b.MaxLat - b.MinLat),
		minLon: b.MinLon,
		minLat: b.MinLat,
		xScale: xScale,
		yScale: yScale,
	}, nil
}

// Point projects a lon/lat pair into canvas coordinates.
func (p Projection) Point(lon, lat float64) golfsvg.Point {
	return golfsvg.Point{
		X: (lon - p.minLon) * p.xScale,
		Y: p.Height - (lat-p.minLat)*p.yScale,
	}
}

// WayPoints resolves a way's node references into projected canvas
// points. Closed ways keep the duplicate closing point out of the
// result; the repair normalizer treats first and last as connected.
// Ways referencing missing nodes fail, matching the strictness of the
// upstream converter.
func (f *File) WayPoints(w Way, proj Projection) ([]golfsvg.Point, error) {
	refs := w.Refs
	if w.Closed() {
		refs = refs[:len(refs)-1]
	}
	pts := make([]golfsvg.Point, 0, len(refs))
	for _, ref := range refs {
		n, ok := f.nodeByID[ref.ID]
		if !ok {
			return nil, fmt.Errorf("osm: way %d references missing node %d", w.ID, ref.ID)
		}
		pts = append(pts, proj.Point(n.Lon, n.Lat))
	}
	return pts, nil
}

// RingSet is a multipolygon resolved to its outer and inner rings in
// canvas coordinates.
type RingSet struct {
	Relation int64
	Outer    [][]golfsvg.Point
	Inner    [][]golfsvg.Point
}

// MultipolygonRings resolves a multipolygon relation's member ways into
// projected rings. Members referencing missing ways are skipped with a
// warning, matching the lenient behavior of the upstream converter for
// partial exports.
func (f *File) MultipolygonRings(rel Relation, proj Projection) RingSet {
	rs := RingSet{Relation: rel.ID}
	for _, m := range rel.Members {
		if m.Type != "way" || (m.Role != "outer" && m.Role != "inner") {
			continue
		}
		w, ok := f.wayByID[m.Ref]
		if !ok {
			golfsvg.Logger().Warn("osm: relation references missing way",
				"relation", rel.ID, "way", m.Ref)
			continue
		}
		pts, err := f.WayPoints(w, proj)
		if err != nil {
			golfsvg.Logger().Warn("osm: skipping relation member",
				"relation", rel.ID, "way", m.Ref, "err", err)
			continue
		}
		if m.Role == "outer" {
			rs.Outer = append(rs.Outer, pts)
		} else {
			rs.Inner = append(rs.Inner, pts)
		}
	}
	return rs
}
