package osm

import (
	"math"
	"strings"
	"testing"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
 <bounds minlat="50.0000000" minlon="8.0000000" maxlat="50.0100000" maxlon="8.0200000"/>
 <node id="1" lat="50.0010000" lon="8.0010000"/>
 <node id="2" lat="50.0010000" lon="8.0050000"/>
 <node id="3" lat="50.0050000" lon="8.0050000"/>
 <node id="4" lat="50.0050000" lon="8.0010000"/>
 <node id="5" lat="50.0080000" lon="8.0100000"/>
 <node id="6" lat="50.0090000" lon="8.0150000"/>
 <way id="100">
  <nd ref="1"/>
  <nd ref="2"/>
  <nd ref="3"/>
  <nd ref="4"/>
  <nd ref="1"/>
  <tag k="golf" v="green"/>
 </way>
 <way id="101">
  <nd ref="5"/>
  <nd ref="6"/>
  <tag k="golf" v="cartpath"/>
 </way>
 <way id="102">
  <nd ref="1"/>
  <nd ref="2"/>
  <nd ref="99"/>
 </way>
 <relation id="200">
  <member type="way" ref="100" role="outer"/>
  <member type="way" ref="999" role="inner"/>
  <member type="node" ref="1" role=""/>
  <tag k="type" v="multipolygon"/>
  <tag k="golf" v="fairway"/>
 </relation>
</osm>`

func decodeSample(t *testing.T) *File {
	t.Helper()
	f, err := Decode(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestDecode(t *testing.T) {
	f := decodeSample(t)
	if len(f.Nodes) != 6 || len(f.Ways) != 3 || len(f.Relations) != 1 {
		t.Fatalf("decoded %d nodes, %d ways, %d relations",
			len(f.Nodes), len(f.Ways), len(f.Relations))
	}
	w, ok := f.Way(100)
	if !ok {
		t.Fatal("way 100 not indexed")
	}
	if !w.Closed() {
		t.Error("way 100 should be closed")
	}
	if len(w.Tags) != 1 || w.Tags[0].K != "golf" || w.Tags[0].V != "green" {
		t.Errorf("way 100 tags = %v", w.Tags)
	}
	open, _ := f.Way(101)
	if open.Closed() {
		t.Error("way 101 should be open")
	}
	if !f.Relations[0].IsMultipolygon() {
		t.Error("relation 200 should be a multipolygon")
	}
}

func TestDecode_BadXML(t *testing.T) {
	if _, err := Decode(strings.NewReader("<osm><node")); err == nil {
		t.Fatal("truncated document decoded without error")
	}
}

func TestNewProjection(t *testing.T) {
	f := decodeSample(t)
	proj, err := f.NewProjection(1000)
	if err != nil {
		t.Fatal(err)
	}
	if proj.Width != 1000 {
		t.Errorf("Width = %v", proj.Width)
	}
	// Height follows from the bounds aspect ratio with the latitude
	// correction: 1000/0.02 deg lon, 0.01 deg lat, cos(50.005 deg).
	wantHeight := 1000.0 / 0.02 * 0.01 / math.Cos(50.005*math.Pi/180)
	if math.Abs(proj.Height-wantHeight) > 1e-6 {
		t.Errorf("Height = %v, want %v", proj.Height, wantHeight)
	}

	// Corners map to canvas corners; Y grows downward.
	sw := proj.Point(8.0, 50.0)
	if math.Abs(sw.X) > 1e-9 || math.Abs(sw.Y-proj.Height) > 1e-9 {
		t.Errorf("southwest corner = %v", sw)
	}
	ne := proj.Point(8.02, 50.01)
	if math.Abs(ne.X-1000) > 1e-9 || math.Abs(ne.Y) > 1e-9 {
		t.Errorf("northeast corner = %v", ne)
	}
}

func TestNewProjection_Errors(t *testing.T) {
	var f File
	if _, err := f.NewProjection(1000); err == nil {
		t.Error("missing bounds accepted")
	}
	f.Bounds = []Bounds{{MinLat: 50, MaxLat: 50, MinLon: 8, MaxLon: 9}}
	if _, err := f.NewProjection(1000); err == nil {
		t.Error("degenerate bounds accepted")
	}
}

func TestWayPoints(t *testing.T) {
	f := decodeSample(t)
	proj, err := f.NewProjection(1000)
	if err != nil {
		t.Fatal(err)
	}

	closed, _ := f.Way(100)
	pts, err := f.WayPoints(closed, proj)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 4 {
		t.Fatalf("closed way gave %d points, want 4 without the closing duplicate", len(pts))
	}

	open, _ := f.Way(101)
	pts, err = f.WayPoints(open, proj)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 2 {
		t.Fatalf("open way gave %d points", len(pts))
	}

	broken, _ := f.Way(102)
	if _, err := f.WayPoints(broken, proj); err == nil {
		t.Fatal("missing node reference accepted")
	} else if !strings.Contains(err.Error(), "99") {
		t.Errorf("error does not name the missing node: %v", err)
	}
}

func TestMultipolygonRings(t *testing.T) {
	f := decodeSample(t)
	proj, err := f.NewProjection(1000)
	if err != nil {
		t.Fatal(err)
	}
	rs := f.MultipolygonRings(f.Relations[0], proj)
	if rs.Relation != 200 {
		t.Errorf("Relation = %d", rs.Relation)
	}
	if len(rs.Outer) != 1 || len(rs.Outer[0]) != 4 {
		t.Fatalf("Outer = %v", rs.Outer)
	}
	// The missing inner way and the node member are skipped silently.
	if len(rs.Inner) != 0 {
		t.Errorf("Inner = %v", rs.Inner)
	}
}
