// Package golfsvg repairs golf-course terrain outlines extracted from
// OpenStreetMap so they survive the polygon-inset step performed by
// downstream 3D mesh tooling.
//
// # Overview
//
// Raw OSM ways arrive as ordered point lists. Before they can be emitted as
// SVG paths for mesh generation they need geometric repair: duplicate and
// near-collinear points removed, sharp corners replaced with tangent fillet
// curves, self-intersections and near-pinches detected and relaxed, and a
// coarse simulation of the downstream inward offset run to catch shapes
// (bunkers especially) that would collapse or self-intersect once inset.
//
// # Quick Start
//
//	feats := []golfsvg.Feature{{Category: "golf.bunker", Points: pts, Closed: true}}
//	results, err := golfsvg.RepairAll(context.Background(), feats, golfsvg.DefaultPolicyTable())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range results {
//	    if r.Err != nil {
//	        continue // degenerate input, skipped
//	    }
//	    fmt.Println(r.Status, r.Path.D())
//	}
//
// # Pipeline
//
// Each feature passes through four strictly sequential stages:
//   - Normalize: dedupe, collinear collapse, canonical CCW winding
//   - Fillet (or auto-smooth): sharp corners replaced with tangent curves
//   - Detect: pairwise self-intersection and clearance scan, bounded retries
//   - Inset check: simulated inward offset validated for simplicity and area
//
// Features are independent; RepairAll fans them out across workers. Per-path
// failures are reported in the Result and never abort sibling paths.
//
// # Coordinate System
//
// Canvas coordinates: origin at top-left, X right, Y down. Winding is
// measured by the shoelace signed area; Normalize makes closed rings
// counter-clockwise in that convention so the inset direction is fixed.
package golfsvg

// Version is the current version of the library.
const Version = "0.3.0"
