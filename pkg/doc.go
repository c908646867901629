// Package pkg provides the libraries of the mosaic cartogram engine.
//
// # Overview
//
// A mosaic cartogram draws every face of a map as a connected region of
// grid cells, hexagons or squares, whose number is proportional to the
// face's weight. Regions of adjacent faces touch; regions of non-adjacent
// faces do not. The engine starts from a rough cell assignment and improves
// it by local search. The pkg directory is organized into four areas:
//
//  1. Geometry - [lattice] coordinates and the [mosaic] grid of regions
//  2. Search - [moves], [dual] separators, [layout] drivers, [heuristic], [polish] and [flow]
//  3. Input/Output - [subdivision] problem files, [io] exports, [render] drawings
//  4. Infrastructure - [pipeline], [cache], [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	problem.toml (faces, weights, adjacency)
//	         ↓
//	    [subdivision] package (map + weak dual)
//	         ↓
//	    [mosaic] package (initial grid from coordinate records or centroids)
//	         ↓
//	    [heuristic] package (slide → iterate → fill holes → fill alleys → polish)
//	         ↓
//	    coordinate records / JSON / SVG / DOT
//
// # Quick Start
//
//	m, _ := subdivision.Load("netherlands.toml")
//	d, _ := m.Dual()
//	g, _ := mosaic.FromMap(m)
//	_ = io.ImportCoordinates("netherlands.coords", g)
//
//	h, _ := heuristic.New(m, d, g)
//	driver, _ := layout.New(layout.NameForce, m, d, 42)
//	best, report, err := h.Execute(driver, 10, true, false)
//
//	svg := grid.RenderSVG(best, grid.WithMap(m))
//
// Most callers go through [pipeline.Runner], which adds defaults, caching
// and rendering.
//
// # Testing
//
//	go test ./pkg/...                  # All tests
//	go test ./pkg/heuristic/...        # Specific package
package pkg
