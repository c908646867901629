// Package render draws mosaic cartograms and their weak duals.
//
// # Overview
//
// Rendering happens in two subpackages:
//
//   - [grid] draws a grid as SVG, one lattice polygon per occupied cell
//   - [nodelink] draws the weak dual as a Graphviz node-link diagram
//
// Both colour regions with [Palette], so a region has the same colour in
// the cartogram and in the dual diagram:
//
//	colors := render.Palette(d)
//	svg := grid.RenderSVG(g, grid.WithMap(m))
//	dot := nodelink.ToDOT(d, nodelink.Options{Map: m})
//	dualSVG, err := nodelink.RenderSVG(dot)
//
// # Colours
//
// [Palette] colours the weak dual greedily so that adjacent regions never
// share a colour, then spreads that many hues evenly around the HCL colour
// wheel at fixed chroma and lightness.
//
// [grid]: github.com/tue-alga/Gridmap-sub002/pkg/render/grid
// [nodelink]: github.com/tue-alga/Gridmap-sub002/pkg/render/nodelink
package render
