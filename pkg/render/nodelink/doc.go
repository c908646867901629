// Package nodelink renders the weak dual of a map as a node-link diagram.
//
// # Usage
//
// Convert a dual to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(d, nodelink.Options{Map: m})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
//   - Map: labels nodes with face labels and places them at face centroids
//   - Detailed: adds weight and degree to every label
//   - HighlightCuts: draws cut edges bold, the edges separators act on
//
// Nodes are filled with the region colours of [render.Palette], so the
// diagram matches the grid rendering.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
