// Package grid renders a mosaic grid as SVG.
//
// Every occupied cell becomes one lattice polygon filled with its region's
// colour. Options add region labels, guiding-shape outlines, and markers
// for hole and alley cells.
package grid

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/render"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

const (
	defaultCellSize = 20.0
	margin          = 1.0
	holeColor       = "#d9d9d9"
	alleyColor      = "#f4a582"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	m           *subdivision.Map
	cellSize    float64
	shapes      bool
	diagnostics bool
}

// WithMap labels regions with the face labels of m.
func WithMap(m *subdivision.Map) SVGOption { return func(r *svgRenderer) { r.m = m } }

// WithShapes outlines the guiding shapes.
func WithShapes() SVGOption { return func(r *svgRenderer) { r.shapes = true } }

// WithDiagnostics marks hole and alley cells.
func WithDiagnostics() SVGOption { return func(r *svgRenderer) { r.diagnostics = true } }

// WithCellSize sets the distance between adjacent cell centers in pixels.
func WithCellSize(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.cellSize = px
		}
	}
}

// frame maps lattice points to pixels, flipping the y axis.
type frame struct {
	minX, maxY float64
	width      float64
	height     float64
	scale      float64
}

func (f frame) point(p lattice.Point) (float64, float64) {
	return (p.X - f.minX + margin) * f.scale, (f.maxY - p.Y + margin) * f.scale
}

func newFrame(kind lattice.Kind, cells []lattice.Coord, scale float64) frame {
	if len(cells) == 0 {
		return frame{width: 2 * margin * scale, height: 2 * margin * scale, scale: scale}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range cells {
		for _, p := range kind.Polygon(c) {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	return frame{
		minX:   minX,
		maxY:   maxY,
		width:  (maxX - minX + 2*margin) * scale,
		height: (maxY - minY + 2*margin) * scale,
		scale:  scale,
	}
}

// RenderSVG draws g.
func RenderSVG(g *mosaic.Grid, opts ...SVGOption) []byte {
	r := svgRenderer{cellSize: defaultCellSize}
	for _, opt := range opts {
		opt(&r)
	}

	kind := g.Lattice()
	colors := render.Palette(g.Dual())

	var holes, alleys []lattice.Coord
	if r.diagnostics {
		for _, h := range g.Holes() {
			holes = append(holes, h...)
		}
		alleys = g.Alleys()
	}

	extent := append(g.Occupied(), holes...)
	if r.shapes {
		for _, reg := range g.Regions() {
			extent = append(extent, reg.Shape().Cells()...)
		}
	}
	f := newFrame(kind, extent, r.cellSize)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.width, f.height, f.width, f.height)

	for _, reg := range g.Regions() {
		fmt.Fprintf(&buf, `  <g id="region-%d" fill="%s" stroke="#ffffff" stroke-width="1">`+"\n", reg.ID(), colors[reg.ID()])
		for _, c := range reg.Cells() {
			writePolygon(&buf, f, kind, c, "")
		}
		buf.WriteString("  </g>\n")
	}

	if r.diagnostics {
		for _, c := range holes {
			writePolygon(&buf, f, kind, c, fmt.Sprintf(`class="hole" fill="%s"`, holeColor))
		}
		for _, c := range alleys {
			writePolygon(&buf, f, kind, c, fmt.Sprintf(`class="alley" fill="%s"`, alleyColor))
		}
	}

	if r.shapes {
		for _, reg := range g.Regions() {
			fmt.Fprintf(&buf, `  <g id="shape-%d" fill="none" stroke="#333333" stroke-width="1" stroke-dasharray="3,2">`+"\n", reg.ID())
			for _, c := range reg.Shape().Cells() {
				writePolygon(&buf, f, kind, c, "")
			}
			buf.WriteString("  </g>\n")
		}
	}

	if r.m != nil {
		for _, reg := range g.Regions() {
			if reg.Size() == 0 || reg.ID() >= len(r.m.Faces) {
				continue
			}
			x, y := f.point(reg.ContinuousBarycenter())
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.1f">%s</text>`+"\n",
				x, y, r.cellSize*0.6, html.EscapeString(r.m.Faces[reg.ID()].Label))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writePolygon(buf *bytes.Buffer, f frame, kind lattice.Kind, c lattice.Coord, attrs string) {
	pts := kind.Polygon(c)
	parts := make([]string, len(pts))
	for i, p := range pts {
		x, y := f.point(p)
		parts[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}
	if attrs != "" {
		attrs = " " + attrs
	}
	fmt.Fprintf(buf, `    <polygon points="%s"%s/>`+"\n", strings.Join(parts, " "), attrs)
}
