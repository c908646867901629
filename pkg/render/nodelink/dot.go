package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/render"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Map supplies labels, weights and positions. May be nil.
	Map *subdivision.Map
	// Detailed adds weight and degree to node labels.
	Detailed bool
	// HighlightCuts draws cut edges bold.
	HighlightCuts bool
}

// ToDOT converts d to Graphviz DOT. With a map, nodes are pinned at the
// face centroids and the graph should be laid out with neato.
func ToDOT(d *dual.WeakDual, opts Options) string {
	colors := render.Palette(d)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Map != nil {
		buf.WriteString("  layout=neato;\n")
	}
	buf.WriteString("  node [shape=circle, style=filled, fontsize=14];\n")
	buf.WriteString("\n")

	for v := range d.Len() {
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(d, v, opts)),
			fmt.Sprintf("fillcolor=%q", colors[v]),
		}
		if opts.Map != nil && v < len(opts.Map.Faces) {
			c := opts.Map.Faces[v].Centroid
			attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", c.X, c.Y))
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v, strings.Join(attrs, ", "))
	}

	cut := make(map[dual.Edge]bool)
	if opts.HighlightCuts {
		for _, e := range d.CutEdges() {
			cut[e] = true
		}
	}
	buf.WriteString("\n")
	for _, e := range d.Edges() {
		if cut[e] {
			fmt.Fprintf(&buf, "  %d -- %d [penwidth=3];\n", e.U, e.V)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(d *dual.WeakDual, v int, opts Options) string {
	label := strconv.Itoa(v)
	var weight float64
	if opts.Map != nil && v < len(opts.Map.Faces) {
		f := opts.Map.Faces[v]
		weight = f.Weight
		if f.Label != "" {
			label = f.Label
		}
	}
	if !opts.Detailed {
		return label
	}
	return fmt.Sprintf("%s\nweight: %g\ndegree: %d", label, weight, d.Degree(v))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose
// viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
