package pipeline

import (
	"bytes"
	"fmt"

	gridio "github.com/tue-alga/Gridmap-sub002/pkg/io"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/render/grid"
	"github.com/tue-alga/Gridmap-sub002/pkg/render/nodelink"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// Render generates output artifacts in the requested formats.
func Render(g *mosaic.Grid, m *subdivision.Map, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatCoords:
			var buf bytes.Buffer
			err = g.WriteCoordinates(&buf)
			data = buf.Bytes()
		case FormatJSON:
			var buf bytes.Buffer
			err = gridio.WriteJSON(g, m, &buf)
			data = buf.Bytes()
		case FormatSVG:
			data = grid.RenderSVG(g, gridOptions(m, opts)...)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(g.Dual(), dotOptions(m)))
		case FormatDualSVG:
			data, err = nodelink.RenderSVG(nodelink.ToDOT(g.Dual(), dotOptions(m)))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func gridOptions(m *subdivision.Map, opts Options) []grid.SVGOption {
	out := []grid.SVGOption{grid.WithMap(m)}
	if opts.Shapes {
		out = append(out, grid.WithShapes())
	}
	if opts.Diagnostics {
		out = append(out, grid.WithDiagnostics())
	}
	if opts.CellSize > 0 {
		out = append(out, grid.WithCellSize(opts.CellSize))
	}
	return out
}

func dotOptions(m *subdivision.Map) nodelink.Options {
	return nodelink.Options{Map: m, Detailed: true, HighlightCuts: true}
}
