package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

type document struct {
	Lattice string         `json:"lattice"`
	Regions []region       `json:"regions"`
	Summary mosaic.Summary `json:"summary"`
}

type region struct {
	ID          int     `json:"id"`
	Label       string  `json:"label,omitempty"`
	Cells       [][]int `json:"cells"`
	Shape       [][]int `json:"shape"`
	Translation []int   `json:"translation"`
}

func components(cs []lattice.Coord) [][]int {
	out := make([][]int, len(cs))
	for i, c := range cs {
		out[i] = c.Components()
	}
	return out
}

// WriteJSON encodes g as JSON and writes it to w. Labels are taken from m,
// which may be nil.
func WriteJSON(g *mosaic.Grid, m *subdivision.Map, w io.Writer) error {
	out := document{
		Lattice: g.Lattice().String(),
		Regions: make([]region, len(g.Regions())),
		Summary: g.Summarize(),
	}
	for i, r := range g.Regions() {
		rd := region{
			ID:          r.ID(),
			Cells:       components(r.Cells()),
			Shape:       components(r.Shape().Cells()),
			Translation: r.Shape().Translation().Components(),
		}
		if m != nil && r.ID() < len(m.Faces) {
			rd.Label = m.Faces[r.ID()].Label
		}
		out.Regions[i] = rd
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *mosaic.Grid, m *subdivision.Map, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, m, f)
}

// ExportCoordinates writes g as coordinate records to path.
func ExportCoordinates(g *mosaic.Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := g.WriteCoordinates(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
