// Package subdivision describes the input map of a mosaic cartogram: its
// faces with their data weights and continuous centroids, the adjacency
// between faces, and the lattice the cartogram is drawn on.
//
// Maps are loaded from TOML problem files:
//
//	lattice = "hexagonal"
//	unit_weight = 5.0
//
//	[[face]]
//	id = 0
//	label = "A"
//	weight = 10.0
//	centroid = [0.0, 0.0]
//
//	[[adjacency]]
//	faces = [0, 1]
//
// An optional [heuristic] table carries run defaults, see [Settings].
package subdivision

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
)

// Face is one face of the source subdivision.
type Face struct {
	ID       int
	Label    string
	Weight   float64
	Centroid lattice.Point
	// Shape optionally fixes the guiding-shape template. When empty the
	// template is the compact disk prefix of DesiredSize cells.
	Shape []lattice.Coord
}

// Settings holds run defaults stored alongside a problem.
type Settings struct {
	MaxNoImprove *int    `toml:"max_no_improve"`
	Finalize     *bool   `toml:"finalize"`
	ExactTiles   *bool   `toml:"exact_tiles"`
	Layout       *string `toml:"layout"`
	Seed         *int64  `toml:"seed"`
}

// Map is a planar subdivision reduced to what the cartogram engine needs.
type Map struct {
	Lattice    lattice.Kind
	UnitWeight float64
	Faces      []Face
	Adjacency  []dual.Edge
	Settings   Settings
}

// DesiredSize returns the number of cells face id should occupy:
// its weight divided by the unit weight, rounded, and at least one.
func (m *Map) DesiredSize(id int) int {
	f := m.Faces[id]
	if len(f.Shape) > 0 {
		return len(f.Shape)
	}
	n := int(math.Round(f.Weight / m.UnitWeight))
	return max(n, 1)
}

// Template returns the guiding-shape cells of face id before translation.
func (m *Map) Template(id int) []lattice.Coord {
	if s := m.Faces[id].Shape; len(s) > 0 {
		return append([]lattice.Coord(nil), s...)
	}
	return m.Lattice.Compact(m.DesiredSize(id))
}

// Dual builds the weak dual of the map.
func (m *Map) Dual() (*dual.WeakDual, error) {
	d := dual.New(len(m.Faces))
	for _, e := range m.Adjacency {
		if err := d.AddEdge(e.U, e.V); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// =============================================================================
// Loading
// =============================================================================

type problemFile struct {
	Lattice    string        `toml:"lattice"`
	UnitWeight float64       `toml:"unit_weight"`
	Faces      []faceFile    `toml:"face"`
	Adjacency  []adjacencies `toml:"adjacency"`
	Heuristic  Settings      `toml:"heuristic"`
}

type faceFile struct {
	ID       int       `toml:"id"`
	Label    string    `toml:"label"`
	Weight   float64   `toml:"weight"`
	Centroid []float64 `toml:"centroid"`
	Shape    [][]int   `toml:"shape"`
}

type adjacencies struct {
	Faces []int `toml:"faces"`
}

// Load reads a problem file from disk.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "problem file %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a TOML problem from r and validates it.
func Decode(r io.Reader) (*Map, error) {
	var pf problemFile
	if _, err := toml.NewDecoder(r).Decode(&pf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode problem")
	}
	return pf.build()
}

func (pf problemFile) build() (*Map, error) {
	kind := lattice.Hexagonal
	if pf.Lattice != "" {
		k, err := lattice.ParseKind(pf.Lattice)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	if len(pf.Faces) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "problem has no faces")
	}

	faces := append([]faceFile(nil), pf.Faces...)
	sort.SliceStable(faces, func(i, j int) bool { return faces[i].ID < faces[j].ID })

	m := &Map{Lattice: kind, UnitWeight: pf.UnitWeight, Settings: pf.Heuristic}
	minWeight := math.Inf(1)
	for i, ff := range faces {
		if ff.ID != i {
			return nil, errors.New(errors.ErrCodeInvalidInput, "face ids must be 0..%d, found %d at position %d", len(faces)-1, ff.ID, i)
		}
		if ff.Label == "" {
			ff.Label = fmt.Sprint(ff.ID)
		}
		if err := errors.ValidateLabel(ff.Label); err != nil {
			return nil, err
		}
		if err := errors.ValidateWeight(ff.Weight); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "face %d", ff.ID)
		}
		if len(ff.Centroid) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "face %d centroid needs 2 values, got %d", ff.ID, len(ff.Centroid))
		}
		face := Face{
			ID:       ff.ID,
			Label:    ff.Label,
			Weight:   ff.Weight,
			Centroid: lattice.Point{X: ff.Centroid[0], Y: ff.Centroid[1]},
		}
		for _, comps := range ff.Shape {
			c, err := kind.FromComponents(comps)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "face %d shape", ff.ID)
			}
			face.Shape = append(face.Shape, c)
		}
		minWeight = min(minWeight, ff.Weight)
		m.Faces = append(m.Faces, face)
	}
	if m.UnitWeight < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unit_weight must be positive, got %v", m.UnitWeight)
	}
	if m.UnitWeight == 0 {
		m.UnitWeight = minWeight
	}

	for _, a := range pf.Adjacency {
		if len(a.Faces) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "adjacency needs exactly 2 faces, got %v", a.Faces)
		}
		m.Adjacency = append(m.Adjacency, dual.Edge{U: a.Faces[0], V: a.Faces[1]})
	}
	if _, err := m.Dual(); err != nil {
		return nil, err
	}
	return m, nil
}
