// Package layout moves guiding shapes between sweeps of the local search.
//
// A Driver owns no cells: it only translates guiding shapes, which changes
// which cells each region desires. The heuristic calls Step once per
// iteration.
package layout

import (
	"math/rand"
	"strings"

	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// Driver names accepted by New.
const (
	NameStatic = "static"
	NameForce  = "force"
)

// Driver updates guiding-shape positions. Step reports whether any shape
// moved.
type Driver interface {
	Step(g *mosaic.Grid) bool
}

// Static never moves anything.
type Static struct{}

// Step implements Driver.
func (Static) Step(*mosaic.Grid) bool { return false }

// New builds the driver called name. The force-directed driver draws from a
// generator seeded with seed.
func New(name string, m *subdivision.Map, d *dual.WeakDual, seed int64) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameStatic:
		return Static{}, nil
	case NameForce, "":
		return NewForceDirected(m, d, rand.New(rand.NewSource(seed))), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown layout %q (want %s or %s)", name, NameForce, NameStatic)
	}
}
