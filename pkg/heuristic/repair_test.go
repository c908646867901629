package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
)

func TestFillHolesEnclosedCell(t *testing.T) {
	var ring []lattice.Coord
	for x := range 3 {
		for y := range 3 {
			if x != 1 || y != 1 {
				ring = append(ring, sq(x, y))
			}
		}
	}
	m, d, g := problem(t, nil, face{weight: 45, cells: ring})
	require.Len(t, g.HoleBoundaries(), 1)
	h, err := New(m, d, g)
	require.NoError(t, err)

	filled, left := h.FillHoles(g)
	assert.Equal(t, 1, filled)
	assert.Empty(t, left)
	owner, ok := g.Owner(sq(1, 1))
	require.True(t, ok)
	assert.Equal(t, 0, owner)
	assert.True(t, g.IsConnected())
	assert.Empty(t, g.HoleBoundaries())
}

func TestFillHolesLeavesUnfixable(t *testing.T) {
	// two regions close a hole but may not touch, so neither can take it
	// and neither can let go of a cell next to it
	m, d, g := problem(t, nil,
		face{weight: 25, cells: []lattice.Coord{sq(0, 0), sq(0, 1), sq(0, 2), sq(1, 0), sq(1, 2)}},
		face{weight: 15, cells: []lattice.Coord{sq(2, 0), sq(2, 1), sq(2, 2)}},
	)
	h, err := New(m, d, g)
	require.NoError(t, err)

	filled, left := h.FillHoles(g)
	assert.Zero(t, filled)
	assert.Equal(t, []lattice.Coord{sq(1, 1)}, left)
	assert.Equal(t, []int{5, 3}, sizes(g))
}

func TestFillAlleysNotch(t *testing.T) {
	notch := []lattice.Coord{sq(0, 0), sq(1, 0), sq(2, 0), sq(0, 1), sq(2, 1)}
	m, d, g := problem(t, nil, face{weight: 30, cells: notch})
	require.True(t, g.IsAlley(sq(1, 1)))
	h, err := New(m, d, g)
	require.NoError(t, err)

	filled, left := h.FillAlleys(g)
	assert.Equal(t, 1, filled)
	assert.Empty(t, left)
	assert.False(t, g.IsAlley(sq(1, 1)))
	owner, ok := g.Owner(sq(1, 1))
	require.True(t, ok)
	assert.Equal(t, 0, owner)
}

func TestCandidates(t *testing.T) {
	_, _, g := problem(t, [][2]int{{0, 1}},
		face{weight: 5, cells: []lattice.Coord{sq(1, 0)}},
		face{weight: 10, cells: []lattice.Coord{sq(0, 1), sq(-1, 0)}},
	)
	assert.Equal(t, []int{1, 0}, candidates(g, sq(0, 0)))
	assert.Empty(t, candidates(g, sq(9, 9)))
}
