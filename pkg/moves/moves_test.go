package moves

import (
	"fmt"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

func sq(x, y int) lattice.Coord { return lattice.Square{X: x, Y: y} }

func block(x, y int) []lattice.Coord {
	return []lattice.Coord{sq(x, y), sq(x+1, y), sq(x, y+1), sq(x+1, y+1)}
}

// fixture is three 2x2 blocks in a row, joined as the path 0-1-2, each
// block exactly covering its guiding shape:
//
//	0 0 1 1 2 2
//	0 0 1 1 2 2
type fixture struct {
	dual *dual.WeakDual
	grid *mosaic.Grid
	m    *subdivision.Map
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	d := dual.New(3)
	require.NoError(t, d.AddEdge(0, 1))
	require.NoError(t, d.AddEdge(1, 2))
	g, err := mosaic.New(lattice.SquareGrid, d, [][]lattice.Coord{block(0, 0), block(0, 0), block(0, 0)})
	require.NoError(t, err)
	for id := 0; id < 3; id++ {
		for _, c := range block(2*id, 0) {
			g.Assign(c, id)
		}
		g.TranslateGuidingShape(id, sq(2*id, 0))
	}
	m := &subdivision.Map{
		Lattice:    lattice.SquareGrid,
		UnitWeight: 1,
		Faces: []subdivision.Face{
			{ID: 0, Weight: 4, Centroid: lattice.Point{X: 0, Y: 5}},
			{ID: 1, Weight: 4, Centroid: lattice.Point{X: 0, Y: 0}},
			{ID: 2, Weight: 4, Centroid: lattice.Point{X: 4, Y: 0}},
		},
		Adjacency: []dual.Edge{{U: 0, V: 1}, {U: 1, V: 2}},
	}
	return fixture{dual: d, grid: g, m: m}
}

type state struct {
	owners     map[lattice.Coord]int
	occupied   []lattice.Coord
	cells      [][]lattice.Coord
	neighbours [][]lattice.Coord
	adj        [][]int
	exact      float64
	relaxed    float64
	shape      int
}

func capture(g *mosaic.Grid) state {
	s := state{
		owners:   ownership(g),
		occupied: g.Occupied(),
		exact:    g.Quality(true),
		relaxed:  g.Quality(false),
		shape:    g.ShapeError(),
	}
	for _, r := range g.Regions() {
		s.cells = append(s.cells, r.Cells())
		s.neighbours = append(s.neighbours, r.Neighbours())
		s.adj = append(s.adj, r.AdjacentRegions())
	}
	return s
}

func ownership(g *mosaic.Grid) map[lattice.Coord]int {
	owners := make(map[lattice.Coord]int)
	for x := -4; x <= 10; x++ {
		for y := -4; y <= 6; y++ {
			if id, ok := g.Owner(sq(x, y)); ok {
				owners[sq(x, y)] = id
			}
		}
	}
	return owners
}

// predictedOwners derives the ownership a move describes from the grid it
// was created on.
func predictedOwners(t *testing.T, g *mosaic.Grid, m Move) map[lattice.Coord]int {
	t.Helper()
	owners := ownership(g)
	switch m := m.(type) {
	case *Take:
		owners[m.pos] = m.owner
	case *Release:
		delete(owners, m.pos)
	case *Swap:
		owners[m.a], owners[m.b] = owners[m.b], owners[m.a]
	case *Slide:
		shifted := make(map[lattice.Coord]int)
		for c, id := range owners {
			if m.sep.InComponent1(id) {
				shifted[c.Plus(m.dir)] = id
				delete(owners, c)
			}
		}
		maps.Copy(owners, shifted)
	default:
		t.Fatalf("unexpected move %T", m)
	}
	return owners
}

// candidates enumerates every move of every kind around the fixture.
func candidates(f fixture, g *mosaic.Grid) map[string]Move {
	out := make(map[string]Move)
	for _, r := range g.Regions() {
		targets := append(r.Neighbours(), g.Occupied()...)
		for _, c := range targets {
			out[fmt.Sprintf("take %v -> %d", c, r.ID())] = NewTake(f.dual, g, c, r.ID())
		}
	}
	for _, c := range g.Occupied() {
		out[fmt.Sprintf("release %v", c)] = NewRelease(g, c)
		for _, n := range c.Neighbours() {
			out[fmt.Sprintf("swap %v %v", c, n)] = NewSwap(g, c, n)
		}
	}
	seps, _ := dual.Separators(f.dual)
	for _, s := range seps {
		for _, dir := range lattice.SquareGrid.UnitVectors() {
			out[fmt.Sprintf("slide %v %v", s.Edge, dir)] = NewSlide(g, f.m, s, dir)
		}
	}
	return out
}

func TestEvaluatePreservesOrder(t *testing.T) {
	d := dual.New(1)
	g, err := mosaic.New(lattice.SquareGrid, d, [][]lattice.Coord{{sq(0, 0), sq(1, 0), sq(2, 0)}})
	require.NoError(t, err)
	for _, c := range []lattice.Coord{sq(0, 0), sq(1, 0), sq(2, 0)} {
		g.Assign(c, 0)
	}
	neighbours, occupied := g.Region(0).Neighbours(), g.Occupied()

	NewRelease(g, sq(0, 0)).Evaluate()
	assert.Equal(t, neighbours, g.Region(0).Neighbours())
	assert.Equal(t, occupied, g.Occupied())

	undo := g.Translate([]int{0}, sq(1, 0))
	undo()
	assert.Equal(t, neighbours, g.Region(0).Neighbours())
	assert.Equal(t, occupied, g.Occupied())
	assert.Equal(t, occupied, g.Region(0).Cells())
}

func TestEvaluateIsPure(t *testing.T) {
	f := newFixture(t)
	// perturb so that some moves are valid and some are not
	f.grid.Assign(sq(2, 2), 1)
	f.grid.Remove(sq(5, 1))
	before := capture(f.grid)

	for name, m := range candidates(f, f.grid) {
		m.Evaluate()
		require.Equal(t, before, capture(f.grid), name)
	}
}

func TestExecuteMatchesEvaluate(t *testing.T) {
	f := newFixture(t)
	f.grid.Assign(sq(2, 2), 1)
	base := f.grid.Duplicate()

	valid := 0
	for name, m := range candidates(f, base) {
		o := m.Evaluate()
		if !o.Valid {
			continue
		}
		valid++
		work := base.Duplicate()
		wf := fixture{dual: f.dual, grid: work, m: f.m}
		moved := candidates(wf, work)[name]
		require.NotNil(t, moved, name)
		want := predictedOwners(t, work, moved)
		moved.Execute()
		assert.Equal(t, want, ownership(work), name)
		assert.Equal(t, o.Quality, work.Quality(true), name)
		assert.True(t, work.IsValid(), name)
	}
	assert.Positive(t, valid)
}

func TestTakeEvaluate(t *testing.T) {
	f := newFixture(t)
	g := f.grid

	t.Run("unowned touching", func(t *testing.T) {
		o := NewTake(f.dual, g, sq(0, 2), 0).Evaluate()
		assert.True(t, o.Valid)
		assert.True(t, o.Connected)
		assert.Equal(t, 1.0, o.Quality)
		assert.Equal(t, 1, o.Necessity)
	})

	t.Run("unowned not touching", func(t *testing.T) {
		o := NewTake(f.dual, g, sq(2, 2), 0).Evaluate()
		assert.False(t, o.Valid)
		assert.Equal(t, Invalid, o.Quality)
	})

	t.Run("owned keeps both valid", func(t *testing.T) {
		o := NewTake(f.dual, g, sq(2, 0), 0).Evaluate()
		assert.True(t, o.Valid)
		assert.Equal(t, 2.0, o.Quality)
		assert.Equal(t, 1, o.Necessity)
	})

	t.Run("owned disconnects receiver", func(t *testing.T) {
		o := NewTake(f.dual, g, sq(3, 0), 0).Evaluate()
		assert.False(t, o.Valid)
		assert.False(t, o.Connected)
	})

	t.Run("breaks adjacency", func(t *testing.T) {
		// once region 0 holds (2,0), region 2 taking (3,0) would touch it
		h := g.Duplicate()
		require.True(t, NewTake(f.dual, h, sq(2, 0), 0).Evaluate().Valid)
		NewTake(f.dual, h, sq(2, 0), 0).Execute()
		o := NewTake(f.dual, h, sq(3, 0), 2).Evaluate()
		assert.False(t, o.Valid, "region 2 would touch region 0")
	})

	t.Run("already owned", func(t *testing.T) {
		o := NewTake(f.dual, g, sq(0, 0), 0).Evaluate()
		assert.False(t, o.Valid)
	})
}

func TestTakeNonDualNeighbour(t *testing.T) {
	d := dual.New(2)
	g, err := mosaic.New(lattice.SquareGrid, d, [][]lattice.Coord{{sq(0, 0)}, {sq(0, 0)}})
	require.NoError(t, err)
	g.Assign(sq(0, 0), 0)
	g.Assign(sq(2, 0), 1)

	o := NewTake(d, g, sq(1, 0), 0).Evaluate()
	assert.False(t, o.Valid)
	assert.True(t, o.Connected)
}

func TestTakeCreatesAlley(t *testing.T) {
	d := dual.New(1)
	g, err := mosaic.New(lattice.SquareGrid, d, [][]lattice.Coord{block(0, 0)})
	require.NoError(t, err)
	for _, c := range []lattice.Coord{sq(-1, 1), sq(-1, 0), sq(0, 0), sq(1, 0)} {
		g.Assign(c, 0)
	}
	o := NewTake(d, g, sq(1, 1), 0).Evaluate()
	assert.True(t, o.Valid)
	assert.True(t, o.CreatesAlley, "(0,1) becomes enclosed on three sides")

	o = NewTake(d, g, sq(2, 0), 0).Evaluate()
	assert.False(t, o.CreatesAlley)
}

func TestTakeEvaluateWithHoles(t *testing.T) {
	d := dual.New(1)
	g, err := mosaic.New(lattice.SquareGrid, d, [][]lattice.Coord{lattice.SquareGrid.Compact(8)})
	require.NoError(t, err)
	ring := []lattice.Coord{sq(1, 1), sq(0, 1), sq(-1, 1), sq(-1, 0), sq(-1, -1), sq(0, -1), sq(1, -1)}
	for _, c := range ring {
		g.Assign(c, 0)
	}
	before := g.HoleBoundaries()
	require.Empty(t, before)

	o := NewTake(d, g, sq(1, 0), 0).EvaluateWithHoles(before)
	assert.True(t, o.Valid)
	assert.True(t, o.CreatesHole, "closing the ring traps (0,0)")
	assert.False(t, NewTake(d, g, sq(1, 0), 0).Evaluate().CreatesHole, "plain evaluate never reports holes")

	o = NewTake(d, g, sq(2, 1), 0).EvaluateWithHoles(before)
	assert.True(t, o.Valid)
	assert.False(t, o.CreatesHole)
}

func TestTakeImproves(t *testing.T) {
	f := newFixture(t)
	g := f.grid

	assert.False(t, NewTake(f.dual, g, sq(2, 0), 1).Improves(), "already owned by receiver")
	assert.False(t, NewTake(f.dual, g, sq(0, 2), 0).Improves(), "not desired")

	g.TranslateGuidingShape(0, sq(0, 1))
	assert.True(t, NewTake(f.dual, g, sq(0, 2), 0).Improves(), "desired and empty")

	// region 1 desires (1,0), which region 0 also desires
	g.TranslateGuidingShape(0, sq(0, -1))
	g.TranslateGuidingShape(1, sq(-1, 0))
	assert.True(t, NewTake(f.dual, g, sq(1, 0), 1).Improves(), "receiver is much worse off than donor")

	// region 0 no longer desires (1,0)
	g.TranslateGuidingShape(0, sq(-1, 0))
	assert.True(t, NewTake(f.dual, g, sq(1, 0), 1).Improves(), "donor does not desire it")

	// balanced: both at the same relative error
	f2 := newFixture(t)
	f2.grid.TranslateGuidingShape(0, sq(1, 0))
	f2.grid.TranslateGuidingShape(1, sq(-1, 0))
	assert.False(t, NewTake(f2.dual, f2.grid, sq(2, 0), 0).Improves())
}

func TestRelease(t *testing.T) {
	f := newFixture(t)

	o := NewRelease(f.grid, sq(2, 0)).Evaluate()
	assert.True(t, o.Valid)
	assert.False(t, o.Improves)

	o = NewRelease(f.grid, sq(9, 9)).Evaluate()
	assert.False(t, o.Valid)

	d := dual.New(1)
	g, err := mosaic.New(lattice.SquareGrid, d, [][]lattice.Coord{{sq(0, 0), sq(1, 0)}})
	require.NoError(t, err)
	for _, c := range []lattice.Coord{sq(0, 0), sq(1, 0), sq(2, 0)} {
		g.Assign(c, 0)
	}

	o = NewRelease(g, sq(1, 0)).Evaluate()
	assert.False(t, o.Valid, "articulation cell")
	assert.False(t, o.Connected)

	o = NewRelease(g, sq(2, 0)).Evaluate()
	assert.True(t, o.Valid)
	assert.True(t, o.Improves)
	assert.Equal(t, 0.0, o.Quality)

	NewRelease(g, sq(2, 0)).Execute()
	_, ok := g.Owner(sq(2, 0))
	assert.False(t, ok)
}

func TestReleaseLastCell(t *testing.T) {
	d := dual.New(1)
	g, err := mosaic.New(lattice.SquareGrid, d, [][]lattice.Coord{{sq(0, 0)}})
	require.NoError(t, err)
	g.Assign(sq(0, 0), 0)
	assert.False(t, NewRelease(g, sq(0, 0)).Evaluate().Valid)
}

func TestSlide(t *testing.T) {
	f := newFixture(t)
	seps, err := dual.Separators(f.dual)
	require.NoError(t, err)
	require.Len(t, seps, 2)
	sep := seps[0]
	require.Equal(t, []int{0}, sep.Component1)

	up := NewSlide(f.grid, f.m, sep, sq(0, 1))
	assert.True(t, up.DirectionImproves())
	o := up.Evaluate()
	assert.True(t, o.Valid)

	right := NewSlide(f.grid, f.m, sep, sq(1, 0))
	assert.False(t, right.DirectionImproves())
	assert.False(t, right.Evaluate().Valid)

	up.Execute()
	assert.True(t, f.grid.Region(0).Contains(sq(0, 2)))
	assert.False(t, f.grid.Region(0).Contains(sq(0, 0)))
	assert.True(t, f.grid.IsValid())
}

func TestSlideCollision(t *testing.T) {
	d := dual.New(2)
	require.NoError(t, d.AddEdge(0, 1))
	g, err := mosaic.New(lattice.SquareGrid, d, [][]lattice.Coord{{sq(0, 0), sq(1, 0)}, {sq(0, 0), sq(1, 0)}})
	require.NoError(t, err)
	for _, c := range []lattice.Coord{sq(0, 0), sq(1, 0)} {
		g.Assign(c, 0)
		g.Assign(c.Plus(sq(0, 1)), 1)
	}
	m := &subdivision.Map{
		Lattice: lattice.SquareGrid,
		Faces: []subdivision.Face{
			{ID: 0, Weight: 2, Centroid: lattice.Point{X: 0, Y: 0}},
			{ID: 1, Weight: 2, Centroid: lattice.Point{X: 5, Y: 0}},
		},
	}
	sep, err := dual.NewSeparator(d, dual.Edge{U: 0, V: 1})
	require.NoError(t, err)
	require.Equal(t, 0, sep.V1)

	// moving up would turn the vertical contact into the desired horizontal
	// one, but region 1 is in the way
	s := NewSlide(g, m, sep, sq(0, 1))
	require.True(t, s.DirectionImproves())
	assert.False(t, s.Evaluate().Valid)
}

func TestSwap(t *testing.T) {
	f := newFixture(t)
	o := NewSwap(f.grid, sq(1, 0), sq(2, 0)).Evaluate()
	assert.False(t, o.Valid)
	assert.False(t, NewSwap(f.grid, sq(0, 0), sq(1, 0)).Evaluate().Valid, "same owner")
	assert.False(t, NewSwap(f.grid, sq(0, 0), sq(9, 0)).Evaluate().Valid, "empty cell")
}

func TestSwapValid(t *testing.T) {
	d := dual.New(2)
	require.NoError(t, d.AddEdge(0, 1))
	g, err := mosaic.New(lattice.SquareGrid, d, [][]lattice.Coord{lattice.SquareGrid.Compact(3), lattice.SquareGrid.Compact(3)})
	require.NoError(t, err)
	// 0 1 1
	// 0 0 1
	for _, c := range []lattice.Coord{sq(0, 0), sq(1, 0), sq(0, 1)} {
		g.Assign(c, 0)
	}
	for _, c := range []lattice.Coord{sq(2, 0), sq(1, 1), sq(2, 1)} {
		g.Assign(c, 1)
	}

	s := NewSwap(g, sq(1, 0), sq(1, 1))
	o := s.Evaluate()
	assert.True(t, o.Valid)
	s.Execute()
	id, _ := g.Owner(sq(1, 0))
	assert.Equal(t, 1, id)
	id, _ = g.Owner(sq(1, 1))
	assert.Equal(t, 0, id)
	assert.True(t, g.IsValid())
}

func TestOutcomeBetter(t *testing.T) {
	a := Outcome{Quality: 1, Necessity: 1}
	b := Outcome{Quality: 2, Necessity: 5}
	c := Outcome{Quality: 1, Necessity: 3}
	assert.True(t, a.Better(b))
	assert.True(t, c.Better(a))
	assert.False(t, a.Better(a))
}
