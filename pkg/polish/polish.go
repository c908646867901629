// Package polish moves boundary cells between regions until every region
// reaches, or gets as close as possible to, its desired size.
//
// Each round builds a min-cost flow network on the cells along region
// boundaries. Over-full regions supply units and under-full regions demand
// them; the empty surroundings act as one more region, the sea, that
// absorbs any imbalance. An arc from cell c to a neighbouring cell d of a
// different owner means "the owner of d takes c", and only exists when that
// single move would be allowed. Arc costs favour moving cells into guiding
// shapes and out of them only from deep inside. The flow is then replayed
// as Take and Release moves, each re-validated against the grid as it is
// at that moment.
package polish

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
	"github.com/tue-alga/Gridmap-sub002/pkg/flow"
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/moves"
)

// DefaultMaxRounds bounds the strict rounds of a polish, and separately the
// exact rounds.
const DefaultMaxRounds = 40

// Polisher is the flow-based fine tuner.
type Polisher struct {
	dual      *dual.WeakDual
	logger    *log.Logger
	maxRounds int
}

// Option configures a Polisher.
type Option func(*Polisher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(p *Polisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMaxRounds overrides DefaultMaxRounds.
func WithMaxRounds(n int) Option {
	return func(p *Polisher) {
		if n > 0 {
			p.maxRounds = n
		}
	}
}

// New creates a polisher for grids over d.
func New(d *dual.WeakDual, opts ...Option) *Polisher {
	p := &Polisher{
		dual:      d,
		logger:    log.New(io.Discard),
		maxRounds: DefaultMaxRounds,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Polish improves g in place and returns the best grid seen, measured by
// the total size error. Strict rounds only apply moves that keep the grid
// valid and create no holes. With exact set, further rounds move one unit at
// a time and only require the touched regions to stay connected, until
// every region has its desired size or no move applies. Running out of exact
// rounds before that is a NOT_CONVERGED error.
func (p *Polisher) Polish(g *mosaic.Grid, exact bool) (*mosaic.Grid, error) {
	best, bestErr := g.Duplicate(), sizeError(g)
	p.logger.Debug("polish start", "error", bestErr, "exact", exact)

	e := bestErr
	for round := 0; e > 0 && round < p.maxRounds; round++ {
		changed, err := p.round(g, false)
		if err != nil {
			return nil, err
		}
		if e = sizeError(g); e <= bestErr {
			best, bestErr = g.Duplicate(), e
		}
		if !changed {
			break
		}
	}

	if exact {
		for round := 0; e > 0; round++ {
			if round == p.maxRounds {
				return nil, errors.New(errors.ErrCodeNotConverged,
					"exact sizes not reached within %d rounds (size error %d)", p.maxRounds, e)
			}
			changed, err := p.round(g, true)
			if err != nil {
				return nil, err
			}
			if e = sizeError(g); e <= bestErr {
				best, bestErr = g.Duplicate(), e
			}
			if !changed {
				p.logger.Warn("exact sizes unreachable", "error", e)
				break
			}
		}
	}

	p.logger.Debug("polish done", "error", bestErr)
	return best, nil
}

func sizeError(g *mosaic.Grid) int {
	total := 0
	for _, r := range g.Regions() {
		total += r.SizeDeviation()
	}
	return total
}

// cellNodes are the two halves of a split boundary cell: every unit enters
// at in and leaves at out, and the arc between them has capacity one.
type cellNodes struct {
	in, out int
}

type watched struct {
	arc  int
	from lattice.Coord
	to   lattice.Coord
}

type network struct {
	flow    *flow.Network
	cells   map[lattice.Coord]cellNodes
	watched []watched
}

// round builds and solves one flow problem and applies the result. It
// reports whether any move was applied.
func (p *Polisher) round(g *mosaic.Grid, exact bool) (bool, error) {
	n := p.build(g, exact)
	res, err := n.flow.Solve()
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInternal, err, "solve polish flow")
	}
	p.logger.Debug("polish flow", "arcs", len(n.watched), "routed", res.Routed, "required", res.Required, "exact", exact)

	changed := false
	for _, w := range n.watched {
		if res.Flow(w.arc) <= 0 {
			continue
		}
		if p.apply(g, w.from, w.to, exact) {
			changed = true
		}
	}
	return changed, nil
}

// apply gives cell from to the current owner of to, or releases it when to
// is empty.
func (p *Polisher) apply(g *mosaic.Grid, from, to lattice.Coord, exact bool) bool {
	src, srcOK := g.Owner(from)
	dst, dstOK := g.Owner(to)
	if srcOK == dstOK && src == dst {
		return false
	}

	var o moves.Outcome
	var m moves.Move
	if !dstOK {
		rm := moves.NewRelease(g, from)
		o, m = rm.Evaluate(), rm
	} else {
		tm := moves.NewTake(p.dual, g, from, dst)
		o, m = tm.EvaluateWithHoles(g.HoleBoundaries()), tm
		if o.CreatesHole && !exact {
			return false
		}
	}
	if o.Valid || (exact && o.Connected) {
		m.Execute()
		return true
	}
	return false
}

// boundaryCells lists the empty cells around every region together with the
// occupied cells next to them, and the occupied cells facing other regions.
func boundaryCells(g *mosaic.Grid) ([]lattice.Coord, map[lattice.Coord]bool) {
	seen := make(map[lattice.Coord]bool)
	var out []lattice.Coord
	add := func(c lattice.Coord) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, r := range g.Regions() {
		for _, c := range r.Neighbours() {
			add(c)
			if _, owned := g.Owner(c); owned {
				continue
			}
			for _, d := range c.Neighbours() {
				if _, owned := g.Owner(d); owned {
					add(d)
				}
			}
		}
	}
	return out, seen
}

func (p *Polisher) build(g *mosaic.Grid, exact bool) *network {
	n := &network{flow: flow.New(), cells: make(map[lattice.Coord]cellNodes)}
	cells, isBoundary := boundaryCells(g)
	holes := g.HoleBoundaries()

	for _, c := range cells {
		in, out := n.flow.AddNode(0), n.flow.AddNode(0)
		n.cells[c] = cellNodes{in: in, out: out}
	}

	for _, c := range cells {
		rc, okC := g.Owner(c)
		for _, d := range c.Neighbours() {
			if !isBoundary[d] {
				continue
			}
			rd, okD := g.Owner(d)
			if okC == okD && rc == rd {
				continue
			}
			cost, ok := p.arcCost(g, holes, c, d, exact)
			if !ok {
				continue
			}
			arc := n.flow.AddArc(n.cells[c].out, n.cells[d].in, 1, cost)
			n.watched = append(n.watched, watched{arc: arc, from: c, to: d})
		}
	}

	// region and sea terminals; every cell attaches to its owner's terminal
	regions := g.Regions()
	terminal := make([]int, len(regions))
	sea := 0
	supplied := false
	for _, r := range regions {
		s := r.HexError()
		if exact {
			s = max(-1, min(1, s))
			if supplied {
				s = 0
			}
			supplied = supplied || s != 0
		}
		terminal[r.ID()] = n.flow.AddNode(s)
		sea -= s
	}
	seaNode := n.flow.AddNode(sea)
	for _, c := range cells {
		t := seaNode
		if id, ok := g.Owner(c); ok {
			t = terminal[id]
		}
		n.flow.AddArc(t, n.cells[c].in, flow.Unbounded, 0)
		n.flow.AddArc(n.cells[c].out, t, flow.Unbounded, 0)
	}

	if m := n.flow.MinCost(); m < 0 {
		n.flow.ShiftCosts(-m)
	}
	// the split arcs are added last so that shifting leaves them free
	for _, c := range cells {
		n.flow.AddArc(n.cells[c].in, n.cells[c].out, 1, 0)
	}
	return n
}

// arcCost decides whether the owner of d may take c, and at what cost. A
// region losing a cell inside its shape pays the cell's depth; losing one
// outside earns its distance. Gaining works the other way round.
func (p *Polisher) arcCost(g *mosaic.Grid, holes [][]lattice.Coord, c, d lattice.Coord, exact bool) (int, bool) {
	rc, okC := g.Owner(c)
	rd, okD := g.Owner(d)

	var o moves.Outcome
	if okD {
		o = moves.NewTake(p.dual, g, c, rd).EvaluateWithHoles(holes)
		if !(o.Valid && !o.CreatesHole) && !(exact && o.Connected) {
			return 0, false
		}
	} else {
		o = moves.NewRelease(g, c).Evaluate()
		if !o.Valid && !(exact && o.Connected) {
			return 0, false
		}
	}

	cost := 0
	if okC {
		cost += loss(c, g.Region(rc).Shape())
	}
	if okD {
		cost -= loss(c, g.Region(rd).Shape())
	}
	return cost, true
}

// loss is the cost for the owner of s to give up c.
func loss(c lattice.Coord, s *mosaic.Shape) int {
	if s.Has(c) {
		return nearest(c, s.Boundary())
	}
	return -nearest(c, s.Cells())
}

func nearest(c lattice.Coord, cs []lattice.Coord) int {
	best := -1
	for _, d := range cs {
		if n := c.Minus(d).Norm(); best < 0 || n < best {
			best = n
		}
	}
	return max(best, 0)
}
