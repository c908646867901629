package dual

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
)

// Separator splits the component of the weak dual containing a cut edge into
// the two sides left after removing that edge. Component1 is the smaller side
// (or the side of Edge.U on a tie) and V1 is the endpoint of the cut edge
// that lies in it.
type Separator struct {
	Edge       Edge
	V1, V2     int
	Component1 []int
	Component2 []int

	in1 map[int]bool
}

// NewSeparator builds the separator of cut edge e. It fails with
// ErrCodeNotCutEdge when e is not an edge or its removal leaves the
// endpoints connected.
func NewSeparator(d *WeakDual, e Edge) (Separator, error) {
	if !d.HasEdge(e.U, e.V) {
		return Separator{}, errors.New(errors.ErrCodeNotCutEdge, "(%d, %d) is not a dual edge", e.U, e.V)
	}
	work := d.clone()
	work.RemoveEdge(int64(e.U), int64(e.V))

	var cu, cv []int
	for _, comp := range topo.ConnectedComponents(work) {
		ids := nodeIDs(comp)
		switch {
		case slices.Contains(ids, e.U) && slices.Contains(ids, e.V):
			return Separator{}, errors.New(errors.ErrCodeNotCutEdge,
				"removing (%d, %d) leaves its endpoints connected", e.U, e.V)
		case slices.Contains(ids, e.U):
			cu = ids
		case slices.Contains(ids, e.V):
			cv = ids
		}
	}

	s := Separator{Edge: e, V1: e.U, V2: e.V, Component1: cu, Component2: cv}
	if len(cv) < len(cu) {
		s.V1, s.V2 = e.V, e.U
		s.Component1, s.Component2 = cv, cu
	}
	s.in1 = make(map[int]bool, len(s.Component1))
	for _, id := range s.Component1 {
		s.in1[id] = true
	}
	return s, nil
}

// Separators returns one separator per cut edge, in cut-edge order.
func Separators(d *WeakDual) ([]Separator, error) {
	cuts := d.CutEdges()
	out := make([]Separator, 0, len(cuts))
	for _, e := range cuts {
		s, err := NewSeparator(d, e)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// InComponent1 reports whether region id lies on the moving side.
func (s Separator) InComponent1(id int) bool {
	return s.in1[id]
}

func nodeIDs(nodes []graph.Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = int(n.ID())
	}
	slices.Sort(ids)
	return ids
}
