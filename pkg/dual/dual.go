// Package dual models the weak dual of a planar subdivision: a graph whose
// vertices are face (region) ids and whose edges join faces that share a
// boundary in the source map.
//
// The graph is stored in a gonum [simple.UndirectedGraph]. Edge insertion
// order is recorded separately because gonum iterates nodes and edges in map
// order, and every consumer of this package (cut edges, separators) must
// enumerate in a stable order.
package dual

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
)

// Edge is an undirected dual edge between two region ids.
type Edge struct {
	U, V int
}

// WeakDual is a read-only (after construction) graph over region ids 0..n-1.
type WeakDual struct {
	g     *simple.UndirectedGraph
	n     int
	edges []Edge
}

// New creates a weak dual with n isolated vertices.
func New(n int) *WeakDual {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	return &WeakDual{g: g, n: n}
}

// AddEdge joins u and v. Adding an existing edge is a no-op.
func (d *WeakDual) AddEdge(u, v int) error {
	if u < 0 || u >= d.n || v < 0 || v >= d.n {
		return errors.New(errors.ErrCodeInvalidInput, "dual edge (%d, %d) references unknown face", u, v)
	}
	if u == v {
		return errors.New(errors.ErrCodeInvalidInput, "dual edge (%d, %d) is a self loop", u, v)
	}
	if d.g.HasEdgeBetween(int64(u), int64(v)) {
		return nil
	}
	d.g.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
	d.edges = append(d.edges, Edge{U: u, V: v})
	return nil
}

// Len returns the number of vertices.
func (d *WeakDual) Len() int { return d.n }

// HasEdge reports whether u and v are adjacent.
func (d *WeakDual) HasEdge(u, v int) bool {
	return d.g.HasEdgeBetween(int64(u), int64(v))
}

// Degree returns the number of neighbours of u.
func (d *WeakDual) Degree(u int) int {
	return d.g.From(int64(u)).Len()
}

// Neighbours returns the neighbours of u in ascending order.
func (d *WeakDual) Neighbours(u int) []int {
	it := d.g.From(int64(u))
	out := make([]int, 0, it.Len())
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	slices.Sort(out)
	return out
}

// Edges returns the edges in insertion order.
func (d *WeakDual) Edges() []Edge {
	return slices.Clone(d.edges)
}

// Graph exposes the underlying gonum graph for read-only consumers such as
// renderers.
func (d *WeakDual) Graph() graph.Undirected { return d.g }

// CutEdges returns every edge whose removal disconnects its endpoints,
// in insertion order.
func (d *WeakDual) CutEdges() []Edge {
	work := d.clone()
	var cuts []Edge
	for _, e := range d.edges {
		work.RemoveEdge(int64(e.U), int64(e.V))
		if !topo.PathExistsIn(work, simple.Node(e.U), simple.Node(e.V)) {
			cuts = append(cuts, e)
		}
		work.SetEdge(simple.Edge{F: simple.Node(e.U), T: simple.Node(e.V)})
	}
	return cuts
}

func (d *WeakDual) clone() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < d.n; i++ {
		g.AddNode(simple.Node(i))
	}
	for _, e := range d.edges {
		g.SetEdge(simple.Edge{F: simple.Node(e.U), T: simple.Node(e.V)})
	}
	return g
}
