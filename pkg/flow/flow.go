// Package flow solves minimum-cost flow problems with integer supplies,
// capacities and costs by successive shortest paths.
//
// Nodes carry a supply: positive supply leaves the node, negative supply
// must arrive at it. Arcs carry a capacity and a per-unit cost that may be
// negative. The solver routes as much supply as the arcs allow, cheapest
// first, so a problem whose supply cannot be fully routed still yields a
// partial flow; [Result.Feasible] tells the two apart.
//
// Shortest paths are computed on the residual network with gonum's
// Bellman-Ford implementation. Among equally cheap paths the solver
// prefers the one found by a breadth-first walk in arc insertion order, so
// results are deterministic.
package flow

import (
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
)

// Unbounded is the capacity used for arcs without a practical limit.
const Unbounded = math.MaxInt32

// Arc is a directed arc of a Network.
type Arc struct {
	From, To int
	Capacity int
	Cost     int
}

// Network is a flow network under construction.
type Network struct {
	supply []int
	arcs   []Arc
}

// New returns an empty network.
func New() *Network {
	return &Network{}
}

// AddNode adds a node with the given supply and returns its id.
func (n *Network) AddNode(supply int) int {
	n.supply = append(n.supply, supply)
	return len(n.supply) - 1
}

// Supply returns the supply of node id.
func (n *Network) Supply(id int) int { return n.supply[id] }

// SetSupply changes the supply of node id.
func (n *Network) SetSupply(id, supply int) { n.supply[id] = supply }

// AddArc adds an arc and returns its id. Arcs are validated by Solve.
func (n *Network) AddArc(from, to, capacity, cost int) int {
	n.arcs = append(n.arcs, Arc{From: from, To: to, Capacity: capacity, Cost: cost})
	return len(n.arcs) - 1
}

// Arc returns arc id.
func (n *Network) Arc(id int) Arc { return n.arcs[id] }

// Nodes is the number of nodes.
func (n *Network) Nodes() int { return len(n.supply) }

// Arcs is the number of arcs.
func (n *Network) Arcs() int { return len(n.arcs) }

// ShiftCosts adds delta to the cost of every arc.
func (n *Network) ShiftCosts(delta int) {
	for i := range n.arcs {
		n.arcs[i].Cost += delta
	}
}

// MinCost is the smallest arc cost, or zero without arcs.
func (n *Network) MinCost() int {
	if len(n.arcs) == 0 {
		return 0
	}
	m := n.arcs[0].Cost
	for _, a := range n.arcs[1:] {
		m = min(m, a.Cost)
	}
	return m
}

// Result is the outcome of Solve.
type Result struct {
	flow []int
	// Routed is the number of supply units delivered.
	Routed int
	// Required is the total positive supply.
	Required int
	// Cost is the total cost of the flow.
	Cost int
	// Augmentations counts the shortest paths used.
	Augmentations int
}

// Flow returns the flow on arc id.
func (r *Result) Flow(id int) int { return r.flow[id] }

// Feasible reports whether all supply was routed.
func (r *Result) Feasible() bool { return r.Routed == r.Required }

func (n *Network) validate() error {
	pos, neg := 0, 0
	for _, s := range n.supply {
		if s > 0 {
			pos += s
		} else {
			neg -= s
		}
	}
	if pos != neg {
		return errors.New(errors.ErrCodeInvalidInput, "supplies do not balance: %d out, %d in", pos, neg)
	}
	for i, a := range n.arcs {
		switch {
		case a.From < 0 || a.From >= len(n.supply) || a.To < 0 || a.To >= len(n.supply):
			return errors.New(errors.ErrCodeInvalidInput, "arc %d joins unknown nodes %d and %d", i, a.From, a.To)
		case a.From == a.To:
			return errors.New(errors.ErrCodeInvalidInput, "arc %d is a loop on node %d", i, a.From)
		case a.Capacity < 0:
			return errors.New(errors.ErrCodeInvalidInput, "arc %d has negative capacity %d", i, a.Capacity)
		}
	}
	return nil
}

// residual is one direction of an arc in the residual network. Arc i has
// its forward residual at 2i and its backward residual at 2i+1.
type residual struct {
	from, to int
	arc      int
	forward  bool
}

// Solve computes a minimum-cost flow. A super source feeds every node with
// positive supply and a super sink drains every node with negative supply.
// Each round augments along a cheapest residual path from source to sink
// until the sink becomes unreachable.
func (n *Network) Solve() (*Result, error) {
	if err := n.validate(); err != nil {
		return nil, err
	}

	arcs := append([]Arc(nil), n.arcs...)
	source, sink := len(n.supply), len(n.supply)+1
	res := &Result{}
	for v, s := range n.supply {
		switch {
		case s > 0:
			arcs = append(arcs, Arc{From: source, To: v, Capacity: s})
			res.Required += s
		case s < 0:
			arcs = append(arcs, Arc{From: v, To: sink, Capacity: -s})
		}
	}
	nodes := len(n.supply) + 2
	flow := make([]int, len(arcs))

	capacity := func(r residual) int {
		if r.forward {
			return arcs[r.arc].Capacity - flow[r.arc]
		}
		return flow[r.arc]
	}
	cost := func(r residual) int {
		if r.forward {
			return arcs[r.arc].Cost
		}
		return -arcs[r.arc].Cost
	}

	out := make([][]residual, nodes)
	for i, a := range arcs {
		out[a.From] = append(out[a.From], residual{from: a.From, to: a.To, arc: i, forward: true})
		out[a.To] = append(out[a.To], residual{from: a.To, to: a.From, arc: i, forward: false})
	}

	for res.Routed < res.Required {
		dist, err := distances(nodes, source, out, capacity, cost)
		if err != nil {
			return nil, err
		}
		if math.IsInf(dist[sink], 1) {
			break
		}
		p := tightPath(source, sink, out, dist, capacity, cost)
		if p == nil {
			return nil, errors.New(errors.ErrCodeInternal, "no tight path to sink at distance %v", dist[sink])
		}

		delta := res.Required - res.Routed
		for _, r := range p {
			delta = min(delta, capacity(r))
		}
		for _, r := range p {
			if r.forward {
				flow[r.arc] += delta
			} else {
				flow[r.arc] -= delta
			}
		}
		res.Routed += delta
		res.Augmentations++
	}

	res.flow = flow[:len(n.arcs)]
	for i, a := range n.arcs {
		res.Cost += res.flow[i] * a.Cost
	}
	return res, nil
}

// distances runs Bellman-Ford from source over residual arcs with spare
// capacity. Parallel residual arcs collapse to the cheapest one.
func distances(nodes, source int, out [][]residual, capacity, cost func(residual) int) ([]float64, error) {
	g := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for v := range nodes {
		g.AddNode(simple.Node(v))
	}
	for _, rs := range out {
		for _, r := range rs {
			if capacity(r) <= 0 {
				continue
			}
			w := float64(cost(r))
			if cur, ok := g.Weight(int64(r.from), int64(r.to)); ok && cur <= w {
				continue
			}
			g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(r.from), T: simple.Node(r.to), W: w})
		}
	}

	shortest, ok := path.BellmanFordFrom(simple.Node(source), g)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "residual network has a negative cycle")
	}
	dist := make([]float64, nodes)
	for v := range dist {
		dist[v] = shortest.WeightTo(int64(v))
	}
	return dist, nil
}

// tightPath walks breadth-first from source along residual arcs that lie on
// some shortest path, visiting arcs in insertion order.
func tightPath(source, sink int, out [][]residual, dist []float64, capacity, cost func(residual) int) []residual {
	via := make([]*residual, len(out))
	seen := make([]bool, len(out))
	seen[source] = true
	queue := []int{source}
	for len(queue) > 0 && !seen[sink] {
		u := queue[0]
		queue = queue[1:]
		for i := range out[u] {
			r := out[u][i]
			if seen[r.to] || capacity(r) <= 0 || math.IsInf(dist[r.to], 1) {
				continue
			}
			if dist[u]+float64(cost(r)) != dist[r.to] {
				continue
			}
			seen[r.to] = true
			via[r.to] = &out[u][i]
			queue = append(queue, r.to)
		}
	}
	if !seen[sink] {
		return nil
	}
	var p []residual
	for v := sink; v != source; v = via[v].from {
		p = append(p, *via[v])
	}
	return p
}
