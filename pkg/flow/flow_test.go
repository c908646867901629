package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
)

func TestSolveCheapestFirst(t *testing.T) {
	n := New()
	s := n.AddNode(2)
	a := n.AddNode(0)
	b := n.AddNode(0)
	d := n.AddNode(-2)
	sa := n.AddArc(s, a, 1, 1)
	ad := n.AddArc(a, d, 1, 0)
	sb := n.AddArc(s, b, 1, 3)
	bd := n.AddArc(b, d, 1, 0)

	res, err := n.Solve()
	require.NoError(t, err)
	assert.True(t, res.Feasible())
	assert.Equal(t, 4, res.Cost)
	for _, id := range []int{sa, ad, sb, bd} {
		assert.Equal(t, 1, res.Flow(id))
	}
}

func TestSolveTiesFollowInsertionOrder(t *testing.T) {
	n := New()
	s := n.AddNode(1)
	a := n.AddNode(0)
	b := n.AddNode(0)
	d := n.AddNode(-1)
	sa := n.AddArc(s, a, 1, 1)
	ad := n.AddArc(a, d, 1, 1)
	sb := n.AddArc(s, b, 1, 1)
	bd := n.AddArc(b, d, 1, 1)

	for range 5 {
		res, err := n.Solve()
		require.NoError(t, err)
		assert.Equal(t, 1, res.Flow(sa))
		assert.Equal(t, 1, res.Flow(ad))
		assert.Equal(t, 0, res.Flow(sb))
		assert.Equal(t, 0, res.Flow(bd))
	}
}

func TestSolveCancelsFlow(t *testing.T) {
	n := New()
	s := n.AddNode(2)
	a := n.AddNode(0)
	b := n.AddNode(0)
	d := n.AddNode(-2)
	sa := n.AddArc(s, a, 1, 0)
	ab := n.AddArc(a, b, 1, 0)
	bd := n.AddArc(b, d, 1, 0)
	sb := n.AddArc(s, b, 1, 5)
	ad := n.AddArc(a, d, 1, 10)

	res, err := n.Solve()
	require.NoError(t, err)
	assert.True(t, res.Feasible())
	assert.Equal(t, 15, res.Cost)
	assert.Equal(t, 0, res.Flow(ab), "second path pushes back along a->b")
	assert.Equal(t, 1, res.Flow(sa))
	assert.Equal(t, 1, res.Flow(bd))
	assert.Equal(t, 1, res.Flow(sb))
	assert.Equal(t, 1, res.Flow(ad))
	assert.Equal(t, 2, res.Augmentations)
}

func TestSolveNegativeCosts(t *testing.T) {
	n := New()
	s := n.AddNode(1)
	d := n.AddNode(-1)
	m := n.AddNode(0)
	direct := n.AddArc(s, d, 1, 0)
	n.AddArc(s, m, 1, -3)
	n.AddArc(m, d, 1, 1)

	res, err := n.Solve()
	require.NoError(t, err)
	assert.Equal(t, 0, res.Flow(direct))
	assert.Equal(t, -2, res.Cost)
}

func TestSolvePartial(t *testing.T) {
	n := New()
	s := n.AddNode(3)
	d := n.AddNode(-3)
	arc := n.AddArc(s, d, 2, 1)

	res, err := n.Solve()
	require.NoError(t, err)
	assert.False(t, res.Feasible())
	assert.Equal(t, 2, res.Routed)
	assert.Equal(t, 3, res.Required)
	assert.Equal(t, 2, res.Flow(arc))
}

func TestSolveNoSupply(t *testing.T) {
	n := New()
	a := n.AddNode(0)
	b := n.AddNode(0)
	arc := n.AddArc(a, b, Unbounded, -1)

	res, err := n.Solve()
	require.NoError(t, err)
	assert.True(t, res.Feasible())
	assert.Equal(t, 0, res.Flow(arc))
}

func TestSolveRejectsBadNetworks(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Network
	}{
		{"unbalanced", func() *Network {
			n := New()
			n.AddNode(2)
			n.AddNode(-1)
			return n
		}},
		{"unknown node", func() *Network {
			n := New()
			n.AddNode(0)
			n.AddArc(0, 3, 1, 0)
			return n
		}},
		{"loop", func() *Network {
			n := New()
			n.AddNode(0)
			n.AddArc(0, 0, 1, 0)
			return n
		}},
		{"negative capacity", func() *Network {
			n := New()
			n.AddNode(0)
			n.AddNode(0)
			n.AddArc(0, 1, -1, 0)
			return n
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build().Solve()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
		})
	}
}

func TestShiftCosts(t *testing.T) {
	n := New()
	n.AddNode(0)
	n.AddNode(0)
	n.AddArc(0, 1, 1, -4)
	n.AddArc(1, 0, 1, 2)
	assert.Equal(t, -4, n.MinCost())
	n.ShiftCosts(4)
	assert.Equal(t, 0, n.Arc(0).Cost)
	assert.Equal(t, 6, n.Arc(1).Cost)
	assert.Equal(t, 0, New().MinCost())
}
