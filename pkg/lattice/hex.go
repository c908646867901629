package lattice

import (
	"fmt"
	"math"
)

// Hex is a cube coordinate on a pointy-top hexagonal lattice.
type Hex struct {
	Q, R, S int
}

// NewHex returns the hex cell with axial coordinates (q, r).
func NewHex(q, r int) Hex {
	return Hex{Q: q, R: r, S: -q - r}
}

var hexDirections = [6]Hex{
	{1, 0, -1}, {0, 1, -1}, {-1, 1, 0}, {-1, 0, 1}, {0, -1, 1}, {1, -1, 0},
}

func (h Hex) Plus(o Coord) Coord {
	p := o.(Hex)
	return Hex{h.Q + p.Q, h.R + p.R, h.S + p.S}
}

func (h Hex) Minus(o Coord) Coord {
	p := o.(Hex)
	return Hex{h.Q - p.Q, h.R - p.R, h.S - p.S}
}

func (h Hex) Times(k int) Coord {
	return Hex{h.Q * k, h.R * k, h.S * k}
}

// Neighbours lists the six adjacent cells counter-clockwise starting east.
func (h Hex) Neighbours() []Coord {
	out := make([]Coord, len(hexDirections))
	for i, d := range hexDirections {
		out[i] = Hex{h.Q + d.Q, h.R + d.R, h.S + d.S}
	}
	return out
}

func (h Hex) Vicinity() []Coord { return h.Neighbours() }

func (h Hex) Norm() int {
	return (abs(h.Q) + abs(h.R) + abs(h.S)) / 2
}

func (h Hex) Components() []int { return []int{h.Q, h.R, h.S} }

func (h Hex) Center() Point {
	return Point{X: math.Sqrt(3) * (float64(h.Q) + float64(h.R)/2), Y: 1.5 * float64(h.R)}
}

func (h Hex) String() string { return fmt.Sprintf("(%d, %d, %d)", h.Q, h.R, h.S) }

// hexRound rounds fractional axial coordinates to the nearest cube cell.
func hexRound(q, r float64) Hex {
	s := -q - r
	rq, rr, rs := math.Round(q), math.Round(r), math.Round(s)
	dq, dr, ds := math.Abs(rq-q), math.Abs(rr-r), math.Abs(rs-s)
	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	default:
		rs = -rq - rr
	}
	return Hex{int(rq), int(rr), int(rs)}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
