package lattice

import "fmt"

// Square is a cell of the unit square lattice.
type Square struct {
	X, Y int
}

var (
	squareDirections = [4]Square{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	squareVicinity   = [8]Square{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
)

func (s Square) Plus(o Coord) Coord {
	p := o.(Square)
	return Square{s.X + p.X, s.Y + p.Y}
}

func (s Square) Minus(o Coord) Coord {
	p := o.(Square)
	return Square{s.X - p.X, s.Y - p.Y}
}

func (s Square) Times(k int) Coord { return Square{s.X * k, s.Y * k} }

// Neighbours lists the four edge-adjacent cells counter-clockwise starting east.
func (s Square) Neighbours() []Coord {
	out := make([]Coord, len(squareDirections))
	for i, d := range squareDirections {
		out[i] = Square{s.X + d.X, s.Y + d.Y}
	}
	return out
}

// Vicinity lists the eight cells sharing an edge or a corner.
func (s Square) Vicinity() []Coord {
	out := make([]Coord, len(squareVicinity))
	for i, d := range squareVicinity {
		out[i] = Square{s.X + d.X, s.Y + d.Y}
	}
	return out
}

func (s Square) Norm() int         { return abs(s.X) + abs(s.Y) }
func (s Square) Components() []int { return []int{s.X, s.Y} }
func (s Square) Center() Point     { return Point{X: float64(s.X), Y: float64(s.Y)} }
func (s Square) String() string    { return fmt.Sprintf("(%d, %d)", s.X, s.Y) }
