package lattice

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
)

// Coord is a lattice address.
type Coord interface {
	// Plus returns the component-wise sum of the receiver and o.
	Plus(o Coord) Coord
	// Minus returns the component-wise difference of the receiver and o.
	Minus(o Coord) Coord
	// Times scales every component by k.
	Times(k int) Coord
	// Neighbours returns the edge-adjacent cells in a fixed order.
	Neighbours() []Coord
	// Vicinity returns the cells whose closure touches this cell. For hex
	// cells this equals Neighbours; square cells add the four diagonals.
	Vicinity() []Coord
	// Norm is the lattice distance to the origin.
	Norm() int
	// Components returns the integer components (3 for Hex, 2 for Square).
	Components() []int
	// Center is the cell center in the plane.
	Center() Point
	String() string
}

// Kind identifies a lattice type.
type Kind int

const (
	Hexagonal Kind = iota
	SquareGrid
)

// ParseKind converts a lattice name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hex", "hexagon", "hexagonal":
		return Hexagonal, nil
	case "square", "squares":
		return SquareGrid, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown lattice %q (want hexagonal or square)", s)
}

func (k Kind) String() string {
	switch k {
	case Hexagonal:
		return "hexagonal"
	case SquareGrid:
		return "square"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Origin returns the zero coordinate of the lattice.
func (k Kind) Origin() Coord {
	if k == Hexagonal {
		return Hex{}
	}
	return Square{}
}

// Dimension is the number of integer components of a coordinate.
func (k Kind) Dimension() int {
	if k == Hexagonal {
		return 3
	}
	return 2
}

// UnitVectors returns the canonical translation directions.
func (k Kind) UnitVectors() []Coord {
	return k.Origin().Neighbours()
}

// FromComponents builds a coordinate from integer components.
func (k Kind) FromComponents(c []int) (Coord, error) {
	if len(c) != k.Dimension() {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"%s coordinate needs %d components, got %d", k, k.Dimension(), len(c))
	}
	if k == Hexagonal {
		if c[0]+c[1]+c[2] != 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"hexagonal components %v do not sum to zero", c)
		}
		return Hex{Q: c[0], R: c[1], S: c[2]}, nil
	}
	return Square{X: c[0], Y: c[1]}, nil
}

// Containing returns the cell whose interior contains p.
func (k Kind) Containing(p Point) Coord {
	if k == Hexagonal {
		return hexRound(p.X/math.Sqrt(3)-p.Y/3, p.Y/1.5)
	}
	return Square{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// Polygon returns the corners of the cell outline, counter-clockwise.
func (k Kind) Polygon(c Coord) []Point {
	center := c.Center()
	if k == Hexagonal {
		pts := make([]Point, 6)
		for i := range pts {
			a := math.Pi/6 + float64(i)*math.Pi/3
			pts[i] = Point{X: center.X + math.Cos(a), Y: center.Y + math.Sin(a)}
		}
		return pts
	}
	return []Point{
		{X: center.X - 0.5, Y: center.Y - 0.5},
		{X: center.X + 0.5, Y: center.Y - 0.5},
		{X: center.X + 0.5, Y: center.Y + 0.5},
		{X: center.X - 0.5, Y: center.Y + 0.5},
	}
}

// Ring returns the cells at lattice distance r from center.
func (k Kind) Ring(center Coord, r int) []Coord {
	if r == 0 {
		return []Coord{center}
	}
	dirs := k.UnitVectors()
	var out []Coord
	if k == Hexagonal {
		cur := center.Plus(dirs[4].Times(r))
		for i := 0; i < 6; i++ {
			for j := 0; j < r; j++ {
				out = append(out, cur)
				cur = cur.Plus(dirs[i])
			}
		}
		return out
	}
	steps := []Coord{Square{-1, 1}, Square{-1, -1}, Square{1, -1}, Square{1, 1}}
	cur := center.Plus(Square{X: r})
	for _, step := range steps {
		for j := 0; j < r; j++ {
			out = append(out, cur)
			cur = cur.Plus(step)
		}
	}
	return out
}

// Disk returns the cells within lattice distance r of center, ring by ring.
func (k Kind) Disk(center Coord, r int) []Coord {
	var out []Coord
	for i := 0; i <= r; i++ {
		out = append(out, k.Ring(center, i)...)
	}
	return out
}

// Compact returns the first n cells of the disk enumeration around the
// origin. Every prefix of that order is connected.
func (k Kind) Compact(n int) []Coord {
	var out []Coord
	for r := 0; len(out) < n; r++ {
		for _, c := range k.Ring(k.Origin(), r) {
			if len(out) == n {
				break
			}
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// Point
// =============================================================================

// Point is a position in the plane. It shares its layout with gonum's r2.Vec
// so the vector arithmetic is delegated there.
type Point r2.Vec

func (p Point) vec() r2.Vec { return r2.Vec(p) }

func (p Point) Add(q Point) Point     { return Point(r2.Add(p.vec(), q.vec())) }
func (p Point) Sub(q Point) Point     { return Point(r2.Sub(p.vec(), q.vec())) }
func (p Point) Scale(f float64) Point { return Point(r2.Scale(f, p.vec())) }
func (p Point) Length() float64       { return r2.Norm(p.vec()) }
func (p Point) Angle() float64        { return math.Atan2(p.Y, p.X) }
func (p Point) Dot(q Point) float64   { return r2.Dot(p.vec(), q.vec()) }
func (p Point) String() string        { return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y) }

// Normalized returns p scaled to unit length, or the zero point.
func (p Point) Normalized() Point {
	if p.X == 0 && p.Y == 0 {
		return Point{}
	}
	return Point(r2.Unit(p.vec()))
}

// AngleDifference returns the absolute difference between two angles in
// radians, folded into [0, π].
func AngleDifference(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// Centroid returns the mean of the centers of cs, or the zero point.
func Centroid(cs []Coord) Point {
	if len(cs) == 0 {
		return Point{}
	}
	var sum Point
	for _, c := range cs {
		sum = sum.Add(c.Center())
	}
	return sum.Scale(1 / float64(len(cs)))
}
