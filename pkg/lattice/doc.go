// Package lattice provides cell addressing for hexagonal and square grids.
//
// A [Coord] is an immutable lattice address. Two implementations exist:
//
//   - [Hex]: cube coordinates (Q, R, S) with Q+R+S == 0 and six neighbours
//   - [Square]: integer (X, Y) pairs with four edge neighbours and an
//     eight-cell vicinity used for hole detection
//
// Coordinates are comparable values and can be used directly as map keys.
// All operations on a Coord expect arguments of the same concrete type;
// mixing lattices is a programming error and panics.
//
// [Kind] selects a lattice and provides the grid-wide operations that do not
// belong to a single coordinate: unit vectors, the cell containing a
// continuous point, cell polygons, and parsing from integer components.
//
// # Iteration Order
//
// Neighbours, unit vectors, rings and disks are returned in a fixed order.
// The local search built on top of this package is greedy and order
// sensitive, so these orders are part of the contract.
package lattice
