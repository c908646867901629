// Package mosaic holds the cartogram state: a [Grid] mapping lattice cells
// to the [Region] that owns them, and per-region guiding shapes.
//
// The grid maintains, incrementally on every mutation, each region's
// footprint, its outside neighbour cells with multiplicity, the number of
// touching cell pairs with every other region, and the overlap with its
// guiding shape. Validity checks and quality scores read from that
// bookkeeping.
//
// # Mutation
//
// [Grid.Assign], [Grid.Remove] and [Grid.Translate] return an [Undo] token
// that restores the exact previous state, including iteration order of
// region cells. Moves evaluate a change by applying it, inspecting the
// grid, and undoing it.
//
// # Validity
//
// A region is valid when it is connected and the set of regions it touches
// equals its neighbours in the weak dual. A grid is valid when all regions
// are; [Grid.IsConnected] checks connectivity only.
package mosaic
