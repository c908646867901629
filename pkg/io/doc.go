// Package io reads and writes mosaic grids.
//
// # Coordinate records
//
// The checkpoint format is line oriented. Every region contributes a line
// "ID <id>", a line holding the components of its guiding-shape
// translation, then one line per occupied cell:
//
//	ID 0
//	0 0
//	0 0
//	1 0
//	ID 1
//	2 0
//	2 0
//
// Hexagonal coordinates have three components, square ones two. Use
// [ExportCoordinates] and [ImportCoordinates] for files; the grid itself
// offers WriteCoordinates and ReadCoordinates for any stream.
//
// # JSON
//
// [WriteJSON] describes a grid for external tools: the lattice, every
// region with its label, cells and guiding shape, and a summary of the
// quality measures:
//
//	{
//	  "lattice": "square",
//	  "regions": [
//	    {"id": 0, "label": "A", "cells": [[0, 0], [1, 0]], "shape": [[0, 0], [1, 0]], "translation": [0, 0]}
//	  ],
//	  "summary": {...}
//	}
//
// [ReadJSON] loads cells and guiding-shape translations from that document
// back into a grid built for the same map, so an exported grid can be
// re-imported identically.
package io
