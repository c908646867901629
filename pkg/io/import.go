package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
)

// ReadJSON loads a document written by [WriteJSON] into g, which must be an
// empty grid for the same map. Every listed cell is assigned to its region
// and every guiding shape is moved to the recorded translation.
//
// ReadJSON fails with ErrCodeInvalidFormat when the lattice differs, a
// region id is unknown, or a coordinate has the wrong number of
// components. It does not close r.
func ReadJSON(r io.Reader, g *mosaic.Grid) error {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	kind := g.Lattice()
	if data.Lattice != kind.String() {
		return errors.New(errors.ErrCodeInvalidFormat, "lattice %q, grid is %s", data.Lattice, kind)
	}

	n := len(g.Regions())
	for _, rd := range data.Regions {
		if rd.ID < 0 || rd.ID >= n {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown region %d", rd.ID)
		}
		t, err := kind.FromComponents(rd.Translation)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "region %d translation", rd.ID)
		}
		shape := g.Region(rd.ID).Shape()
		g.TranslateGuidingShape(rd.ID, t.Minus(shape.Translation()))
		for _, comps := range rd.Cells {
			c, err := kind.FromComponents(comps)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "region %d cell", rd.ID)
			}
			g.Assign(c, rd.ID)
		}
	}
	return nil
}

// ImportJSON reads a JSON file at path into g.
func ImportJSON(path string, g *mosaic.Grid) error {
	f, err := open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReadJSON(f, g)
}

// ImportCoordinates reads coordinate records from path into g.
func ImportCoordinates(path string, g *mosaic.Grid) error {
	f, err := open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := g.ReadCoordinates(f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
