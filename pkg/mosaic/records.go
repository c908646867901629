package mosaic

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
)

// WriteCoordinates writes the grid as coordinate records: for every region
// a line "ID <id>", a line with the guiding-shape translation, then one line
// per occupied cell. Components are space separated.
func (g *Grid) WriteCoordinates(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, r := range g.regions {
		fmt.Fprintf(bw, "ID %d\n", r.id)
		fmt.Fprintln(bw, joinInts(r.shape.Translation().Components()))
		for _, c := range r.Cells() {
			fmt.Fprintln(bw, joinInts(c.Components()))
		}
	}
	return bw.Flush()
}

// ReadCoordinates loads coordinate records into g. Cells are assigned to the
// listed region and guiding shapes are moved to the recorded translation.
// A cell listed more than once is an INVALID_FORMAT error.
func (g *Grid) ReadCoordinates(r io.Reader) error {
	sc := bufio.NewScanner(r)
	listed := make(map[lattice.Coord]int)
	current := -1
	expectTranslation := false
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "ID"); ok {
			id, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d: bad region id", lineNo)
			}
			if id < 0 || id >= len(g.regions) {
				return errors.New(errors.ErrCodeInvalidFormat, "line %d: unknown region %d", lineNo, id)
			}
			current = id
			expectTranslation = true
			continue
		}
		if current < 0 {
			return errors.New(errors.ErrCodeInvalidFormat, "line %d: coordinate before first ID line", lineNo)
		}
		c, err := g.parseCoord(line)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", lineNo)
		}
		if expectTranslation {
			shape := g.regions[current].shape
			g.regions[current].TranslateGuidingShape(c.Minus(shape.Translation()))
			expectTranslation = false
			continue
		}
		if prev, dup := listed[c]; dup {
			return errors.New(errors.ErrCodeInvalidFormat,
				"line %d: cell %v already listed for region %d", lineNo, c, prev)
		}
		listed[c] = current
		g.Assign(c, current)
	}
	return sc.Err()
}

func (g *Grid) parseCoord(line string) (lattice.Coord, error) {
	fields := strings.Fields(line)
	comps := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		comps[i] = v
	}
	return g.kind.FromComponents(comps)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}
