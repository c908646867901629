package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
)

const (
	hueOffset = 20.0
	chroma    = 0.45
	lightness = 0.78
)

// Coloring assigns every vertex of d the smallest colour index unused by
// its lower-numbered neighbours. It returns the index per vertex and the
// number of colours used.
func Coloring(d *dual.WeakDual) ([]int, int) {
	colors := make([]int, d.Len())
	used := 0
	for v := range colors {
		taken := make(map[int]bool)
		for _, u := range d.Neighbours(v) {
			if u < v {
				taken[colors[u]] = true
			}
		}
		c := 0
		for taken[c] {
			c++
		}
		colors[v] = c
		used = max(used, c+1)
	}
	return colors, used
}

// Palette returns a hex colour per region of d. Adjacent regions get
// different colours.
func Palette(d *dual.WeakDual) []string {
	idx, n := Coloring(d)
	hues := make([]string, n)
	for i := range hues {
		h := hueOffset + 360*float64(i)/float64(n)
		hues[i] = colorful.Hcl(h, chroma, lightness).Clamped().Hex()
	}
	out := make([]string, len(idx))
	for v, c := range idx {
		out[v] = hues[c]
	}
	return out
}
