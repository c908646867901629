package nodelink

import (
	"strings"
	"testing"

	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// path 0-1-2 plus a triangle 2-3-4: the first two edges are cuts
func sample(t *testing.T) *dual.WeakDual {
	t.Helper()
	d := dual.New(5)
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {2, 4}} {
		if err := d.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return d
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(t), Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("DOT should start with an undirected graph, got %q", dot[:20])
	}
	for _, want := range []string{`0 -- 1;`, `2 -- 4;`, `label="3"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}
	if strings.Contains(dot, "penwidth") || strings.Contains(dot, "neato") {
		t.Error("plain options should not highlight cuts or pin nodes")
	}
}

func TestToDOTOptions(t *testing.T) {
	m := &subdivision.Map{Faces: []subdivision.Face{
		{ID: 0, Label: "A", Weight: 10, Centroid: lattice.Point{X: 1, Y: 2}},
		{ID: 1, Weight: 5},
		{ID: 2, Weight: 5},
		{ID: 3, Weight: 5},
		{ID: 4, Weight: 5},
	}}
	dot := ToDOT(sample(t), Options{Map: m, Detailed: true, HighlightCuts: true})

	if got := strings.Count(dot, "penwidth=3"); got != 2 {
		t.Errorf("bold edges = %d, want 2", got)
	}
	for _, want := range []string{`layout=neato;`, `pos="1,2!"`, `label="A\nweight: 10\ndegree: 1"`, `label="1\nweight: 5\ndegree: 2"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="4pt" viewBox="0.00 0.00 80.00 40.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 80.00 40.00" width="80" height="40"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %q, want %q", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("svg without viewBox changed: %q", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(sample(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}
