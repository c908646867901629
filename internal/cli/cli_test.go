package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tue-alga/Gridmap-sub002/pkg/cache"
	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
	"github.com/tue-alga/Gridmap-sub002/pkg/pipeline"
)

const problemTOML = `
lattice = "square"
unit_weight = 5.0

[[face]]
id = 0
label = "Utrecht"
weight = 15.0
centroid = [0.0, 0.0]

[heuristic]
layout = "static"
max_no_improve = 3
`

// exact three-cell region matching the compact template
const gridCoords = "ID 0\n0 0\n0 0\n1 0\n0 1\n"

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietCLI() *CLI {
	var buf bytes.Buffer
	return New(&buf, log.ErrorLevel)
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{pipeline.FormatCoords}},
		{"svg", []string{"svg"}},
		{"svg, json,", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "maps/nl.toml", "maps/nl"},
		{"out/nl.svg", "nl.toml", "out/nl"},
		{"out/nl.dual.svg", "nl.toml", "out/nl"},
		{"out/nl", "nl.toml", "out/nl"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("x.out", "nl.toml", "svg", true); got != "x.out" {
		t.Errorf("single format should keep the output path, got %q", got)
	}
	if got := outputPath("", "nl.toml", "dual-svg", false); got != "nl.dual.svg" {
		t.Errorf("got %q", got)
	}
	if got := outputPath("res/nl.coords", "nl.toml", "json", false); got != "res/nl.json" {
		t.Errorf("got %q", got)
	}
}

func TestNewCache(t *testing.T) {
	c := quietCLI()
	ctx := context.Background()

	store, err := c.newCache(ctx, cacheFlags{backend: cacheNone})
	if err != nil {
		t.Fatalf("none: %v", err)
	}
	if _, ok := store.(cache.NullCache); !ok {
		t.Errorf("none should give a NullCache, got %T", store)
	}

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	store, err = c.newCache(ctx, cacheFlags{backend: cacheFile})
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if _, ok := store.(*cache.FileCache); !ok {
		t.Errorf("file should give a FileCache, got %T", store)
	}

	if _, err := c.newCache(ctx, cacheFlags{backend: "memcached"}); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestLoadGridAndValidity(t *testing.T) {
	problem := writeFixture(t, "p.toml", problemTOML)
	good := writeFixture(t, "good.coords", gridCoords)
	split := writeFixture(t, "split.coords", "ID 0\n0 0\n0 0\n2 0\n")

	m, g, err := loadGrid(problem, good)
	if err != nil {
		t.Fatalf("loadGrid: %v", err)
	}
	if m.Faces[0].Label != "Utrecht" || g.Len() != 3 {
		t.Errorf("unexpected grid: %d cells", g.Len())
	}
	if err := reportValidity(g, false); err != nil {
		t.Errorf("valid grid reported: %v", err)
	}

	_, g, err = loadGrid(problem, split)
	if err != nil {
		t.Fatal(err)
	}
	err = reportValidity(g, true)
	if !errors.Is(err, errors.ErrCodeInvalidGrid) {
		t.Errorf("split region should fail the check, got %v", err)
	}

	if _, _, err := loadGrid(problem, filepath.Join(t.TempDir(), "missing")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v", err)
	}
}

func TestRegionTable(t *testing.T) {
	problem := writeFixture(t, "p.toml", problemTOML)
	coords := writeFixture(t, "g.coords", gridCoords)
	m, g, err := loadGrid(problem, coords)
	if err != nil {
		t.Fatal(err)
	}
	out := regionTable(g.Summarize(), m)
	for _, want := range []string{"Label", "Utrecht", "+0"} {
		if !strings.Contains(out, want) {
			t.Errorf("table lacks %q:\n%s", want, out)
		}
	}
	if line := statsLine(g.Summarize(), true); !strings.Contains(line, "3 cells") || !strings.Contains(line, iconCached) {
		t.Errorf("stats line = %q", line)
	}
}

func TestRegionListModel(t *testing.T) {
	problem := writeFixture(t, "p.toml", problemTOML)
	coords := writeFixture(t, "g.coords", gridCoords)
	m, g, err := loadGrid(problem, coords)
	if err != nil {
		t.Fatal(err)
	}
	model := NewRegionListModel(g, m)
	if !strings.Contains(model.View(), "Utrecht") {
		t.Error("view should list the region label")
	}

	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if got := next.(RegionListModel).Cursor; got != 0 {
		t.Errorf("cursor moved past the last region: %d", got)
	}

	next, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	filtered := next.(RegionListModel)
	if !filtered.OnlyBad || len(filtered.visible()) != 0 {
		t.Errorf("valid region should be hidden, visible = %v", filtered.visible())
	}
	if !strings.Contains(filtered.View(), "no problem regions") {
		t.Error("empty filter should say so")
	}

	if _, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit")
	}
}

func TestRunCommandWritesOutputs(t *testing.T) {
	problem := writeFixture(t, "nl.toml", problemTOML)
	base := filepath.Join(filepath.Dir(problem), "out", "nl")
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		t.Fatal(err)
	}

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"run", problem, "--cache", "none", "-f", "coords,svg", "-o", base})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	coords, err := os.ReadFile(base + ".coords")
	if err != nil {
		t.Fatalf("coords output: %v", err)
	}
	if !strings.HasPrefix(string(coords), "ID 0\n") {
		t.Errorf("coords = %q", coords)
	}
	if _, err := os.Stat(base + ".svg"); err != nil {
		t.Errorf("svg output: %v", err)
	}
}

func TestFinalizeCommand(t *testing.T) {
	problem := writeFixture(t, "nl.toml", problemTOML)
	coords := writeFixture(t, "nl.coords", gridCoords)
	out := filepath.Join(t.TempDir(), "final.coords")

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"finalize", problem, coords, "--cache", "none", "-o", out})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output: %v", err)
	}
}

func TestDualCommandDOT(t *testing.T) {
	problem := writeFixture(t, "nl.toml", problemTOML)
	out := filepath.Join(t.TempDir(), "nl.dot")

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"dual", problem, "-f", "dot", "-o", out})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("dual: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("dot = %q", data)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	fc, err := cache.NewFileCache(filepath.Join(dir, appName))
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, hit, _ := fc.Get(context.Background(), "k"); hit {
		t.Error("entry should be gone after clear")
	}
}

func TestCompletionCommand(t *testing.T) {
	root := quietCLI().RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out.String(), "mosaic") {
		t.Error("bash script should mention the program name")
	}
}

func TestCompleteInputs(t *testing.T) {
	tests := []struct {
		args      []string
		want      []string
		directive cobra.ShellCompDirective
	}{
		{nil, []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt},
		{[]string{"a.toml"}, []string{"coords"}, cobra.ShellCompDirectiveFilterFileExt},
		{[]string{"a.toml", "a.coords"}, nil, cobra.ShellCompDirectiveNoFileComp},
	}
	for _, tt := range tests {
		got, directive := completeInputs(nil, tt.args, "")
		if !slices.Equal(got, tt.want) || directive != tt.directive {
			t.Errorf("completeInputs(%v) = %v, %v; want %v, %v", tt.args, got, directive, tt.want, tt.directive)
		}
	}
	if got := layoutNames(); !slices.Equal(got, []string{"force", "static"}) {
		t.Errorf("layoutNames() = %v", got)
	}
}
