package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failed checks.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printNewline() {
	fmt.Println()
}

// =============================================================================
// Grid Statistics
// =============================================================================

// statsLine renders grid statistics on a single line.
func statsLine(s mosaic.Summary, cached bool) string {
	parts := []string{
		fmt.Sprintf("%d regions", len(s.Regions)),
		fmt.Sprintf("%d cells", s.Cells),
		fmt.Sprintf("exact %.3f", s.Exact),
		fmt.Sprintf("relaxed %.3f", s.Relaxed),
	}
	if s.Holes > 0 {
		parts = append(parts, fmt.Sprintf("%d holes", s.Holes))
	}
	if s.Alleys > 0 {
		parts = append(parts, fmt.Sprintf("%d alleys", s.Alleys))
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	return line + StyleDim.Render(" · ") + statusStyle.Render(status)
}

func printStats(s mosaic.Summary, cached bool) {
	fmt.Println(statsLine(s, cached))
}

// regionTable renders one row per region. Labels come from m, which may be
// nil.
func regionTable(s mosaic.Summary, m *subdivision.Map) string {
	rows := make([][]string, 0, len(s.Regions))
	for _, r := range s.Regions {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			regionLabel(m, r.ID),
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Desired),
			fmt.Sprintf("%+d", r.HexError),
			strconv.Itoa(r.SymmetricDifference),
			check(r.Connected),
			check(r.AdjacencyCorrect),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Label", "Cells", "Desired", "Error", "Sym. diff", "Connected", "Adjacency").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(s.Regions) {
				return base
			}
			r := s.Regions[row]
			switch {
			case !r.Connected || !r.AdjacencyCorrect:
				return base.Foreground(colorRed)
			case r.HexError != 0:
				return base.Foreground(colorYellow)
			}
			return base
		}).
		Render()
}

func regionLabel(m *subdivision.Map, id int) string {
	if m == nil || id >= len(m.Faces) {
		return "—"
	}
	return m.Faces[id].Label
}

func check(ok bool) string {
	if ok {
		return iconSuccess
	}
	return iconError
}
