package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listBadStyle      = lipgloss.NewStyle().Foreground(colorRed)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "inspect [problem.toml] [grid.coords]",
		Short:             "Browse the regions of a grid interactively",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, g, err := loadGrid(args[0], args[1])
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewRegionListModel(g, m), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// RegionListModel - Interactive region browser
// =============================================================================

// RegionListModel is the bubbletea model of the region browser. The list
// shows one line per region; the panel below it details the selected one.
type RegionListModel struct {
	Summary mosaic.Summary
	Map     *subdivision.Map
	Grid    *mosaic.Grid
	Cursor  int
	Height  int
	Offset  int
	// OnlyBad hides regions that are connected, adjacency-correct and of
	// their desired size.
	OnlyBad bool
}

// NewRegionListModel creates a region browser over g.
func NewRegionListModel(g *mosaic.Grid, m *subdivision.Map) RegionListModel {
	return RegionListModel{
		Summary: g.Summarize(),
		Map:     m,
		Grid:    g,
		Height:  15,
	}
}

// visible returns the indices into Summary.Regions currently listed.
func (m RegionListModel) visible() []int {
	var out []int
	for i, r := range m.Summary.Regions {
		if m.OnlyBad && r.Connected && r.AdjacencyCorrect && r.HexError == 0 {
			continue
		}
		out = append(out, i)
	}
	return out
}

func (m RegionListModel) Init() tea.Cmd {
	return nil
}

func (m RegionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(m.visible())
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "b":
			m.OnlyBad = !m.OnlyBad
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m RegionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Regions"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  b toggle problems only  q quit"))
	b.WriteString("\n\n")

	rows := m.visible()
	if len(rows) == 0 {
		b.WriteString(StyleSuccess.Render("  no problem regions"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(rows))
	for i := m.Offset; i < end; i++ {
		r := m.Summary.Regions[rows[i]]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%4d  %-16s %4d/%-4d %s", cursor, r.ID, regionLabel(m.Map, r.ID), r.Size, r.Desired, status(r))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !r.Connected || !r.AdjacencyCorrect:
			b.WriteString(listBadStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	b.WriteString(m.detail(m.Summary.Regions[rows[m.Cursor]]))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(rows))))

	return b.String()
}

// detail describes one region.
func (m RegionListModel) detail(r mosaic.RegionSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render("cells:"), StyleValue.Render(fmt.Sprintf("%d of %d (%+d)", r.Size, r.Desired, r.HexError)))
	fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render("outside shape:"), StyleValue.Render(fmt.Sprint(r.SymmetricDifference)))
	fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render("best overlay:"), StyleValue.Render(fmt.Sprintf("%d hits", r.OverlayHits)))
	if m.Grid != nil {
		region := m.Grid.Region(r.ID)
		fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render("neighbours:"), StyleValue.Render(fmt.Sprint(region.AdjacentRegions())))
		fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render("centre:"), StyleValue.Render(region.ContinuousBarycenter().String()))
	}
	return b.String()
}

// status summarizes the checks of a region.
func status(r mosaic.RegionSummary) string {
	var issues []string
	if !r.Connected {
		issues = append(issues, "disconnected")
	}
	if !r.AdjacencyCorrect {
		issues = append(issues, "adjacency")
	}
	if len(issues) == 0 {
		return StyleSuccess.Render(iconSuccess)
	}
	return StyleError.Render(iconError + " " + strings.Join(issues, ", "))
}
