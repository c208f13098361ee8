// Package tui implements an interactive browser over a refined
// subdivision hierarchy. Each refinement level is a row; the detail
// panel shows component counts and the vertex tag census of the
// selected level.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessella/subdiv/internal/hierarchy"
	"github.com/tessella/subdiv/internal/scheme"
	"github.com/tessella/subdiv/internal/topology"
)

// Model is the bubbletea model for the level browser.
type Model struct {
	hier   *hierarchy.Hierarchy
	mesh   string
	keys   KeyMap
	cursor int
	width  int
	height int
}

// New creates a browser over a refined hierarchy.
func New(h *hierarchy.Hierarchy, mesh string) Model {
	return Model{
		hier: h,
		mesh: mesh,
		keys: DefaultKeyMap(),
	}
}

// Run starts the interactive program and blocks until the user quits.
func Run(h *hierarchy.Hierarchy, mesh string) error {
	p := tea.NewProgram(New(h, mesh), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// Cursor returns the currently selected level index.
func (m Model) Cursor() int { return m.cursor }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.hier.NumLevels()-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Top):
			m.cursor = 0
		case key.Matches(msg, m.keys.Bottom):
			m.cursor = m.hier.NumLevels() - 1
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.statusBar())
	b.WriteString("\n\n")

	for i := 0; i < m.hier.NumLevels(); i++ {
		b.WriteString(m.levelRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailPanel())
	b.WriteString("\n")
	b.WriteString(m.footer())

	return b.String()
}

// statusBar renders the top line: mesh name, scheme, refinement mode.
func (m Model) statusBar() string {
	mode := "uniform"
	if !m.hier.IsUniform() {
		mode = "adaptive"
	}
	content := fmt.Sprintf("%s %s  %s %s  %s %s  %s %d",
		styleStatusLabel.Render("mesh"), styleStatusValue.Render(m.mesh),
		styleStatusLabel.Render("scheme"), styleStatusValue.Render(m.hier.Scheme().String()),
		styleStatusLabel.Render("mode"), styleStatusValue.Render(mode),
		styleStatusLabel.Render("levels"), m.hier.NumLevels())
	return styleStatusBar.Render(content)
}

// levelRow renders one list entry, highlighting the cursor row.
func (m Model) levelRow(i int) string {
	lvl := m.hier.Level(i)
	line := fmt.Sprintf("level %d  %6d vertices  %6d faces", i, lvl.NumVertices(), lvl.NumFaces())
	if i > 0 && !m.hier.IsUniform() {
		line += fmt.Sprintf("  (%d isolated)", m.hier.Refinement(i-1).NumSelected())
	}

	if i == m.cursor {
		return styleSelectionIndicator.Render(selectionIndicator) + styleRowSelected.Render(line)
	}
	return " " + styleRowNormal.Render(line)
}

// detailPanel renders counts and the tag census of the selected level.
func (m Model) detailPanel() string {
	lvl := m.hier.Level(m.cursor)
	census := summarizeTags(lvl)

	var b strings.Builder
	b.WriteString(styleDetailTitle.Render(fmt.Sprintf("level %d", m.cursor)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %d  %s %d  %s %d\n",
		styleDetailLabel.Render("vertices"), lvl.NumVertices(),
		styleDetailLabel.Render("edges"), lvl.NumEdges(),
		styleDetailLabel.Render("faces"), lvl.NumFaces()))

	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s %s\n",
		styleDetailLabel.Render("smooth"), styleDetailSmooth.Render(fmt.Sprintf("%d", census.smooth)),
		styleDetailLabel.Render("dart"), styleDetailSharp.Render(fmt.Sprintf("%d", census.dart)),
		styleDetailLabel.Render("crease"), styleDetailSharp.Render(fmt.Sprintf("%d", census.crease)),
		styleDetailLabel.Render("corner"), styleDetailSharp.Render(fmt.Sprintf("%d", census.corner))))

	b.WriteString(fmt.Sprintf("%s %d  %s %d  %s %d",
		styleDetailLabel.Render("extraordinary"), census.extraordinary,
		styleDetailLabel.Render("semi-sharp"), census.semiSharp,
		styleDetailLabel.Render("boundary"), census.boundary))
	if census.nonManifold > 0 {
		b.WriteString("  ")
		b.WriteString(styleDetailWarn.Render(fmt.Sprintf("non-manifold %d", census.nonManifold)))
	}
	if census.incomplete > 0 {
		b.WriteString("  ")
		b.WriteString(styleDetailLabel.Render(fmt.Sprintf("incomplete %d", census.incomplete)))
	}

	return styleDetailBorder.Render(b.String())
}

// footer renders the key hint line.
func (m Model) footer() string {
	hints := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom, m.keys.Quit}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styleFooterKey.Render(h.Help().Key) + " " + h.Help().Desc
	}
	return styleFooter.Render(strings.Join(parts, "  "))
}

// levelCensus counts vertices per rule and per tag flag.
type levelCensus struct {
	smooth, dart, crease, corner       int
	extraordinary, semiSharp, boundary int
	nonManifold, incomplete            int
}

func summarizeTags(lvl *topology.Level) levelCensus {
	var c levelCensus
	for v := 0; v < lvl.NumVertices(); v++ {
		tag := lvl.VertexTagOf(v)
		switch tag.Rule {
		case scheme.RuleSmooth:
			c.smooth++
		case scheme.RuleDart:
			c.dart++
		case scheme.RuleCrease:
			c.crease++
		case scheme.RuleCorner:
			c.corner++
		}
		if tag.Extraordinary {
			c.extraordinary++
		}
		if tag.SemiSharp {
			c.semiSharp++
		}
		if tag.Boundary {
			c.boundary++
		}
		if tag.NonManifold {
			c.nonManifold++
		}
		if tag.Incomplete {
			c.incomplete++
		}
	}
	return c
}
