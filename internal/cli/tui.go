package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/reeflow/reeflow/pkg/diagram"
	"github.com/reeflow/reeflow/pkg/flow"
)

// Editor movement and resize increments, in canvas units.
const (
	moveStep   = 5
	resizeStep = 5
)

// List styles
var (
	editorStatusStyle = lipgloss.NewStyle().Foreground(colorGreen)
	editorErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	editorDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// editorModel is the bubbletea model for the layout editor. It keeps a
// cursor over the diagram's nodes and applies edits through the session,
// replacing its snapshot with each result.
type editorModel struct {
	ctx     context.Context
	session *diagram.Session
	year    int

	d      *diagram.Diagram
	cursor int
	dirty  bool
	status string
	errMsg string
}

// newEditorModel builds the editor over a year's current snapshot.
func newEditorModel(ctx context.Context, session *diagram.Session, year int) (editorModel, error) {
	d, err := session.Diagram(ctx, year)
	if err != nil {
		return editorModel{}, err
	}
	return editorModel{ctx: ctx, session: session, year: year, d: d}, nil
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	if len(m.d.Graph.Nodes) == 0 {
		return m, nil
	}

	m.status, m.errMsg = "", ""
	node := m.selected()

	switch key.String() {
	case "j", "down":
		if m.cursor < len(m.d.Graph.Nodes)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "left":
		m.apply(func() (*diagram.Diagram, error) {
			return m.session.MoveNode(m.ctx, m.year, node.ID, -moveStep, 0)
		}, "moved")
	case "right":
		m.apply(func() (*diagram.Diagram, error) {
			return m.session.MoveNode(m.ctx, m.year, node.ID, moveStep, 0)
		}, "moved")
	case "shift+up":
		m.apply(func() (*diagram.Diagram, error) {
			return m.session.MoveNode(m.ctx, m.year, node.ID, 0, -moveStep)
		}, "moved")
	case "shift+down":
		m.apply(func() (*diagram.Diagram, error) {
			return m.session.MoveNode(m.ctx, m.year, node.ID, 0, moveStep)
		}, "moved")

	case "+", "=":
		m.apply(func() (*diagram.Diagram, error) {
			return m.session.ResizeNode(m.ctx, m.year, node.ID,
				node.Rect.Width()+resizeStep, node.Rect.Height()+resizeStep)
		}, "resized")
	case "-":
		m.apply(func() (*diagram.Diagram, error) {
			return m.session.ResizeNode(m.ctx, m.year, node.ID,
				node.Rect.Width()-resizeStep, node.Rect.Height()-resizeStep)
		}, "resized")

	case "r":
		m.apply(func() (*diagram.Diagram, error) {
			return m.session.RotateNode(m.ctx, m.year, node.ID)
		}, "rotated")

	case "s":
		if err := m.session.SaveLayout(m.ctx, m.year); err != nil {
			m.errMsg = err.Error()
		} else {
			m.dirty = false
			m.status = fmt.Sprintf("layout for %d saved", m.year)
		}

	case "u":
		m.apply(func() (*diagram.Diagram, error) {
			return m.session.ResetLayout(m.ctx, m.year)
		}, "layout reset")
		m.dirty = false
	}

	return m, nil
}

// apply runs one edit against the session and swaps in the returned
// snapshot. Errors are shown in the status line without quitting.
func (m *editorModel) apply(edit func() (*diagram.Diagram, error), verb string) {
	d, err := edit()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.d = d
	m.dirty = true
	m.status = fmt.Sprintf("%s %s", m.selected().ID, verb)
}

func (m editorModel) selected() *flow.Node {
	return m.d.Graph.Nodes[m.cursor]
}

func (m editorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Layout Editor — %d", m.year)))
	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render("j/k select  ←/→/⇧↑/⇧↓ move  +/- resize  r rotate  s save  u reset  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for i, n := range m.d.Graph.Nodes {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rotated := ""
		if n.Rotated {
			rotated = "⟳"
		}
		rows = append(rows, []string{
			cursor,
			n.Name,
			string(n.Category),
			fmt.Sprintf("%.0f,%.0f", n.Rect.X0, n.Rect.Y0),
			fmt.Sprintf("%.0f×%.0f", n.Rect.Width(), n.Rect.Height()),
			rotated,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Category", "Position", "Size", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	switch {
	case m.errMsg != "":
		b.WriteString(editorErrorStyle.Render("  " + m.errMsg))
	case m.status != "":
		b.WriteString(editorStatusStyle.Render("  " + m.status))
	case m.dirty:
		b.WriteString(editorDimStyle.Render("  unsaved changes"))
	}
	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render(fmt.Sprintf("  %d links · canvas %.0f×%.0f",
		len(m.d.Graph.Links), m.d.Canvas.W, m.d.Canvas.H)))

	return b.String()
}
