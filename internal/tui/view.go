package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/emurenMRz/vdeck/internal/browser"
	"github.com/emurenMRz/vdeck/internal/page"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("230"))

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)
)

func (m *Model) View() string {
	switch {
	case m.doc.RawCard.IsOpen():
		return m.overlay(boxStyle.Render(m.raw.View()), "↑/↓ scroll • esc close")
	case m.doc.ContactEditor.IsOpen():
		return m.overlay(boxStyle.Render(renderEditor(m.doc.ContactEditor)), "tab next tab • shift+tab previous • esc close")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString(fmt.Sprintf("  %d contacts\n", m.doc.Contacts.Len()))
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ row • ←/→ column • enter open cell • e edit row • q quit"))
	return b.String()
}

func (m *Model) overlay(content, help string) string {
	view := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(m.title), content, helpStyle.Render(help))
	if m.width == 0 || m.height == 0 {
		return view
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
}

func renderEditor(ed *page.Editor) string {
	var tabs []string
	for i, name := range page.Tabs {
		if i == ed.ActiveTab() {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	header := strings.Join(tabs, "  ")

	var body string
	switch page.Tabs[ed.ActiveTab()] {
	case "General":
		var lines []string
		for _, in := range page.Inputs {
			lines = append(lines, labelStyle.Render(in.Label)+" "+plain(ed.Input(in.Name)))
		}
		body = strings.Join(lines, "\n")
	case "Addresses":
		body = renderTable(ed.TableByName(browser.TableAddress))
	case "Phones":
		body = renderTable(ed.TableByName(browser.TablePhone))
	case "Emails":
		body = renderTable(ed.TableByName(browser.TableEmail))
	}
	return header + "\n\n" + body
}

// renderTable lays out a table with each column as wide as its widest cell.
func renderTable(t *page.Table) string {
	if t.Len() == 0 {
		return helpStyle.Render("(none)")
	}

	rows := make([][]string, t.Len())
	for i, row := range t.Rows() {
		rows[i] = plainCells(row)
	}

	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = style.Width(w).Render(cell)
		}
		return strings.Join(parts, "  ")
	}

	lines := []string{line(t.Header, tabStyle)}
	for _, row := range rows {
		lines = append(lines, line(row, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}
