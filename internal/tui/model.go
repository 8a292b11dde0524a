// Package tui hosts the contact browser in a terminal. The grid is a table
// with a column cursor; the raw vCard and the contact editor open as
// overlays.
package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emurenMRz/vdeck/internal/browser"
	"github.com/emurenMRz/vdeck/internal/page"
)

var columnWidths = [...]int{
	browser.ColFullName:   22,
	browser.ColFamilyName: 14,
	browser.ColFirstName:  14,
	browser.ColPhone:      16,
	browser.ColEmail:      28,
	browser.ColFilename:   26,
}

// Model is the bubbletea model. Use it through a pointer.
type Model struct {
	title   string
	doc     *page.Document
	browser *browser.Browser

	table  table.Model
	raw    viewport.Model
	col    browser.Column
	shown  string
	width  int
	height int
}

// New returns a model rendering an empty document.
func New(title string) *Model {
	m := &Model{
		title: title,
		doc:   page.New(),
		col:   browser.ColFullName,
		raw:   viewport.New(80, 20),
	}
	m.table = table.New(table.WithColumns(m.columns()), table.WithFocused(true), table.WithHeight(20))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = styles.Selected.Bold(true)
	m.table.SetStyles(styles)
	return m
}

// Document is the surface to hand to browser.Initialize.
func (m *Model) Document() *page.Document {
	return m.doc
}

// Attach connects the initialised browser. Call it before the program runs.
func (m *Model) Attach(b *browser.Browser) {
	m.browser = b
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskMsg:
		if msg.run() {
			m.sync()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(3, msg.Height-4))
		m.raw.Width = max(20, msg.Width-6)
		m.raw.Height = max(3, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.doc.RawCard.IsOpen():
			return m.updateRaw(msg)
		case m.doc.ContactEditor.IsOpen():
			return m.updateEditor(msg)
		default:
			return m.updateGrid(msg)
		}
	}
	return m, nil
}

func (m *Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		if m.col > browser.ColFullName {
			m.col--
			m.table.SetColumns(m.columns())
		}
		return m, nil
	case "right", "l":
		if m.col < browser.ColFilename {
			m.col++
			m.table.SetColumns(m.columns())
		}
		return m, nil
	case "enter":
		if m.browser != nil {
			m.browser.List.ActivateCell(m.currentRow(), m.col)
		}
		return m, nil
	case "e":
		if m.browser != nil {
			m.browser.List.ActivateRow(m.currentRow(), m.col)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) updateRaw(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.browser.Raw.Close()
		return m, nil
	}
	var cmd tea.Cmd
	m.raw, cmd = m.raw.Update(msg)
	return m, cmd
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.doc.ContactEditor
	switch msg.String() {
	case "esc", "q":
		m.browser.Editor.Close()
	case "tab", "right", "l":
		ed.SelectTab(ed.ActiveTab() + 1)
	case "shift+tab", "left", "h":
		ed.SelectTab(ed.ActiveTab() - 1)
	}
	return m, nil
}

// currentRow maps the table cursor to the browser's 1-based row id.
func (m *Model) currentRow() browser.RowID {
	return browser.RowID(m.table.Cursor() + 1)
}

// sync copies the document into the widgets after a continuation ran.
func (m *Model) sync() {
	grid := m.doc.Contacts.Rows()
	if len(grid) != len(m.table.Rows()) {
		rows := make([]table.Row, len(grid))
		for i, cells := range grid {
			rows[i] = table.Row(plainCells(cells))
		}
		m.table.SetRows(rows)
	}

	if text := m.doc.RawCard.Text(); text != m.shown {
		m.shown = text
		m.raw.SetContent(plainLines(text))
		m.raw.GotoTop()
	}
}

func (m *Model) columns() []table.Column {
	cols := make([]table.Column, len(browser.Columns))
	for i, spec := range browser.Columns {
		title := spec.Label
		if browser.Column(i) == m.col {
			title = "[" + title + "]"
		}
		cols[i] = table.Column{Title: title, Width: columnWidths[i]}
	}
	return cols
}
