// Package page is an in-memory host surface for the contact browser. The
// same document renders to HTML for the server index.
package page

import (
	"github.com/emurenMRz/vdeck/internal/browser"
	"github.com/emurenMRz/vdeck/internal/contact"
)

// Element ids of the page.
const (
	GridID      = "contacts"
	RawDialogID = "vcf-raw"
	EditorID    = "vcf-editor"
)

// Editor tabs, in order.
var Tabs = []string{"General", "Addresses", "Phones", "Emails"}

// Document holds the grid and the two dialogs.
type Document struct {
	Contacts      *Grid
	RawCard       *TextDialog
	ContactEditor *Editor
}

var _ browser.Surface = (*Document)(nil)

// New returns an empty document with every element the browser expects.
func New() *Document {
	return &Document{
		Contacts:      &Grid{},
		RawCard:       &TextDialog{},
		ContactEditor: NewEditor(),
	}
}

func (d *Document) Grid() browser.Grid { return d.Contacts }
func (d *Document) RawDialog() browser.TextDialog { return d.RawCard }
func (d *Document) Editor() browser.EditorDialog { return d.ContactEditor }

// Grid is the rendered contact list.
type Grid struct {
	rows []contact.Row
}

func (g *Grid) SetRows(rows []contact.Row) {
	g.rows = append([]contact.Row(nil), rows...)
}

// Len returns the number of rendered rows.
func (g *Grid) Len() int {
	return len(g.rows)
}

// Rows returns the rendered rows as cells, columns in display order.
func (g *Grid) Rows() [][]string {
	out := make([][]string, len(g.rows))
	for i, r := range g.rows {
		out[i] = browser.Cells(r)
	}
	return out
}

// Row returns the contact behind a rendered row.
func (g *Grid) Row(id browser.RowID) (contact.Row, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(g.rows) {
		return contact.Row{}, false
	}
	return g.rows[i], true
}

// TextDialog is a modal dialog with one text region.
type TextDialog struct {
	text string
	open bool
}

func (d *TextDialog) SetText(text string) { d.text = text }
func (d *TextDialog) Open() { d.open = true }
func (d *TextDialog) Close() { d.open = false }

func (d *TextDialog) Text() string { return d.text }
func (d *TextDialog) IsOpen() bool { return d.open }

// Editor is the tabbed contact editor.
type Editor struct {
	inputs    map[string]string
	tables    map[string]*Table
	open      bool
	activeTab int
}

// Inputs lists the editor inputs in display order.
var Inputs = []struct{ Name, Label string }{
	{browser.InputFullName, "Full name"},
	{browser.InputFirstName, "First name"},
	{browser.InputFamilyName, "Family name"},
	{browser.InputNickName, "Nickname"},
	{browser.InputBirthday, "Birthday"},
	{browser.InputCategories, "Categories"},
	{browser.InputUID, "UID"},
	{browser.InputURL, "URL"},
}

func NewEditor() *Editor {
	e := &Editor{
		inputs: make(map[string]string),
		tables: map[string]*Table{
			browser.TableAddress: {Name: browser.TableAddress, Header: []string{"PO box", "Extended", "Street", "Locality", "Region", "Postal code", "Country"}},
			browser.TablePhone:   {Name: browser.TablePhone, Header: []string{"Phone"}},
			browser.TableEmail:   {Name: browser.TableEmail, Header: []string{"Email"}},
		},
	}
	for _, in := range Inputs {
		e.inputs[in.Name] = ""
	}
	return e
}

func (e *Editor) SetInput(name, value string) { e.inputs[name] = value }

// Table returns the named table, creating it if the editor has none.
func (e *Editor) Table(name string) browser.Table {
	return e.TableByName(name)
}

// TableByName is Table with the concrete type.
func (e *Editor) TableByName(name string) *Table {
	t, ok := e.tables[name]
	if !ok {
		t = &Table{Name: name}
		e.tables[name] = t
	}
	return t
}

// Open shows the editor on its first tab.
func (e *Editor) Open() {
	e.open = true
	e.activeTab = 0
}

func (e *Editor) Close() { e.open = false }

func (e *Editor) IsOpen() bool { return e.open }

// Input returns the value of the named input.
func (e *Editor) Input(name string) string { return e.inputs[name] }

// ActiveTab returns the index of the visible tab.
func (e *Editor) ActiveTab() int { return e.activeTab }

// SelectTab shows tab i, wrapping around.
func (e *Editor) SelectTab(i int) {
	n := len(Tabs)
	e.activeTab = ((i % n) + n) % n
}

// Table is a display table with a fixed header and rebuildable body.
type Table struct {
	Name   string
	Header []string
	body   [][]string
}

func (t *Table) Clear() { t.body = nil }

func (t *Table) AppendRow(cells ...string) {
	t.body = append(t.body, append([]string(nil), cells...))
}

// Rows returns the body rows.
func (t *Table) Rows() [][]string { return t.body }

// Len returns the number of body rows.
func (t *Table) Len() int { return len(t.body) }
