package browser

import "github.com/emurenMRz/vdeck/internal/contact"

// Names of the editor inputs and tables a host surface must provide.
const (
	InputFullName   = "input-fullname"
	InputFirstName  = "input-firstname"
	InputFamilyName = "input-familyname"
	InputNickName   = "input-nickname"
	InputBirthday   = "input-birthday"
	InputCategories = "input-categories"
	InputUID        = "input-uid"
	InputURL        = "input-url"

	TableAddress = "vcf-address"
	TablePhone   = "vcf-phone"
	TableEmail   = "vcf-email"
)

// Surface is the host page the browser renders into. All methods of the
// surface and of the objects it returns are only called from the scheduler.
type Surface interface {
	Grid() Grid
	RawDialog() TextDialog
	Editor() EditorDialog
}

// Grid displays the contact list.
type Grid interface {
	SetRows(rows []contact.Row)
}

// TextDialog is a modal dialog with a single text region.
type TextDialog interface {
	SetText(text string)
	Open()
	Close()
}

// EditorDialog is the tabbed contact editor. Open shows the dialog on its
// first tab.
type EditorDialog interface {
	SetInput(name, value string)
	Table(name string) Table
	Open()
	Close()
}

// Table is a display table whose body rows are rebuilt on every bind. Cells
// are plain text.
type Table interface {
	Clear()
	AppendRow(cells ...string)
}

// RowID identifies a rendered grid row. Ids are 1-based positions in the
// loaded list.
type RowID int

// Column is a grid column, in display order.
type Column int

const (
	ColFullName Column = iota
	ColFamilyName
	ColFirstName
	ColPhone
	ColEmail
	ColFilename
)

// ColumnSpec describes how a column is shown.
type ColumnSpec struct {
	Name       string
	Label      string
	AlignRight bool
}

// Columns lists the grid columns in display order.
var Columns = [...]ColumnSpec{
	ColFullName:   {Name: "fullname", Label: "Full name"},
	ColFamilyName: {Name: "family_name", Label: "Family name"},
	ColFirstName:  {Name: "first_name", Label: "First name"},
	ColPhone:      {Name: "phone", Label: "Phone number", AlignRight: true},
	ColEmail:      {Name: "email", Label: "Email"},
	ColFilename:   {Name: "filename", Label: "Filename"},
}

// Valid reports whether c is one of the grid columns.
func (c Column) Valid() bool {
	return c >= ColFullName && c <= ColFilename
}

func (c Column) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return Columns[c].Name
}

// Cell returns the content of column c for row r.
func (c Column) Cell(r contact.Row) string {
	switch c {
	case ColFullName:
		return r.FullName
	case ColFamilyName:
		return r.FamilyName
	case ColFirstName:
		return r.FirstName
	case ColPhone:
		return r.Phone
	case ColEmail:
		return r.Email
	case ColFilename:
		return r.Filename
	}
	return ""
}

// Cells returns every column of r in display order.
func Cells(r contact.Row) []string {
	cells := make([]string, len(Columns))
	for i := range Columns {
		cells[i] = Column(i).Cell(r)
	}
	return cells
}
