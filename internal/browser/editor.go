package browser

import (
	"encoding/json"
	"sync/atomic"

	"github.com/emurenMRz/vdeck/internal/contact"
	"github.com/emurenMRz/vdeck/internal/logging"
)

// RowSource resolves a grid row id to its contact row.
type RowSource interface {
	Row(id RowID) (contact.Row, bool)
}

// EditorBinder opens the contact editor for an activated row.
type EditorBinder struct {
	editor    EditorDialog
	rows      RowSource
	endpoints Endpoints
	fetcher   *Fetcher
	log       logging.Logger

	gen atomic.Uint64
}

func NewEditorBinder(editor EditorDialog, rows RowSource, endpoints Endpoints, fetcher *Fetcher, log logging.Logger) *EditorBinder {
	return &EditorBinder{editor: editor, rows: rows, endpoints: endpoints, fetcher: fetcher, log: log}
}

// HandleRow reacts to row activations outside the filename column. The card
// is always looked up through the row's filename, whichever column fired.
func (b *EditorBinder) HandleRow(ev CellEvent) {
	if ev.Column == ColFilename {
		return
	}
	row, ok := b.rows.Row(ev.Row)
	if !ok {
		return
	}
	b.Open(row.Filename)
}

// Open fetches the detail of filename, binds it and opens the editor. Only
// the latest request is applied; a failed fetch or decode leaves the editor
// closed and untouched.
func (b *EditorBinder) Open(filename string) {
	gen := b.gen.Add(1)
	url := b.endpoints.DetailURL(filename)

	b.fetcher.Get(url, func(body []byte, err error) {
		if err != nil {
			b.log.Debug("Contact detail request failed", logging.String("filename", filename), logging.Err(err))
			return
		}
		if cur := b.gen.Load(); cur != gen {
			b.log.Debug("Dropping superseded contact detail", logging.String("filename", filename), logging.Uint64("generation", gen))
			return
		}
		var d contact.Detail
		if err := json.Unmarshal(body, &d); err != nil {
			b.log.Debug("Contact detail is not valid JSON", logging.String("filename", filename), logging.Err(err))
			return
		}
		Bind(b.editor, &d)
		b.editor.Open()
	})
}

// Close hides the editor.
func (b *EditorBinder) Close() {
	b.editor.Close()
}

// Bind writes d into the editor: scalar fields overwrite their inputs and
// each repeated section is rebuilt from an empty table.
func Bind(editor EditorDialog, d *contact.Detail) {
	editor.SetInput(InputFullName, d.FullName)
	editor.SetInput(InputFirstName, d.Name.GivenName)
	editor.SetInput(InputFamilyName, d.Name.FamilyName)
	editor.SetInput(InputNickName, d.NickName)
	editor.SetInput(InputBirthday, d.Birthday)
	editor.SetInput(InputCategories, d.Categories)
	editor.SetInput(InputUID, d.Uid)
	editor.SetInput(InputURL, d.Url)

	addresses := editor.Table(TableAddress)
	addresses.Clear()
	for _, a := range d.Address {
		addresses.AppendRow(a.Cells()...)
	}

	phones := editor.Table(TablePhone)
	phones.Clear()
	for _, tel := range d.Tel {
		phones.AppendRow(tel.Value)
	}

	emails := editor.Table(TableEmail)
	emails.Clear()
	for _, email := range d.Email {
		emails.AppendRow(email.Value)
	}
}
