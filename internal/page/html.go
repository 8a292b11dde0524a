package page

import (
	"html/template"
	"io"

	"github.com/emurenMRz/vdeck/internal/browser"
)

const documentTemplate = `<!DOCTYPE html>
<html>
  <head>
    <title>{{.Title}}</title>
    <meta http-equiv="Content-Type" content="text/html; charset=utf-8"/>
  </head>
  <body>
    <h1>{{.Title}}</h1>

    <table id="{{.GridID}}">
      <thead><tr>{{range .Columns}}<th>{{.Label}}</th>{{end}}</tr></thead>
      <tbody>
{{- range .Rows}}
        <tr>{{range $i, $c := .Cells}}{{if eq $i $.FilenameColumn}}<td><a href="{{$.RawURL $c}}">{{$c}}</a></td>{{else}}<td>{{$c}}</td>{{end}}{{end}}</tr>
{{- end}}
      </tbody>
    </table>

    <div id="{{.RawDialogID}}" title="vCard"{{if not .Raw.IsOpen}} hidden{{end}}>
      <pre>{{.Raw.Text}}</pre>
    </div>

    <div id="{{.EditorID}}" title="Contact"{{if not .Editor.IsOpen}} hidden{{end}}>
      <ul>{{range $i, $t := .Tabs}}<li{{if eq $i $.Editor.ActiveTab}} class="active"{{end}}>{{$t}}</li>{{end}}</ul>
      <form>
{{- range .Inputs}}
        <label for="{{.Name}}">{{.Label}}</label> <input id="{{.Name}}" name="{{.Name}}" value="{{$.Editor.Input .Name}}"/>
{{- end}}
      </form>
{{- range .Tables}}
      <table id="{{.Name}}">
        <thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
        <tbody>
{{- range .Rows}}
          <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
        </tbody>
      </table>
{{- end}}
    </div>
  </body>
</html>
`

var documentTpl = template.Must(template.New("document").Parse(documentTemplate))

type htmlRow struct {
	Cells []string
}

type htmlView struct {
	Title          string
	GridID         string
	RawDialogID    string
	EditorID       string
	Columns        []browser.ColumnSpec
	Rows           []htmlRow
	FilenameColumn int
	Raw            *TextDialog
	Editor         *Editor
	Tabs           []string
	Inputs         []struct{ Name, Label string }
	Tables         []*Table
	endpoints      browser.Endpoints
}

func (v htmlView) RawURL(filename string) string {
	return v.endpoints.RawURL(filename)
}

// WriteHTML renders the document. Filename cells link to the raw vCard.
// Every cell and input value is written as escaped text.
func (d *Document) WriteHTML(w io.Writer, title string, endpoints browser.Endpoints) error {
	v := htmlView{
		Title:          title,
		GridID:         GridID,
		RawDialogID:    RawDialogID,
		EditorID:       EditorID,
		Columns:        browser.Columns[:],
		FilenameColumn: int(browser.ColFilename),
		Raw:            d.RawCard,
		Editor:         d.ContactEditor,
		Tabs:           Tabs,
		Inputs:         Inputs,
		Tables: []*Table{
			d.ContactEditor.TableByName(browser.TableAddress),
			d.ContactEditor.TableByName(browser.TablePhone),
			d.ContactEditor.TableByName(browser.TableEmail),
		},
		endpoints: endpoints,
	}
	for _, cells := range d.Contacts.Rows() {
		v.Rows = append(v.Rows, htmlRow{Cells: cells})
	}
	return documentTpl.Execute(w, v)
}
