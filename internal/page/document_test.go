package page

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emurenMRz/vdeck/internal/browser"
	"github.com/emurenMRz/vdeck/internal/contact"
)

func TestGridRows(t *testing.T) {
	doc := New()
	rows := []contact.Row{{FullName: "Jane Doe", Filename: "jane.vcf"}}
	doc.Contacts.SetRows(rows)
	rows[0].FullName = "changed"

	require.Equal(t, 1, doc.Contacts.Len())
	r, ok := doc.Contacts.Row(1)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", r.FullName)

	_, ok = doc.Contacts.Row(0)
	assert.False(t, ok)
	_, ok = doc.Contacts.Row(2)
	assert.False(t, ok)
}

func TestEditorOpenResetsTab(t *testing.T) {
	e := NewEditor()
	e.SelectTab(3)
	assert.Equal(t, 3, e.ActiveTab())
	e.SelectTab(5)
	assert.Equal(t, 1, e.ActiveTab())
	e.SelectTab(-1)
	assert.Equal(t, 3, e.ActiveTab())

	e.Open()
	assert.True(t, e.IsOpen())
	assert.Equal(t, 0, e.ActiveTab())

	e.Close()
	assert.False(t, e.IsOpen())
}

func TestEditorTables(t *testing.T) {
	e := NewEditor()
	assert.Len(t, e.TableByName(browser.TableAddress).Header, 7)

	tbl := e.Table("extra")
	tbl.AppendRow("a", "b")
	assert.Equal(t, [][]string{{"a", "b"}}, e.TableByName("extra").Rows())
	tbl.Clear()
	assert.Equal(t, 0, e.TableByName("extra").Len())
}

func TestWriteHTMLEscapesCells(t *testing.T) {
	doc := New()
	doc.Contacts.SetRows([]contact.Row{
		{FullName: "<b>Jane</b>", Email: "jane&co@example.com", Filename: "a b/c#d.vcf"},
	})
	doc.RawCard.SetText("FN:<script>x</script>")
	doc.ContactEditor.SetInput(browser.InputFullName, `Jane "JD" Doe`)

	endpoints, err := browser.NewEndpoints("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteHTML(&buf, "vdeck", endpoints))
	out := buf.String()

	assert.Contains(t, out, "&lt;b&gt;Jane&lt;/b&gt;")
	assert.NotContains(t, out, "<b>Jane</b>")
	assert.Contains(t, out, "jane&amp;co@example.com")
	assert.Contains(t, out, `href="/vdeck/vcf/a%20b/c%23d.vcf"`)
	assert.Contains(t, out, "FN:&lt;script&gt;x&lt;/script&gt;")
	assert.Contains(t, out, `value="Jane &#34;JD&#34; Doe"`)
	assert.Contains(t, out, `<div id="vcf-raw" title="vCard" hidden>`)
	assert.Contains(t, out, `<table id="vcf-address">`)
	assert.Contains(t, out, `<li class="active">General</li>`)
}

func TestWriteHTMLEmptyDocument(t *testing.T) {
	endpoints, err := browser.NewEndpoints("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New().WriteHTML(&buf, "vdeck", endpoints))

	assert.Contains(t, buf.String(), `<table id="contacts">`)
	assert.Contains(t, buf.String(), "<th>Full name</th>")
}
