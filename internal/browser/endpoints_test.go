package browser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emurenMRz/vdeck/internal/browser"
	"github.com/emurenMRz/vdeck/internal/contact"
	"github.com/emurenMRz/vdeck/internal/page"
)

func TestEscapeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"jane.vcf", "jane.vcf"},
		{"a b/c#d.vcf", "a%20b/c%23d.vcf"},
		{"q?.vcf", "q%3F.vcf"},
		{"100%.vcf", "100%25.vcf"},
		{"日本/太郎.vcf", "%E6%97%A5%E6%9C%AC/%E5%A4%AA%E9%83%8E.vcf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, browser.EscapeFilename(tt.in))
		})
	}
}

func TestNewEndpoints(t *testing.T) {
	e, err := browser.NewEndpoints("")
	require.NoError(t, err)
	assert.Equal(t, "/vdeck/all/", e.List)
	assert.Equal(t, "/vdeck/vcf/a%20b/c%23d.vcf", e.RawURL("a b/c#d.vcf"))
	assert.Equal(t, "/vdeck/json/a%20b/c%23d.vcf", e.DetailURL("a b/c#d.vcf"))

	e, err = browser.NewEndpoints("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/vdeck/all/", e.List)
	assert.Equal(t, "http://localhost:8080/vdeck/vcf/jane.vcf", e.RawURL("jane.vcf"))

	_, err = browser.NewEndpoints("localhost:8080/x")
	assert.Error(t, err)
}

func TestColumns(t *testing.T) {
	row := contact.Row{FullName: "Jane Doe", FamilyName: "Doe", FirstName: "Jane", Phone: "1", Email: "j@x", Filename: "jane.vcf"}

	assert.Equal(t, []string{"Jane Doe", "Doe", "Jane", "1", "j@x", "jane.vcf"}, browser.Cells(row))
	assert.Equal(t, "jane.vcf", browser.ColFilename.Cell(row))
	assert.False(t, browser.Column(-1).Valid())
	assert.False(t, browser.Column(len(browser.Columns)).Valid())
}

func TestBindRebuildsRepeatedSections(t *testing.T) {
	editor := page.NewEditor()
	d := &contact.Detail{
		FullName: "Jane Doe",
		Address: []contact.Address{
			{Street: "1 Main St", Locality: "Springfield", Country: "USA"},
			{POBox: "PO 9"},
		},
		Tel:   []contact.Value{{Value: "555-1212"}, {Value: "555-3434"}},
		Email: []contact.Value{{Value: "jane@example.com"}},
	}

	browser.Bind(editor, d)
	browser.Bind(editor, d)

	addresses := editor.TableByName(browser.TableAddress).Rows()
	require.Len(t, addresses, 2)
	for _, cells := range addresses {
		assert.Len(t, cells, 7)
	}
	assert.Equal(t, []string{"", "", "1 Main St", "Springfield", "", "", "USA"}, addresses[0])
	assert.Equal(t, 2, editor.TableByName(browser.TablePhone).Len())
	assert.Equal(t, 1, editor.TableByName(browser.TableEmail).Len())
}

func TestBindOverwritesPreviousContact(t *testing.T) {
	editor := page.NewEditor()
	browser.Bind(editor, &contact.Detail{
		FullName: "Jane Doe",
		NickName: "JD",
		Tel:      []contact.Value{{Value: "555-1212"}},
	})
	browser.Bind(editor, &contact.Detail{FullName: "John Roe"})

	assert.Equal(t, "John Roe", editor.Input(browser.InputFullName))
	assert.Empty(t, editor.Input(browser.InputNickName))
	assert.Equal(t, 0, editor.TableByName(browser.TablePhone).Len())
	assert.Equal(t, 0, editor.TableByName(browser.TableAddress).Len())
}
