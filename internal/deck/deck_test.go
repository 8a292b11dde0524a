package deck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emersion/go-vcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/emurenMRz/vdeck/internal/errors"
)

func card(fn, n, tel, email string) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\r\nVERSION:3.0\r\n")
	b.WriteString("FN:" + fn + "\r\n")
	b.WriteString("N:" + n + "\r\n")
	if tel != "" {
		b.WriteString("TEL:" + tel + "\r\n")
	}
	if email != "" {
		b.WriteString("EMAIL:" + email + "\r\n")
	}
	b.WriteString("END:VCARD\r\n")
	return b.String()
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func newTestDeck(t *testing.T) (*Deck, string) {
	dir := t.TempDir()
	writeFile(t, dir, "zoe.vcf", card("Zoe Zed", "Zed;Zoe;;;", "", "zoe@example.com"))
	writeFile(t, dir, "friends/jane.vcf", card("Jane Doe", "Doe;Jane;;;", "555-1212", ""))
	writeFile(t, dir, "broken.vcf", "BEGIN:VCARD\r\nnot a property\r\n")
	writeFile(t, dir, "notes.txt", "ignored")
	return New(dir), dir
}

func TestLoadWalksTreeInNameOrder(t *testing.T) {
	d, _ := newTestDeck(t)

	rows, err := d.Rows()
	require.NoError(t, err)

	require.Len(t, rows, 2, "broken cards and non-vcf files are skipped")
	assert.Equal(t, "friends/jane.vcf", rows[0].Filename)
	assert.Equal(t, "Jane", rows[0].FirstName)
	assert.Equal(t, "555-1212", rows[0].Phone)
	assert.Equal(t, "zoe.vcf", rows[1].Filename)
	assert.Equal(t, "zoe@example.com", rows[1].Email)
}

func TestLoadEmptyDeck(t *testing.T) {
	rows, err := New(t.TempDir()).Rows()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRawReturnsStoredBytes(t *testing.T) {
	d, _ := newTestDeck(t)

	b, err := d.Raw("friends/jane.vcf")
	require.NoError(t, err)
	assert.Equal(t, card("Jane Doe", "Doe;Jane;;;", "555-1212", ""), string(b))
}

func TestDetail(t *testing.T) {
	d, _ := newTestDeck(t)

	detail, err := d.Detail("zoe.vcf")
	require.NoError(t, err)
	assert.Equal(t, "Zoe Zed", detail.FullName)
	assert.Equal(t, "Zed", detail.Name.FamilyName)
}

func TestResolveRejectsEscapes(t *testing.T) {
	d, dir := newTestDeck(t)
	writeFile(t, filepath.Dir(dir), "outside.vcf", card("X", "X;;;;", "", ""))

	for _, name := range []string{"", "../outside.vcf", "friends/../../outside.vcf", "/etc/passwd", ".", `friends\jane.vcf`} {
		_, err := d.Raw(name)
		require.Error(t, err, name)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation), name)
	}
}

func TestMissingCardIsNotFound(t *testing.T) {
	d, _ := newTestDeck(t)

	_, err := d.Detail("nobody.vcf")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestNameFor(t *testing.T) {
	tests := []struct {
		uid  string
		want string
		ok   bool
	}{
		{"urn:uuid:0190b0e4-aaaa-7bbb-8ccc-123456789abc", "0190b0e4-aaaa-7bbb-8ccc-123456789abc.vcf", true},
		{"URN:UUID:abc", "abc.vcf", true},
		{"jane@example.com", "jane@example.com.vcf", true},
		{"a/b:c", "a_b_c.vcf", true},
		{"", "", false},
		{"...", "", false},
	}
	for _, tt := range tests {
		c := vcard.Card{}
		if tt.uid != "" {
			c.SetValue(vcard.FieldUID, tt.uid)
		}
		got, err := NameFor(c)
		if !tt.ok {
			assert.Error(t, err, tt.uid)
			continue
		}
		require.NoError(t, err, tt.uid)
		assert.Equal(t, tt.want, got)
	}
}

func TestWriteThenLoad(t *testing.T) {
	d := New(t.TempDir())

	c := vcard.Card{}
	c.SetValue(vcard.FieldVersion, "3.0")
	c.SetValue(vcard.FieldFormattedName, "Written Card")
	c.SetValue(vcard.FieldUID, "urn:uuid:1234")
	c.SetName(&vcard.Name{GivenName: "Written", FamilyName: "Card"})

	name, err := d.Write(c)
	require.NoError(t, err)
	assert.Equal(t, "1234.vcf", name)

	detail, err := d.Detail(name)
	require.NoError(t, err)
	assert.Equal(t, "Written Card", detail.FullName)
	assert.Equal(t, "Card", detail.Name.FamilyName)

	matches, err := filepath.Glob(filepath.Join(d.Root(), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temporary files are cleaned up")
}

func TestWriteRequiresVersion(t *testing.T) {
	c := vcard.Card{}
	c.SetValue(vcard.FieldUID, "x")
	_, err := New(t.TempDir()).Write(c)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestRawServesOnlyCards(t *testing.T) {
	d, dir := newTestDeck(t)
	writeFile(t, dir, ".env", "CARDDAV_PASSWORD=hunter2\n")
	writeFile(t, dir, ".git/hidden.vcf", card("Hidden", "Hidden;;;;", "", ""))

	for _, name := range []string{".env", "notes.txt", ".git/hidden.vcf", "friends/.env"} {
		_, err := d.Raw(name)
		require.Error(t, err, name)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound), name)
	}

	writeFile(t, dir, "upper.VCF", card("Upper", "Upper;;;;", "", ""))
	_, err := d.Raw("upper.VCF")
	assert.NoError(t, err)
}

func TestSymlinksStayInsideDeck(t *testing.T) {
	d, dir := newTestDeck(t)
	outside := filepath.Join(t.TempDir(), "outside.vcf")
	require.NoError(t, os.WriteFile(outside, []byte(card("Out", "Out;;;;", "", "")), 0o644))
	if err := os.Symlink(outside, filepath.Join(dir, "link.vcf")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "zoe.vcf"), filepath.Join(dir, "alias.vcf")))

	_, err := d.Raw("link.vcf")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))

	b, err := d.Raw("alias.vcf")
	require.NoError(t, err)
	assert.Contains(t, string(b), "FN:Zoe Zed")

	entries, err := d.Load()
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "alias.vcf")
	assert.NotContains(t, names, "link.vcf")
}

func TestUndecodableCardIsValidationError(t *testing.T) {
	d, _ := newTestDeck(t)

	_, err := d.Detail("broken.vcf")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}
