package contact

import (
	"io"
	"mime/quotedprintable"
	"strings"

	"github.com/emersion/go-vcard"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

const (
	paramEncoding = "ENCODING"
	paramCharset  = "CHARSET"
)

// DecodeLegacy rewrites quoted-printable and non UTF-8 field values in place
// and drops the parameters that described them, so the card re-encodes as
// plain UTF-8.
func DecodeLegacy(card vcard.Card) {
	for _, fields := range card {
		for _, f := range fields {
			decodeField(f)
		}
	}
}

func decodeField(f *vcard.Field) {
	if f.Params == nil {
		return
	}

	if strings.EqualFold(f.Params.Get(paramEncoding), "QUOTED-PRINTABLE") {
		b, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(f.Value)))
		if err != nil {
			return
		}
		f.Value = string(b)
		delete(f.Params, paramEncoding)
	}

	charset := f.Params.Get(paramCharset)
	if charset == "" {
		return
	}
	if v, ok := decodeCharset(charset, f.Value); ok {
		f.Value = v
		delete(f.Params, paramCharset)
	}
}

// decodeCharset converts s from the named IANA charset to UTF-8.
func decodeCharset(charset, s string) (string, bool) {
	enc, err := ianaindex.IANA.Encoding(strings.ToLower(charset))
	if err != nil || enc == nil {
		return s, false
	}
	out, _, err := transform.String(enc.NewDecoder(), s)
	if err != nil {
		return s, false
	}
	return out, true
}
