package browser

import (
	"net/url"
	"strings"

	apperrors "github.com/emurenMRz/vdeck/internal/errors"
)

// Default endpoint paths served by vdeckd.
const (
	ListPath   = "/vdeck/all/"
	RawPath    = "/vdeck/vcf/"
	DetailPath = "/vdeck/json/"
)

// Endpoints are the three request targets of the browser. Raw and Detail are
// prefixes the escaped filename is appended to.
type Endpoints struct {
	List   string
	Raw    string
	Detail string
}

// NewEndpoints returns the default endpoints under base. An empty base gives
// host-relative paths.
func NewEndpoints(base string) (Endpoints, error) {
	base = strings.TrimRight(base, "/")
	if base != "" {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Endpoints{}, apperrors.ValidationError("base URL must be absolute").WithContext("base", base)
		}
	}
	return Endpoints{
		List:   base + ListPath,
		Raw:    base + RawPath,
		Detail: base + DetailPath,
	}, nil
}

// Validate checks that every endpoint is set.
func (e Endpoints) Validate() error {
	if e.List == "" || e.Raw == "" || e.Detail == "" {
		return apperrors.ValidationError("list, raw and detail endpoints are required")
	}
	return nil
}

// RawURL is the request target of the raw vCard of filename.
func (e Endpoints) RawURL(filename string) string {
	return e.Raw + EscapeFilename(filename)
}

// DetailURL is the request target of the structured form of filename.
func (e Endpoints) DetailURL(filename string) string {
	return e.Detail + EscapeFilename(filename)
}

// EscapeFilename percent-encodes each slash-separated segment of a card
// filename, keeping the separators.
func EscapeFilename(filename string) string {
	segs := strings.Split(filename, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
