package cardfix

import (
	"sort"
	"strings"

	"github.com/emersion/go-vcard"
)

// Line is one property of a card as it would be written.
type Line struct {
	Name   string
	Params string
	Value  string
}

func (l Line) String() string {
	if l.Params == "" {
		return l.Name + ": " + l.Value
	}
	return l.Name + " (" + l.Params + "): " + l.Value
}

// leading properties are listed first, in this order
var leading = map[string]int{
	vcard.FieldVersion:       0,
	vcard.FieldFormattedName: 1,
	vcard.FieldName:          2,
	vcard.FieldUID:           3,
}

// Lines lists the properties of a card with VERSION, FN, N and UID first
// and the rest by name.
func Lines(card vcard.Card) []Line {
	names := make([]string, 0, len(card))
	for name := range card {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, iok := leading[names[i]]
		oj, jok := leading[names[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		}
		return names[i] < names[j]
	})

	var lines []Line
	for _, name := range names {
		for _, f := range card[name] {
			lines = append(lines, Line{Name: name, Params: formatParams(f.Params), Value: f.Value})
		}
	}
	return lines
}

func formatParams(params vcard.Params) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strings.Join(params[k], ","))
	}
	return strings.Join(parts, ";")
}
