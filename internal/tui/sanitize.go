package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// plain reduces contact text to what the terminal should print: escape
// sequences and any other control characters are dropped.
func plain(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, ansi.Strip(s))
}

// plainLines is plain for multi-line text. Line breaks survive and tabs
// become spaces.
func plainLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\t", "    ")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = plain(l)
	}
	return strings.Join(lines, "\n")
}

func plainCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = plain(c)
	}
	return out
}
