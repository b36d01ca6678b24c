package strings

import (
	"strings"
	"unicode"
)

// NormalizeNewlines replaces CRLF and CR with LF.
func NormalizeNewlines(value string) string {
	if value == "" {
		return value
	}
	value = strings.ReplaceAll(value, "\r\n", "\n")
	return strings.ReplaceAll(value, "\r", "\n")
}

// TrimTrailingNewlines removes trailing CR/LF characters.
func TrimTrailingNewlines(value string) string {
	return strings.TrimRight(value, "\r\n")
}

// OneLine replaces control characters, line breaks included, with spaces so
// a title can be shown in a single table cell or list row. Other spacing is
// left alone; titles are stored verbatim.
func OneLine(value string) string {
	if strings.IndexFunc(value, unicode.IsControl) < 0 {
		return value
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, NormalizeNewlines(value))
}

// EscapeMarkdownInline escapes characters that would otherwise start inline
// markdown formatting inside a list item.
func EscapeMarkdownInline(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch r {
		case '\\', '`', '*', '_', '[', ']', '<', '>', '#', '|', '~':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
