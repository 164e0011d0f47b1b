package jql

import "strings"

// reservedChars are the punctuation characters JQL treats as operators inside
// a quoted text literal. Each is prefixed with two backslashes.
const reservedChars = `+-&|!(){}[]^~*?\:`

// EscapeText renders raw as a quoted JQL text literal.
//
// A double quote is prefixed with one backslash. Every reserved character is
// prefixed with two backslashes, so "[foo]" renders as "\\[foo\\]". All other
// bytes, including multi-byte UTF-8 sequences, are copied unchanged.
//
// Examples:
//
//	EscapeText("foo.bar@example.com") → "foo.bar@example.com"
//	EscapeText("[foo]:(bar)")          → "\\[foo\\]\\:\\(bar\\)"
//	EscapeText("")                     → ""
func EscapeText(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) + 2)

	b.WriteByte('"')
	// Reserved characters are all ASCII, so walking bytes never splits a rune
	// and leaves invalid UTF-8 untouched.
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '"':
			b.WriteByte('\\')
		case strings.IndexByte(reservedChars, c) >= 0:
			b.WriteString(`\\`)
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')

	return b.String()
}
