package token

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unquote decodes the body of a double-quoted MCDOC string literal (the
// quotes themselves must already be stripped by the caller). Supported
// escapes per spec §4.1: \\, \", \n, \t, \r, and \u{...}.
func Unquote(body []byte) (string, error) {
	var b strings.Builder
	b.Grow(len(body))
	i := 0
	n := len(body)
	for i < n {
		c := body[i]
		if c != '\\' {
			r, sz := utf8.DecodeRune(body[i:])
			if r == utf8.RuneError && sz <= 1 {
				return "", ErrBadUTF8
			}
			b.WriteRune(r)
			i += sz
			continue
		}
		i++
		if i >= n {
			return "", ErrBadEscape
		}
		switch body[i] {
		case '\\':
			b.WriteByte('\\')
			i++
		case '"':
			b.WriteByte('"')
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case 'u':
			i++
			if i >= n || body[i] != '{' {
				return "", ErrBadUnicode
			}
			i++
			start := i
			for i < n && body[i] != '}' {
				i++
			}
			if i >= n {
				return "", ErrBadUnicode
			}
			cp, err := strconv.ParseUint(string(body[start:i]), 16, 32)
			if err != nil {
				return "", ErrBadUnicode
			}
			b.WriteRune(rune(cp))
			i++
		default:
			return "", ErrBadEscape
		}
	}
	return b.String(), nil
}

// Quote encodes s as a double-quoted MCDOC string literal using the same
// escape set Unquote accepts.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
