package locale

import "strings"

const upperhex = "0123456789ABCDEF"

// EscapeComponent percent-encodes s for use as a single URI component,
// leaving only ASCII letters, digits and the marks -_.!~*'() unescaped.
// Unlike [net/url.QueryEscape] spaces become %20.
func EscapeComponent(s string) string {
	n := 0

	for i := range len(s) {
		if !unreserved(s[i]) {
			n++
		}
	}

	if n == 0 {
		return s
	}

	var sb strings.Builder

	sb.Grow(len(s) + 2*n)

	for i := range len(s) {
		c := s[i]
		if unreserved(c) {
			sb.WriteByte(c)

			continue
		}

		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}

	return sb.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}

	return false
}
