package util

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// WordPattern compiles a literal phrase anchored on word boundaries. An edge
// that is punctuation ("u.s.", "ts/sci") is left unanchored since \b would
// demand a word character on the other side.
func WordPattern(phrase string) *regexp.Regexp {
	expr := regexp.QuoteMeta(phrase)

	first, _ := utf8.DecodeRuneInString(phrase)
	last, _ := utf8.DecodeLastRuneInString(phrase)
	if isWordRune(first) {
		expr = `\b` + expr
	}
	if isWordRune(last) {
		expr = expr + `\b`
	}
	return regexp.MustCompile(expr)
}

// isWordRune mirrors the ASCII-only \b of package regexp
func isWordRune(r rune) bool {
	return r < utf8.RuneSelf && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
}
