// Package naming converts between wire keys and display labels.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Title turns a camelCase key into space separated words with a leading
// capital: "artCard" -> "Art Card", "spotUV" -> "Spot U V", "FBB" -> "F B B".
// Every upper-case letter after the first character starts a new word.
func Title(key string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(key) {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return Capitalize(b.String())
}

// CompoundKey strips all whitespace from name and capitalizes the first
// character: "Art Card" -> "ArtCard". It does not restore the lower-case
// leading letter of a camelCase key.
func CompoundKey(name string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	return Capitalize(stripped)
}

// Capitalize upper-cases the first character of s and leaves the rest alone.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
