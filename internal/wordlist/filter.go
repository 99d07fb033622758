package wordlist

import (
	"unicode"
	"unicode/utf8"
)

// ValidWord reports whether word can be exploded into typable cells: it must
// be non-empty valid UTF-8 and contain only printable, non-space runes.
func ValidWord(word string) bool {
	if word == "" || !utf8.ValidString(word) {
		return false
	}
	for _, r := range word {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
