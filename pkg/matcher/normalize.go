package matcher

import "strings"

// Normalize derives the lookup key for a name or filename stem:
// double quotes are stripped, then every space, hyphen, and apostrophe
// becomes an underscore. No case folding and no diacritic folding:
// keys compare byte-for-byte, so "José" and "Jose" stay distinct.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return '_'
		}
		return r
	}, s)
}

// SplitParts splits a raw (un-normalized) name on the separator
// characters, dropping empty parts. Used by the substring fallback.
func SplitParts(s string) []string {
	return strings.FieldsFunc(s, isSeparator)
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '-' || r == '\''
}
