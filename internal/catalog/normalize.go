package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultLanguage is used for empty, malformed or unsupported language codes.
const DefaultLanguage = "en"

// Fold composes s to NFC and lower-cases it.
func Fold(s string) string {
	// Casers keep state between calls, so one is built per call.
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// Clean turns every rune that is not a letter, digit, mark or underscore
// into a space, then collapses runs of spaces. "rough-idle" becomes
// "rough idle".
func Clean(s string) string {
	stripped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r), r == '_':
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(stripped), " ")
}

// Normalize folds and cleans s. Keywords and descriptions go through the
// same transformation so that substring tests compare like with like.
func Normalize(s string) string {
	return Clean(Fold(s))
}

// CanonicalLanguage maps a language code to the base language of the tag,
// e.g. "FR" and "fr-CA" both become "fr". Codes that do not parse become
// DefaultLanguage.
func CanonicalLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(code)
	if err != nil {
		return DefaultLanguage
	}
	base, _ := tag.Base()
	return base.String()
}

// WordCount returns the number of space-separated tokens in a normalized keyword.
func WordCount(keyword string) int {
	return len(strings.Fields(keyword))
}
