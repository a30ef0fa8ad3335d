package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases the text, strips diacritics (ą→a, ł stays a letter so
// it is kept as-is by NFD) and collapses everything that is not a letter,
// digit or space. Queries and searchable texts go through the same pipeline so
// "smieci" still lines up with "śmieci".
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		result = text
	}

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	// ł is not decomposed by NFD, fold it by hand
	result = strings.ReplaceAll(result, "ł", "l")

	return strings.Join(strings.Fields(result), " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
