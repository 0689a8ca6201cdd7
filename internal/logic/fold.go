package logic

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	folder = cases.Fold()
	titler = cases.Title(language.English)
)

// Fold normalizes s for comparison: accents are stripped and case is folded,
// so "Crème Brûlée" and "creme brulee" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return folder.String(strings.TrimSpace(stripped))
}

// Title capitalizes each word, used for category and area labels typed in
// lower case.
func Title(s string) string {
	return titler.String(s)
}
