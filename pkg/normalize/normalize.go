// Package normalize prepares free-text chat messages for phrase matching.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// punctuation removed outright before matching. These are the marks users
// actually type around Spanish questions; anything else is left alone.
var punctuationReplacer = strings.NewReplacer(
	"¿", "", "?", "",
	"¡", "", "!", "",
	",", "", ".", "",
	":", "", ";", "",
)

// stripAccents decomposes to NFD, drops combining marks and recomposes,
// so "evaluación" becomes "evaluacion".
var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Clean lowercases the message, removes question/exclamation punctuation and
// diacritics, and trims surrounding whitespace. It is deterministic and never
// fails: if the transform chain errors on malformed input the partially
// transformed text is used as-is.
func Clean(raw string) string {
	s := strings.ToLower(raw)
	s = punctuationReplacer.Replace(s)
	if stripped, _, err := transform.String(stripAccents, s); err == nil {
		s = stripped
	}
	return strings.TrimSpace(s)
}
