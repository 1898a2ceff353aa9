package config

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stopWords = map[string]bool{
	"de":  true,
	"du":  true,
	"des": true,
	"la":  true,
	"le":  true,
	"les": true,
}

// CamelCase turns a French label into an identifier: accents are folded,
// articles and prepositions are dropped and words are capitalised. With
// plural set, the first word and any past participle (ending in é or ée)
// take an s.
//
//	CamelCase("Type de source", true, true)  // "typesSource"
//	CamelCase("Unité enquêtée", true, false) // "uniteEnquetee"
func CamelCase(text string, lowerFirst, plural bool) string {
	var b strings.Builder
	first := true
	for _, word := range strings.Fields(text) {
		word = strings.ToLower(word)
		for _, elision := range []string{"l'", "d'", "l’", "d’"} {
			word = strings.TrimPrefix(word, elision)
		}
		if word == "" || stopWords[word] {
			continue
		}
		participle := strings.HasSuffix(word, "é") || strings.HasSuffix(word, "ée")
		word = FoldAccents(word)
		if plural && (first || participle) {
			word += "s"
		}
		if !first || !lowerFirst {
			word = Capitalize(word)
		}
		b.WriteString(word)
		first = false
	}
	return b.String()
}

// CodeListNameToConceptName turns a code list name such as CL_UNIT_MEASURE
// into the name of its concept (UnitMeasure).
func CodeListNameToConceptName(name string) string {
	if len(name) >= 3 && strings.EqualFold(name[:3], "CL_") {
		name = name[3:]
	}
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		b.WriteString(Capitalize(strings.ToLower(part)))
	}
	return b.String()
}

// FoldAccents removes diacritics.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Uncapitalize lower-cases the first rune of s.
func Uncapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
