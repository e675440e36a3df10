// Package naming derives identifiers and type names from JSON field names.
package naming

import (
	"regexp"
	"strings"
)

var (
	separators = strings.NewReplacer("-", " ", "_", " ")

	// leadingAcronym matches names that open with two capitals and keep
	// their casing, e.g. "URLPath".
	leadingAcronym = regexp.MustCompile(`^[A-Z][A-Z].+$`)
)

// Fold camel-cases s. Dashes and underscores count as spaces; a string with
// a single token is returned unchanged. Otherwise the first token is lower
// cased and every following token is lower cased with the first letter of
// each word upper cased. Case mapping only touches ASCII letters.
func Fold(s string) string {
	tokens := strings.Split(separators.Replace(s), " ")
	if len(tokens) == 1 {
		return tokens[0]
	}

	var b strings.Builder
	b.WriteString(asciiLower(tokens[0]))
	for _, tok := range tokens[1:] {
		b.WriteString(upperWords(asciiLower(tok)))
	}
	return b.String()
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// upperWords upper-cases the byte that opens each whitespace separated word
// when it is an ASCII letter.
func upperWords(s string) string {
	b := []byte(s)
	start := true
	for i, c := range b {
		switch {
		case isWordSpace(c):
			start = true
			continue
		case start && c >= 'a' && c <= 'z':
			b[i] = c - ('a' - 'A')
		}
		start = false
	}
	return string(b)
}

func isWordSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

// Identifier returns the name a generated field uses for the JSON key field.
// The folded name keeps a leading acronym; any other leading capital is
// lowered.
func Identifier(field string) string {
	folded := Fold(field)
	if leadingAcronym.MatchString(folded) {
		return folded
	}
	if folded != "" && folded[0] >= 'A' && folded[0] <= 'Z' {
		return strings.ToLower(folded[:1]) + folded[1:]
	}
	return folded
}

// UpperFirst upper-cases the first ASCII letter of s.
func UpperFirst(s string) string {
	if s != "" && s[0] >= 'a' && s[0] <= 'z' {
		return strings.ToUpper(s[:1]) + s[1:]
	}
	return s
}

// TypeName returns the name of the type introduced by a field with the given
// identifier. Every nested type is named after the root, whatever its depth.
func TypeName(rootName, identifier string) string {
	return Fold(rootName + UpperFirst(identifier))
}
