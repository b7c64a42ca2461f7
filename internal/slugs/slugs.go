// Package slugs turns free-form names into rule file names and back into
// display titles.
package slugs

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// RuleSlug converts s into a kebab-case rule name: lowercase ASCII letters,
// digits and single hyphens. Tool suffixes such as ".mdc" are stripped first.
func RuleSlug(s string) string {
	for _, suffix := range []string{".instructions.md", ".mdc", ".md"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}
	slugged := goslug.Make(s)
	slugged = strings.ReplaceAll(slugged, "_", "-")
	for strings.Contains(slugged, "--") {
		slugged = strings.ReplaceAll(slugged, "--", "-")
	}
	return strings.Trim(slugged, "-")
}

// TitleCase turns a kebab or snake case name into words with capitalized
// first letters: "python-style" -> "Python Style".
func TitleCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
