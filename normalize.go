package twnamespace

import (
	"regexp"
	"sort"
	"strings"
)

// identifierPattern matches class and namespace identifiers: a leading
// letter, underscore or hyphen followed by letters, digits, underscores
// or hyphens.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_-][A-Za-z0-9_-]*$`)

// Normalize canonicalizes a whitespace-separated utility-class string:
// tokens are deduplicated, sorted lexicographically and rejoined with
// single spaces. Two strings with the same tokens in any order and any
// duplication normalize identically. Idempotent.
func Normalize(classString string) string {
	tokens := strings.Fields(classString)
	seen := make(map[string]bool, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		unique = append(unique, tok)
	}
	sort.Strings(unique)
	return strings.Join(unique, " ")
}

// IsValidIdentifier reports whether s is usable as a namespace hint.
// Hints containing spaces, quotes or other non-identifier characters
// are treated as absent by the resolver.
func IsValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}
