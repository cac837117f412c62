package twnamespace

import (
	"regexp"
	"sort"
	"strings"
)

// hintAttribute is the author-supplied attribute that names an element's
// utility classes. The match includes leading whitespace so stripping the
// attribute leaves no double spaces behind.
var hintAttribute = regexp.MustCompile(`\s*tw-namespace=(?:"([^"]*)"|'([^']*)')`)

// classPattern locates one class-attribute syntax. Each regex captures
// three groups: prefix, class-list text and suffix, so splicing can keep
// the delimiters verbatim.
type classPattern struct {
	name  string
	regex *regexp.Regexp
}

// Supported class-attribute syntaxes: the plain attribute with either
// quote style, and the framework-expression form wrapping a string
// literal in braces.
var classPatterns = []classPattern{
	{
		name:  "plain class attribute",
		regex: regexp.MustCompile(`(class=")([^"]*)(")`),
	},
	{
		name:  "plain class attribute, single quoted",
		regex: regexp.MustCompile(`(class=')([^']*)(')`),
	},
	{
		name:  "expression class attribute",
		regex: regexp.MustCompile(`(className=\{\s*")([^"]*)("\s*\})`),
	},
	{
		name:  "expression class attribute, single quoted",
		regex: regexp.MustCompile(`(className=\{\s*')([^']*)('\s*\})`),
	},
}

// hintOccurrence is one tw-namespace attribute with its text range.
type hintOccurrence struct {
	start int // match start, including leading whitespace
	end   int
	value string
}

// edit is one pending text splice. Edits are collected while matching and
// applied in a single final pass so positions never shift mid-iteration.
type edit struct {
	start       int
	end         int
	replacement string
}

// Scan locates namespace hints and class attributes in source, resolves
// each hinted class list through r, and returns the rewritten text with
// the resolved names spliced in and all hint attributes stripped.
//
// Class attributes with no preceding hint are left untouched: only
// hint/class pairs are processed, which keeps re-scanning rewritten
// output a no-op. A hint whose value is empty or not a valid identifier
// still pairs, and falls back to hash-based naming.
func Scan(source, file string, r *Resolver) ScanResult {
	hints := findHints(source)

	var edits []edit
	var mappings []ClassMapping

	for _, p := range classPatterns {
		for _, m := range p.regex.FindAllStringSubmatchIndex(source, -1) {
			value := source[m[4]:m[5]]
			if !isStaticClassValue(value) {
				continue
			}

			hint, ok := precedingHint(hints, m[0])
			if !ok {
				continue
			}

			canonical := Normalize(value)
			name := r.Resolve(canonical, hint)

			mappings = append(mappings, ClassMapping{
				OriginalClasses:    value,
				NormalizedClasses:  canonical,
				GeneratedClassName: name,
				NamespaceHint:      hint,
				SourceFile:         file,
			})
			edits = append(edits, edit{start: m[4], end: m[5], replacement: name})
		}
	}

	if len(mappings) == 0 {
		return ScanResult{Rewritten: source, Changed: false}
	}

	// Hint attributes carry no runtime meaning once resolved.
	for _, h := range hints {
		edits = append(edits, edit{start: h.start, end: h.end})
	}

	return ScanResult{
		Rewritten: applyEdits(source, edits),
		Changed:   true,
		Mappings:  mappings,
	}
}

// findHints returns all hint occurrences in ascending offset order.
func findHints(source string) []hintOccurrence {
	matches := hintAttribute.FindAllStringSubmatchIndex(source, -1)
	hints := make([]hintOccurrence, 0, len(matches))
	for _, m := range matches {
		h := hintOccurrence{start: m[0], end: m[1]}
		if m[2] >= 0 {
			h.value = source[m[2]:m[3]]
		} else {
			h.value = source[m[4]:m[5]]
		}
		hints = append(hints, h)
	}
	return hints
}

// precedingHint finds the hint with the greatest offset strictly less
// than offset. Binary search over the ascending offsets; behaviorally
// equivalent to a linear backward scan.
func precedingHint(hints []hintOccurrence, offset int) (string, bool) {
	i := sort.Search(len(hints), func(i int) bool { return hints[i].start >= offset })
	if i == 0 {
		return "", false
	}
	return hints[i-1].value, true
}

// isStaticClassValue reports whether a class-list text can be evaluated
// at build time. Empty values and values carrying expression delimiters
// are skipped, not errors.
func isStaticClassValue(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	return !strings.ContainsAny(value, "{}$`")
}

// applyEdits splices all edits into source in one pass. Ranges never
// overlap: class-list ranges sit inside attribute quotes and hint ranges
// cover whole attributes.
func applyEdits(source string, edits []edit) string {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	out := source
	for _, e := range edits {
		out = out[:e.start] + e.replacement + out[e.end:]
	}
	return out
}
