package twnamespace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// GenerateStandard emits one selector block per distinct generated name
// in the file, in first-seen order, applying the utility tokens from the
// name's first-seen list in original order. Duplicate names collapse to
// their first occurrence.
func GenerateStandard(fm *FileMapping) string {
	var b strings.Builder
	writeAttribution(&b, fm.SourceFile)

	seen := make(map[string]bool)
	for _, m := range fm.Mappings {
		if seen[m.GeneratedClassName] {
			continue
		}
		seen[m.GeneratedClassName] = true
		writeRule(&b, "."+m.GeneratedClassName, strings.Fields(m.OriginalClasses))
	}
	return b.String()
}

// GenerateComponentOptimized merges selectors within one file that share
// an identical utility-token set into combined rules, then emits any
// utilities left uncovered as per-name rules.
func GenerateComponentOptimized(fm *FileMapping) string {
	var b strings.Builder
	writeAttribution(&b, fm.SourceFile)

	names, tokens := collectUtilities(fm.Mappings)
	writeOptimized(&b, names, tokens)
	return b.String()
}

// GenerateGlobalOptimized runs the component-optimized algorithm over the
// union of all files' mappings at once. Per-file stylesheets are carved
// out of the result with ExtractFileRules.
func GenerateGlobalOptimized(fms []*FileMapping) string {
	var all []ClassMapping
	for _, fm := range fms {
		all = append(all, fm.Mappings...)
	}

	var b strings.Builder
	names, tokens := collectUtilities(all)
	writeOptimized(&b, names, tokens)
	return b.String()
}

// ExtractFileRules filters a global stylesheet down to the rule blocks
// whose selector list mentions at least one of the given names. The
// extraction is line-oriented brace matching with a selector-substring
// search, best-effort rather than CSS-correct: multi-line selector lists
// may be missed.
func ExtractFileRules(globalCSS string, names []string) string {
	lines := strings.Split(globalCSS, "\n")
	var b strings.Builder

	i := 0
	for i < len(lines) {
		line := lines[i]
		brace := strings.Index(line, "{")
		if brace < 0 {
			i++
			continue
		}

		depth := strings.Count(line, "{") - strings.Count(line, "}")
		j := i + 1
		for j < len(lines) && depth > 0 {
			depth += strings.Count(lines[j], "{") - strings.Count(lines[j], "}")
			j++
		}

		if selectorMentionsAny(line[:brace], names) {
			for k := i; k < j; k++ {
				b.WriteString(lines[k])
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
		i = j
	}
	return b.String()
}

// SelectSmallest keeps the candidate with the smallest stripped length.
// Candidates are evaluated global first, then component, then standard,
// and the first one reaching the minimum wins, so ties prefer the more
// aggressive optimization.
func SelectSmallest(global, component, standard string) (string, Strategy) {
	content, strategy := global, StrategyGlobal
	best := StrippedLength(global)

	if n := StrippedLength(component); n < best {
		content, strategy, best = component, StrategyComponent, n
	}
	if n := StrippedLength(standard); n < best {
		content, strategy = standard, StrategyStandard
	}
	return content, strategy
}

// StrippedLength measures stylesheet text after removing comments and
// blank lines. Comments are dropped with the CSS lexer, which keeps all
// other token text verbatim.
func StrippedLength(stylesheet string) int {
	lexer := css.NewLexer(parse.NewInputString(stylesheet))
	var b strings.Builder
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		if tt == css.CommentToken {
			continue
		}
		b.Write(text)
	}

	var n int
	for _, line := range strings.Split(b.String(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n += len(line) + 1
	}
	return n
}

// DeriveStylesheetPath maps a relative source path to its stylesheet
// path: same relative directory, source basename plus ".css".
func DeriveStylesheetPath(sourceFile string) string {
	return sourceFile + ".css"
}

// collectUtilities returns the distinct generated names in first-seen
// order plus each name's first-seen utility-token list, deduplicated but
// keeping original order.
func collectUtilities(mappings []ClassMapping) ([]string, map[string][]string) {
	var names []string
	tokens := make(map[string][]string)

	for _, m := range mappings {
		if _, ok := tokens[m.GeneratedClassName]; ok {
			continue
		}
		names = append(names, m.GeneratedClassName)

		fields := strings.Fields(m.OriginalClasses)
		seen := make(map[string]bool, len(fields))
		list := make([]string, 0, len(fields))
		for _, tok := range fields {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			list = append(list, tok)
		}
		tokens[m.GeneratedClassName] = list
	}
	return names, tokens
}

// writeOptimized emits the shared-utility grouping: utilities used by an
// identical set of two or more names are merged into one combined rule,
// grouped rules first, leftovers per name afterwards. The grouping key
// is the sorted, comma-joined name list sharing the utility.
func writeOptimized(b *strings.Builder, names []string, tokens map[string][]string) {
	usedBy := make(map[string][]string)
	var utilOrder []string
	for _, n := range names {
		for _, u := range tokens[n] {
			if _, ok := usedBy[u]; !ok {
				utilOrder = append(utilOrder, u)
			}
			usedBy[u] = append(usedBy[u], n)
		}
	}

	type group struct {
		names []string
		utils []string
	}
	groups := make(map[string]*group)
	var groupOrder []string
	for _, u := range utilOrder {
		sharing := append([]string(nil), usedBy[u]...)
		sort.Strings(sharing)
		key := strings.Join(sharing, ", ")

		g, ok := groups[key]
		if !ok {
			g = &group{names: sharing}
			groups[key] = g
			groupOrder = append(groupOrder, key)
		}
		g.utils = append(g.utils, u)
	}

	covered := make(map[string]map[string]bool)
	for _, key := range groupOrder {
		g := groups[key]
		if len(g.names) < 2 || len(g.utils) == 0 {
			continue
		}
		writeRule(b, "."+strings.Join(g.names, ", ."), g.utils)
		for _, n := range g.names {
			if covered[n] == nil {
				covered[n] = make(map[string]bool)
			}
			for _, u := range g.utils {
				covered[n][u] = true
			}
		}
	}

	for _, n := range names {
		var rest []string
		for _, u := range tokens[n] {
			if !covered[n][u] {
				rest = append(rest, u)
			}
		}
		if len(rest) > 0 {
			writeRule(b, "."+n, rest)
		}
	}
}

// writeRule emits one selector block with an @apply line per utility.
// The @apply directive syntax is a pass-through contract with the
// downstream utility-CSS compiler and must stay verbatim.
func writeRule(b *strings.Builder, selectors string, utilities []string) {
	b.WriteString(selectors)
	b.WriteString(" {\n")
	for _, u := range utilities {
		b.WriteString("  @apply ")
		b.WriteString(u)
		b.WriteString(";\n")
	}
	b.WriteString("}\n\n")
}

// writeAttribution emits the leading file-attribution comment carried by
// standard and component-optimized stylesheets.
func writeAttribution(b *strings.Builder, sourceFile string) {
	fmt.Fprintf(b, "/* source: %s */\n\n", sourceFile)
}

// selectorMentionsAny reports whether a selector list references one of
// the names as a class selector with a proper token boundary.
func selectorMentionsAny(selector string, names []string) bool {
	for _, n := range names {
		target := "." + n
		idx := 0
		for {
			p := strings.Index(selector[idx:], target)
			if p < 0 {
				break
			}
			end := idx + p + len(target)
			if end == len(selector) || !isIdentByte(selector[end]) {
				return true
			}
			idx = end
		}
	}
	return false
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
