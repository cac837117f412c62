package twnamespace

import (
	"sort"
	"sync"
)

// AggregateStylesheetName is the aggregate stylesheet emitted alongside
// the per-file stylesheets.
const AggregateStylesheetName = "namespace.css"

// SafelistFileName redirects the downstream utility-CSS compiler to the
// generated stylesheets instead of raw source.
const SafelistFileName = "safelist.txt"

// Engine ties the scanner, resolver, store and generator together. One
// engine holds one set of namespace tables; independent engines never
// share state. All mutations are serialized behind a single lock because
// version assignment is a global sequential counter.
type Engine struct {
	mu       sync.Mutex
	cfg      Config
	resolver *Resolver
	store    *Store
}

// New returns an Engine with empty tables, filling config defaults.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:      cfg.withDefaults(),
		resolver: NewResolver(),
		store:    NewStore(),
	}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// ProcessFile scans one source file's content, replaces the file's
// mappings in the store, and returns the rewritten text. A re-scan that
// yields no mappings removes the file's previous state and rebuilds the
// namespace tables so orphaned versions cannot linger.
func (e *Engine) ProcessFile(path, content string) ProcessResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := Scan(content, path, e.resolver)
	if res.Changed {
		e.store.Upsert(&FileMapping{
			SourceFile:     path,
			StylesheetPath: DeriveStylesheetPath(path),
			Mappings:       res.Mappings,
		})
	} else if e.store.Remove(path) {
		e.store.RebuildNamespaceTables(e.resolver)
	}

	return ProcessResult{
		Rewritten: res.Rewritten,
		Changed:   res.Changed,
		Mappings:  res.Mappings,
	}
}

// RemoveFile drops a deleted file's mappings and rebuilds the namespace
// tables from the surviving files.
func (e *Engine) RemoveFile(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store.Remove(path) {
		e.store.RebuildNamespaceTables(e.resolver)
	}
}

// RemoveDir drops every file under a deleted directory prefix and
// rebuilds the namespace tables.
func (e *Engine) RemoveDir(prefix string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store.RemoveByPathPrefix(prefix) > 0 {
		e.store.RebuildNamespaceTables(e.resolver)
	}
}

// Rebuild recomputes the namespace tables from the live mappings.
func (e *Engine) Rebuild() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.RebuildNamespaceTables(e.resolver)
}

// FileMappings returns the tracked mappings in sorted file order.
func (e *Engine) FileMappings() []*FileMapping {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.Files()
}

// Stylesheets generates one stylesheet per tracked file using the
// configured strategy. Callers must finish the full pre-scan before the
// first call: stylesheets emitted early could miss namespace versions
// discovered in later files.
func (e *Engine) Stylesheets() []Stylesheet {
	e.mu.Lock()
	defer e.mu.Unlock()

	files := e.store.Files()

	var globalCSS string
	if e.cfg.OptimizeCSS == OptimizeAuto {
		globalCSS = GenerateGlobalOptimized(files)
	}

	out := make([]Stylesheet, 0, len(files))
	for _, fm := range files {
		var content string
		var strategy Strategy

		switch e.cfg.OptimizeCSS {
		case OptimizeOff:
			content, strategy = GenerateStandard(fm), StrategyStandard
		case OptimizeOn:
			content, strategy = GenerateComponentOptimized(fm), StrategyComponent
		default:
			global := ExtractFileRules(globalCSS, distinctNames(fm.Mappings))
			component := GenerateComponentOptimized(fm)
			standard := GenerateStandard(fm)
			content, strategy = SelectSmallest(global, component, standard)
		}

		out = append(out, Stylesheet{
			Path:     fm.StylesheetPath,
			Content:  content,
			Strategy: strategy,
		})
	}
	return out
}

// Aggregate generates the whole-project stylesheet: a concatenation of
// the standard per-file outputs when optimization is off, the
// global-optimized output otherwise.
func (e *Engine) Aggregate() Stylesheet {
	e.mu.Lock()
	defer e.mu.Unlock()

	files := e.store.Files()

	if e.cfg.OptimizeCSS == OptimizeOff {
		var b []byte
		for _, fm := range files {
			b = append(b, GenerateStandard(fm)...)
		}
		return Stylesheet{
			Path:     AggregateStylesheetName,
			Content:  string(b),
			Strategy: StrategyStandard,
		}
	}

	return Stylesheet{
		Path:     AggregateStylesheetName,
		Content:  GenerateGlobalOptimized(files),
		Strategy: StrategyGlobal,
	}
}

// Safelist returns every generated class name across all tracked files,
// sorted and deduplicated.
func (e *Engine) Safelist() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	seen := make(map[string]bool)
	var names []string
	for _, fm := range e.store.Files() {
		for _, m := range fm.Mappings {
			if seen[m.GeneratedClassName] {
				continue
			}
			seen[m.GeneratedClassName] = true
			names = append(names, m.GeneratedClassName)
		}
	}
	sort.Strings(names)
	return names
}

// distinctNames returns the distinct generated names in first-seen order.
func distinctNames(mappings []ClassMapping) []string {
	seen := make(map[string]bool, len(mappings))
	var names []string
	for _, m := range mappings {
		if seen[m.GeneratedClassName] {
			continue
		}
		seen[m.GeneratedClassName] = true
		names = append(names, m.GeneratedClassName)
	}
	return names
}
