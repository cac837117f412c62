package twnamespace

// ClassMapping records one resolved class-attribute occurrence.
// Instances are immutable once created; a rebuild replaces them wholesale.
type ClassMapping struct {
	OriginalClasses    string // utility string exactly as written in the source
	NormalizedClasses  string // canonical form: sorted, deduplicated, single-spaced
	GeneratedClassName string // resolved identifier spliced into the rewritten source
	NamespaceHint      string // hint attribute value as written (may be invalid)
	SourceFile         string // relative source path
}

// FileMapping holds the current class mappings for one source file.
// Owned by the Store, keyed by SourceFile, replaced on every re-scan.
type FileMapping struct {
	SourceFile     string
	StylesheetPath string // derived path, relative to the namespace directory
	Mappings       []ClassMapping
}

// Strategy identifies which generation mode produced a stylesheet.
type Strategy string

// Stylesheet generation strategies, smallest-output order preference
// is global, then component, then standard.
const (
	StrategyStandard  Strategy = "standard"
	StrategyComponent Strategy = "component"
	StrategyGlobal    Strategy = "global"
)

// Stylesheet is one emitted stylesheet artifact.
type Stylesheet struct {
	Path     string // relative to the namespace directory
	Content  string
	Strategy Strategy
}

// Engine run modes.
const (
	ModeBuild = "build" // process only production builds
	ModeAll   = "all"   // process every invocation
)

// OptimizeCSS modes.
const (
	OptimizeOff  = "off"  // standard: one selector per generated name
	OptimizeOn   = "on"   // component-optimized: merge shared utility sets per file
	OptimizeAuto = "auto" // generate all strategies, keep the smallest
)

// Config holds engine and project-runner configuration.
type Config struct {
	Mode         string   // "build" or "all"
	SourceDir    string   // project root to scan
	NamespaceDir string   // output root for rewritten sources and stylesheets
	Extensions   []string // eligible file suffixes, e.g. ".html"
	Include      []string // glob patterns relative to SourceDir
	OptimizeCSS  string   // "off", "on" or "auto"
	Production   bool     // set by the adapter for production builds
	Manifest     bool     // emit manifest.json alongside stylesheets
	Verbose      bool
}

// DefaultExtensions are the source suffixes scanned when none are configured.
var DefaultExtensions = []string{".html", ".vue", ".jsx", ".tsx", ".svelte"}

// withDefaults fills zero-valued fields with working defaults.
func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = ModeBuild
	}
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	if c.NamespaceDir == "" {
		c.NamespaceDir = ".tw-namespace"
	}
	if len(c.Extensions) == 0 {
		c.Extensions = DefaultExtensions
	}
	if len(c.Include) == 0 {
		c.Include = []string{"**/*"}
	}
	switch c.OptimizeCSS {
	case OptimizeOff, OptimizeOn, OptimizeAuto:
	case "", "false":
		c.OptimizeCSS = OptimizeOff
	case "true":
		c.OptimizeCSS = OptimizeOn
	default:
		c.OptimizeCSS = OptimizeAuto
	}
	return c
}

// ScanResult is the outcome of scanning one source text.
type ScanResult struct {
	Rewritten string // equals the input when Changed is false
	Changed   bool   // true iff at least one class attribute was rewritten
	Mappings  []ClassMapping
}

// ProcessResult is returned by Engine.ProcessFile.
type ProcessResult struct {
	Rewritten string
	Changed   bool
	Mappings  []ClassMapping
}

// RunResult contains batch-run statistics for reporting.
type RunResult struct {
	Skipped            bool // true when the mode gate suppressed the run
	FilesScanned       int
	FilesRewritten     int
	ClassesResolved    int
	StylesheetsWritten int
	StrategyCounts     map[Strategy]int
	Warnings           []string
}
