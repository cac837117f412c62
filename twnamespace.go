// Package twnamespace turns utility-class markup into semantically named
// stylesheets at build time.
//
// The scanner extracts utility-class attributes from source files, the
// resolver groups them under stable namespace identifiers (versioning a
// namespace when it is reused with different utilities), and the
// generator emits stylesheets of @apply rules that a downstream
// utility-CSS compiler consumes.
//
// # Engine
//
// Hosts that manage their own file I/O (bundler plugins, watchers) drive
// the engine directly:
//
//	engine := twnamespace.New(twnamespace.Config{OptimizeCSS: "auto"})
//	res := engine.ProcessFile("components/header.html", content)
//	// persist res.Rewritten, then after the full pre-scan:
//	for _, sheet := range engine.Stylesheets() { ... }
//
// # Project runs
//
// One-shot builds use the batch runner, which discovers files, processes
// them all, and writes every artifact under the namespace directory:
//
//	result, err := twnamespace.Run(twnamespace.Config{
//		Mode:       "all",
//		SourceDir:  "web",
//		Extensions: []string{".html", ".vue"},
//	})
//
// # CLI Tool
//
// A CLI adapter is provided. Install with:
//
//	go install github.com/duxfercom/tailwindcss-namespace/cmd/twns@latest
package twnamespace
