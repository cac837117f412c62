// Package report formats namespace-run results for terminal output.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	twnamespace "github.com/duxfercom/tailwindcss-namespace"
)

// Reporter writes run summaries and warnings.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter. forceColors skips terminal detection.
func NewReporter(w io.Writer, forceColors bool) *Reporter {
	return &Reporter{w: w, useColors: ShouldUseColors(forceColors)}
}

// ShouldUseColors determines whether color output is enabled.
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}

	// FORCE_COLOR and GitHub Actions both support colors without a TTY.
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// PrintSummary outputs run statistics.
func (r *Reporter) PrintSummary(result *twnamespace.RunResult, namespaceDir string) {
	if result.Skipped {
		fmt.Fprintln(r.w, RenderStyle(StyleGray,
			"Skipped: mode is \"build\" and this is not a production run", r.useColors))
		return
	}

	fmt.Fprintln(r.w, RenderStyle(StyleGreen,
		fmt.Sprintf("Generated namespace output in %s", namespaceDir), r.useColors))
	fmt.Fprintf(r.w, "  Files scanned:       %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "  Files rewritten:     %d\n", result.FilesRewritten)
	fmt.Fprintf(r.w, "  Classes resolved:    %d\n", result.ClassesResolved)
	fmt.Fprintf(r.w, "  Stylesheets written: %d\n", result.StylesheetsWritten)

	r.printStrategies(result)
}

// printStrategies lists how many per-file stylesheets each generation
// strategy produced, in a stable order.
func (r *Reporter) printStrategies(result *twnamespace.RunResult) {
	if len(result.StrategyCounts) == 0 {
		return
	}

	strategies := make([]string, 0, len(result.StrategyCounts))
	for s := range result.StrategyCounts {
		strategies = append(strategies, string(s))
	}
	sort.Strings(strategies)

	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "  Strategies:", r.useColors))
	for _, s := range strategies {
		fmt.Fprintf(r.w, "    %-10s %d\n", s, result.StrategyCounts[twnamespace.Strategy(s)])
	}
}

// PrintWarnings outputs per-file warnings collected during the run.
func (r *Reporter) PrintWarnings(result *twnamespace.RunResult) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings:", r.useColors))
	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "  - %s\n", warning)
	}
}
