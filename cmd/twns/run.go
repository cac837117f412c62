package main

import (
	"fmt"
	"os"

	twnamespace "github.com/duxfercom/tailwindcss-namespace"
	"github.com/duxfercom/tailwindcss-namespace/internal/report"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan the project and emit namespace stylesheets",
	Long: `Process every eligible source file: rewrite utility-class attributes to
generated names and write per-file stylesheets, the aggregate stylesheet
and the safelist marker under the namespace directory.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return doRun()
	},
}

func init() {
	f := runCmd.Flags()
	f.String("source", ".", "Project root to scan")
	f.String("namespace-dir", ".tw-namespace", "Output directory for generated files")
	f.String("mode", "build", "Run mode: build|all")
	f.StringSlice("extensions", nil, "Eligible source file suffixes")
	f.StringSlice("include", nil, "Glob patterns for source files")
	f.String("optimize", "auto", "Stylesheet optimization: off|on|auto")
	f.Bool("production", false, "Mark this invocation as a production build")
	f.Bool("manifest", false, "Emit a JSON manifest of class mappings")
}

// doRun is shared between `twns run` and the bare `twns` invocation.
func doRun() error {
	cfg := buildRunConfig()

	result, err := twnamespace.Run(cfg)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		forceColors := getBoolWithFallback("color", "color", false)
		reporter := report.NewReporter(os.Stdout, forceColors)
		reporter.PrintSummary(result, cfg.NamespaceDir)
		reporter.PrintWarnings(result)
	}

	return nil
}
