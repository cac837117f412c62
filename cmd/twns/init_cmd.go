package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .twns.yaml config file",
	Long:  `Create a .twns.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".twns.yaml"); err == nil && !force {
			return fmt.Errorf(".twns.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".twns.yaml", []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .twns.yaml")
		return nil
	},
}

const defaultConfig = `# twns configuration
# Docs: https://github.com/duxfercom/tailwindcss-namespace

# Shared settings
verbose: false

# Run settings
run:
  source: .
  namespace-dir: .tw-namespace
  mode: build              # build | all
  extensions:
    - ".html"
    - ".vue"
    - ".jsx"
    - ".tsx"
    - ".svelte"
  include:
    - "**/*"
  optimize: auto           # off | on | auto
  production: false
  manifest: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
