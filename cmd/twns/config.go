package main

import (
	"fmt"
	"os"
	"strings"

	twnamespace "github.com/duxfercom/tailwindcss-namespace"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file >
// defaults. It must be called after cobra parses flags (in PreRunE or
// RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".twns.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence — only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment
// variables. Separated from loadConfig to allow testing without a cobra
// command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (TWNS_* prefix)
	if err := k.Load(env.Provider("TWNS_", ".", func(s string) string {
		// TWNS_RUN_SOURCE -> run.source
		// TWNS_RUN_OPTIMIZE -> run.optimize
		// TWNS_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "TWNS_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildRunConfig constructs the library's Config struct from koanf state.
func buildRunConfig() twnamespace.Config {
	config := twnamespace.Config{
		Mode:         getStringWithFallback("mode", "run.mode", "build"),
		SourceDir:    getStringWithFallback("source", "run.source", "."),
		NamespaceDir: getStringWithFallback("namespace-dir", "run.namespace-dir", ".tw-namespace"),
		OptimizeCSS:  getStringWithFallback("optimize", "run.optimize", "auto"),
		Production:   getBoolWithFallback("production", "run.production", false),
		Manifest:     getBoolWithFallback("manifest", "run.manifest", false),
		Verbose:      getBoolWithFallback("verbose", "verbose", false),
	}

	// Slice options: check flag key first, then config key
	if exts := k.Strings("extensions"); len(exts) > 0 {
		config.Extensions = exts
	} else if exts := k.Strings("run.extensions"); len(exts) > 0 {
		config.Extensions = exts
	} else {
		config.Extensions = twnamespace.DefaultExtensions
	}

	if include := k.Strings("include"); len(include) > 0 {
		config.Include = include
	} else if include := k.Strings("run.include"); len(include) > 0 {
		config.Include = include
	} else {
		config.Include = []string{"**/*"}
	}

	return config
}

// getStringWithFallback checks the flag key first, then the config file
// key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file
// key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
