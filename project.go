package twnamespace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// tailwindConfigNames are the downstream compiler config files probed at
// the project root. Absence is a warning, never an error: the run still
// emits stylesheets a misconfigured pipeline simply won't consume.
var tailwindConfigNames = []string{
	"tailwind.config.js",
	"tailwind.config.cjs",
	"tailwind.config.mjs",
	"tailwind.config.ts",
}

// Run performs a full-project pass: discover matching sources, process
// every file, then emit rewritten sources, per-file stylesheets, the
// aggregate stylesheet and the safelist marker under cfg.NamespaceDir.
//
// Processing of all files completes before the first stylesheet is
// written, so no emitted stylesheet can miss a namespace version
// discovered later in the scan. A failing file degrades to a warning;
// one bad file never blocks the batch.
func Run(cfg Config) (*RunResult, error) {
	cfg = cfg.withDefaults()
	result := &RunResult{StrategyCounts: make(map[Strategy]int)}

	switch cfg.Mode {
	case ModeBuild, ModeAll:
	default:
		return nil, fmt.Errorf("unknown mode %q: expected %q or %q", cfg.Mode, ModeBuild, ModeAll)
	}
	if cfg.Mode == ModeBuild && !cfg.Production {
		result.Skipped = true
		return result, nil
	}

	if !hasTailwindConfig(cfg.SourceDir) {
		result.Warnings = append(result.Warnings,
			"no tailwind config found: generated stylesheets will not be consumed by a downstream build")
	}

	files, err := discoverSources(cfg)
	if err != nil {
		return nil, fmt.Errorf("discovering sources: %w", err)
	}

	engine := New(cfg)

	type rewrite struct {
		path    string
		content string
	}
	var rewrites []rewrite

	for _, rel := range files {
		// #nosec G304 - paths come from the configured source tree
		content, err := os.ReadFile(filepath.Join(cfg.SourceDir, rel))
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("read %s: %v", rel, err))
			continue
		}
		result.FilesScanned++

		res := engine.ProcessFile(rel, string(content))
		if !res.Changed {
			continue
		}
		result.FilesRewritten++
		result.ClassesResolved += len(res.Mappings)
		rewrites = append(rewrites, rewrite{path: rel, content: res.Rewritten})
	}

	outRoot := filepath.Join(cfg.SourceDir, cfg.NamespaceDir)

	for _, rw := range rewrites {
		if err := writeArtifact(filepath.Join(outRoot, rw.path), rw.content); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("write %s: %v", rw.path, err))
		}
	}

	for _, sheet := range engine.Stylesheets() {
		if err := writeArtifact(filepath.Join(outRoot, sheet.Path), sheet.Content); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("write %s: %v", sheet.Path, err))
			continue
		}
		result.StylesheetsWritten++
		result.StrategyCounts[sheet.Strategy]++
	}

	aggregate := engine.Aggregate()
	if err := writeArtifact(filepath.Join(outRoot, aggregate.Path), aggregate.Content); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("write %s: %v", aggregate.Path, err))
	} else {
		result.StylesheetsWritten++
	}

	safelist := strings.Join(engine.Safelist(), "\n") + "\n"
	if err := writeArtifact(filepath.Join(outRoot, SafelistFileName), safelist); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("write %s: %v", SafelistFileName, err))
	}

	if cfg.Manifest {
		manifest := BuildManifest(engine.FileMappings())
		if err := writeManifestFile(filepath.Join(outRoot, ManifestFileName), manifest); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("write %s: %v", ManifestFileName, err))
		}
	}

	return result, nil
}

// discoverSources expands the include globs under cfg.SourceDir and
// filters by extension, gitignore rules and the namespace directory
// itself. Returned paths are relative to cfg.SourceDir and sorted.
func discoverSources(cfg Config) ([]string, error) {
	gi := loadGitIgnore(cfg.SourceDir)

	seen := make(map[string]bool)
	var files []string

	for _, pattern := range cfg.Include {
		matches, err := doublestar.FilepathGlob(filepath.Join(cfg.SourceDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}

			rel, err := filepath.Rel(cfg.SourceDir, match)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			if seen[rel] || shouldSkipSource(rel, cfg, gi) {
				continue
			}
			seen[rel] = true
			files = append(files, rel)
		}
	}

	sort.Strings(files)
	return files, nil
}

// shouldSkipSource filters one candidate path.
//
// Three-layer filtering: the namespace output directory (never re-scan
// our own artifacts), the configured extension set, and .gitignore rules
// when a .gitignore exists.
func shouldSkipSource(rel string, cfg Config, gi *ignore.GitIgnore) bool {
	nsPrefix := strings.TrimSuffix(filepath.ToSlash(cfg.NamespaceDir), "/") + "/"
	if strings.HasPrefix(rel, nsPrefix) {
		return true
	}

	if !hasEligibleExtension(rel, cfg.Extensions) {
		return true
	}

	return gi != nil && gi.MatchesPath(rel)
}

func hasEligibleExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// loadGitIgnore loads the project .gitignore, degrading gracefully when
// none exists.
func loadGitIgnore(sourceDir string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(sourceDir, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// hasTailwindConfig reports whether a downstream compiler config sits at
// the project root.
func hasTailwindConfig(sourceDir string) bool {
	for _, name := range tailwindConfigNames {
		if _, err := os.Stat(filepath.Join(sourceDir, name)); err == nil {
			return true
		}
	}
	return false
}

// writeArtifact writes one output file, creating parent directories.
func writeArtifact(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
