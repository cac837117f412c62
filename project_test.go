package twnamespace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readArtifact(t *testing.T, dir, rel string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	return string(content)
}

func TestRunEmitsArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "tailwind.config.js", "module.exports = {}\n")
	writeFixture(t, dir, "index.html",
		`<header tw-namespace="header" class="bg-blue-500 text-white">hi</header>`)
	writeFixture(t, dir, "components/card.html",
		`<div tw-namespace="card" class="p-4 shadow">c</div>`)

	result, err := Run(Config{
		Mode:        ModeAll,
		SourceDir:   dir,
		OptimizeCSS: OptimizeOff,
	})
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 2, result.FilesRewritten)
	assert.Equal(t, 2, result.ClassesResolved)
	assert.Equal(t, 3, result.StylesheetsWritten) // two per-file plus aggregate
	assert.Empty(t, result.Warnings)

	out := filepath.Join(dir, ".tw-namespace")

	rewritten := readArtifact(t, out, "index.html")
	assert.Contains(t, rewritten, `class="header"`)
	assert.NotContains(t, rewritten, "tw-namespace=")

	css := readArtifact(t, out, "index.html.css")
	assert.Contains(t, css, ".header {\n  @apply bg-blue-500;\n  @apply text-white;\n}")

	aggregate := readArtifact(t, out, AggregateStylesheetName)
	assert.Contains(t, aggregate, ".header {")
	assert.Contains(t, aggregate, ".card {")

	safelist := readArtifact(t, out, SafelistFileName)
	assert.Equal(t, "card\nheader\n", safelist)
}

func TestRunModeGate(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "index.html", `<div tw-namespace="x" class="p-2">x</div>`)

	// build mode without a production invocation is a no-op.
	result, err := Run(Config{Mode: ModeBuild, SourceDir: dir})
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, 0, result.FilesScanned)
	assert.NoDirExists(t, filepath.Join(dir, ".tw-namespace"))

	// With Production set the gate opens.
	result, err = Run(Config{Mode: ModeBuild, SourceDir: dir, Production: true})
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 1, result.FilesScanned)
}

func TestRunRejectsUnknownMode(t *testing.T) {
	_, err := Run(Config{Mode: "watch", SourceDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestRunWarnsWithoutTailwindConfig(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "index.html", `<div tw-namespace="x" class="p-2">x</div>`)

	result, err := Run(Config{Mode: ModeAll, SourceDir: dir})
	require.NoError(t, err)

	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "no tailwind config")
}

func TestRunSkipsIneligibleFiles(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "tailwind.config.js", "module.exports = {}\n")
	writeFixture(t, dir, "index.html", `<div tw-namespace="x" class="p-2">x</div>`)
	writeFixture(t, dir, "notes.txt", `tw-namespace="y" class="p-2"`)
	writeFixture(t, dir, "ignored/page.html", `<div tw-namespace="z" class="p-2">z</div>`)
	writeFixture(t, dir, ".gitignore", "ignored/\n")

	result, err := Run(Config{Mode: ModeAll, SourceDir: dir})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, 1, result.FilesRewritten)
}

func TestRunDoesNotRescanOwnOutput(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "tailwind.config.js", "module.exports = {}\n")
	writeFixture(t, dir, "index.html", `<div tw-namespace="x" class="p-2">x</div>`)

	_, err := Run(Config{Mode: ModeAll, SourceDir: dir})
	require.NoError(t, err)

	// A second run must not pick up the mirrored sources under the
	// namespace directory.
	result, err := Run(Config{Mode: ModeAll, SourceDir: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesScanned)
}

func TestRunManifest(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "tailwind.config.js", "module.exports = {}\n")
	writeFixture(t, dir, "index.html",
		`<div tw-namespace="hero" class="p-8 text-xl">x</div>`)

	_, err := Run(Config{Mode: ModeAll, SourceDir: dir, Manifest: true})
	require.NoError(t, err)

	manifest := readArtifact(t, filepath.Join(dir, ".tw-namespace"), ManifestFileName)
	assert.Contains(t, manifest, `"source_file": "index.html"`)
	assert.Contains(t, manifest, `"generated": "hero"`)
	assert.Contains(t, manifest, `"normalized": "p-8 text-xl"`)
}

func TestRunFilesWithoutMappingsAreLeftAlone(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "tailwind.config.js", "module.exports = {}\n")
	writeFixture(t, dir, "plain.html", `<div class="untouched">x</div>`)

	result, err := Run(Config{Mode: ModeAll, SourceDir: dir})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, 0, result.FilesRewritten)
	assert.NoFileExists(t, filepath.Join(dir, ".tw-namespace", "plain.html"))
}
