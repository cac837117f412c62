package twnamespace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineProcessFileScenario(t *testing.T) {
	e := New(Config{Mode: ModeAll, OptimizeCSS: OptimizeOff})

	res := e.ProcessFile("index.html",
		`<header tw-namespace="header" class="bg-blue-500 text-white">hi</header>`)

	require.True(t, res.Changed)
	assert.Contains(t, res.Rewritten, `class="header"`)

	sheets := e.Stylesheets()
	require.Len(t, sheets, 1)
	assert.Equal(t, "index.html.css", sheets[0].Path)
	assert.Equal(t, StrategyStandard, sheets[0].Strategy)
	assert.Contains(t, sheets[0].Content, ".header {\n  @apply bg-blue-500;\n  @apply text-white;\n}")
}

func TestEngineIndependentInstances(t *testing.T) {
	a := New(Config{})
	b := New(Config{})

	a.ProcessFile("x.html", `<div tw-namespace="btn" class="p-2">x</div>`)
	resB := b.ProcessFile("y.html", `<div tw-namespace="btn" class="m-4">y</div>`)

	// No cross-contamination: b's first "btn" set claims the bare name.
	require.Len(t, resB.Mappings, 1)
	assert.Equal(t, "btn", resB.Mappings[0].GeneratedClassName)
}

func TestEngineRescanClearsStaleState(t *testing.T) {
	e := New(Config{})

	e.ProcessFile("a.html", `<div tw-namespace="btn" class="p-2">x</div>`)
	e.ProcessFile("b.html", `<div tw-namespace="btn" class="m-4">y</div>`)

	b := e.FileMappings()[1]
	require.Equal(t, "btn-1", b.Mappings[0].GeneratedClassName)

	// Re-scan of a.html with no processable content removes its mapping
	// and rebuilds, so b.html's set takes over the bare namespace.
	res := e.ProcessFile("a.html", `<div>nothing here</div>`)
	require.False(t, res.Changed)

	files := e.FileMappings()
	require.Len(t, files, 1)
	assert.Equal(t, "btn", files[0].Mappings[0].GeneratedClassName)
}

func TestEngineRemoveFileRebuilds(t *testing.T) {
	e := New(Config{})

	e.ProcessFile("a.html", `<div tw-namespace="btn" class="p-2">x</div>`)
	e.ProcessFile("b.html", `<div tw-namespace="btn" class="m-4">y</div>`)

	e.RemoveFile("a.html")

	files := e.FileMappings()
	require.Len(t, files, 1)
	assert.Equal(t, "btn", files[0].Mappings[0].GeneratedClassName)
}

func TestEngineRemoveDir(t *testing.T) {
	e := New(Config{})

	e.ProcessFile("components/a.html", `<div tw-namespace="card" class="p-2">x</div>`)
	e.ProcessFile("components/b.html", `<div tw-namespace="card" class="m-4">y</div>`)
	e.ProcessFile("pages/c.html", `<div tw-namespace="hero" class="p-8">z</div>`)

	e.RemoveDir("components/")

	files := e.FileMappings()
	require.Len(t, files, 1)
	assert.Equal(t, "pages/c.html", files[0].SourceFile)

	// Versions owned by removed files are gone from the safelist too.
	assert.Equal(t, []string{"hero"}, e.Safelist())
}

func TestEngineStylesheetsAutoSelect(t *testing.T) {
	e := New(Config{OptimizeCSS: OptimizeAuto})

	e.ProcessFile("a.html", `<div tw-namespace="alpha" class="p-2 font-bold">x</div>
<div tw-namespace="beta" class="p-2 font-bold">y</div>`)

	sheets := e.Stylesheets()
	require.Len(t, sheets, 1)

	n := StrippedLength(sheets[0].Content)
	fm := e.FileMappings()[0]
	assert.LessOrEqual(t, n, StrippedLength(GenerateStandard(fm)))
	assert.LessOrEqual(t, n, StrippedLength(GenerateComponentOptimized(fm)))
}

func TestEngineAggregateAndSafelist(t *testing.T) {
	e := New(Config{OptimizeCSS: OptimizeOn})

	e.ProcessFile("a.html", `<div tw-namespace="alpha" class="p-2">x</div>`)
	e.ProcessFile("b.html", `<div tw-namespace="beta" class="p-2">y</div>`)

	agg := e.Aggregate()
	assert.Equal(t, AggregateStylesheetName, agg.Path)
	assert.Equal(t, StrategyGlobal, agg.Strategy)
	// Cross-file sharing shows up in the aggregate.
	assert.Contains(t, agg.Content, ".alpha, .beta {")

	assert.Equal(t, []string{"alpha", "beta"}, e.Safelist())
}

func TestEngineAggregateStandardMode(t *testing.T) {
	e := New(Config{OptimizeCSS: OptimizeOff})

	e.ProcessFile("a.html", `<div tw-namespace="alpha" class="p-2">x</div>`)
	e.ProcessFile("b.html", `<div tw-namespace="beta" class="p-2">y</div>`)

	agg := e.Aggregate()
	assert.Equal(t, StrategyStandard, agg.Strategy)
	assert.Equal(t, 2, strings.Count(agg.Content, "/* source:"))
}

func TestEngineConfigDefaults(t *testing.T) {
	e := New(Config{})
	cfg := e.Config()

	assert.Equal(t, ModeBuild, cfg.Mode)
	assert.Equal(t, ".tw-namespace", cfg.NamespaceDir)
	assert.Equal(t, OptimizeOff, cfg.OptimizeCSS)
	assert.NotEmpty(t, cfg.Extensions)

	boolish := New(Config{OptimizeCSS: "true"})
	assert.Equal(t, OptimizeOn, boolish.Config().OptimizeCSS)
}
