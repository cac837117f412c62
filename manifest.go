package twnamespace

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ManifestFileName is the optional JSON mapping report emitted next to
// the generated stylesheets. Diagnostic output only; the namespace
// tables are never reloaded from it.
const ManifestFileName = "manifest.json"

// manifestVersion identifies the manifest schema.
const manifestVersion = "1"

// Manifest is the structured export of all current class mappings.
type Manifest struct {
	Version     string         `json:"version"`
	GeneratedAt string         `json:"generated_at"`
	Files       []ManifestFile `json:"files"`
}

// ManifestFile groups the mappings of one source file.
type ManifestFile struct {
	SourceFile string            `json:"source_file"`
	Stylesheet string            `json:"stylesheet"`
	Mappings   []ManifestMapping `json:"mappings"`
}

// ManifestMapping is one resolved class-attribute occurrence.
type ManifestMapping struct {
	Original   string `json:"original"`
	Normalized string `json:"normalized"`
	Generated  string `json:"generated"`
	Namespace  string `json:"namespace,omitempty"`
}

// BuildManifest converts the store's file mappings into the export
// schema. Input order is preserved, so sorted store iteration yields a
// deterministic manifest apart from the timestamp.
func BuildManifest(files []*FileMapping) Manifest {
	m := Manifest{
		Version:     manifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Files:       make([]ManifestFile, 0, len(files)),
	}

	for _, fm := range files {
		mf := ManifestFile{
			SourceFile: fm.SourceFile,
			Stylesheet: fm.StylesheetPath,
			Mappings:   make([]ManifestMapping, 0, len(fm.Mappings)),
		}
		for _, cm := range fm.Mappings {
			mf.Mappings = append(mf.Mappings, ManifestMapping{
				Original:   cm.OriginalClasses,
				Normalized: cm.NormalizedClasses,
				Generated:  cm.GeneratedClassName,
				Namespace:  cm.NamespaceHint,
			})
		}
		m.Files = append(m.Files, mf)
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(w io.Writer, m Manifest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// writeManifestFile writes the manifest to a file path, creating parent
// directories.
func writeManifestFile(path string, m Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path) // #nosec G304 - path derives from configuration
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteManifest(f, m)
}
