package twnamespace

import (
	"sort"
	"strings"
)

// Store holds the process-lifetime FileMapping state, keyed by relative
// source path. It is owned by an Engine; callers synchronize through the
// engine's single-writer lock.
type Store struct {
	files map[string]*FileMapping
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{files: make(map[string]*FileMapping)}
}

// Upsert replaces the mapping for fm.SourceFile wholesale.
func (s *Store) Upsert(fm *FileMapping) {
	s.files[fm.SourceFile] = fm
}

// Get returns the current mapping for a source file.
func (s *Store) Get(sourceFile string) (*FileMapping, bool) {
	fm, ok := s.files[sourceFile]
	return fm, ok
}

// Remove deletes the mapping for a source file, reporting whether one
// existed.
func (s *Store) Remove(sourceFile string) bool {
	if _, ok := s.files[sourceFile]; !ok {
		return false
	}
	delete(s.files, sourceFile)
	return true
}

// RemoveByPathPrefix deletes every mapping whose source path starts with
// prefix and returns the number removed. Used when a directory is
// deleted.
func (s *Store) RemoveByPathPrefix(prefix string) int {
	var removed int
	for path := range s.files {
		if strings.HasPrefix(path, prefix) {
			delete(s.files, path)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked files.
func (s *Store) Len() int {
	return len(s.files)
}

// Files returns all mappings sorted by source path so every iteration
// over the store is deterministic.
func (s *Store) Files() []*FileMapping {
	paths := make([]string, 0, len(s.files))
	for path := range s.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	out := make([]*FileMapping, 0, len(paths))
	for _, path := range paths {
		out = append(out, s.files[path])
	}
	return out
}

// RebuildNamespaceTables recomputes the resolver's namespace tables
// strictly from the live mappings, discarding any version state not
// backed by a current file. Generated names are re-issued in sorted file
// order; mappings are replaced, never mutated in place. This is the
// mechanism that prevents version-number drift after files are edited or
// removed.
func (s *Store) RebuildNamespaceTables(r *Resolver) {
	r.Reset()
	for _, fm := range s.Files() {
		rebuilt := make([]ClassMapping, len(fm.Mappings))
		for i, m := range fm.Mappings {
			rebuilt[i] = ClassMapping{
				OriginalClasses:    m.OriginalClasses,
				NormalizedClasses:  m.NormalizedClasses,
				GeneratedClassName: r.Resolve(m.NormalizedClasses, m.NamespaceHint),
				NamespaceHint:      m.NamespaceHint,
				SourceFile:         m.SourceFile,
			}
		}
		fm.Mappings = rebuilt
	}
}
