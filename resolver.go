package twnamespace

import (
	"crypto/md5" // #nosec G501 - names generated classes, no security use
	"encoding/hex"
	"fmt"
)

// hashPrefix is prepended to hash-based names for occurrences without a
// usable namespace hint.
const hashPrefix = "tw-"

// hashNameLength is the number of MD5 hex characters kept in hash-based
// names. Six characters keep generated names short; collisions across
// distinct utility sets are accepted (the hash space is large relative
// to per-project utility-set counts). Widening the hash trades longer
// class names in every rewritten attribute for a smaller collision
// chance.
const hashNameLength = 6

// Resolver owns the namespace tables and issues generated class names.
// It is an explicit object rather than package state so independent
// engine instances never share version counters.
type Resolver struct {
	// base maps a namespace to the canonical utility sets registered
	// under version 0.
	base map[string]map[string]bool
	// highest maps a namespace to the highest version issued so far.
	// Versions are assigned densely starting at 1 and only increase.
	highest map[string]int
	// versioned maps "{namespace}-{version}" to the canonical utility
	// set registered under that version.
	versioned map[string]string
}

// NewResolver returns a Resolver with empty tables.
func NewResolver() *Resolver {
	return &Resolver{
		base:      make(map[string]map[string]bool),
		highest:   make(map[string]int),
		versioned: make(map[string]string),
	}
}

// Resolve maps a canonical utility set plus an optional namespace hint
// to a stable generated class name. The same canonical set under the
// same hint always yields the same name within a process lifetime; a
// hint reused with a different set gets the next version suffix.
func (r *Resolver) Resolve(canonical, hint string) string {
	if hint == "" || !IsValidIdentifier(hint) {
		return hashName(canonical)
	}

	sets, known := r.base[hint]
	if !known {
		r.base[hint] = map[string]bool{canonical: true}
		return hint
	}
	if sets[canonical] {
		return hint
	}

	// Ascending search keeps the earliest-created version stable across
	// repeated resolutions.
	for v := 1; v <= r.highest[hint]; v++ {
		key := versionKey(hint, v)
		if r.versioned[key] == canonical {
			return key
		}
	}

	v := r.highest[hint] + 1
	r.highest[hint] = v
	key := versionKey(hint, v)
	r.versioned[key] = canonical
	return key
}

// Reset clears all namespace tables. Used by rebuilds.
func (r *Resolver) Reset() {
	r.base = make(map[string]map[string]bool)
	r.highest = make(map[string]int)
	r.versioned = make(map[string]string)
}

// NamespaceCount returns the number of base namespaces registered.
func (r *Resolver) NamespaceCount() int {
	return len(r.base)
}

// VersionCount returns the number of versioned entries registered.
func (r *Resolver) VersionCount() int {
	return len(r.versioned)
}

// HighestVersion returns the highest version issued for a namespace,
// zero when only the bare namespace exists or the namespace is unknown.
func (r *Resolver) HighestVersion(namespace string) int {
	return r.highest[namespace]
}

func versionKey(namespace string, version int) string {
	return fmt.Sprintf("%s-%d", namespace, version)
}

// hashName derives the fallback class name for an unnamed occurrence.
// A pure function of the canonical utility set.
func hashName(canonical string) string {
	sum := md5.Sum([]byte(canonical)) // #nosec G401
	return hashPrefix + hex.EncodeToString(sum[:])[:hashNameLength]
}
