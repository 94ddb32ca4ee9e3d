// Package resource implements the engine's resource subsystem: typed
// resource ids, the per-type codec table, the refcounted registry and
// the manager with its background loader.
package resource

import (
	"fmt"
	"path"
	"strings"

	"github.com/OneOfOne/xxhash"

	"github.com/ember-engine/ember/bundle"
)

// ID identifies a resource.
//
// (Name, Type) is the durable identity used on disk and between
// processes. Index is the slot assigned by the registry on first
// insert and is only meaningful within a single process run; it does
// not take part in equality.
type ID struct {
	Name  uint32 // hash of the resource basename (seeded)
	Type  uint32 // hash of the resource extension (unseeded)
	Index uint32 // registry slot, process-local
}

// Equal reports whether a and b name the same resource.
func (a ID) Equal(b ID) bool {
	return a.Name == b.Name && a.Type == b.Type
}

// BundleID returns the durable part of the id, the key bundles use.
func (id ID) BundleID() bundle.ID {
	return bundle.ID{Name: id.Name, Type: id.Type}
}

// String returns the id in the canonical <name><type> hex form.
func (id ID) String() string {
	return fmt.Sprintf("%08x%08x", id.Name, id.Type)
}

// NameHash hashes a resource basename with the content seed. The seed
// comes from seed.ini so the same logical path can map to different
// hashes across content branches.
func NameHash(basename string, seed uint32) uint32 {
	return xxhash.Checksum32S([]byte(basename), seed)
}

// TypeHash hashes a resource extension. Type hashes are unseeded so
// that resource types are stable across content builds.
func TypeHash(ext string) uint32 {
	return xxhash.Checksum32S([]byte(ext), 0)
}

// SplitPath splits a resource path into the basename (without
// extension) and the extension (without the dot).
//
// "textures/brick.tga" -> ("brick", "tga")
func SplitPath(name string) (basename, ext string) {
	base := path.Base(name)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return base[:i], base[i+1:]
	}
	return base, ""
}
