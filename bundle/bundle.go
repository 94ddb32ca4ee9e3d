// Package bundle defines the source of compiled resources.
//
// A bundle is a container of resource payloads indexed by the pair of
// 32-bit hashes (name, type). Two concrete kinds exist: the packed
// archive (bundle/archive) and the loose-file directory (bundle/loose).
package bundle

import (
	"errors"
	"fmt"
	"io"
)

// Errors returned by bundle implementations.
var (
	// ErrNotFound means the (name, type) pair has no entry in the bundle.
	ErrNotFound = errors.New("resource not found in bundle")
	// ErrVersionMismatch means the archive layout is newer than this
	// engine understands. Raised at construction time only.
	ErrVersionMismatch = errors.New("unsupported archive version")
)

// ID is the durable identity of a resource: the seeded hash of its
// basename and the unseeded hash of its extension. It is the key used
// on disk and between processes.
type ID struct {
	Name uint32 // hash of the resource basename (seeded)
	Type uint32 // hash of the resource extension (unseeded)
}

// String returns the id in the canonical <name><type> hex form.
func (id ID) String() string {
	return fmt.Sprintf("%08x%08x", id.Name, id.Type)
}

// Stream is a resource payload positioned at its first byte.
//
// Size is the exact payload length in bytes; readers must not read
// past it. A Stream is only valid until it is handed back via
// Bundle.Close and must not be shared between goroutines.
type Stream interface {
	io.Reader
	// Size returns the payload length in bytes.
	Size() int64
}

// Bundle is a read-only source of resource payloads.
//
// Open may share a single underlying file handle between calls; the
// resource manager guarantees Open and Close are never invoked from
// two goroutines concurrently on one bundle.
type Bundle interface {
	// Open returns a stream positioned at the first byte of the
	// payload for id. It fails with ErrNotFound when the bundle has
	// no entry for id.
	Open(id ID) (Stream, error)
	// Close releases the stream. After Close the stream must not be
	// used again.
	Close(s Stream) error
}
