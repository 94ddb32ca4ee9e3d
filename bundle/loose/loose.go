// Package loose implements the loose-file bundle used during
// development, where every compiled resource lives in its own file.
//
// The file for a resource is named by the lowercased hex of its id,
// "<name>-<type>", under the bundle directory. There is no per-file
// header: the codec consumes the entire file as payload.
package loose

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/fsys"
)

// Bundle resolves resources to individual files below dir.
type Bundle struct {
	fs  *fsys.Filesystem
	dir string // relative directory the resource files live in, "" = root
}

// New creates a loose-file bundle reading from dir inside fs. dir may
// be empty to use the filesystem root directly.
func New(fs *fsys.Filesystem, dir string) *Bundle {
	return &Bundle{fs: fs, dir: dir}
}

// String converts the bundle into a human readable form for logs.
func (b *Bundle) String() string {
	return fmt.Sprintf("loose files %q", b.dir)
}

// Path returns the relative path of the file holding id. The mapping is
// a total, injective function of the pair.
func (b *Bundle) Path(id bundle.ID) string {
	name := fmt.Sprintf("%08x-%08x", id.Name, id.Type)
	if b.dir == "" {
		return name
	}
	return b.dir + "/" + name
}

// stream is one open resource file.
type stream struct {
	*os.File
	size int64
}

// Size returns the payload length in bytes.
func (s stream) Size() int64 {
	return s.size
}

// Open opens the file holding id positioned at its first byte.
func (b *Bundle) Open(id bundle.ID) (bundle.Stream, error) {
	path := b.Path(id)
	f, err := b.fs.Open(path, fsys.ModeRead)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%v: %w", id, bundle.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return stream{File: f, size: fi.Size()}, nil
}

// Close closes the stream's file.
func (b *Bundle) Close(s bundle.Stream) error {
	return s.(stream).File.Close()
}

// check interface
var _ bundle.Bundle = (*Bundle)(nil)
