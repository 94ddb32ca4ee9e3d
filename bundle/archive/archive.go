// Package archive implements the packed-archive bundle.
//
// Structure of the archive:
//
//	[Header]
//	[Entry]
//	[Entry]
//	...
//	[Entry]
//	[payload]
//	[payload]
//	...
//	[payload]
//
// A valid archive always has at least the header, starting at byte 0 of
// the archive file. All integers are little-endian. Newer engine
// releases must keep reading archives produced for older minor
// versions; the header padding is reserved for additive fields and is
// zeroed on write and ignored on read.
package archive

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/fsys"
	"github.com/ember-engine/ember/logging"
)

// Version is the archive layout version this engine writes.
const Version = 1

// SupportedVersion is the newest layout version this engine reads.
const SupportedVersion = 1

const (
	headerSize  = 4 + 4 + 4 + paddingSize // 0x4C
	entrySize   = 4 + 4 + 8 + 4
	paddingSize = 64
)

// Header is the fixed-size block at byte 0 of every archive.
type Header struct {
	Version      uint32 // layout version, >= 1
	EntriesCount uint32 // number of entries in the table
	Checksum     uint32 // reserved, may be zero
}

// Entry locates one resource payload inside the archive.
type Entry struct {
	Name   uint32 // hash of the resource basename (seeded)
	Type   uint32 // hash of the resource extension (unseeded)
	Offset uint64 // first byte of the payload, absolute from byte 0
	Size   uint32 // payload length in bytes
}

// ID returns the durable identity of the entry.
func (e Entry) ID() bundle.ID {
	return bundle.ID{Name: e.Name, Type: e.Type}
}

// Bundle reads resources out of a single packed archive file.
//
// The file handle is shared between Open calls; the resource manager
// guarantees Open is called serially.
type Bundle struct {
	fs      *fsys.Filesystem
	name    string   // relative path of the archive file
	file    *os.File // shared archive handle
	size    int64    // total file size, bounds payload offsets
	header  Header
	entries []Entry
}

// New opens the archive at the relative path name, reads the header and
// the entry table and validates the layout. It fails with
// bundle.ErrVersionMismatch when the archive is newer than
// SupportedVersion.
func New(fs *fsys.Filesystem, name string) (*Bundle, error) {
	f, err := fs.Open(name, fsys.ModeRead)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %q: %w", name, err)
	}
	b := &Bundle{
		fs:   fs,
		name: name,
		file: f,
	}
	if err := b.readIndex(); err != nil {
		_ = f.Close()
		return nil, err
	}
	logging.Debugf(b, "version: %d", b.header.Version)
	logging.Debugf(b, "entries: %d", b.header.EntriesCount)
	logging.Debugf(b, "checksum: %d", b.header.Checksum)
	return b, nil
}

// String converts the bundle into a human readable form for logs.
func (b *Bundle) String() string {
	return fmt.Sprintf("archive %q", b.name)
}

// readIndex parses the header and the entry table.
func (b *Bundle) readIndex() error {
	fi, err := b.file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat archive: %w", err)
	}
	b.size = fi.Size()

	var buf [headerSize]byte
	if _, err := io.ReadFull(b.file, buf[:]); err != nil {
		return fmt.Errorf("failed to read archive header: %w", err)
	}
	b.header.Version = binary.LittleEndian.Uint32(buf[0:])
	b.header.EntriesCount = binary.LittleEndian.Uint32(buf[4:])
	b.header.Checksum = binary.LittleEndian.Uint32(buf[8:])
	// buf[12:76] is padding, reserved for additive fields: ignored.

	if b.header.Version < 1 || b.header.Version > SupportedVersion {
		return fmt.Errorf("archive version %d: %w", b.header.Version, bundle.ErrVersionMismatch)
	}

	tableSize := int64(b.header.EntriesCount) * entrySize
	if headerSize+tableSize > b.size {
		return fmt.Errorf("archive truncated: %d entries do not fit in %d bytes", b.header.EntriesCount, b.size)
	}

	table := make([]byte, tableSize)
	if _, err := io.ReadFull(b.file, table); err != nil {
		return fmt.Errorf("failed to read entry table: %w", err)
	}
	b.entries = make([]Entry, b.header.EntriesCount)
	for i := range b.entries {
		rec := table[i*entrySize:]
		e := &b.entries[i]
		e.Name = binary.LittleEndian.Uint32(rec[0:])
		e.Type = binary.LittleEndian.Uint32(rec[4:])
		e.Offset = binary.LittleEndian.Uint64(rec[8:])
		e.Size = binary.LittleEndian.Uint32(rec[16:])
		if e.Offset < uint64(headerSize)+uint64(tableSize) {
			return fmt.Errorf("entry %v: payload offset %d overlaps the entry table", e.ID(), e.Offset)
		}
		if e.Offset+uint64(e.Size) > uint64(b.size) {
			return fmt.Errorf("entry %v: payload extends past the end of the archive", e.ID())
		}
	}
	return nil
}

// Version returns the layout version read from the header.
func (b *Bundle) Version() uint32 {
	return b.header.Version
}

// Entries returns the entry table in archive order.
func (b *Bundle) Entries() []Entry {
	return b.entries
}

// stream is a payload view over the shared archive handle.
type stream struct {
	*io.SectionReader
}

// Open locates id in the entry table and returns a stream positioned at
// the first byte of its payload.
//
// The lookup is a linear scan; archives are built offline and stay
// small enough that an index has not been worth it.
func (b *Bundle) Open(id bundle.ID) (bundle.Stream, error) {
	for i := range b.entries {
		e := &b.entries[i]
		if e.Name == id.Name && e.Type == id.Type {
			return stream{io.NewSectionReader(b.file, int64(e.Offset), int64(e.Size))}, nil
		}
	}
	return nil, fmt.Errorf("%v: %w", id, bundle.ErrNotFound)
}

// Close releases the stream. The underlying handle is shared, so this
// does nothing; the handle is closed together with the bundle.
func (b *Bundle) Close(s bundle.Stream) error {
	return nil
}

// Shutdown closes the archive file. The bundle must not be used after.
func (b *Bundle) Shutdown() error {
	return b.file.Close()
}

// check interface
var _ bundle.Bundle = (*Bundle)(nil)
