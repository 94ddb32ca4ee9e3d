package archive

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer builds a packed archive out of compiled resource payloads.
//
// Archives are authored strictly offline (by the resource compiler and
// the ember CLI); the runtime never writes one. Payloads are laid out
// in Add order, each aligned to the configured boundary.
type Writer struct {
	align    uint64 // payload alignment, 1 = packed tight
	entries  []Entry
	payloads [][]byte
}

// NewWriter creates a Writer with the given payload alignment. An
// alignment of 0 or 1 packs payloads back to back.
func NewWriter(align uint64) *Writer {
	if align == 0 {
		align = 1
	}
	return &Writer{align: align}
}

// Add appends one payload for id. Adding the same id twice is refused
// since lookup is defined on (name, type) alone.
func (w *Writer) Add(name, typ uint32, payload []byte) error {
	for i := range w.entries {
		if w.entries[i].Name == name && w.entries[i].Type == typ {
			return fmt.Errorf("duplicate entry %08x%08x", name, typ)
		}
	}
	w.entries = append(w.entries, Entry{
		Name: name,
		Type: typ,
		Size: uint32(len(payload)),
	})
	w.payloads = append(w.payloads, payload)
	return nil
}

// Len returns the number of entries added so far.
func (w *Writer) Len() int {
	return len(w.entries)
}

func alignUp(off, align uint64) uint64 {
	return (off + align - 1) / align * align
}

// WriteTo writes the complete archive to out: header, entry table, then
// the payloads at their recorded offsets.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	// Assign offsets first so the table can be written in one pass.
	off := uint64(headerSize) + uint64(len(w.entries))*entrySize
	for i := range w.entries {
		off = alignUp(off, w.align)
		w.entries[i].Offset = off
		off += uint64(w.entries[i].Size)
	}

	var written int64
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:], Version)
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(w.entries)))
	binary.LittleEndian.PutUint32(buf[8:], 0) // checksum, reserved
	// buf[12:76] stays zero: reserved padding.
	n, err := out.Write(buf)
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("failed to write archive header: %w", err)
	}

	rec := make([]byte, entrySize)
	for i := range w.entries {
		e := &w.entries[i]
		binary.LittleEndian.PutUint32(rec[0:], e.Name)
		binary.LittleEndian.PutUint32(rec[4:], e.Type)
		binary.LittleEndian.PutUint64(rec[8:], e.Offset)
		binary.LittleEndian.PutUint32(rec[16:], e.Size)
		n, err := out.Write(rec)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("failed to write entry table: %w", err)
		}
	}

	pos := uint64(headerSize) + uint64(len(w.entries))*entrySize
	pad := make([]byte, 16)
	for i, payload := range w.payloads {
		for pos < w.entries[i].Offset {
			chunk := w.entries[i].Offset - pos
			if chunk > uint64(len(pad)) {
				chunk = uint64(len(pad))
			}
			n, err := out.Write(pad[:chunk])
			written += int64(n)
			pos += uint64(n)
			if err != nil {
				return written, fmt.Errorf("failed to write padding: %w", err)
			}
		}
		n, err := out.Write(payload)
		written += int64(n)
		pos += uint64(n)
		if err != nil {
			return written, fmt.Errorf("failed to write payload: %w", err)
		}
	}
	return written, nil
}
