package archive

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/fsys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeArchive builds an archive file under root and returns its name.
func writeArchive(t *testing.T, root string, w *Writer) string {
	t.Helper()
	f, err := os.Create(filepath.Join(root, "archive.bin"))
	require.NoError(t, err)
	_, err = w.WriteTo(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return "archive.bin"
}

func readAll(t *testing.T, b *Bundle, id bundle.ID) []byte {
	t.Helper()
	s, err := b.Open(id)
	require.NoError(t, err)
	data, err := io.ReadAll(s)
	require.NoError(t, err)
	require.NoError(t, b.Close(s))
	return data
}

func TestRoundTrip(t *testing.T) {
	root := t.TempDir()
	fs, err := fsys.New(root)
	require.NoError(t, err)

	payloads := map[bundle.ID][]byte{
		{Name: 0x11111111, Type: 0xAAAAAAAA}: []byte("first payload"),
		{Name: 0x22222222, Type: 0xAAAAAAAA}: {},
		{Name: 0x33333333, Type: 0xBBBBBBBB}: []byte{0, 1, 2, 3, 255},
	}
	w := NewWriter(1)
	for id, p := range payloads {
		require.NoError(t, w.Add(id.Name, id.Type, p))
	}
	name := writeArchive(t, root, w)

	b, err := New(fs, name)
	require.NoError(t, err)
	defer func() { require.NoError(t, b.Shutdown()) }()

	assert.Equal(t, uint32(Version), b.Version())
	assert.Len(t, b.Entries(), len(payloads))
	for id, want := range payloads {
		got := readAll(t, b, id)
		assert.Equal(t, want, append([]byte{}, got...), "payload for %v", id)
	}
}

func TestStreamIsBounded(t *testing.T) {
	root := t.TempDir()
	fs, err := fsys.New(root)
	require.NoError(t, err)

	w := NewWriter(1)
	require.NoError(t, w.Add(1, 2, []byte("aaaa")))
	require.NoError(t, w.Add(3, 4, []byte("bbbb")))
	name := writeArchive(t, root, w)

	b, err := New(fs, name)
	require.NoError(t, err)
	defer func() { _ = b.Shutdown() }()

	s, err := b.Open(bundle.ID{Name: 1, Type: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), s.Size())
	data, err := io.ReadAll(s)
	require.NoError(t, err)
	// Must not bleed into the following payload.
	assert.Equal(t, "aaaa", string(data))
}

func TestAlignmentGaps(t *testing.T) {
	root := t.TempDir()
	fs, err := fsys.New(root)
	require.NoError(t, err)

	w := NewWriter(64)
	require.NoError(t, w.Add(1, 1, []byte("x")))
	require.NoError(t, w.Add(2, 2, []byte("y")))
	name := writeArchive(t, root, w)

	b, err := New(fs, name)
	require.NoError(t, err)
	defer func() { _ = b.Shutdown() }()

	for _, e := range b.Entries() {
		assert.Zero(t, e.Offset%64, "offset %d not aligned", e.Offset)
	}
	assert.Equal(t, "x", string(readAll(t, b, bundle.ID{Name: 1, Type: 1})))
	assert.Equal(t, "y", string(readAll(t, b, bundle.ID{Name: 2, Type: 2})))
}

func TestNotFound(t *testing.T) {
	root := t.TempDir()
	fs, err := fsys.New(root)
	require.NoError(t, err)

	w := NewWriter(1)
	require.NoError(t, w.Add(1, 1, []byte("x")))
	name := writeArchive(t, root, w)

	b, err := New(fs, name)
	require.NoError(t, err)
	defer func() { _ = b.Shutdown() }()

	_, err = b.Open(bundle.ID{Name: 9, Type: 9})
	assert.True(t, errors.Is(err, bundle.ErrNotFound))
	// Same name, different type must not match.
	_, err = b.Open(bundle.ID{Name: 1, Type: 2})
	assert.True(t, errors.Is(err, bundle.ErrNotFound))
}

func TestDuplicateAdd(t *testing.T) {
	w := NewWriter(1)
	require.NoError(t, w.Add(1, 1, []byte("x")))
	require.Error(t, w.Add(1, 1, []byte("y")))
}

// corruptArchive writes a raw header (+ optional extra bytes) to disk.
func corruptArchive(t *testing.T, root string, version, entries uint32, extra []byte) string {
	t.Helper()
	buf := make([]byte, 76)
	binary.LittleEndian.PutUint32(buf[0:], version)
	binary.LittleEndian.PutUint32(buf[4:], entries)
	buf = append(buf, extra...)
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.bin"), buf, 0666))
	return "bad.bin"
}

func TestVersionGate(t *testing.T) {
	root := t.TempDir()
	fs, err := fsys.New(root)
	require.NoError(t, err)

	name := corruptArchive(t, root, SupportedVersion+1, 0, nil)
	_, err = New(fs, name)
	require.Error(t, err)
	assert.True(t, errors.Is(err, bundle.ErrVersionMismatch))

	name = corruptArchive(t, root, 0, 0, nil)
	_, err = New(fs, name)
	require.Error(t, err)
	assert.True(t, errors.Is(err, bundle.ErrVersionMismatch))
}

func TestTruncatedTable(t *testing.T) {
	root := t.TempDir()
	fs, err := fsys.New(root)
	require.NoError(t, err)

	// Claims 5 entries but has no table at all.
	name := corruptArchive(t, root, Version, 5, nil)
	_, err = New(fs, name)
	require.Error(t, err)
	assert.False(t, errors.Is(err, bundle.ErrVersionMismatch))
}

func TestBadOffsets(t *testing.T) {
	root := t.TempDir()
	fs, err := fsys.New(root)
	require.NoError(t, err)

	entry := func(name, typ uint32, offset uint64, size uint32) []byte {
		rec := make([]byte, 20)
		binary.LittleEndian.PutUint32(rec[0:], name)
		binary.LittleEndian.PutUint32(rec[4:], typ)
		binary.LittleEndian.PutUint64(rec[8:], offset)
		binary.LittleEndian.PutUint32(rec[16:], size)
		return rec
	}

	// Payload offset inside the entry table.
	name := corruptArchive(t, root, Version, 1, entry(1, 1, 10, 4))
	_, err = New(fs, name)
	require.Error(t, err)

	// Payload running past the end of the file.
	name = corruptArchive(t, root, Version, 1, entry(1, 1, 96, 1000))
	_, err = New(fs, name)
	require.Error(t, err)
}

func TestPaddingIgnored(t *testing.T) {
	root := t.TempDir()
	fs, err := fsys.New(root)
	require.NoError(t, err)

	w := NewWriter(1)
	require.NoError(t, w.Add(7, 7, []byte("payload")))
	name := writeArchive(t, root, w)

	// Scribble over the reserved header padding; a reader must not care.
	path := filepath.Join(root, name)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	for i := 12; i < 76; i++ {
		raw[i] = 0xEE
	}
	require.NoError(t, os.WriteFile(path, raw, 0666))

	b, err := New(fs, name)
	require.NoError(t, err)
	defer func() { _ = b.Shutdown() }()
	assert.Equal(t, "payload", string(readAll(t, b, bundle.ID{Name: 7, Type: 7})))
}
