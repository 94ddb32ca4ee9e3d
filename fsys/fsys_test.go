package fsys

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	root := t.TempDir()
	fs, err := New(root)
	require.NoError(t, err)
	assert.Equal(t, root, fs.Root())

	_, err = New(filepath.Join(root, "missing"))
	require.Error(t, err)

	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0666))
	_, err = New(file)
	require.Error(t, err)
}

func TestOpenReadWrite(t *testing.T) {
	fs, err := New(t.TempDir())
	require.NoError(t, err)

	w, err := fs.Open("hello.txt", ModeWrite)
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, fs.Close(w))

	r, err := fs.Open("hello.txt", ModeRead)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	require.NoError(t, fs.Close(r))

	assert.True(t, fs.Exists("hello.txt"))
	assert.False(t, fs.Exists("missing.txt"))

	size, err := fs.Size("hello.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}

func TestCreate(t *testing.T) {
	fs, err := New(t.TempDir())
	require.NoError(t, err)

	w, err := fs.Create("out.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, fs.Close(w))

	size, err := fs.Size("out.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(4), size)

	// Create truncates an existing file.
	w, err = fs.Create("out.bin")
	require.NoError(t, err)
	require.NoError(t, fs.Close(w))
	size, err = fs.Size("out.bin")
	require.NoError(t, err)
	assert.Zero(t, size)

	_, err = fs.Create("../escape.bin")
	require.Error(t, err)
}

func TestPathJail(t *testing.T) {
	fs, err := New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{
		"",
		"/etc/passwd",
		"../outside",
		"a/../../outside",
		"a/./b",
		"a//b",
		`a\b`,
		"C:file",
	} {
		_, err := fs.Open(name, ModeRead)
		assert.Error(t, err, "path %q should be rejected", name)
		assert.False(t, fs.Exists(name))
	}
}

func TestSubdirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "textures"), 0777))
	require.NoError(t, os.WriteFile(filepath.Join(root, "textures", "brick.tga"), []byte{1, 2, 3}, 0666))

	fs, err := New(root)
	require.NoError(t, err)
	assert.True(t, fs.Exists("textures/brick.tga"))
	size, err := fs.Size("textures/brick.tga")
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)
}
