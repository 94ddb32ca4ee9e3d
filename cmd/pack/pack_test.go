package pack

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/bundle/archive"
	"github.com/ember-engine/ember/fsys"
	"github.com/ember-engine/ember/resource"
)

func TestPackRoundTrip(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "textures"), 0777))
	files := map[string]string{
		"motd.txt":           "message of the day",
		"textures/brick.tga": "not really a texture",
	}
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(src, filepath.FromSlash(name)), []byte(data), 0666))
	}

	outDir := t.TempDir()
	out := filepath.Join(outDir, "archive.bin")
	seed = 7
	align = 32
	require.NoError(t, pack(src, out))

	fs, err := fsys.New(outDir)
	require.NoError(t, err)
	b, err := archive.New(fs, "archive.bin")
	require.NoError(t, err)
	defer func() { _ = b.Shutdown() }()

	require.Len(t, b.Entries(), len(files))
	for name, data := range files {
		basename, ext := resource.SplitPath(name)
		s, err := b.Open(bundle.ID{
			Name: resource.NameHash(basename, 7),
			Type: resource.TypeHash(ext),
		})
		require.NoError(t, err, "entry for %q", name)
		got, err := io.ReadAll(s)
		require.NoError(t, err)
		assert.Equal(t, data, string(got))
	}
}

func TestPackMissingDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "archive.bin")
	require.Error(t, pack(filepath.Join(t.TempDir(), "missing"), out))
}
