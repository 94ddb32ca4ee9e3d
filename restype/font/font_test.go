package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-engine/ember/bundle/mem"
	"github.com/ember-engine/ember/resource"
)

func load(t *testing.T, a *resource.Allocator, payload []byte) (interface{}, error) {
	t.Helper()
	c := Codec()
	b := mem.New()
	id := resource.ID{Name: 1, Type: c.TypeHash()}
	b.Put(id.BundleID(), payload)
	return c.Load(a, b, id)
}

func TestRoundTrip(t *testing.T) {
	glyphs := []Glyph{
		{Codepoint: 'A', X: 0, Y: 0, Width: 8, Height: 12, XOffset: 0, YOffset: -2, XAdvance: 9},
		{Codepoint: 'g', X: 8, Y: 0, Width: 7, Height: 14, XOffset: 1, YOffset: 2, XAdvance: 8},
	}
	a := resource.NewAllocator("test")
	data, err := load(t, a, Payload(glyphs))
	require.NoError(t, err)

	f := data.(*Font)
	require.Len(t, f.Glyphs, 2)
	assert.Equal(t, glyphs, f.Glyphs)

	g := f.Glyph('g')
	require.NotNil(t, g)
	assert.Equal(t, int16(2), g.YOffset)
	assert.Nil(t, f.Glyph('z'))

	Codec().Unload(a, data)
	assert.Zero(t, a.Allocations())
}

func TestTruncated(t *testing.T) {
	a := resource.NewAllocator("test")

	_, err := load(t, a, []byte{1})
	require.Error(t, err)

	// Claims one glyph, carries none.
	_, err = load(t, a, []byte{1, 0, 0, 0})
	require.Error(t, err)
	assert.Zero(t, a.Allocations())
}
