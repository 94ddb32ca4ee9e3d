package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryFindOrInsert(t *testing.T) {
	var r registry

	id, enqueue := r.findOrInsert(1, 2)
	assert.True(t, enqueue, "first insert must queue a load")
	assert.Equal(t, uint32(0), id.Index)
	assert.Equal(t, StateLoading, r.state(id))
	assert.Equal(t, uint32(1), r.references(id))

	again, enqueue := r.findOrInsert(1, 2)
	assert.False(t, enqueue, "repeat request must only bump the refcount")
	assert.True(t, id.Equal(again))
	assert.Equal(t, id.Index, again.Index)
	assert.Equal(t, uint32(2), r.references(id))

	other, _ := r.findOrInsert(1, 3)
	assert.Equal(t, uint32(1), other.Index, "indices are dense and append-only")
}

func TestRegistryLoadedLifecycle(t *testing.T) {
	var r registry
	id, _ := r.findOrInsert(1, 2)

	payload := "payload"
	r.setLoaded(id, payload)
	assert.True(t, r.isLoaded(id))
	assert.Equal(t, payload, r.data(id))

	data, unload := r.release(id)
	require.True(t, unload, "last release of a loaded row must unload")
	assert.Equal(t, payload, data)
	assert.Equal(t, StateUnloading, r.state(id))

	r.clearUnloaded(id)
	assert.Equal(t, StateUnloaded, r.state(id))
	assert.Nil(t, r.data(id))
	assert.Zero(t, r.references(id))
	assert.True(t, r.has(id), "rows are retained after unload")

	// A fresh request for the same pair reuses the slot and requeues.
	again, enqueue := r.findOrInsert(1, 2)
	assert.True(t, enqueue)
	assert.Equal(t, id.Index, again.Index)
	assert.Equal(t, StateLoading, r.state(again))
}

func TestRegistryReleaseKeepsLoadedRows(t *testing.T) {
	var r registry
	id, _ := r.findOrInsert(1, 2)
	r.findOrInsert(1, 2)
	r.setLoaded(id, "x")

	_, unload := r.release(id)
	assert.False(t, unload, "a remaining reference must keep the payload")
	assert.True(t, r.isLoaded(id))
	assert.Equal(t, uint32(1), r.references(id))
}

func TestRegistryReleaseWhileLoading(t *testing.T) {
	var r registry
	id, _ := r.findOrInsert(1, 2)
	_, unload := r.release(id)
	assert.False(t, unload, "nothing to unload before the payload arrives")
	assert.Zero(t, r.references(id))
}

func TestRegistryBeginReload(t *testing.T) {
	var r registry
	id, _ := r.findOrInsert(1, 2)

	_, ok := r.beginReload(id)
	assert.False(t, ok, "reload of a loading row is a no-op")

	r.setLoaded(id, "x")
	data, ok := r.beginReload(id)
	require.True(t, ok)
	assert.Equal(t, "x", data)
	assert.Equal(t, uint32(1), r.references(id), "reload preserves the refcount")

	r.requeueLoading(id)
	assert.Equal(t, StateLoading, r.state(id))
	assert.Nil(t, r.data(id))
}

func TestRegistryProgrammingErrors(t *testing.T) {
	var r registry
	bogus := ID{Name: 9, Type: 9, Index: 4}
	assert.False(t, r.has(bogus))
	assert.Panics(t, func() { r.references(bogus) })
	assert.Panics(t, func() { r.data(bogus) })

	id, _ := r.findOrInsert(1, 2)
	_, _ = r.release(id)
	assert.Panics(t, func() { r.release(id) }, "unbalanced release must panic")

	// Same index, different identity.
	masked := ID{Name: 99, Type: 99, Index: id.Index}
	assert.False(t, r.has(masked))
	assert.Panics(t, func() { r.data(masked) })
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unloaded", StateUnloaded.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "loaded", StateLoaded.String())
	assert.Equal(t, "unloading", StateUnloading.String())
}
