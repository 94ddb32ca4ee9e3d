// Package mesh implements the mesh resource codec.
//
// Compiled layout, little-endian:
//
//	u32 vertex_count
//	u32 index_count
//	f32 vertices[vertex_count*3]  // x, y, z per vertex
//	u16 indices[index_count]
package mesh

import (
	"encoding/binary"
	"fmt"

	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/render"
	"github.com/ember-engine/ember/resource"
)

const (
	headerSize = 8
	vertexSize = 3 * 4
	indexSize  = 2
)

// Mesh is the parsed mesh payload.
type Mesh struct {
	VertexCount uint32
	IndexCount  uint32
	Vertices    []byte // raw vertex data, view into the allocator buffer
	Indices     []byte // raw index data, view into the allocator buffer

	raw     []byte
	vbuffer render.Handle
	ibuffer render.Handle
}

// VertexBuffer returns the renderer vertex buffer handle, valid
// between Online and Offline.
func (m *Mesh) VertexBuffer() render.Handle {
	return m.vbuffer
}

// IndexBuffer returns the renderer index buffer handle, valid between
// Online and Offline.
func (m *Mesh) IndexBuffer() render.Handle {
	return m.ibuffer
}

// Codec returns the mesh codec bound to the renderer r.
func Codec(r render.Ops) resource.Codec {
	return resource.Codec{
		Name: "mesh",
		Ext:  "mesh",
		Load: func(a *resource.Allocator, b bundle.Bundle, id resource.ID) (interface{}, error) {
			raw, err := resource.ReadPayload(a, b, id)
			if err != nil {
				return nil, err
			}
			if len(raw) < headerSize {
				a.Free(raw)
				return nil, fmt.Errorf("mesh payload too short: %d bytes", len(raw))
			}
			m := &Mesh{
				VertexCount: binary.LittleEndian.Uint32(raw[0:]),
				IndexCount:  binary.LittleEndian.Uint32(raw[4:]),
				raw:         raw,
			}
			vbytes := int(m.VertexCount) * vertexSize
			ibytes := int(m.IndexCount) * indexSize
			if len(raw) < headerSize+vbytes+ibytes {
				a.Free(raw)
				return nil, fmt.Errorf("mesh payload truncated: want %d data bytes, have %d", vbytes+ibytes, len(raw)-headerSize)
			}
			m.Vertices = raw[headerSize : headerSize+vbytes]
			m.Indices = raw[headerSize+vbytes : headerSize+vbytes+ibytes]
			return m, nil
		},
		Online: func(data interface{}) {
			m := data.(*Mesh)
			m.vbuffer = r.CreateVertexBuffer(m.VertexCount, m.Vertices)
			m.ibuffer = r.CreateIndexBuffer(m.IndexCount, m.Indices)
		},
		Offline: func(data interface{}) {
			m := data.(*Mesh)
			if m.vbuffer != render.HandleNone {
				r.DestroyBuffer(m.vbuffer)
				m.vbuffer = render.HandleNone
			}
			if m.ibuffer != render.HandleNone {
				r.DestroyBuffer(m.ibuffer)
				m.ibuffer = render.HandleNone
			}
		},
		Unload: func(a *resource.Allocator, data interface{}) {
			m := data.(*Mesh)
			a.Free(m.raw)
			m.raw = nil
			m.Vertices = nil
			m.Indices = nil
		},
	}
}

// Payload compiles raw vertex and index data into the on-disk mesh
// layout, used by the offline tools and the tests.
func Payload(vertexCount uint32, vertices []byte, indexCount uint32, indices []byte) []byte {
	out := make([]byte, headerSize+len(vertices)+len(indices))
	binary.LittleEndian.PutUint32(out[0:], vertexCount)
	binary.LittleEndian.PutUint32(out[4:], indexCount)
	copy(out[headerSize:], vertices)
	copy(out[headerSize+len(vertices):], indices)
	return out
}
