// Package shader implements the vertex and pixel shader codecs. The
// compiled payload is the raw shader source; the renderer compiles it
// during Online.
package shader

import (
	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/render"
	"github.com/ember-engine/ember/resource"
)

// Shader is the shader payload.
type Shader struct {
	Kind   uint32 // render.ShaderVertex or render.ShaderPixel
	Source []byte

	handle render.Handle
}

// Handle returns the renderer shader handle, valid between Online and
// Offline.
func (s *Shader) Handle() render.Handle {
	return s.handle
}

func codec(r render.Ops, name, ext string, kind uint32) resource.Codec {
	return resource.Codec{
		Name: name,
		Ext:  ext,
		Load: func(a *resource.Allocator, b bundle.Bundle, id resource.ID) (interface{}, error) {
			raw, err := resource.ReadPayload(a, b, id)
			if err != nil {
				return nil, err
			}
			return &Shader{Kind: kind, Source: raw}, nil
		},
		Online: func(data interface{}) {
			s := data.(*Shader)
			s.handle = r.CreateShader(s.Kind, s.Source)
		},
		Offline: func(data interface{}) {
			s := data.(*Shader)
			if s.handle != render.HandleNone {
				r.DestroyShader(s.handle)
				s.handle = render.HandleNone
			}
		},
		Unload: func(a *resource.Allocator, data interface{}) {
			s := data.(*Shader)
			a.Free(s.Source)
			s.Source = nil
		},
	}
}

// VertexCodec returns the vertex shader codec bound to r.
func VertexCodec(r render.Ops) resource.Codec {
	return codec(r, "vertex shader", "vs", render.ShaderVertex)
}

// PixelCodec returns the pixel shader codec bound to r.
func PixelCodec(r render.Ops) resource.Codec {
	return codec(r, "pixel shader", "ps", render.ShaderPixel)
}
