// Package all assembles every built-in resource codec.
package all

import (
	"github.com/ember-engine/ember/render"
	"github.com/ember-engine/ember/resource"
	"github.com/ember-engine/ember/restype/font"
	"github.com/ember-engine/ember/restype/material"
	"github.com/ember-engine/ember/restype/mesh"
	"github.com/ember-engine/ember/restype/script"
	"github.com/ember-engine/ember/restype/shader"
	"github.com/ember-engine/ember/restype/text"
	"github.com/ember-engine/ember/restype/texture"
)

// Codecs returns the full set of built-in codecs bound to the renderer
// r.
func Codecs(r render.Ops) []resource.Codec {
	return []resource.Codec{
		texture.Codec(r),
		text.Codec(),
		script.Codec(),
		shader.VertexCodec(r),
		shader.PixelCodec(r),
		font.Codec(),
		material.Codec(),
		mesh.Codec(r),
	}
}
