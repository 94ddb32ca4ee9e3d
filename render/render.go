// Package render declares the renderer operations the resource
// subsystem depends on. Codec Online hooks hand parsed payloads to an
// Ops implementation on the main goroutine; the real renderer lives
// outside this module.
package render

// Handle names a renderer-side object (texture, shader, buffer).
// HandleNone means no object has been created.
type Handle uint32

// HandleNone is the zero handle.
const HandleNone Handle = 0

// Pixel formats of texture payloads.
const (
	PixelR8 uint32 = iota
	PixelRGB8
	PixelRGBA8
)

// BytesPerPixel returns the size of one pixel in the given format.
func BytesPerPixel(format uint32) int {
	switch format {
	case PixelR8:
		return 1
	case PixelRGB8:
		return 3
	case PixelRGBA8:
		return 4
	}
	return 0
}

// Shader kinds.
const (
	ShaderVertex uint32 = iota
	ShaderPixel
)

// Ops is the narrow renderer surface the built-in codecs consume.
// None of the methods are safe to call off the main goroutine.
type Ops interface {
	CreateTexture(format uint32, width, height uint16, pixels []byte) Handle
	DestroyTexture(h Handle)

	CreateShader(kind uint32, source []byte) Handle
	DestroyShader(h Handle)

	CreateVertexBuffer(count uint32, data []byte) Handle
	CreateIndexBuffer(count uint32, data []byte) Handle
	DestroyBuffer(h Handle)
}
